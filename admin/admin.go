package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"campuskitchen/activity"
	"campuskitchen/apperr"
	"campuskitchen/cache"
	"campuskitchen/cart"
	"campuskitchen/db"
	"campuskitchen/models"
	"campuskitchen/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var dashCache = cache.New(cache.DefaultTTL)

// Dashboard returns aggregate counts for the admin landing page.
func Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if cached, ok := dashCache.Get("dashboard"); ok {
		utils.RespondWithJSON(w, http.StatusOK, cached)
		return
	}

	users, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to count users", err))
		return
	}
	menuItems, err := db.MenuCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to count menu items", err))
		return
	}
	pending, err := db.OrdersCollection.CountDocuments(ctx, bson.M{"status": models.OrderPending})
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to count orders", err))
		return
	}
	completed, err := db.OrdersCollection.CountDocuments(ctx, bson.M{"status": models.OrderCompleted})
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to count orders", err))
		return
	}
	subscribers, err := db.UserCollection.CountDocuments(ctx, bson.M{"subscription.active": true})
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to count subscribers", err))
		return
	}

	stats := map[string]any{
		"totalUsers":        users,
		"menuItems":         menuItems,
		"pendingOrders":     pending,
		"completedOrders":   completed,
		"activeSubscribers": subscribers,
		"generatedAt":       time.Now(),
	}
	dashCache.Set("dashboard", stats)

	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// ListUsers returns every account, newest first, without secrets.
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"password": 0, "refresh_token": 0})

	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		filter["role"] = role
	}

	users, err := utils.FindAndDecode[models.User](ctx, db.UserCollection, filter, opts)
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to retrieve users", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"users": users})
}

// ListOrders returns orders across all users, optionally filtered by status.
func ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to retrieve orders", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

// AdjustTokens adds to (or subtracts from) a user's token balance. The
// balance never goes below zero.
func AdjustTokens(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	adminID := utils.GetUserIDFromRequest(r)
	targetID := ps.ByName("userid")

	var body struct {
		Delta  int    `json:"delta"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Delta == 0 {
		utils.RespondWithAppError(w, apperr.Validation("InvalidDelta", "A non-zero token delta is required", ""))
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": targetID}).Decode(&user); err != nil {
		utils.RespondWithAppError(w, apperr.NotFound("UserNotFound", "User not found"))
		return
	}

	newBalance := user.Tokens + body.Delta
	if newBalance < 0 {
		newBalance = 0
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": targetID},
		bson.M{"$set": bson.M{"tokens": newBalance}},
	); err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to adjust tokens", err))
		return
	}

	activity.Record(ctx, adminID, activity.TypeAdminAction,
		"Adjusted token balance",
		map[string]any{"target": targetID, "delta": body.Delta, "reason": body.Reason})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"userId": targetID,
		"tokens": newBalance,
	})
}

// DeleteUser removes an account and its cart.
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	adminID := utils.GetUserIDFromRequest(r)
	targetID := ps.ByName("userid")

	res, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": targetID})
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to delete user", err))
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithAppError(w, apperr.NotFound("UserNotFound", "User not found"))
		return
	}
	cart.Clear(ctx, targetID)

	activity.Record(ctx, adminID, activity.TypeAdminAction,
		"Deleted user account", map[string]any{"target": targetID})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// DeleteOrder removes an order record. Token balances are untouched;
// use AdjustTokens for refunds.
func DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	adminID := utils.GetUserIDFromRequest(r)
	orderID := ps.ByName("orderid")

	res, err := db.OrdersCollection.DeleteOne(ctx, bson.M{"orderid": orderID})
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to delete order", err))
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithAppError(w, apperr.NotFound("OrderNotFound", "Order not found"))
		return
	}

	activity.Record(ctx, adminID, activity.TypeAdminAction,
		"Deleted order", map[string]any{"orderId": orderID})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
}

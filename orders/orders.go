package orders

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"campuskitchen/activity"
	"campuskitchen/apperr"
	"campuskitchen/cart"
	"campuskitchen/db"
	"campuskitchen/models"
	"campuskitchen/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const estimatedDeliveryWindow = 30 * time.Minute

// buildOrder snapshots the cart into a new pending order.
func buildOrder(user models.User, c models.Cart, now time.Time) models.Order {
	items := make([]models.OrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, models.OrderItem{
			ID:       line.ItemID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	return models.Order{
		OrderID:        utils.GenerateOrderID(now),
		UserID:         user.UserID,
		Items:          items,
		Total:          c.Total(),
		TotalQuantity:  c.TotalItemCount(),
		Status:         models.OrderPending,
		TrackingStatus: models.TrackingOrderPlaced,
		UsingTokens:    true,
		TokenDeducted:  false,
		DeliveryDetails: models.DeliveryDetails{
			Status:        models.DeliveryPending,
			EstimatedTime: now.Add(estimatedDeliveryWindow),
		},
		UserDetails: models.OrderUserDetails{
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		},
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// PlaceOrder checks out the caller's cart into a new order. The cart is
// cleared only after the order write is verified; on any failure the cart
// is left untouched so the user can retry.
func PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithAppError(w, apperr.NotFound("UserNotFound", "Account not found"))
		return
	}

	if user.Tokens <= 0 || user.Subscription == nil || !user.Subscription.Active {
		utils.RespondWithAppError(w, apperr.Insufficient("NoActiveTokens", "An active subscription with tokens is required to place an order"))
		return
	}

	c := cart.Load(ctx, userID)
	if len(c.Lines) == 0 {
		utils.RespondWithAppError(w, apperr.Validation("EmptyCart", "Your cart is empty", "add some items before checking out"))
		return
	}

	order := buildOrder(user, c, time.Now())

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		log.Println("PlaceOrder insert error:", err)
		utils.RespondWithAppError(w, apperr.External("Failed to save order", err))
		return
	}

	// Read the record back to confirm the write landed before clearing
	// the cart.
	var saved models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": order.OrderID}).Decode(&saved); err != nil {
		log.Println("PlaceOrder verification read failed:", err)
		utils.RespondWithAppError(w, apperr.External("Failed to verify order creation", err))
		return
	}

	cart.Clear(ctx, userID)

	activity.Record(ctx, userID, activity.TypeOrderPlaced,
		fmt.Sprintf("Order #%s placed with %d items", order.OrderID, order.TotalQuantity),
		map[string]any{"orderId": order.OrderID, "total": order.Total})

	Hub.NotifyUser(userID, map[string]any{"event": "order_placed", "order": saved})

	utils.RespondWithJSON(w, http.StatusCreated, saved)
}

// GetMyOrders lists the caller's orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := db.OrdersCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetOrder returns one order. Customers can only see their own; admin and
// delivery roles can see any.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	role := utils.GetRoleFromRequest(r)

	filter := bson.M{"orderid": ps.ByName("orderid")}
	if role != models.RoleAdmin && role != models.RoleDelivery {
		filter["userid"] = userID
	}

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, filter).Decode(&order); err != nil {
		utils.RespondWithAppError(w, apperr.NotFound("OrderNotFound", "Order not found"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// CancelOrder cancels the caller's own pending, undelivered order.
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	orderID := ps.ByName("orderid")

	res, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{
			"orderid":                orderID,
			"userid":                 userID,
			"status":                 models.OrderPending,
			"deliveryDetails.status": models.DeliveryPending,
		},
		bson.M{"$set": bson.M{
			"status":      models.OrderCancelled,
			"lastUpdated": time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to cancel order", err))
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithAppError(w, apperr.Conflict("NotCancellable", "Order cannot be cancelled"))
		return
	}

	activity.Record(ctx, userID, activity.TypeOrderCancelled,
		fmt.Sprintf("Order #%s cancelled", orderID), nil)

	Hub.NotifyUser(userID, map[string]any{"event": "order_cancelled", "orderId": orderID})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// PendingDeliveries lists undelivered, uncancelled orders for delivery
// partners.
func PendingDeliveries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"deliveryDetails.status": models.DeliveryPending,
		"status":                 models.OrderPending,
	}
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := db.OrdersCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch pending orders")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// CompletedDeliveries lists orders the calling partner has delivered.
func CompletedDeliveries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	partnerID := utils.GetUserIDFromRequest(r)

	filter := bson.M{
		"deliveryDetails.status":            models.DeliveryDelivered,
		"deliveryDetails.deliveryPartnerId": partnerID,
	}
	opts := options.Find().SetSort(bson.M{"deliveryDetails.deliveredAt": -1})
	cursor, err := db.OrdersCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch deliveries")
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"campuskitchen/activity"
	"campuskitchen/apperr"
	"campuskitchen/db"
	"campuskitchen/models"
	"campuskitchen/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetPlans lists the purchasable plans.
func GetPlans(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, Plans())
}

// GetStatus returns the caller's token balance and subscription, applying
// lazy expiry on read.
func GetStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	if Refresh(user.Subscription, time.Now()) {
		if _, err := db.UserCollection.UpdateOne(ctx,
			bson.M{"userid": userID},
			bson.M{"$set": bson.M{"subscription.active": false}},
		); err != nil {
			utils.RespondWithAppError(w, apperr.External("Failed to update subscription", err))
			return
		}
	}

	canPlaceOrder := user.Tokens > 0 && user.Subscription != nil && user.Subscription.Active

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"tokens":        user.Tokens,
		"subscription":  user.Subscription,
		"canPlaceOrder": canPlaceOrder,
	})
}

// Purchase records a plan purchase after external payment confirmation.
// Payment itself is outside this service.
func Purchase(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		PlanID string `json:"planId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PlanID == "" {
		utils.RespondWithAppError(w, apperr.Validation("MissingPlan", "Plan is required", "choose a subscription plan"))
		return
	}

	plan, ok := PlanByID(body.PlanID)
	if !ok {
		utils.RespondWithAppError(w, apperr.NotFound("PlanNotFound", "Unknown subscription plan"))
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithAppError(w, apperr.NotFound("UserNotFound", "Account not found"))
		return
	}

	Refresh(user.Subscription, time.Now())
	ApplyPurchase(&user, plan, time.Now())

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{
			"tokens":       user.Tokens,
			"subscription": user.Subscription,
		}},
	); err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to save subscription", err))
		return
	}

	activity.Record(ctx, userID, activity.TypeSubscriptionPurchased,
		fmt.Sprintf("Subscribed to the %s plan (%d tokens)", plan.Name, plan.TokenGrant),
		map[string]any{"planId": plan.ID})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"tokens":       user.Tokens,
		"subscription": user.Subscription,
		"message":      fmt.Sprintf("You have successfully subscribed to the %s plan and received %d tokens.", plan.Name, plan.TokenGrant),
	})
}

// ExtendSubscription applies the one-time two-month extension.
func ExtendSubscription(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

	if err := Extend(user.Subscription); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{
			"subscription.endDate":     user.Subscription.EndDate,
			"subscription.active":      true,
			"subscription.hasExtended": true,
		}},
	); err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to extend subscription", err))
		return
	}

	activity.Record(ctx, userID, activity.TypeSubscriptionExtended,
		"Token expiration extended by two months", nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"subscription": user.Subscription,
		"message":      "Token expiration date extended successfully.",
	})
}

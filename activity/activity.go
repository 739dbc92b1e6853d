package activity

import (
	"context"
	"log"
	"time"

	"campuskitchen/db"
	"campuskitchen/models"
	"campuskitchen/mq"
	"campuskitchen/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"net/http"
)

// Common activity types
const (
	TypeLogin                 = "User Login"
	TypeSignup                = "User Signup"
	TypeOrderPlaced           = "Order Placed"
	TypeOrderDelivered        = "Order Delivered"
	TypeOrderCancelled        = "Order Cancelled"
	TypeTokensUsed            = "Tokens Used"
	TypeTokensAdded           = "Tokens Added"
	TypeSubscriptionPurchased = "Subscription Purchased"
	TypeSubscriptionExtended  = "Subscription Extended"
	TypeProfileUpdated        = "Profile Updated"
	TypeAdminAction           = "Admin Action"
)

// Record appends an activity and publishes it for live listeners. Audit
// writes are best-effort and never fail the calling flow.
func Record(ctx context.Context, userID, activityType, details string, metadata map[string]any) {
	act := models.Activity{
		ActivityID: utils.GetUUID(),
		UserID:     userID,
		Type:       activityType,
		Details:    details,
		Metadata:   metadata,
		Timestamp:  time.Now(),
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err == nil {
		act.UserDetails = &models.OrderUserDetails{Name: user.Name, Email: user.Email}
	}

	if _, err := db.ActivitiesCollection.InsertOne(ctx, act); err != nil {
		log.Printf("activity insert failed for %s: %v", userID, err)
		return
	}

	go mq.Emit(activityType, act)
}

// GetActivityFeed returns the caller's own activity, newest first.
func GetActivityFeed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	opts := options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(100)
	cursor, err := db.ActivitiesCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		http.Error(w, "Failed to fetch activities", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		http.Error(w, "Failed to decode activities", http.StatusInternalServerError)
		return
	}
	if activities == nil {
		activities = []models.Activity{}
	}

	utils.RespondWithJSON(w, http.StatusOK, activities)
}

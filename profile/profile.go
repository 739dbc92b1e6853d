package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"campuskitchen/activity"
	"campuskitchen/apperr"
	"campuskitchen/cart"
	"campuskitchen/db"
	"campuskitchen/models"
	"campuskitchen/rdx"
	"campuskitchen/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile returns the authenticated user's own account.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithAppError(w, apperr.NotFound("UserNotFound", "Account not found"))
			return
		}
		utils.RespondWithAppError(w, apperr.External("Failed to load profile", err))
		return
	}

	// Clear sensitive fields before serializing.
	user.Password = ""
	user.RefreshToken = ""

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// EditProfile updates the caller's own profile fields. Only fields present in
// the request body are touched.
func EditProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithAppError(w, apperr.Validation("InvalidBody", "Invalid request body", "body must be JSON"))
		return
	}

	update := bson.M{}
	if body.Name != "" {
		update["name"] = body.Name
	}
	if body.Email != "" {
		update["email"] = body.Email
	}
	if body.Phone != "" {
		update["phone"] = body.Phone
	}
	if body.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondWithAppError(w, apperr.External("Failed to hash password", err))
			return
		}
		update["password"] = string(hashed)
	}
	if len(update) == 0 {
		utils.RespondWithAppError(w, apperr.Validation("NothingToUpdate", "No profile fields provided", ""))
		return
	}

	res, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to update profile", err))
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithAppError(w, apperr.NotFound("UserNotFound", "Account not found"))
		return
	}

	// Cached username lookups are stale now.
	_ = rdx.RdxDel(fmt.Sprintf("users:%s", userID))

	activity.Record(ctx, userID, activity.TypeProfileUpdated, "Profile details updated", nil)

	respondWithProfile(w, ctx, userID)
}

// DeleteProfile removes the caller's account and cart. Orders are kept for
// record keeping.
func DeleteProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	res, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to delete profile", err))
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithAppError(w, apperr.NotFound("UserNotFound", "Account not found"))
		return
	}

	cart.Clear(ctx, userID)
	_ = rdx.RdxDel(fmt.Sprintf("users:%s", userID))

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Profile deleted successfully",
	})
}

func respondWithProfile(w http.ResponseWriter, ctx context.Context, userID string) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to load profile", err))
		return
	}
	user.Password = ""
	user.RefreshToken = ""
	utils.RespondWithJSON(w, http.StatusOK, user)
}

package feedback

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"campuskitchen/apperr"
	"campuskitchen/db"
	"campuskitchen/models"
	"campuskitchen/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmitFeedback stores a rating and optional message from the caller.
func SubmitFeedback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Rating  int    `json:"rating"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithAppError(w, apperr.Validation("InvalidBody", "Invalid request body", "body must be JSON"))
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		utils.RespondWithAppError(w, apperr.Validation("InvalidRating", "Rating must be between 1 and 5", ""))
		return
	}

	fb := models.Feedback{
		FeedbackID: "fb" + utils.GenerateID(10),
		UserID:     userID,
		Rating:     body.Rating,
		Message:    body.Message,
		CreatedAt:  time.Now(),
	}

	if _, err := db.FeedbackCollection.InsertOne(ctx, fb); err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to save feedback", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, fb)
}

// ListFeedback returns feedback entries, newest first. Admin only.
func ListFeedback(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	entries, err := utils.FindAndDecode[models.Feedback](ctx, db.FeedbackCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithAppError(w, apperr.External("Failed to retrieve feedback", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"feedback": entries})
}

package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"campuskitchen/db"
	"campuskitchen/models"
	"campuskitchen/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OwnerFilter selects a user's cart document. Every carts access goes
// through this so cleanup paths in other packages cannot drift from the
// stored key.
func OwnerFilter(userID string) bson.M {
	return bson.M{"userId": userID}
}

// Load returns the user's cart document, or an empty cart if none exists.
func Load(ctx context.Context, userID string) models.Cart {
	var c models.Cart
	err := db.CartsCollection.FindOne(ctx, OwnerFilter(userID)).Decode(&c)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			log.Println("cart load error:", err)
		}
		return models.Cart{UserID: userID}
	}
	return c
}

// save persists the cart. Write failures are logged and swallowed; the
// in-memory cart stays authoritative for the session.
func save(ctx context.Context, c models.Cart) {
	c.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	if _, err := db.CartsCollection.ReplaceOne(ctx, OwnerFilter(c.UserID), c, opts); err != nil {
		log.Println("cart save error:", err)
	}
}

// Clear empties the user's persisted cart. Called after successful checkout.
func Clear(ctx context.Context, userID string) {
	if _, err := db.CartsCollection.DeleteOne(ctx, OwnerFilter(userID)); err != nil {
		log.Println("cart clear error:", err)
	}
}

// GetCart returns the caller's cart with totals.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	c := Load(ctx, userID)
	respondCart(w, c)
}

// AddToCart adds one unit of a menu item to the caller's cart.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ItemID == "" {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	var item models.MenuItem
	if err := db.MenuCollection.FindOne(ctx, bson.M{"menuid": body.ItemID, "available": true}).Decode(&item); err != nil {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}

	c := Load(ctx, userID)
	c.AddLine(item)
	save(ctx, c)

	respondCart(w, c)
}

// SetQuantity sets the quantity for a line; zero or below removes it.
func SetQuantity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		ItemID   string `json:"itemId"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ItemID == "" {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	c := Load(ctx, userID)
	c.SetQuantity(body.ItemID, body.Quantity)
	save(ctx, c)

	respondCart(w, c)
}

// RemoveFromCart removes a line entirely.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	c := Load(ctx, userID)
	c.RemoveLine(ps.ByName("itemid"))
	save(ctx, c)

	respondCart(w, c)
}

// ClearCart empties the caller's cart.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	Clear(ctx, userID)
	respondCart(w, models.Cart{UserID: userID})
}

func respondCart(w http.ResponseWriter, c models.Cart) {
	if c.Lines == nil {
		c.Lines = []models.CartLine{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"cart":       c,
		"totalItems": c.TotalItemCount(),
		"total":      c.Total(),
	})
}

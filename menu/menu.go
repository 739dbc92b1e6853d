package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"campuskitchen/cache"
	"campuskitchen/db"
	"campuskitchen/models"
	"campuskitchen/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// menuCache keeps the hot menu list out of Mongo for its TTL window.
var menuCache = cache.New(cache.DefaultTTL)

func CreateMenuItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var body struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		Image       string  `json:"image"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if len(body.Name) == 0 || len(body.Name) > 100 {
		http.Error(w, "Name must be between 1 and 100 characters.", http.StatusBadRequest)
		return
	}
	if body.Price < 0 {
		http.Error(w, "Invalid price value. Must be a non-negative number.", http.StatusBadRequest)
		return
	}
	if body.Category == "" {
		http.Error(w, "Category is required", http.StatusBadRequest)
		return
	}

	item := models.MenuItem{
		MenuID:      utils.GenerateRandomString(14),
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Category:    body.Category,
		Image:       body.Image,
		Available:   true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := db.MenuCollection.InsertOne(ctx, item); err != nil {
		http.Error(w, "Failed to insert menu item: "+err.Error(), http.StatusInternalServerError)
		return
	}

	menuCache.Clear()

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"ok":      true,
		"message": "Menu item created successfully.",
		"data":    item,
	})
}

// Fetch a single menu item
func GetMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	menuID := ps.ByName("menuid")

	var item models.MenuItem
	err := db.MenuCollection.FindOne(context.TODO(), bson.M{"menuid": menuID}).Decode(&item)
	if err != nil {
		http.Error(w, fmt.Sprintf("Menu item not found: %v", err), http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, item)
}

// GetMenuItems lists available meals, optionally filtered by ?category=.
func GetMenuItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category := r.URL.Query().Get("category")
	cacheKey := "menu:list:" + category
	if cached, ok := menuCache.Get(cacheKey); ok {
		utils.RespondWithJSON(w, http.StatusOK, cached)
		return
	}

	filter := bson.M{"available": true}
	if category != "" {
		filter["category"] = category
	}

	cursor, err := db.MenuCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		http.Error(w, "Failed to fetch menu", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		http.Error(w, "Error reading menu data", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}

	menuCache.Set(cacheKey, items)
	utils.RespondWithJSON(w, http.StatusOK, items)
}

func EditMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	menuID := ps.ByName("menuid")

	var body struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		Image       *string  `json:"image"`
		Available   *bool    `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if body.Name != nil {
		set["name"] = *body.Name
	}
	if body.Description != nil {
		set["description"] = *body.Description
	}
	if body.Price != nil {
		if *body.Price < 0 {
			http.Error(w, "Invalid price value. Must be a non-negative number.", http.StatusBadRequest)
			return
		}
		set["price"] = *body.Price
	}
	if body.Category != nil {
		set["category"] = *body.Category
	}
	if body.Image != nil {
		set["image"] = *body.Image
	}
	if body.Available != nil {
		set["available"] = *body.Available
	}

	res, err := db.MenuCollection.UpdateOne(ctx, bson.M{"menuid": menuID}, bson.M{"$set": set})
	if err != nil {
		http.Error(w, "Failed to update menu item", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}

	menuCache.Clear()
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func DeleteMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	menuID := ps.ByName("menuid")

	res, err := db.MenuCollection.DeleteOne(ctx, bson.M{"menuid": menuID})
	if err != nil {
		http.Error(w, "Failed to delete menu item", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}

	menuCache.Clear()
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

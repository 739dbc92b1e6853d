package models

import "time"

// MenuItem is a meal on the campus menu.
type MenuItem struct {
	MenuID      string    `json:"menuid" bson:"menuid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Category    string    `json:"category" bson:"category"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Available   bool      `json:"available" bson:"available"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

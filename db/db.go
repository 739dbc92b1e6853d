package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection       *mongo.Collection
	OrdersCollection     *mongo.Collection
	MenuCollection       *mongo.Collection
	CartsCollection      *mongo.Collection
	ActivitiesCollection *mongo.Collection
	FeedbackCollection   *mongo.Collection
	Client               *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	clientOptions := options.Client().ApplyURI(uri)
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("campusdb")
	UserCollection = database.Collection("users")
	OrdersCollection = database.Collection("orders")
	MenuCollection = database.Collection("menu")
	CartsCollection = database.Collection("carts")
	ActivitiesCollection = database.Collection("activities")
	FeedbackCollection = database.Collection("feedback")
}

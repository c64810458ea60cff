package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SamarthKasar123/Primewave/models"
	"github.com/SamarthKasar123/Primewave/store"
	"github.com/SamarthKasar123/Primewave/utils"
)

// The agency's manager accounts. Managers have no self-service
// registration; this binary provisions them.
var managers = []struct {
	username string
	password string
	email    string
}{
	{username: "siddharth", password: "Siddharth@123", email: "siddharth@primewave.com"},
	{username: "abhinav", password: "Abhinav@123", email: "abhinav@primewave.com"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI()))
	if err != nil {
		log.Fatal("Database connection failed:", err)
	}
	defer client.Disconnect(context.Background())

	collection := client.Database("primewave").Collection("managers")

	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatal("Failed to clear existing managers:", err)
	}
	log.Println("Existing managers cleared")

	managerStore := store.NewMongoManagerStore(collection)
	for _, m := range managers {
		hashed, err := utils.HashPassword(m.password)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}
		if err := managerStore.Insert(ctx, &models.Manager{
			Username: m.username,
			Email:    m.email,
			Password: hashed,
		}); err != nil {
			log.Fatal("Failed to insert manager:", err)
		}
	}

	log.Println("Managers seeded successfully")
}

func mongoURI() string {
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"roomly/config"
	"roomly/database"
	"roomly/models"

	"github.com/google/uuid"
)

// Seed utility: wipes and repopulates the resources and users collections
// with a demo data set for local development.
func main() {
	config.LoadConfig()
	database.InitDB()

	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	resourceColl := db.Collection("resources")
	userColl := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := resourceColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear resources collection: %v", err)
	}
	if _, err := userColl.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear users collection: %v", err)
	}

	now := time.Now()
	rooms := []models.Resource{
		{
			Name: "1F 小会议室A", Type: models.ResourceMeetingRoom, Capacity: 4,
			Location: "一楼东侧",
			Features: map[string]bool{"白板": true, "WiFi": true},
		},
		{
			Name: "1F 小会议室B", Type: models.ResourceMeetingRoom, Capacity: 6,
			Location: "一楼西侧",
			Features: map[string]bool{"白板": true, "电视": true, "WiFi": true},
		},
		{
			Name: "2F 中会议室", Type: models.ResourceMeetingRoom, Capacity: 10,
			Location: "二楼",
			Features: map[string]bool{"投影仪": true, "白板": true, "音响": true, "WiFi": true},
		},
		{
			Name: "3F 大会议室", Type: models.ResourceMeetingRoom, Capacity: 20,
			Location: "三楼",
			Features: map[string]bool{"投影仪": true, "视频会议": true, "音响": true, "麦克风": true, "WiFi": true},
		},
		{
			Name: "3F 多功能厅", Type: models.ResourceMeetingRoom, Capacity: 50,
			Location: "三楼北侧",
			Features: map[string]bool{"投影仪": true, "视频会议": true, "音响": true, "麦克风": true, "空调": true, "WiFi": true},
		},
	}

	var docs []interface{}
	for i := range rooms {
		rooms[i].ID = uuid.New().String()
		rooms[i].IsAvailable = true
		rooms[i].CreatedAt = now
		docs = append(docs, rooms[i])
	}
	if _, err := resourceColl.InsertMany(ctx, docs); err != nil {
		log.Fatalf("Failed to seed resources: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}
	demo := models.User{
		ID:             uuid.New().String(),
		Username:       "demo",
		Email:          "demo@example.com",
		FullName:       "演示用户",
		HashedPassword: string(hashed),
		Role:           "user",
		IsActive:       true,
		CreatedAt:      now,
	}
	if _, err := userColl.InsertOne(ctx, demo); err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	log.Printf("Seeded %d rooms and demo user (demo/demo123)", len(rooms))
}

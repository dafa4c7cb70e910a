package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formforge/internal/model"
	"formforge/internal/service"
)

func score(v float64) *float64 { return &v }

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "formforge"
	}
	ownerUsername := os.Getenv("OWNER_USERNAME")
	if ownerUsername == "" {
		ownerUsername = "admin"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	now := time.Now()

	// Forms use ObjectID _id (hex-encoded in the API), questions use string UUIDs.
	formOID := primitive.NewObjectID()

	// Same owner id derivation as login, so the seeded form is manageable.
	form := model.Form{
		OwnerID:     service.OwnerIDFor(ownerUsername),
		OwnerEmail:  "owner@example.com",
		Title:       "Go Basics Quiz",
		Description: "Short quiz with a conditional follow-up branch.",
		Type:        model.FormTypeQuiz,
		Settings: model.FormSettings{
			ScoringMode:     model.ScoringModePartial,
			AcceptResponses: true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	form.ID = formOID.Hex()

	q1ID := uuid.New().String()
	followUpID := uuid.New().String()

	questions := []model.Question{
		{
			ID:           q1ID,
			FormID:       form.ID,
			DisplayIndex: 0,
			Type:         model.QuestionTypeMultipleChoice,
			Title:        "Have you used Go before?",
			Options: []model.Option{
				{Index: 0, Label: "Yes"},
				{Index: 1, Label: "No"},
			},
			Required:  true,
			MaxScore:  score(5),
			AnswerKey: &model.AnswerKey{Value: []interface{}{0}, IsCorrect: true},
			ConditionalChildren: []model.ChildRule{
				{OptionIndex: 0, ChildID: followUpID},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:           followUpID,
			FormID:       form.ID,
			DisplayIndex: 1,
			Type:         model.QuestionTypeCheckBox,
			Title:        "Which Go features have you used?",
			Options: []model.Option{
				{Index: 0, Label: "Goroutines"},
				{Index: 1, Label: "Channels"},
				{Index: 2, Label: "Generics"},
			},
			MaxScore:  score(10),
			AnswerKey: &model.AnswerKey{Value: []interface{}{0, 1, 2}, IsCorrect: true},
			ParentRef: &model.ParentRef{QuestionID: q1ID, OptionIndex: 0},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:           uuid.New().String(),
			FormID:       form.ID,
			DisplayIndex: 2,
			Type:         model.QuestionTypeNumber,
			Title:        "What year was Go first released publicly?",
			Required:     true,
			MaxScore:     score(5),
			AnswerKey:    &model.AnswerKey{Value: 2009, IsCorrect: true},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.New().String(),
			FormID:       form.ID,
			DisplayIndex: 3,
			Type:         model.QuestionTypeShortAnswer,
			Title:        "What does the go keyword do?",
			MaxScore:     score(10),
			AnswerKey:    &model.AnswerKey{Value: "starts a new goroutine", IsCorrect: true},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.New().String(),
			FormID:       form.ID,
			DisplayIndex: 4,
			Type:         model.QuestionTypeText,
			Title:        "Thanks for taking the quiz!",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}

	formDoc := bson.M{
		"_id":         formOID,
		"ownerId":     form.OwnerID,
		"ownerEmail":  form.OwnerEmail,
		"title":       form.Title,
		"description": form.Description,
		"type":        form.Type,
		"settings":    form.Settings,
		"createdAt":   form.CreatedAt,
		"updatedAt":   form.UpdatedAt,
	}
	if _, err := db.Collection("forms").InsertOne(ctx, formDoc); err != nil {
		log.Fatalf("Failed to insert form: %v", err)
	}
	for _, q := range questions {
		if _, err := db.Collection("questions").InsertOne(ctx, q); err != nil {
			log.Fatalf("Failed to insert question %s: %v", q.ID, err)
		}
	}

	fmt.Printf("Seeded form %s with %d questions\n", form.ID, len(questions))
	fmt.Printf("Try: GET /v1/forms/%s/content\n", form.ID)
}

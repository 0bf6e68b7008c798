package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"venturescope/internal/model"
	"venturescope/internal/repository"
)

// Seeds a demo idea with a pre-baked assessment and partial progress so the
// staged-disclosure flow can be exercised locally without the AI backend.
func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "venturescope"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(mongoDB)
	ideaRepo := repository.NewIdeaRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)
	progressRepo := repository.NewProgressRepo(db)

	now := time.Now()
	idea := &model.Idea{
		ID:        "demo-idea-1",
		UserID:    "user_demo0001",
		Text:      "A subscription service that delivers curated maintenance kits for urban balcony gardens, with seasonal planting guides.",
		Status:    model.IdeaStatusReady,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ideaRepo.Create(ctx, idea); err != nil {
		log.Fatalf("Failed to seed idea: %v", err)
	}

	prior := 58.0
	assessment := &model.RiskAssessment{
		IdeaID: idea.ID,
		Categories: map[string]model.CategoryScore{
			model.CategoryMarketTiming:        {Score: 72, Prior: &prior, Change: 14},
			model.CategoryCompetitionLevel:    {Score: 55},
			model.CategoryBusinessViability:   {Score: 64},
			model.CategoryExecutionDifficulty: {Score: 48},
		},
		OverallScore: 61,
		Verdict:      model.VerdictProceed,
		Confidence:   0.7,
		TopRisks: []model.TopRisk{
			{
				Title:       "Seasonal churn",
				Severity:    model.SeverityHigh,
				Category:    model.CategoryBusinessViability,
				Rationale:   "Balcony gardening demand collapses in winter months.",
				Mitigations: []string{"Introduce indoor winter kits", "Offer pause-instead-of-cancel"},
				Timeline:    "before first winter",
			},
			{
				Title:       "Thin margins on shipping",
				Severity:    model.SeverityMedium,
				Category:    model.CategoryExecutionDifficulty,
				Rationale:   "Bulky soil and planters are expensive to ship monthly.",
				Mitigations: []string{"Ship consumables only", "Regional fulfilment partners"},
				Timeline:    "first 60 days",
			},
		},
		Recommendation: model.Recommendation{
			Verdict:    model.VerdictProceed,
			Confidence: 0.7,
			Summary:    "Solid niche with clear willingness to pay; validate retention before scaling.",
			Conditions: []string{"Churn below 8% monthly after season one"},
			NextSteps:  []string{"Run the market deep-dive stage", "Pilot with 50 subscribers in one city"},
		},
		Generated: true,
		CreatedAt: now,
	}
	if err := assessmentRepo.Save(ctx, assessment); err != nil {
		log.Fatalf("Failed to seed assessment: %v", err)
	}

	// Stage 1 done unlocks stage 2 for the demo account.
	if err := progressRepo.AddCompletedStage(ctx, idea.ID, 1); err != nil {
		log.Fatalf("Failed to seed progress: %v", err)
	}

	fmt.Printf("Seeded idea %s for user %s\n", idea.ID, idea.UserID)
}

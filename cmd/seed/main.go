package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"impactready/internal/config"
	"impactready/internal/engine"
	"impactready/internal/model"
	"impactready/internal/repository"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	sections := defaultCatalog()

	// Refuse to seed a catalog the server would reject at boot
	if _, err := engine.NewCatalog(sections); err != nil {
		log.Fatalf("Seed catalog is invalid: %v", err)
	}

	catalogRepo := repository.NewCatalogRepo(client.Database(cfg.MongoDB))
	if err := catalogRepo.ReplaceAll(ctx, sections); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	var questions int
	for i := range sections {
		questions += len(sections[i].Questions)
	}
	fmt.Printf("Seeded %d sections, %d questions into %s\n", len(sections), questions, cfg.MongoDB)
}

func yesNo() []model.Option {
	return []model.Option{
		{Label: "Yes", Value: "yes", Points: 100},
		{Label: "No", Value: "no", Points: 0},
	}
}

func npsOptions() []model.Option {
	opts := make([]model.Option, 0, 11)
	for i := 0; i <= 10; i++ {
		opts = append(opts, model.Option{
			Label:  fmt.Sprintf("%d", i),
			Value:  fmt.Sprintf("%d", i),
			Points: float64(i) * 10,
		})
	}
	return opts
}

func defaultCatalog() []model.Section {
	return []model.Section{
		{
			Code:   model.SectionRisk,
			Title:  "Risk Profile",
			Weight: 0.30,
			Order:  1,
			Questions: []model.Question{
				{
					Code: "RISK_01", Text: "Does your organization have audited financial statements for the last two years?",
					Type: model.QuestionTypeSingleChoice, Required: true, Weight: 1.0, Order: 1,
					Options: yesNo(),
				},
				{
					Code: "RISK_02", Text: "Which audit findings were raised, if any?",
					Type: model.QuestionTypeMultiChoice, Required: true, Weight: 0.8, Order: 2,
					Options: []model.Option{
						{Label: "None", Value: "none", Points: 100},
						{Label: "Minor control gaps", Value: "minor", Points: 60},
						{Label: "Going concern note", Value: "going_concern", Points: 10},
						{Label: "Material misstatement", Value: "material", Points: 0},
					},
					Conditions: []model.Condition{
						{QuestionCode: "RISK_01", Operator: model.OperatorEquals, ExpectedValue: "yes"},
					},
				},
				{
					Code: "RISK_03", Text: "How many months of operating expenses does your cash runway cover?",
					Type: model.QuestionTypeSlider, Required: true, Weight: 1.0, Order: 3,
					Dimensions: []model.Dimension{
						{Code: "runway", Label: "Months of runway", Min: 0, Max: 24, PointsPerUnit: 100.0 / 24},
					},
				},
				{
					Code: "RISK_04", Text: "Does a dedicated person or team own risk management?",
					Type: model.QuestionTypeSingleChoice, Required: true, Weight: 0.6, Order: 4,
					Options: yesNo(),
				},
			},
		},
		{
			Code:   model.SectionImpact,
			Title:  "Impact Readiness",
			Weight: 0.30,
			Order:  2,
			Questions: []model.Question{
				{
					Code: "IMP_01", Text: "Do you track impact metrics against a recognized framework (IRIS+, SDGs)?",
					Type: model.QuestionTypeSingleChoice, Required: true, Weight: 1.0, Order: 1,
					Options: yesNo(),
				},
				{
					Code: "IMP_02", Text: "How mature is your impact measurement practice?",
					Type: model.QuestionTypeMultiSlider, Required: true, Weight: 1.0, Order: 2,
					Dimensions: []model.Dimension{
						{Code: "data_collection", Label: "Data collection", Min: 0, Max: 10, PointsPerUnit: 10, Weight: 0.4},
						{Code: "reporting", Label: "External reporting", Min: 0, Max: 10, PointsPerUnit: 10, Weight: 0.3},
						{Code: "verification", Label: "Third-party verification", Min: 0, Max: 10, PointsPerUnit: 10, Weight: 0.3},
					},
				},
				{
					Code: "IMP_03", Text: "Which stakeholder groups are represented in your theory of change?",
					Type: model.QuestionTypeMultiChoice, Required: true, Weight: 0.7, Order: 3,
					Options: []model.Option{
						{Label: "Beneficiaries", Value: "beneficiaries", Points: 40},
						{Label: "Local community", Value: "community", Points: 25},
						{Label: "Employees", Value: "employees", Points: 20},
						{Label: "Environment", Value: "environment", Points: 15},
					},
				},
			},
		},
		{
			Code:   model.SectionReturn,
			Title:  "Financial Return",
			Weight: 0.20,
			Order:  3,
			Questions: []model.Question{
				{
					Code: "RET_01", Text: "Has your organization been revenue-generating for the past 12 months?",
					Type: model.QuestionTypeSingleChoice, Required: true, Weight: 1.0, Order: 1,
					Options: yesNo(),
				},
				{
					Code: "RET_02", Text: "What was your year-over-year revenue growth?",
					Type: model.QuestionTypeSingleChoice, Required: true, Weight: 1.0, Order: 2,
					Options: []model.Option{
						{Label: "Declining", Value: "declining", Points: 0},
						{Label: "Flat (0-5%)", Value: "flat", Points: 30},
						{Label: "Moderate (5-20%)", Value: "moderate", Points: 65},
						{Label: "High (>20%)", Value: "high", Points: 100},
					},
					Conditions: []model.Condition{
						{QuestionCode: "RET_01", Operator: model.OperatorEquals, ExpectedValue: "yes"},
					},
				},
				{
					Code: "RET_03", Text: "What share of your budget is covered by earned income?",
					Type: model.QuestionTypeSlider, Required: true, Weight: 0.8, Order: 3,
					Dimensions: []model.Dimension{
						{Code: "earned_share", Label: "Earned income share (%)", Min: 0, Max: 100, PointsPerUnit: 1},
					},
				},
			},
		},
		{
			Code:   model.SectionSectorMaturity,
			Title:  "Sector & Maturity",
			Weight: 0.15,
			Order:  4,
			Questions: []model.Question{
				{
					Code: "SEC_01", Text: "How established is your sector's investment market?",
					Type: model.QuestionTypeRating, Required: true, Weight: 1.0, Order: 1,
					Options: []model.Option{
						{Label: "Emerging", Value: "1", Points: 20},
						{Label: "Developing", Value: "2", Points: 40},
						{Label: "Established", Value: "3", Points: 70},
						{Label: "Mature", Value: "4", Points: 100},
					},
				},
				{
					Code: "SEC_02", Text: "How many years has your organization been operating?",
					Type: model.QuestionTypeSlider, Required: true, Weight: 0.8, Order: 2,
					Dimensions: []model.Dimension{
						{Code: "years", Label: "Years operating", Min: 0, Max: 20, PointsPerUnit: 5},
					},
				},
			},
		},
		{
			Code:   model.SectionFeedback,
			Title:  "Feedback",
			Weight: 0.05,
			Order:  5,
			Questions: []model.Question{
				{
					Code: "FB_01", Text: "How likely are you to recommend this assessment to a peer organization?",
					Type: model.QuestionTypeNPS, Required: false, Weight: 1.0, Order: 1,
					Options: npsOptions(),
				},
			},
		},
	}
}

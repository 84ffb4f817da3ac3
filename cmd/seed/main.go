package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"fieldops/internal/database"
	"fieldops/internal/domain"
	"fieldops/internal/repository"
)

// Seeds a local development database with one company's pricing
// catalog and a draft quote to edit against.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "fieldops.db"
	}

	logger := logrus.NewEntry(logrus.New())
	db, err := database.Connect(dsn, logger)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM quote_line_items")
	db.Exec("DELETE FROM quotes")
	db.Exec("DELETE FROM addon_service_plan_eligibility")
	db.Exec("DELETE FROM add_on_services")
	db.Exec("DELETE FROM service_plans")
	db.Exec("DELETE FROM company_pricing_settings")

	ctx := context.Background()
	const companyID = "company-demo"

	settingsRepo := repository.NewPricingSettingsRepository(db)
	if err := settingsRepo.Save(ctx, &domain.PricingSettings{
		CompanyID:          companyID,
		BaseHomeSqFt:       1500,
		HomeSqFtInterval:   500,
		MaxHomeSqFt:        5000,
		BaseYardAcres:      0.25,
		YardAcresInterval:  0.25,
		MaxYardAcres:       1.0,
		BaseLinearFeet:     150,
		LinearFeetInterval: 50,
		MaxLinearFeet:      500,
	}); err != nil {
		log.Fatal("seed pricing settings failed:", err)
	}

	planRepo := repository.NewServicePlanRepository(db)
	plans := []domain.ServicePlan{
		{
			ID:                 "plan-general",
			CompanyID:          companyID,
			PlanName:           "Quarterly General Pest",
			PlanCategory:       "general",
			PlanDescription:    "Quarterly perimeter treatment for common household pests",
			InitialPrice:       150,
			RecurringPrice:     45,
			BillingFrequency:   "quarterly",
			AllowCustomPricing: true,
			PestCoverage:       []string{"ants", "spiders", "roaches", "wasps"},
			HomeSizePricing: &domain.SizePricing{
				InitialCostPerInterval:   25,
				RecurringCostPerInterval: 10,
			},
		},
		{
			ID:                 "plan-mosquito",
			CompanyID:          companyID,
			PlanName:           "Seasonal Mosquito",
			PlanCategory:       "mosquito",
			PlanDescription:    "Monthly yard fogging during mosquito season",
			InitialPrice:       99,
			RecurringPrice:     65,
			BillingFrequency:   "monthly",
			AllowCustomPricing: true,
			PestCoverage:       []string{"mosquitoes"},
			YardSizePricing: &domain.SizePricing{
				InitialCostPerInterval:   15,
				RecurringCostPerInterval: 15,
			},
		},
		{
			ID:               "plan-termite",
			CompanyID:        companyID,
			PlanName:         "Termite Baiting",
			PlanCategory:     "termite",
			PlanDescription:  "Bait station installation and annual monitoring",
			InitialPrice:     800,
			RecurringPrice:   30,
			BillingFrequency: "annually",
			PestCoverage:     []string{"termites"},
			HomeSizePricing: &domain.SizePricing{
				Tiers: []domain.TierOption{
					{Value: "1500", Label: "Under 2500 sq ft", RangeStart: 1500},
					{Value: "2500", Label: "2500+ sq ft", IntervalIndex: 1, InitialIncrease: 200, RecurringIncrease: 10, RangeStart: 2500},
				},
			},
		},
	}
	for i := range plans {
		if err := planRepo.Save(ctx, &plans[i]); err != nil {
			log.Fatal("seed plan failed:", err)
		}
	}

	addonRepo := repository.NewAddonRepository(db)
	addons := []domain.AddonService{
		{
			ID:              "addon-rodent",
			CompanyID:       companyID,
			AddonName:       "Rodent Stations",
			AddonCategory:   "rodent",
			InitialPrice:    125,
			RecurringPrice:  35,
			IsActive:        true,
			EligibilityMode: domain.AddonEligibilityAll,
		},
		{
			ID:              "addon-flea",
			CompanyID:       companyID,
			AddonName:       "Flea and Tick Yard Treatment",
			AddonCategory:   "yard",
			InitialPrice:    89,
			RecurringPrice:  49,
			IsActive:        true,
			EligibilityMode: domain.AddonEligibilitySpecific,
			EligiblePlanIDs: []string{"plan-general", "plan-mosquito"},
		},
	}
	for i := range addons {
		if err := addonRepo.Save(ctx, &addons[i]); err != nil {
			log.Fatal("seed addon failed:", err)
		}
	}

	quoteRepo := repository.NewQuoteRepository(db)
	primary := "ants"
	home := "2500-3000"
	if err := quoteRepo.Create(ctx, &domain.Quote{
		ID:            "quote-demo",
		LeadID:        "lead-demo",
		CompanyID:     companyID,
		PrimaryPest:   &primary,
		HomeSizeRange: &home,
	}); err != nil {
		log.Fatal("seed quote failed:", err)
	}

	log.Println("Seed complete:")
	log.Printf("  company: %s", companyID)
	log.Printf("  plans:   %d", len(plans))
	log.Printf("  addons:  %d", len(addons))
	log.Println("  quote:   quote-demo (lead-demo)")
}

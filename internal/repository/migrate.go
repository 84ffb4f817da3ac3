package repository

import "gorm.io/gorm"

// AutoMigrate creates the quote-engine schema. The dev server and the
// seeder call it; production schema changes go through migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&quoteModel{},
		&lineItemModel{},
		&servicePlanModel{},
		&addonModel{},
		&addonEligibilityModel{},
		&pricingSettingsModel{},
	); err != nil {
		return err
	}
	// One quote per lead; the index decides the get-or-create race.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_quotes_lead_id ON quotes (lead_id)`,
	).Error; err != nil {
		return err
	}
	// One service-plan line per display slot. Add-on lines are exempt,
	// they are matched by addon_service_id instead.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_line_items_plan_slot
		 ON quote_line_items (quote_id, display_order)
		 WHERE kind = 'service_plan'`,
	).Error
}

// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/repairshop-backend/internal/domain/inventory"
)

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log logrus.FieldLogger) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		&stockRecord{},
		&catalogDatasetRecord{},
		&catalogEntryRecord{},
		&damageRecord{},
		&goodsReceiptRecord{},
	}

	for _, model := range models {
		m.log.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.log.Info("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for the common read paths
func (m *Migration) CreateIndexes() error {
	m.log.Info("🔄 Creating additional database indexes...")

	indexes := []string{
		// Stock indexes
		"CREATE INDEX IF NOT EXISTS idx_stock_items_category_label ON stock_items(category, label)",
		"CREATE INDEX IF NOT EXISTS idx_stock_items_category_key ON stock_items(category, key)",
		"CREATE INDEX IF NOT EXISTS idx_stock_items_attributes ON stock_items USING GIN (attributes)",

		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_catalog_entries_dataset_created ON catalog_entries(dataset_id, created_at)",

		// Ledger indexes
		"CREATE INDEX IF NOT EXISTS idx_damage_records_technician_date ON damage_records(technician_id, date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_damage_records_job_number ON damage_records(job_number)",
		"CREATE INDEX IF NOT EXISTS idx_goods_receipts_receipt_date ON goods_receipts(receipt_date DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.log.WithError(err).Warn("⚠️ Failed to create index")
			failCount++
		} else {
			successCount++
		}
	}

	m.log.Infof("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// defaultDatasets are the pick-lists every shop starts with
var defaultDatasets = []struct {
	category inventory.Category
	name     string
}{
	{inventory.CategorySpare, "Spare parts"},
	{inventory.CategoryAccessory, "Accessories"},
	{inventory.CategoryProduct, "Products"},
	{inventory.CategoryAsset, "Asset parts"},
}

// SeedInitialData creates one empty catalog dataset per category
func (m *Migration) SeedInitialData() error {
	m.log.Info("🌱 Seeding catalog datasets...")

	for _, def := range defaultDatasets {
		var count int64
		if err := m.db.Model(&catalogDatasetRecord{}).
			Where("category = ? AND name = ?", string(def.category), def.name).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check dataset %s: %w", def.name, err)
		}
		if count > 0 {
			m.log.Debugf("⏭️ Dataset already exists: %s", def.name)
			continue
		}

		ds := catalogDatasetRecord{
			ID:       uuid.New().String(),
			Category: string(def.category),
			Name:     def.name,
		}
		if err := m.db.Create(&ds).Error; err != nil {
			return fmt.Errorf("failed to seed dataset %s: %w", def.name, err)
		}
		m.log.Infof("✅ Created dataset: %s", def.name)
	}

	return nil
}

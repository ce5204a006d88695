package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/logimart/storefront/pkg/migration"
	"github.com/logimart/storefront/pkg/store"
)

func init() {
	migration.Register("20260101000000_create_store_entries_table", &CreateStoreEntriesTable{})
	migration.Register("20260101000001_add_store_entries_updated_at_index", &AddStoreEntriesUpdatedAtIndex{})
}

// -------- 0001: store_entries --------

type CreateStoreEntriesTable struct{}

func (m *CreateStoreEntriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&store.Entry{})
}

func (m *CreateStoreEntriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(store.EntriesTable)
}

// -------- 0002: updated_at index --------

const updatedAtIndex = "idx_store_entries_updated_at"

type indexedEntry struct {
	UpdatedAt time.Time `gorm:"index:idx_store_entries_updated_at"`
}

func (indexedEntry) TableName() string { return store.EntriesTable }

type AddStoreEntriesUpdatedAtIndex struct{}

func (m *AddStoreEntriesUpdatedAtIndex) Up(db *gorm.DB) error {
	if db.Migrator().HasIndex(&indexedEntry{}, updatedAtIndex) {
		return nil
	}
	return db.Migrator().CreateIndex(&indexedEntry{}, updatedAtIndex)
}

func (m *AddStoreEntriesUpdatedAtIndex) Down(db *gorm.DB) error {
	if !db.Migrator().HasIndex(&indexedEntry{}, updatedAtIndex) {
		return nil
	}
	return db.Migrator().DropIndex(&indexedEntry{}, updatedAtIndex)
}

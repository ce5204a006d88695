package migration

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/logimart/storefront/pkg/database"
)

type widget struct {
	ID   uint
	Name string
}

type createWidgets struct{}

func (createWidgets) Up(db *gorm.DB) error   { return db.AutoMigrate(&widget{}) }
func (createWidgets) Down(db *gorm.DB) error { return db.Migrator().DropTable(&widget{}) }

func withRegistry(t *testing.T, regs ...registeredMigration) {
	prev := registry
	registry = regs
	t.Cleanup(func() { registry = prev })
}

func TestRunRollbackCycle(t *testing.T) {
	withRegistry(t, registeredMigration{name: "20260101000000_create_widgets", m: createWidgets{}})

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	var out bytes.Buffer
	r := New(db, &out)

	require.NoError(t, r.Run())
	assert.True(t, db.Migrator().HasTable(&widget{}))
	assert.Contains(t, out.String(), "Migrated: 20260101000000_create_widgets")

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	out.Reset()
	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), "Nothing to migrate.")

	require.NoError(t, r.Rollback())
	assert.False(t, db.Migrator().HasTable(&widget{}))

	out.Reset()
	require.NoError(t, r.Status())
	assert.Contains(t, out.String(), "Pending")
}

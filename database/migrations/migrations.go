// Package migrations holds the schema for the sql store driver. Each
// migration registers itself from init(); the CLI imports this package so
// they are known before the runner starts.
package migrations

import (
	"io"

	"gorm.io/gorm"

	"github.com/logimart/storefront/pkg/migration"
)

// Setup runs every pending migration against db, discarding the runner's
// progress output. It satisfies store.SQLSetup.
func Setup(db *gorm.DB) error {
	return migration.New(db, io.Discard).Run()
}

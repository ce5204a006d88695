package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntriesTable is the table the sql driver reads and writes.
const EntriesTable = "store_entries"

// Entry is one row of store_entries.
type Entry struct {
	Key       string    `gorm:"column:key;primaryKey;size:191"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Entry) TableName() string { return EntriesTable }

// SQL is a gorm-backed driver. The schema comes from database/migrations.
type SQL struct {
	db      *gorm.DB
	closeFn func() error
}

// NewSQL uses db as is. closeFn, when set, runs on Close.
func NewSQL(db *gorm.DB, closeFn func() error) *SQL {
	return &SQL{db: db, closeFn: closeFn}
}

// DB exposes the handle for migrations.
func (s *SQL) DB() *gorm.DB { return s.db }

func (s *SQL) Name() string { return "sql" }

func keyIs(key string) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}

func (s *SQL) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var e Entry
	err := s.db.WithContext(ctx).Where(keyIs(key)).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(e.Value), true, nil
}

func (s *SQL) Write(ctx context.Context, key string, value []byte) error {
	e := Entry{Key: key, Value: string(value), UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where(keyIs(key)).Delete(&Entry{}).Error
}

func (s *SQL) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).Model(&Entry{}).Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Pluck("key", &keys).Error
	return keys, err
}

func (s *SQL) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

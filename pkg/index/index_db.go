package index

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SourceFile stores the indexed file contents.
type SourceFile struct {
	Path      string `gorm:"primaryKey"`
	Language  string
	Contents  string
	NodeCount int
	IndexedAt time.Time
}

// NodeRow is one serialized node. Seq is the pre-order number within the
// file, so ordering by Seq reproduces document order.
type NodeRow struct {
	Path       string `gorm:"primaryKey"`
	Seq        int    `gorm:"primaryKey"`
	ParentSeq  *int   `gorm:"index"`
	ChildIndex int
	Depth      int
	Kind       int    `gorm:"index"`
	KindName   string `gorm:"index"`
	Line       *uint32
	Column     *uint32
	Content    *string
}

func (NodeRow) TableName() string {
	return "nodes"
}

// getMigrations returns the list of migrations for the index database.
func getMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202610140001",
			Migrate: func(tx *gorm.DB) error {
				// Create initial schema.
				return tx.AutoMigrate(
					&SourceFile{},
					&NodeRow{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				// Drop all tables.
				return tx.Migrator().DropTable(
					&NodeRow{},
					&SourceFile{},
				)
			},
		},
	}
}

// Migrate performs database migrations using gormigrate.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, getMigrations())
	return m.Migrate()
}

// CheckMigration checks if the database schema is up to date.
func CheckMigration(db *gorm.DB) (bool, error) {
	// A missing migrations table means nothing has been applied yet. Use a
	// silent logger to avoid spurious warnings on fresh databases.
	var lastMigration string
	err := db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)}).
		Table(gormigrate.DefaultOptions.TableName).
		Select("id").
		Order("id DESC").
		Limit(1).
		Scan(&lastMigration).Error

	if err != nil {
		return false, nil
	}

	migrations := getMigrations()
	if len(migrations) == 0 {
		return true, nil
	}

	// The last migration in our list should match the last applied migration.
	expectedLastID := migrations[len(migrations)-1].ID
	return lastMigration == expectedLastID, nil
}

package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/mfg-tool-dashboard/internal/database"
	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB opens a migrated in-memory SQLite database.
// The pool is pinned to one connection so every query sees the same memory database.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateTools inserts tools with ids 1..n.
func CreateTools(t *testing.T, db *gorm.DB, names ...string) []models.Tool {
	t.Helper()

	tools := make([]models.Tool, len(names))
	for i, name := range names {
		tools[i] = models.Tool{
			ID:               uint64(i + 1),
			Name:             name,
			CurrentStatus:    "Operational",
			NextAction:       "PM check",
			ResponsibleParty: "Maintenance",
			ETA:              "TBD",
		}
	}
	if len(tools) > 0 {
		require.NoError(t, db.Create(&tools).Error)
	}
	return tools
}

// CreateUser inserts a user with a bcrypt hash of password at minimum cost.
func CreateUser(t *testing.T, db *gorm.DB, employeeID, password string, isAdmin bool, toolID *uint64) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		EmployeeID:     employeeID,
		Username:       employeeID,
		PasswordHash:   string(hash),
		IsAdmin:        isAdmin,
		AssignedToolID: toolID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

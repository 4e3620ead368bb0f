package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/waynemwendwa/TMS-sub000/internal/database"
	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database per test and migrates
// the full schema into it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *model.User {
	t.Helper()

	user := &model.User{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProject(t *testing.T, db *gorm.DB, code string) *model.Project {
	t.Helper()

	project := &model.Project{
		Name:   "Project " + code,
		Code:   code,
		Status: model.ProjectStatusActive,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func seedAssignment(t *testing.T, db *gorm.DB, user *model.User, project *model.Project) {
	t.Helper()

	assignment := &model.ProjectAssignment{UserID: user.ID, ProjectID: project.ID}
	require.NoError(t, db.Create(assignment).Error)
}

// Package gormtest builds throwaway SQLite-backed repositories for tests.
package gormtest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"mindful_server/internal/config"
	"mindful_server/internal/dao/gormdb"
	"mindful_server/internal/dao/gormdb/repository"
	"mindful_server/internal/model"

	"github.com/stretchr/testify/require"
)

// NewRepositories opens a private in-memory database named after the test and
// migrates it. The database is closed when the test ends.
func NewRepositories(t *testing.T) *repository.Repositories {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gormdb.Open(&config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, gormdb.Migrate(db))
	t.Cleanup(func() { _ = gormdb.Close(db) })
	return repository.NewRepositories(db)
}

// SeedUser inserts a user whose email is derived from name.
func SeedUser(t *testing.T, repos *repository.Repositories, name string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: strings.ToLower(name) + "@example.com"}
	require.NoError(t, repos.User.Create(context.Background(), user))
	return user
}

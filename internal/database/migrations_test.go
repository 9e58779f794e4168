package database

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations(t *testing.T) {
	m := NewMigrator(nil, nil)

	migrations, err := m.LoadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "create_http_sessions", migrations[0].Name)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS http_sessions")
}

func TestRunMigrations_AppliesPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS http_sessions").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations (version, name) VALUES ($1, $2)")).
		WithArgs(1, "create_http_sessions").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	var out bytes.Buffer
	require.NoError(t, NewMigrator(db, &out).RunMigrations())

	assert.Contains(t, out.String(), "Running migration 1: create_http_sessions")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_SkipsApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))

	require.NoError(t, NewMigrator(db, nil).RunMigrations())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMigrationStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}))

	var out bytes.Buffer
	require.NoError(t, NewMigrator(db, &out).GetMigrationStatus())
	assert.Contains(t, out.String(), "1: create_http_sessions [PENDING]")
}

func TestConfigDSN(t *testing.T) {
	assert.Equal(t, "postgres://u@h/db", Config{URL: "postgres://u@h/db"}.DSN())
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=food sslmode=disable",
		Config{Host: "localhost", Port: 5432, User: "postgres", Password: "pw", DBName: "food", SSLMode: "disable"}.DSN())
}

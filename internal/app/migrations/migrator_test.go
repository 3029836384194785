package migrations

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() fstest.MapFS {
	return fstest.MapFS{
		"m/002_second.sql": {Data: []byte("CREATE TABLE b (id INT);")},
		"m/001_first.sql":  {Data: []byte("CREATE TABLE a (id INT);")},
		"m/README.md":      {Data: []byte("not a migration")},
	}
}

func TestMigrate_AppliesPendingInOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM schema_migrations")).
		WithArgs("001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM schema_migrations")).
		WithArgs("002").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE b (id INT);")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations (version) VALUES ($1)")).
		WithArgs("002").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	m := NewMigrator(mock, zerolog.Nop()).WithSource(testSource(), "m")
	applied, err := m.Migrate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_RollsBackFailedFile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM schema_migrations")).
		WithArgs("001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE a (id INT);")).
		WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	m := NewMigrator(mock, zerolog.Nop()).WithSource(testSource(), "m")
	applied, err := m.Migrate(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_first.sql")
	assert.Equal(t, 0, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmbeddedSchemaIsPresent(t *testing.T) {
	data, err := embeddedMigrations.ReadFile("sql/001_init_schema.sql")
	require.NoError(t, err)

	schema := string(data)
	for _, constraint := range []string{"students_nim_key", "uq_grades_enrollment", "fk_grades_student", "ON DELETE CASCADE"} {
		assert.Contains(t, schema, constraint)
	}
}

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("001_init_schema.sql"))
	assert.Equal(t, "010", versionOf("sql/010_add_index.sql"))
}

package database

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to DB_URL, which must point at a database with
// sql/schema applied. Tests are skipped when it is unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		t.Skip("DB_URL not set, skipping database integration test")
	}
	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.PingContext(context.Background()))
	return db
}

func TestListSkillNames_Integration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `DELETE FROM skills`)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO skills (name, position) VALUES ('Rust', 2), ('Go', 1), ('Elixir', 2)`)
	require.NoError(t, err)

	names, err := New(db).WithTx(tx).ListSkillNames(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Elixir", "Rust"}, names)
}

func TestGetResume_Integration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	id := uuid.New()
	_, err = tx.ExecContext(ctx, `INSERT INTO resumes
		(id, original_filename, mime, size_bytes, storage_provider, object_key, storage_url, upload_status)
		VALUES ($1, 'cv.pdf', 'application/pdf', 1024, 'r2', 'resumes/cv.pdf', 'https://example.invalid/cv.pdf', 'uploaded')`, id)
	require.NoError(t, err)

	q := New(db).WithTx(tx)
	resume, err := q.GetResume(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "resumes/cv.pdf", resume.ObjectKey)
	assert.Equal(t, "application/pdf", resume.Mime)

	_, err = q.GetResume(ctx, uuid.New())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

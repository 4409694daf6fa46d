package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/pagemark-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/pagemark-cli/internal/core/domain"
	"github.com/custodia-labs/pagemark-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed review store.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.ReviewStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pagemark/data/reviews.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pagemark", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "reviews.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores or updates a review.
func (s *Store) Save(ctx context.Context, review domain.Review) error {
	if review.ID == "" {
		return domain.ErrInvalidInput
	}

	findingsJSON, err := json.Marshal(review.Findings)
	if err != nil {
		return fmt.Errorf("marshalling findings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, document_path, document_name, regulation_id, evaluator_name, findings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document_path = excluded.document_path,
			document_name = excluded.document_name,
			regulation_id = excluded.regulation_id,
			evaluator_name = excluded.evaluator_name,
			findings = excluded.findings,
			created_at = excluded.created_at
	`, review.ID, review.DocumentPath, review.DocumentName, review.RegulationID,
		review.EvaluatorName, string(findingsJSON), review.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving review: %w", err)
	}
	return nil
}

// Get retrieves a review by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_path, document_name, regulation_id, evaluator_name, findings, created_at
		FROM reviews WHERE id = ?
	`, id)

	return scanReview(row)
}

// List returns all reviews, newest first.
func (s *Store) List(ctx context.Context) ([]domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_path, document_name, regulation_id, evaluator_name, findings, created_at
		FROM reviews ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review //nolint:prealloc // size unknown from query
	for rows.Next() {
		var review domain.Review
		var findingsJSON string
		var createdAt sql.NullTime
		if err := rows.Scan(&review.ID, &review.DocumentPath, &review.DocumentName,
			&review.RegulationID, &review.EvaluatorName, &findingsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}

		if err := json.Unmarshal([]byte(findingsJSON), &review.Findings); err != nil {
			return nil, fmt.Errorf("unmarshaling findings: %w", err)
		}
		if createdAt.Valid {
			review.CreatedAt = createdAt.Time
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reviews: %w", err)
	}

	return reviews, nil
}

// Delete removes a review by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanReview scans a single review row.
func scanReview(row *sql.Row) (*domain.Review, error) {
	var review domain.Review
	var findingsJSON string
	var createdAt sql.NullTime

	if err := row.Scan(&review.ID, &review.DocumentPath, &review.DocumentName,
		&review.RegulationID, &review.EvaluatorName, &findingsJSON, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning review: %w", err)
	}

	if err := json.Unmarshal([]byte(findingsJSON), &review.Findings); err != nil {
		return nil, fmt.Errorf("unmarshaling findings: %w", err)
	}
	if createdAt.Valid {
		review.CreatedAt = createdAt.Time
	}

	return &review, nil
}

package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/wikiracer/internal/model"
)

// FileName is the name of the SQLite file created inside the database directory.
const FileName = "wikiracer.db"

// storedTimeFormat is a fixed-width timestamp layout so that lexical order
// in SQL matches chronological order.
const storedTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Store provides SQLite-based storage for corpus pages and race reports.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a Store in dbDir.
// With CreateIfNotExists unset, a missing database file is an error.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- Corpus pages keyed by page identifier
	CREATE TABLE IF NOT EXISTS pages (
		page_id TEXT PRIMARY KEY,
		title TEXT,
		content TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- One row per search run
	CREATE TABLE IF NOT EXISTS races (
		id TEXT PRIMARY KEY,
		strategy TEXT NOT NULL,
		source TEXT NOT NULL,
		goal TEXT NOT NULL,
		found INTEGER NOT NULL,
		fetch_count INTEGER NOT NULL,
		path_length INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_races_pair ON races(source, goal);
	CREATE INDEX IF NOT EXISTS idx_races_started ON races(started_at);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// PageRecord is a stored corpus page.
type PageRecord struct {
	ID          model.PageID
	Title       string
	Content     string
	ContentHash string
	ImportedAt  time.Time
}

// ContentHash returns the hex SHA3-256 digest used to detect changed pages.
func ContentHash(content string) string {
	sum := sha3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// PutPage inserts or updates a page.
// It reports whether the row changed; re-importing identical content is a no-op.
func (s *Store) PutPage(ctx context.Context, page *PageRecord) (bool, error) {
	if page.ID == "" {
		return false, ErrEmptyPageID
	}
	page.ContentHash = ContentHash(page.Content)

	query := `
	INSERT INTO pages (page_id, title, content, content_hash)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(page_id) DO UPDATE SET
		title = excluded.title,
		content = excluded.content,
		content_hash = excluded.content_hash,
		imported_at = CURRENT_TIMESTAMP
	WHERE pages.content_hash != excluded.content_hash
	`

	result, err := s.db.ExecContext(ctx, query,
		string(page.ID),
		page.Title,
		page.Content,
		page.ContentHash,
	)
	if err != nil {
		return false, fmt.Errorf("failed to put page %s: %w", page.ID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

// GetPage retrieves a page by identifier.
// It returns nil without error when the page is not stored.
func (s *Store) GetPage(ctx context.Context, id model.PageID) (*PageRecord, error) {
	query := `
	SELECT page_id, title, content, content_hash, imported_at
	FROM pages
	WHERE page_id = ?
	`

	var record PageRecord
	var pageID string
	var title sql.NullString
	var importedAt string

	err := s.db.QueryRowContext(ctx, query, string(id)).Scan(
		&pageID,
		&title,
		&record.Content,
		&record.ContentHash,
		&importedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page %s: %w", id, err)
	}

	record.ID = model.PageID(pageID)
	record.Title = title.String
	record.ImportedAt = parseTimestamp(importedAt)

	return &record, nil
}

// CountPages returns the number of stored pages.
func (s *Store) CountPages(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}

// SaveRace stores a race report.
func (s *Store) SaveRace(ctx context.Context, report *model.RaceReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize race report: %w", err)
	}

	query := `
	INSERT INTO races (id, strategy, source, goal, found, fetch_count, path_length, started_at, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	found := 0
	if report.Found {
		found = 1
	}

	_, err = s.db.ExecContext(ctx, query,
		report.ID,
		report.Strategy,
		string(report.Source),
		string(report.Goal),
		found,
		report.FetchCount(),
		report.Path.Edges(),
		report.StartedAt.UTC().Format(storedTimeFormat),
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save race report: %w", err)
	}

	return nil
}

// GetRace retrieves a race report by ID.
// It returns nil without error when no such race exists.
func (s *Store) GetRace(ctx context.Context, id string) (*model.RaceReport, error) {
	var reportJSON string
	err := s.db.QueryRowContext(ctx, "SELECT report_json FROM races WHERE id = ?", id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get race report: %w", err)
	}

	var report model.RaceReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse race report: %w", err)
	}

	return &report, nil
}

// RaceSummary contains summary information about a race.
// It is used for listing history without loading full reports.
type RaceSummary struct {
	ID         string       `json:"id"`
	Strategy   string       `json:"strategy"`
	Source     model.PageID `json:"source"`
	Goal       model.PageID `json:"goal"`
	Found      bool         `json:"found"`
	FetchCount int          `json:"fetch_count"`
	PathLength int          `json:"path_length"`
	StartedAt  time.Time    `json:"started_at"`
}

// RaceFilter narrows ListRaces. Zero values match everything.
type RaceFilter struct {
	Source   model.PageID
	Goal     model.PageID
	Strategy string

	// Limit caps the number of rows; zero means no limit.
	Limit int
}

// ListRaces returns race summaries, most recent first.
func (s *Store) ListRaces(ctx context.Context, filter RaceFilter) ([]RaceSummary, error) {
	query := `
	SELECT id, strategy, source, goal, found, fetch_count, path_length, started_at
	FROM races
	WHERE 1=1
	`
	args := make([]any, 0)

	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, string(filter.Source))
	}
	if filter.Goal != "" {
		query += " AND goal = ?"
		args = append(args, string(filter.Goal))
	}
	if filter.Strategy != "" {
		query += " AND strategy = ?"
		args = append(args, filter.Strategy)
	}

	query += " ORDER BY started_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list races: %w", err)
	}
	defer rows.Close()

	var results []RaceSummary
	for rows.Next() {
		var sum RaceSummary
		var source, goal, startedAt string
		var found int

		if err := rows.Scan(
			&sum.ID,
			&sum.Strategy,
			&source,
			&goal,
			&found,
			&sum.FetchCount,
			&sum.PathLength,
			&startedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan race: %w", err)
		}

		sum.Source = model.PageID(source)
		sum.Goal = model.PageID(goal)
		sum.Found = found != 0
		sum.StartedAt = parseTimestamp(startedAt)
		results = append(results, sum)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05", // SQLite CURRENT_TIMESTAMP
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses a stored timestamp, returning the zero time if no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

package store

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Offer is one row of the job_offers index.
type Offer struct {
	ID           int64
	Key          string
	URL          string
	Source       string
	Title        string
	Company      string
	Location     string
	Processed    bool
	Archived     bool
	DiscoveredAt time.Time
	ProcessedAt  sql.NullTime
}

// DB is the SQLite index over discovered offers. The files on disk remain
// the source of truth; the index exists for listing and deduplication.
type DB struct {
	conn *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS job_offers (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	key           TEXT NOT NULL UNIQUE,
	url           TEXT,
	source        TEXT,
	title         TEXT NOT NULL,
	company       TEXT NOT NULL,
	location      TEXT,
	processed     INTEGER NOT NULL DEFAULT 0,
	archived      INTEGER NOT NULL DEFAULT 0,
	discovered_at TIMESTAMP NOT NULL,
	processed_at  TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_job_offers_title_company ON job_offers(title, company);
CREATE TABLE IF NOT EXISTS generated_resumes (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	offer_key    TEXT NOT NULL REFERENCES job_offers(key),
	profile_name TEXT NOT NULL DEFAULT 'default',
	yaml_path    TEXT,
	pdf_path     TEXT,
	model        TEXT,
	selected     INTEGER NOT NULL DEFAULT 0,
	generated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generated_resumes_offer ON generated_resumes(offer_key);
CREATE TABLE IF NOT EXISTS applications (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	offer_key  TEXT NOT NULL UNIQUE REFERENCES job_offers(key),
	status     TEXT NOT NULL DEFAULT 'not_applied',
	applied_at TIMESTAMP,
	notes      TEXT,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// OpenDB opens (and if needed initializes) the offers index at dbPath.
func OpenDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &StoreError{
			Message: "failed to open offers database",
			Path:    dbPath,
			Cause:   err,
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, &StoreError{
			Message: "failed to initialize offers database",
			Path:    dbPath,
			Cause:   err,
		}
	}

	return &DB{conn: conn}, nil
}

// Close releases the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// InsertOffer records a newly discovered offer. Inserting the same key
// twice is a no-op returning the existing row id.
func (db *DB) InsertOffer(ctx context.Context, offer *Offer) (int64, error) {
	var existing int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM job_offers WHERE key = ?`, offer.Key).Scan(&existing)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return 0, &StoreError{Message: "failed to query offers index", Cause: err}
	}

	discoveredAt := offer.DiscoveredAt
	if discoveredAt.IsZero() {
		discoveredAt = time.Now().UTC()
	}

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO job_offers (key, url, source, title, company, location, processed, discovered_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		offer.Key, offer.URL, offer.Source, offer.Title, offer.Company, offer.Location, discoveredAt)
	if err != nil {
		return 0, &StoreError{Message: "failed to insert offer", Cause: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, &StoreError{Message: "failed to read insert id", Cause: err}
	}
	return id, nil
}

// MarkProcessed flags an offer as extracted and stamps the processing time.
func (db *DB) MarkProcessed(ctx context.Context, key string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE job_offers SET processed = 1, processed_at = ? WHERE key = ?`,
		time.Now().UTC(), key)
	if err != nil {
		return &StoreError{Message: "failed to mark offer processed", Cause: err}
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return &NotFoundError{Key: key}
	}
	return nil
}

const offerColumns = `id, key, url, source, title, company, location, processed, archived, discovered_at, processed_at`

func scanOffer(row interface{ Scan(...any) error }) (*Offer, error) {
	var o Offer
	var url, source, location sql.NullString
	err := row.Scan(&o.ID, &o.Key, &url, &source, &o.Title, &o.Company,
		&location, &o.Processed, &o.Archived, &o.DiscoveredAt, &o.ProcessedAt)
	if err != nil {
		return nil, err
	}
	o.URL = url.String
	o.Source = source.String
	o.Location = location.String
	return &o, nil
}

// ListOffers returns non-archived offers newest-first. With onlyProcessed
// set, rows that never completed extraction are skipped.
func (db *DB) ListOffers(ctx context.Context, onlyProcessed bool) ([]Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM job_offers WHERE archived = 0`
	if onlyProcessed {
		query += ` AND processed = 1`
	}
	query += ` ORDER BY discovered_at DESC`
	return db.queryOffers(ctx, query)
}

// SearchOffers matches non-archived offers whose title or company contains
// the query, case-insensitively.
func (db *DB) SearchOffers(ctx context.Context, query string) ([]Offer, error) {
	pattern := "%" + query + "%"
	return db.queryOffers(ctx,
		`SELECT `+offerColumns+` FROM job_offers
		 WHERE archived = 0 AND (title LIKE ? OR company LIKE ?)
		 ORDER BY discovered_at DESC`, pattern, pattern)
}

func (db *DB) queryOffers(ctx context.Context, query string, args ...any) ([]Offer, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StoreError{Message: "failed to list offers", Cause: err}
	}
	defer func() { _ = rows.Close() }()

	var offers []Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, &StoreError{Message: "failed to scan offer row", Cause: err}
		}
		offers = append(offers, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Message: "failed to iterate offers", Cause: err}
	}
	return offers, nil
}

// GetOffer loads one offer by key, archived or not.
func (db *DB) GetOffer(ctx context.Context, key string) (*Offer, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+offerColumns+` FROM job_offers WHERE key = ?`, key)
	o, err := scanOffer(row)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Key: key}
	}
	if err != nil {
		return nil, &StoreError{Message: "failed to query offer", Cause: err}
	}
	return o, nil
}

// ArchiveOffer soft-deletes an offer: it disappears from listings but keeps
// its row so dedup still recognizes the posting.
func (db *DB) ArchiveOffer(ctx context.Context, key string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE job_offers SET archived = 1 WHERE key = ?`, key)
	if err != nil {
		return &StoreError{Message: "failed to archive offer", Cause: err}
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return &NotFoundError{Key: key}
	}
	return nil
}

// FindByTitleCompany looks up an offer by its identity pair, archived rows
// included. Used to skip postings already discovered on a previous run.
func (db *DB) FindByTitleCompany(ctx context.Context, title, company string) (*Offer, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+offerColumns+` FROM job_offers WHERE title = ? AND company = ?`,
		title, company)
	o, err := scanOffer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &StoreError{Message: "failed to query offer", Cause: err}
	}
	return o, nil
}

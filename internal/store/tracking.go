package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ApplicationStatus is the stage an application has reached.
type ApplicationStatus string

const (
	StatusNotApplied         ApplicationStatus = "not_applied"
	StatusResumeGenerated    ApplicationStatus = "resume_generated"
	StatusApplied            ApplicationStatus = "applied"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusInterviewed        ApplicationStatus = "interviewed"
	StatusOfferReceived      ApplicationStatus = "offer_received"
	StatusAccepted           ApplicationStatus = "accepted"
	StatusRejected           ApplicationStatus = "rejected"
	StatusWithdrawn          ApplicationStatus = "withdrawn"
)

// ApplicationStatuses lists every valid status in funnel order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusNotApplied, StatusResumeGenerated, StatusApplied,
		StatusInterviewScheduled, StatusInterviewed, StatusOfferReceived,
		StatusAccepted, StatusRejected, StatusWithdrawn,
	}
}

// IsValid reports whether s is a known application status.
func (s ApplicationStatus) IsValid() bool {
	for _, known := range ApplicationStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Resume is one row of the generated_resumes table: a resume rendered for
// one offer, with the paths of its output files.
type Resume struct {
	ID          int64
	OfferKey    string
	ProfileName string
	YAMLPath    string
	PDFPath     string
	Model       string
	Selected    bool
	GeneratedAt time.Time
}

// Application tracks one offer's application through the funnel. Title and
// Company are joined in from the offer row for display.
type Application struct {
	ID        int64
	OfferKey  string
	Status    ApplicationStatus
	AppliedAt sql.NullTime
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string
	Company   string
}

// Stats summarizes the job search: offer counts, generated resumes, and the
// application funnel.
type Stats struct {
	TotalOffers     int
	ProcessedOffers int
	TotalResumes    int
	ByStatus        map[ApplicationStatus]int
}

// InsertResume records a generated resume for an offer.
func (db *DB) InsertResume(ctx context.Context, r *Resume) (int64, error) {
	if err := db.requireOffer(ctx, r.OfferKey); err != nil {
		return 0, err
	}

	profileName := r.ProfileName
	if profileName == "" {
		profileName = "default"
	}
	generatedAt := r.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO generated_resumes (offer_key, profile_name, yaml_path, pdf_path, model, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.OfferKey, profileName, r.YAMLPath, r.PDFPath, r.Model, generatedAt)
	if err != nil {
		return 0, &StoreError{Message: "failed to insert generated resume", Cause: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, &StoreError{Message: "failed to read insert id", Cause: err}
	}
	return id, nil
}

// ListResumes returns every resume generated for an offer, newest first.
func (db *DB) ListResumes(ctx context.Context, offerKey string) ([]Resume, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, offer_key, profile_name, yaml_path, pdf_path, model, selected, generated_at
		 FROM generated_resumes WHERE offer_key = ? ORDER BY generated_at DESC`, offerKey)
	if err != nil {
		return nil, &StoreError{Message: "failed to list generated resumes", Cause: err}
	}
	defer func() { _ = rows.Close() }()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		var yamlPath, pdfPath, model sql.NullString
		if err := rows.Scan(&r.ID, &r.OfferKey, &r.ProfileName, &yamlPath, &pdfPath,
			&model, &r.Selected, &r.GeneratedAt); err != nil {
			return nil, &StoreError{Message: "failed to scan resume row", Cause: err}
		}
		r.YAMLPath = yamlPath.String
		r.PDFPath = pdfPath.String
		r.Model = model.String
		resumes = append(resumes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Message: "failed to iterate resumes", Cause: err}
	}
	return resumes, nil
}

// SelectResume marks one generated resume as the version to apply with,
// clearing the flag on its siblings for the same offer.
func (db *DB) SelectResume(ctx context.Context, resumeID int64) error {
	var offerKey string
	err := db.conn.QueryRowContext(ctx,
		`SELECT offer_key FROM generated_resumes WHERE id = ?`, resumeID).Scan(&offerKey)
	if err == sql.ErrNoRows {
		return &NotFoundError{Key: fmt.Sprintf("resume %d", resumeID)}
	}
	if err != nil {
		return &StoreError{Message: "failed to query generated resume", Cause: err}
	}

	if _, err := db.conn.ExecContext(ctx,
		`UPDATE generated_resumes SET selected = (id = ?) WHERE offer_key = ?`,
		resumeID, offerKey); err != nil {
		return &StoreError{Message: "failed to select resume", Cause: err}
	}
	return nil
}

// SetApplicationStatus moves an offer's application to a new status,
// creating the application row on first use. The applied timestamp is
// stamped once, when the status first reaches "applied".
func (db *DB) SetApplicationStatus(ctx context.Context, offerKey string, status ApplicationStatus, notes string) error {
	if !status.IsValid() {
		return &StoreError{Message: fmt.Sprintf("unknown application status %q", status)}
	}
	if err := db.requireOffer(ctx, offerKey); err != nil {
		return err
	}

	now := time.Now().UTC()
	if _, err := db.conn.ExecContext(ctx,
		`INSERT INTO applications (offer_key, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(offer_key) DO NOTHING`,
		offerKey, StatusNotApplied, now, now); err != nil {
		return &StoreError{Message: "failed to create application", Cause: err}
	}

	query := `UPDATE applications SET status = ?, updated_at = ?`
	args := []any{status, now}
	if status == StatusApplied {
		query += `, applied_at = COALESCE(applied_at, ?)`
		args = append(args, now)
	}
	if notes != "" {
		query += `, notes = ?`
		args = append(args, notes)
	}
	query += ` WHERE offer_key = ?`
	args = append(args, offerKey)

	if _, err := db.conn.ExecContext(ctx, query, args...); err != nil {
		return &StoreError{Message: "failed to update application", Cause: err}
	}
	return nil
}

// ListApplications returns applications newest-updated first, optionally
// filtered to one status. Pass an empty status to list everything.
func (db *DB) ListApplications(ctx context.Context, status ApplicationStatus) ([]Application, error) {
	query := `SELECT a.id, a.offer_key, a.status, a.applied_at, a.notes, a.created_at, a.updated_at,
			 o.title, o.company
		  FROM applications a JOIN job_offers o ON o.key = a.offer_key`
	var args []any
	if status != "" {
		query += ` WHERE a.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY a.updated_at DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StoreError{Message: "failed to list applications", Cause: err}
	}
	defer func() { _ = rows.Close() }()

	var apps []Application
	for rows.Next() {
		var a Application
		var notes sql.NullString
		if err := rows.Scan(&a.ID, &a.OfferKey, &a.Status, &a.AppliedAt, &notes,
			&a.CreatedAt, &a.UpdatedAt, &a.Title, &a.Company); err != nil {
			return nil, &StoreError{Message: "failed to scan application row", Cause: err}
		}
		a.Notes = notes.String
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Message: "failed to iterate applications", Cause: err}
	}
	return apps, nil
}

// GetStats aggregates the search funnel across all tables.
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByStatus: make(map[ApplicationStatus]int)}

	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(processed), 0) FROM job_offers WHERE archived = 0`).
		Scan(&stats.TotalOffers, &stats.ProcessedOffers)
	if err != nil {
		return nil, &StoreError{Message: "failed to count offers", Cause: err}
	}

	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM generated_resumes`).Scan(&stats.TotalResumes); err != nil {
		return nil, &StoreError{Message: "failed to count resumes", Cause: err}
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM applications GROUP BY status`)
	if err != nil {
		return nil, &StoreError{Message: "failed to count applications", Cause: err}
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var status ApplicationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, &StoreError{Message: "failed to scan status count", Cause: err}
		}
		stats.ByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Message: "failed to iterate status counts", Cause: err}
	}
	return stats, nil
}

// requireOffer fails with NotFoundError when no offer has the given key.
func (db *DB) requireOffer(ctx context.Context, key string) error {
	var id int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM job_offers WHERE key = ?`, key).Scan(&id)
	if err == sql.ErrNoRows {
		return &NotFoundError{Key: key}
	}
	if err != nil {
		return &StoreError{Message: "failed to query offers index", Cause: err}
	}
	return nil
}

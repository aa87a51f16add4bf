package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Scan is one recorded match attempt: whether it succeeded, the face
// string it resolved to (if any) or its error, and the per-facelet retry
// budget it ran with. Its facelets and attempts are stored separately.
type Scan struct {
	ScanID      string
	CreatedAt   time.Time
	DeviceName  string
	DeviceID    string
	Succeeded   bool
	FaceString  string
	Error       string
	AttemptsCap int
}

// Facelet is one stored BGR sample and the color it was ultimately
// assigned, if the scan succeeded.
type Facelet struct {
	Index         int
	B, G, R       int
	AssignedColor string
}

// Attempt is one retry step the matcher took at a single facelet: a
// color it tried, and whether propagation accepted it.
type Attempt struct {
	FaceletIndex int
	TriedColor   string
	Accepted     bool
	Seq          int
}

// ScanRepository provides CRUD access to recorded scans.
type ScanRepository struct {
	db *DB
}

// NewScanRepository returns a repository backed by db.
func NewScanRepository(db *DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// Create records a completed scan, its facelets, and the attempt trail
// propagation took to reach its result, all in one transaction. It
// returns the generated scan ID.
func (r *ScanRepository) Create(s Scan, facelets []Facelet, attempts []Attempt) (string, error) {
	id := uuid.New().String()
	createdAt := time.Now().UTC()

	err := r.db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO scans (scan_id, created_at, device_name, device_id, succeeded, face_string, error, attempts_cap)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, createdAt.Format(time.RFC3339), nullableString(s.DeviceName), nullableString(s.DeviceID),
			boolToInt(s.Succeeded), nullableString(s.FaceString), nullableString(s.Error), s.AttemptsCap)
		if err != nil {
			return fmt.Errorf("storage: insert scan: %w", err)
		}

		for _, f := range facelets {
			_, err := tx.Exec(`
				INSERT INTO scan_facelets (scan_id, facelet_index, b, g, r, assigned_color)
				VALUES (?, ?, ?, ?, ?, ?)
			`, id, f.Index, f.B, f.G, f.R, nullableString(f.AssignedColor))
			if err != nil {
				return fmt.Errorf("storage: insert facelet %d: %w", f.Index, err)
			}
		}

		for _, a := range attempts {
			_, err := tx.Exec(`
				INSERT INTO scan_attempts (scan_id, facelet_index, tried_color, accepted, seq)
				VALUES (?, ?, ?, ?, ?)
			`, id, a.FaceletIndex, a.TriedColor, boolToInt(a.Accepted), a.Seq)
			if err != nil {
				return fmt.Errorf("storage: insert attempt: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// Get retrieves a scan by ID, or (nil, nil) if it does not exist.
func (r *ScanRepository) Get(scanID string) (*Scan, error) {
	var s Scan
	var createdAtStr string
	var succeeded int
	var deviceName, deviceID, faceString, errStr sql.NullString

	err := r.db.QueryRow(`
		SELECT scan_id, created_at, device_name, device_id, succeeded, face_string, error, attempts_cap
		FROM scans WHERE scan_id = ?
	`, scanID).Scan(&s.ScanID, &createdAtStr, &deviceName, &deviceID, &succeeded, &faceString, &errStr, &s.AttemptsCap)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get scan: %w", err)
	}

	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	s.DeviceName = deviceName.String
	s.DeviceID = deviceID.String
	s.FaceString = faceString.String
	s.Error = errStr.String
	s.Succeeded = succeeded != 0

	return &s, nil
}

// List retrieves the most recent scans, newest first.
func (r *ScanRepository) List(limit int) ([]Scan, error) {
	rows, err := r.db.Query(`
		SELECT scan_id, created_at, device_name, device_id, succeeded, face_string, error, attempts_cap
		FROM scans ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: list scans: %w", err)
	}
	defer rows.Close()

	var out []Scan
	for rows.Next() {
		var s Scan
		var createdAtStr string
		var succeeded int
		var deviceName, deviceID, faceString, errStr sql.NullString

		if err := rows.Scan(&s.ScanID, &createdAtStr, &deviceName, &deviceID, &succeeded, &faceString, &errStr, &s.AttemptsCap); err != nil {
			return nil, fmt.Errorf("storage: scan row: %w", err)
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		s.DeviceName = deviceName.String
		s.DeviceID = deviceID.String
		s.FaceString = faceString.String
		s.Error = errStr.String
		s.Succeeded = succeeded != 0
		out = append(out, s)
	}
	return out, nil
}

// Facelets retrieves the stored facelet samples for a scan, ordered by
// facelet index.
func (r *ScanRepository) Facelets(scanID string) ([]Facelet, error) {
	rows, err := r.db.Query(`
		SELECT facelet_index, b, g, r, assigned_color
		FROM scan_facelets WHERE scan_id = ? ORDER BY facelet_index
	`, scanID)
	if err != nil {
		return nil, fmt.Errorf("storage: list facelets: %w", err)
	}
	defer rows.Close()

	var out []Facelet
	for rows.Next() {
		var f Facelet
		var assigned sql.NullString
		if err := rows.Scan(&f.Index, &f.B, &f.G, &f.R, &assigned); err != nil {
			return nil, fmt.Errorf("storage: facelet row: %w", err)
		}
		f.AssignedColor = assigned.String
		out = append(out, f)
	}
	return out, nil
}

// Attempts retrieves the retry trail for a scan, in the order
// propagation took them.
func (r *ScanRepository) Attempts(scanID string) ([]Attempt, error) {
	rows, err := r.db.Query(`
		SELECT facelet_index, tried_color, accepted, seq
		FROM scan_attempts WHERE scan_id = ? ORDER BY seq
	`, scanID)
	if err != nil {
		return nil, fmt.Errorf("storage: list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		var accepted int
		if err := rows.Scan(&a.FaceletIndex, &a.TriedColor, &accepted, &a.Seq); err != nil {
			return nil, fmt.Errorf("storage: attempt row: %w", err)
		}
		a.Accepted = accepted != 0
		out = append(out, a)
	}
	return out, nil
}

// Delete removes a scan and its facelets/attempts (cascading).
func (r *ScanRepository) Delete(scanID string) error {
	_, err := r.db.Exec("DELETE FROM scans WHERE scan_id = ?", scanID)
	if err != nil {
		return fmt.Errorf("storage: delete scan: %w", err)
	}
	return nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

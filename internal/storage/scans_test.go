package storage

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestScanRepositoryCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewScanRepository(db)

	s := Scan{
		DeviceName:  "GoCube",
		DeviceID:    "aa:bb:cc",
		Succeeded:   true,
		FaceString:  "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB",
		AttemptsCap: 3,
	}
	facelets := []Facelet{
		{Index: 0, B: 230, G: 230, R: 230, AssignedColor: "U"},
		{Index: 9, B: 40, G: 40, R: 220, AssignedColor: "R"},
	}
	attempts := []Attempt{
		{FaceletIndex: 0, TriedColor: "U", Accepted: true, Seq: 0},
	}

	id, err := repo.Create(s, facelets, attempts)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("Create returned an empty scan ID")
	}

	got, err := repo.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for a scan that was just created")
	}
	if got.DeviceName != s.DeviceName || got.FaceString != s.FaceString || !got.Succeeded {
		t.Errorf("Get = %+v, want matching fields from %+v", got, s)
	}
	if got.AttemptsCap != 3 {
		t.Errorf("AttemptsCap = %d, want 3", got.AttemptsCap)
	}

	storedFacelets, err := repo.Facelets(id)
	if err != nil {
		t.Fatalf("Facelets: %v", err)
	}
	if len(storedFacelets) != 2 {
		t.Fatalf("Facelets returned %d rows, want 2", len(storedFacelets))
	}
	if storedFacelets[0].AssignedColor != "U" {
		t.Errorf("facelet 0 assigned color = %q, want U", storedFacelets[0].AssignedColor)
	}

	storedAttempts, err := repo.Attempts(id)
	if err != nil {
		t.Fatalf("Attempts: %v", err)
	}
	if len(storedAttempts) != 1 {
		t.Fatalf("Attempts returned %d rows, want 1", len(storedAttempts))
	}
}

func TestScanRepositoryGetMissingReturnsNil(t *testing.T) {
	db := openTestDB(t)
	repo := NewScanRepository(db)

	got, err := repo.Get("does-not-exist")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("Get for a missing scan = %+v, want nil", got)
	}
}

func TestScanRepositoryList(t *testing.T) {
	db := openTestDB(t)
	repo := NewScanRepository(db)

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := repo.Create(Scan{Succeeded: true, FaceString: "x"}, nil, nil)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, id)
	}

	scans, err := repo.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(scans) != 3 {
		t.Fatalf("List returned %d scans, want 3", len(scans))
	}
}

func TestScanRepositoryDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewScanRepository(db)

	id, err := repo.Create(Scan{Succeeded: false, Error: "scan failed"}, nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := repo.Get(id)
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("Get after delete = %+v, want nil", got)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	db1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	db1.Close()

	db2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open (re-running migrations): %v", err)
	}
	defer db2.Close()
}

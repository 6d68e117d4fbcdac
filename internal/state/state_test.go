package state

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}

	return db
}

// TestGetFileState_Empty tests lookup on an empty database.
func TestGetFileState_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s, err := getFileState(db, "/videos/missing.yuv")
	if err != nil {
		t.Fatalf("getFileState failed: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil state on empty db, got %+v", s)
	}
}

// TestSaveAndGetFileState tests saving and retrieving file state.
func TestSaveAndGetFileState(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	want := FileState{
		Path:        "/videos/foreman_352x288_30.yuv",
		Width:       352,
		Height:      288,
		PixelFormat: "yuv420p",
		FrameRate:   30,
		LastFrame:   42,
		Zoom:        2,
		OpenedAt:    1700000000,
	}
	if err := saveFileState(db, want); err != nil {
		t.Fatalf("saveFileState failed: %v", err)
	}

	got, err := getFileState(db, want.Path)
	if err != nil {
		t.Fatalf("getFileState failed: %v", err)
	}
	if got == nil {
		t.Fatal("getFileState returned nil")
	}
	if *got != want {
		t.Errorf("state = %+v, want %+v", *got, want)
	}
}

// TestSaveFileState_Upsert tests that saving twice updates in place.
func TestSaveFileState_Upsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := FileState{Path: "/v/a.yuv", LastFrame: 1, Zoom: 1, OpenedAt: 100}
	if err := saveFileState(db, s); err != nil {
		t.Fatal(err)
	}
	s.LastFrame = 99
	s.OpenedAt = 200
	if err := saveFileState(db, s); err != nil {
		t.Fatal(err)
	}

	got, err := getFileState(db, s.Path)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastFrame != 99 {
		t.Errorf("LastFrame = %d, want 99", got.LastFrame)
	}

	files, err := recentFiles(db, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("recent files = %d, want 1", len(files))
	}
}

// TestRecentFiles_Order tests newest-first ordering and the limit.
func TestRecentFiles_Order(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for i, path := range []string{"/v/a.yuv", "/v/b.yuv", "/v/c.yuv"} {
		s := FileState{Path: path, Zoom: 1, OpenedAt: int64(100 + i)}
		if err := saveFileState(db, s); err != nil {
			t.Fatal(err)
		}
	}

	files, err := recentFiles(db, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].Path != "/v/c.yuv" || files[1].Path != "/v/b.yuv" {
		t.Errorf("order = %s, %s; want c, b", files[0].Path, files[1].Path)
	}
}

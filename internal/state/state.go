// Package state persists per-file viewing state (geometry, format, last
// frame, zoom) and the recent-files list in a small SQLite database.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "reel"
	dbFileName   = "reel.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *FileState
}

func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		_ = saveFileState(m.db, *pending)
	}

	return m.db.Close()
}

// GetFileState returns the saved state for path, or nil when the file was
// never opened.
func (m *Manager) GetFileState(path string) (*FileState, error) {
	return getFileState(m.db, path)
}

// RecentFiles returns up to limit recently opened files, newest first.
func (m *Manager) RecentFiles(limit int) ([]FileState, error) {
	return recentFiles(m.db, limit)
}

// SaveFileState schedules a debounced write of the file's viewing state.
// Rapid updates (stepping through frames) collapse into one write.
func (m *Manager) SaveFileState(state FileState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	state.OpenedAt = time.Now().Unix()
	m.pending = &state

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveFileState(m.db, *pending)
		}
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

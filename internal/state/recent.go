package state

import "database/sql"

// FileState is the remembered viewing state for one file.
type FileState struct {
	Path        string
	Width       int
	Height      int
	PixelFormat string
	FrameRate   float64
	LastFrame   int
	Zoom        float64
	OpenedAt    int64
}

func saveFileState(db *sql.DB, s FileState) error {
	_, err := db.Exec(`
		INSERT INTO recent_files (path, width, height, pixel_format, frame_rate, last_frame, zoom, opened_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET
			width = excluded.width,
			height = excluded.height,
			pixel_format = excluded.pixel_format,
			frame_rate = excluded.frame_rate,
			last_frame = excluded.last_frame,
			zoom = excluded.zoom,
			opened_at = excluded.opened_at
	`, s.Path, s.Width, s.Height, s.PixelFormat, s.FrameRate, s.LastFrame, s.Zoom, s.OpenedAt)
	return err
}

func getFileState(db *sql.DB, path string) (*FileState, error) {
	row := db.QueryRow(`
		SELECT path, width, height, pixel_format, frame_rate, last_frame, zoom, opened_at
		FROM recent_files WHERE path = ?
	`, path)

	var s FileState
	err := row.Scan(&s.Path, &s.Width, &s.Height, &s.PixelFormat, &s.FrameRate, &s.LastFrame, &s.Zoom, &s.OpenedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func recentFiles(db *sql.DB, limit int) ([]FileState, error) {
	rows, err := db.Query(`
		SELECT path, width, height, pixel_format, frame_rate, last_frame, zoom, opened_at
		FROM recent_files ORDER BY opened_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []FileState
	for rows.Next() {
		var s FileState
		if err := rows.Scan(&s.Path, &s.Width, &s.Height, &s.PixelFormat, &s.FrameRate, &s.LastFrame, &s.Zoom, &s.OpenedAt); err != nil {
			return nil, err
		}
		files = append(files, s)
	}
	return files, rows.Err()
}

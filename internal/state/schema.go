package state

import (
	"database/sql"

	dbutil "github.com/llehouerou/reel/internal/db"
)

const currentSchemaVersion = 1

func initSchema(conn *sql.DB) error {
	return dbutil.WithTx(conn, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS recent_files (
				path TEXT PRIMARY KEY,
				width INTEGER NOT NULL DEFAULT 0,
				height INTEGER NOT NULL DEFAULT 0,
				pixel_format TEXT NOT NULL DEFAULT '',
				frame_rate REAL NOT NULL DEFAULT 0,
				last_frame INTEGER NOT NULL DEFAULT 0,
				zoom REAL NOT NULL DEFAULT 1,
				opened_at INTEGER NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_recent_files_opened_at ON recent_files(opened_at);
		`)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO schema_version (version) VALUES (?)
			ON CONFLICT (version) DO NOTHING
		`, currentSchemaVersion)
		return err
	})
}

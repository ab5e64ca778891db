package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // драйвер SQLite

	"focus-cam/internal/domain/entity"
	"focus-cam/internal/domain/port"
)

const captureSchema = `
CREATE TABLE IF NOT EXISTS captures (
	id          TEXT PRIMARY KEY,
	created_at  INTEGER NOT NULL,
	focus       REAL NOT NULL,
	brightness  REAL NOT NULL,
	bytes       INTEGER NOT NULL,
	status_code INTEGER NOT NULL,
	success     INTEGER NOT NULL,
	message     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_captures_created_at ON captures(created_at);
`

// SQLiteCaptureRepository история отправок в файле SQLite
type SQLiteCaptureRepository struct {
	db *sql.DB
}

// OpenSQLiteCaptureRepository открывает или создаёт базу по пути path.
func OpenSQLiteCaptureRepository(path string) (*SQLiteCaptureRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// У SQLite один писатель.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(captureSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &SQLiteCaptureRepository{db: db}, nil
}

// Close закрывает базу
func (r *SQLiteCaptureRepository) Close() error {
	return r.db.Close()
}

// Save сохраняет запись
func (r *SQLiteCaptureRepository) Save(ctx context.Context, rec *entity.CaptureRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO captures (id, created_at, focus, brightness, bytes, status_code, success, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.CreatedAt.UnixNano(),
		rec.Metrics.Focus,
		rec.Metrics.Brightness,
		rec.Bytes,
		rec.StatusCode,
		rec.Success,
		rec.Message,
	)
	if err != nil {
		return fmt.Errorf("save capture %s: %w", rec.ID, err)
	}
	return nil
}

// List возвращает последние записи, новые первыми
func (r *SQLiteCaptureRepository) List(ctx context.Context, limit int) ([]entity.CaptureRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at, focus, brightness, bytes, status_code, success, message
		 FROM captures ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list captures: %w", err)
	}
	defer rows.Close()

	var out []entity.CaptureRecord
	for rows.Next() {
		var (
			rec     entity.CaptureRecord
			created int64
		)
		if err := rows.Scan(&rec.ID, &created, &rec.Metrics.Focus, &rec.Metrics.Brightness,
			&rec.Bytes, &rec.StatusCode, &rec.Success, &rec.Message); err != nil {
			return nil, fmt.Errorf("scan capture: %w", err)
		}
		rec.CreatedAt = time.Unix(0, created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Проверка реализации интерфейса
var _ port.CaptureRepository = (*SQLiteCaptureRepository)(nil)

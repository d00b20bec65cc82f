package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"raman/internal/compare"
	"raman/internal/config"
	"raman/internal/detect"
	"raman/internal/services"
)

// Store persists analysis runs in SQLite. A lock file next to the database
// serializes writers across processes.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	dbPath := cfg.HistoryDBPath()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data directory: %w", err)
	}

	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire history lock: %w", err)
	}
	if !locked {
		return nil, errors.New("history database is locked by another raman process")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection and releases the lock file.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// SaveRun records one analysis run with its change records and returns the
// generated run ID. Record order within the run is preserved.
func (s *Store) SaveRun(ctx context.Context, params detect.Params, tolerance float64, spectrumCount int, tempMin, tempMax float64, changes *compare.ChangeSet) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, created_at, tolerance, prominence, height, width, distance,
            shoulders, spectrum_count, temp_min, temp_max
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, now, tolerance,
		params.Prominence, params.MinHeight, params.MinWidth, params.MinDistance,
		boolToInt(params.DetectShoulders),
		spectrumCount, tempMin, tempMax,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	seq := 0
	for _, category := range compare.Categories() {
		for _, record := range changes.ByCategory(category) {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO change_records (
                    run_id, seq, category, wavenumber, from_wavenumber,
                    to_wavenumber, shift, from_temp, to_temp, intensity,
                    prev_intensity, curr_intensity, change_percent,
                    is_shoulder, phase
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id, seq, string(record.Category),
				record.Wavenumber, record.FromWavenumber, record.ToWavenumber,
				record.Shift, record.FromTemp, record.ToTemp,
				record.Intensity, record.PrevIntensity, record.CurrIntensity,
				record.ChangePercent, boolToInt(record.Shoulder), record.Phase,
			)
			if err != nil {
				return "", fmt.Errorf("insert change record: %w", err)
			}
			seq++
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return id, nil
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.created_at, r.tolerance, r.prominence, r.height,
                r.width, r.distance, r.shoulders, r.spectrum_count,
                r.temp_min, r.temp_max,
                (SELECT COUNT(1) FROM change_records c WHERE c.run_id = r.id)
         FROM runs r
         ORDER BY r.rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns one run summary and its change records in emission order.
func (s *Store) GetRun(ctx context.Context, id string) (Run, []compare.ChangeRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT r.id, r.created_at, r.tolerance, r.prominence, r.height,
                r.width, r.distance, r.shoulders, r.spectrum_count,
                r.temp_min, r.temp_max,
                (SELECT COUNT(1) FROM change_records c WHERE c.run_id = r.id)
         FROM runs r WHERE r.id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, services.Wrap(services.ErrNotFound, "history", "get-run", id, nil)
	}
	if err != nil {
		return Run{}, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, wavenumber, from_wavenumber, to_wavenumber, shift,
                from_temp, to_temp, intensity, prev_intensity, curr_intensity,
                change_percent, is_shoulder, phase
         FROM change_records WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("query change records: %w", err)
	}
	defer rows.Close()

	var records []compare.ChangeRecord
	for rows.Next() {
		var record compare.ChangeRecord
		var category string
		var shoulder int
		if err := rows.Scan(
			&category, &record.Wavenumber, &record.FromWavenumber,
			&record.ToWavenumber, &record.Shift, &record.FromTemp,
			&record.ToTemp, &record.Intensity, &record.PrevIntensity,
			&record.CurrIntensity, &record.ChangePercent, &shoulder,
			&record.Phase,
		); err != nil {
			return Run{}, nil, fmt.Errorf("scan change record: %w", err)
		}
		record.Category = compare.Category(category)
		record.Shoulder = shoulder != 0
		records = append(records, record)
	}
	return run, records, rows.Err()
}

// Clear removes all persisted runs.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs"); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var createdAt string
	var shoulders int
	err := row.Scan(
		&run.ID, &createdAt, &run.Tolerance,
		&run.Params.Prominence, &run.Params.MinHeight,
		&run.Params.MinWidth, &run.Params.MinDistance, &shoulders,
		&run.SpectrumCount, &run.TempMin, &run.TempMax, &run.RecordCount,
	)
	if err != nil {
		return Run{}, err
	}
	run.Params.DetectShoulders = shoulders != 0
	if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		run.CreatedAt = ts
	}
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

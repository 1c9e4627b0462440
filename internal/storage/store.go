// Package storage persists simulation runs: metadata in a SQLite index,
// trajectories as one CSV file per run.
package storage

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/san-kum/predprey/internal/predprey"
)

const (
	indexFile      = "runs.db"
	trajectoryFile = "trajectory.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	db      *sql.DB
	logger  *log.Logger
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Integrator string             `json:"integrator"`
	Timestamp  time.Time          `json:"timestamp"`
	Params     predprey.Params    `json:"params"`
	Samples    int                `json:"samples"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Open creates baseDir if needed, opens the run index and migrates it. A nil
// logger falls back to log.Default().
func Open(baseDir string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", baseDir, err)
	}

	dbPath := filepath.Join(baseDir, indexFile)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if logger == nil {
		logger = log.Default()
	}
	s := &Store{baseDir: baseDir, db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	logger.Debug("run store ready", "path", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			integrator TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			params TEXT NOT NULL,
			samples INTEGER NOT NULL,
			metrics TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save writes the trajectory then indexes the run. meta.ID and
// meta.Timestamp are assigned here.
func (s *Store) Save(meta RunMetadata, traj predprey.Trajectory) (string, error) {
	meta.ID = uuid.NewString()
	meta.Timestamp = time.Now().UTC()
	meta.Samples = traj.Len()
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	params, err := json.Marshal(meta.Params)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode params: %w", err)
	}
	metrics, err := json.Marshal(toFloatMap(meta.Metrics))
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode metrics: %w", err)
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create run directory: %w", err)
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), traj); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("storage: cannot write trajectory: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (id, model, integrator, created_at, params, samples, metrics)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Model, meta.Integrator, meta.Timestamp.UnixNano(), string(params), meta.Samples, string(metrics),
	)
	if err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("storage: cannot index run: %w", err)
	}

	s.logger.Debug("run saved", "id", meta.ID, "samples", meta.Samples)
	return meta.ID, nil
}

// List returns all runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	rows, err := s.db.Query(
		`SELECT id, model, integrator, created_at, params, samples, metrics
		 FROM runs ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	row := s.db.QueryRow(
		`SELECT id, model, integrator, created_at, params, samples, metrics
		 FROM runs WHERE id = ?`, runID,
	)
	meta, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (predprey.Trajectory, error) {
	if _, err := s.Load(runID); err != nil {
		return predprey.Trajectory{}, err
	}
	traj, err := readTrajectory(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return predprey.Trajectory{}, fmt.Errorf("storage: cannot read trajectory: %w", err)
	}
	return traj, nil
}

// Delete removes a run from the index and disk.
func (s *Store) Delete(runID string) error {
	res, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunMetadata, error) {
	var (
		meta            RunMetadata
		created         int64
		params, metrics string
	)
	if err := row.Scan(&meta.ID, &meta.Model, &meta.Integrator, &created, &params, &meta.Samples, &metrics); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return meta, err
		}
		return meta, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	meta.Timestamp = time.Unix(0, created).UTC()
	if err := json.Unmarshal([]byte(params), &meta.Params); err != nil {
		return meta, fmt.Errorf("storage: corrupt params for %s: %w", meta.ID, err)
	}
	var values map[string]Float
	if err := json.Unmarshal([]byte(metrics), &values); err != nil {
		return meta, fmt.Errorf("storage: corrupt metrics for %s: %w", meta.ID, err)
	}
	meta.Metrics = fromFloatMap(values)
	return meta, nil
}

// trajectoryColumns is the column order of trajectory files.
var trajectoryColumns = []string{predprey.OutcomeTime, predprey.OutcomePrey, predprey.OutcomePredators}

// WriteCSV emits TIME,prey,predators rows with full float precision.
func WriteCSV(w *csv.Writer, traj predprey.Trajectory) error {
	return WriteOutcomes(w, traj.Outcomes(), trajectoryColumns)
}

// WriteOutcomes emits the named outcomes as CSV columns in the given order.
// Non-finite values are written as NaN, +Inf or -Inf.
func WriteOutcomes(w *csv.Writer, outcomes predprey.Outcomes, names []string) error {
	if len(names) == 0 {
		names = trajectoryColumns
	}
	selected, err := outcomes.Select(names)
	if err != nil {
		return err
	}
	if err := w.Write(names); err != nil {
		return err
	}
	row := make([]string, len(names))
	for i := 0; i < outcomes.Len(); i++ {
		for j, name := range names {
			row[j] = strconv.FormatFloat(selected[name][i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeTrajectory(path string, traj predprey.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCSV(csv.NewWriter(file), traj); err != nil {
		return err
	}
	return file.Close()
}

func readTrajectory(path string) (predprey.Trajectory, error) {
	file, err := os.Open(path)
	if err != nil {
		return predprey.Trajectory{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return predprey.Trajectory{}, err
	}
	if len(records) < 1 {
		return predprey.Trajectory{}, fmt.Errorf("missing header")
	}

	n := len(records) - 1
	traj := predprey.Trajectory{
		Time:      make([]float64, n),
		Prey:      make([]float64, n),
		Predators: make([]float64, n),
	}
	cols := [3][]float64{traj.Time, traj.Prey, traj.Predators}
	for i, record := range records[1:] {
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return predprey.Trajectory{}, fmt.Errorf("row %d: %w", i+2, err)
			}
			cols[j][i] = v
		}
	}
	return traj, nil
}

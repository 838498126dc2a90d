/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

INTERFACES IMPLEMENTED:

	capacity.AllocationStore: allocation records
	capacity.SnapshotStore:   weekly capacity snapshots (append-only)

KEY TABLES:

	allocations:        mutable planned-assignment records
	capacity_snapshots: immutable weekly captures; the per-person rows are
	                    stored as a JSON payload, since they are only ever
	                    read back whole

INDEXES:

	idx_allocations_project_dates: overlap queries (hot path)
	idx_snapshots_project_week:    newest-first listing per project

DATES:

	Calendar dates are stored as YYYY-MM-DD strings; lexicographic order
	matches chronological order, so range predicates work directly in SQL.

CONCURRENCY:

	sync.RWMutex for thread-safety, and WAL mode so readers don't block.
	Snapshot uniqueness per (project, week) is deliberately NOT enforced;
	callers wanting at-most-one-per-week check before inserting.

MIGRATION:

	Schema is auto-migrated on New(). For production, use a proper
	migration tool with versioned migrations.
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/capacity-engine/capacity"
)

// Store implements the capacity storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS allocations (
		id TEXT PRIMARY KEY,
		project_key TEXT NOT NULL,
		account_id TEXT NOT NULL,
		display_name TEXT NOT NULL,
		avatar_url TEXT,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		allocation_percent INTEGER NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_allocations_project
		ON allocations(project_key);

	-- Overlap queries filter on project + both date bounds (hot path)
	CREATE INDEX IF NOT EXISTS idx_allocations_project_dates
		ON allocations(project_key, start_date, end_date);

	CREATE INDEX IF NOT EXISTS idx_allocations_account
		ON allocations(account_id);

	-- Snapshots are append-only; no UPDATE or DELETE statements exist for
	-- this table. No uniqueness on (project_key, week_start): duplicates
	-- are the caller's concern.
	CREATE TABLE IF NOT EXISTS capacity_snapshots (
		id TEXT PRIMARY KEY,
		project_key TEXT NOT NULL,
		week_start TEXT NOT NULL,
		team_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_project_week
		ON capacity_snapshots(project_key, week_start DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ALLOCATION STORE (capacity.AllocationStore interface)
// =============================================================================

const allocationColumns = `id, project_key, account_id, display_name, avatar_url,
	start_date, end_date, allocation_percent, notes, created_at, updated_at`

// Insert adds a new allocation record.
func (s *Store) Insert(ctx context.Context, a capacity.Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO allocations
		(id, project_key, account_id, display_name, avatar_url,
		 start_date, end_date, allocation_percent, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		a.ID,
		a.ProjectKey,
		a.AccountID,
		a.DisplayName,
		nullString(a.AvatarURL),
		a.StartDate.String(),
		a.EndDate.String(),
		a.Percent,
		nullString(a.Notes),
		a.CreatedAt.UTC().Format(time.RFC3339),
		a.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert allocation: %w", err)
	}
	return nil
}

// Update replaces an existing allocation record.
func (s *Store) Update(ctx context.Context, a capacity.Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE allocations SET
			display_name = ?,
			avatar_url = ?,
			start_date = ?,
			end_date = ?,
			allocation_percent = ?,
			notes = ?,
			updated_at = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		a.DisplayName,
		nullString(a.AvatarURL),
		a.StartDate.String(),
		a.EndDate.String(),
		a.Percent,
		nullString(a.Notes),
		a.UpdatedAt.UTC().Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update allocation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return capacity.ErrAllocationNotFound
	}
	return nil
}

// Delete removes an allocation record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM allocations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete allocation: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return capacity.ErrAllocationNotFound
	}
	return nil
}

// FindByID returns an allocation, or (nil, nil) when absent.
func (s *Store) FindByID(ctx context.Context, id string) (*capacity.Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + allocationColumns + " FROM allocations WHERE id = ?"
	allocs, err := s.queryAllocations(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if len(allocs) == 0 {
		return nil, nil
	}
	return &allocs[0], nil
}

// FindOverlapping returns the project's allocations overlapping [start, end],
// ordered by start date then display name.
func (s *Store) FindOverlapping(ctx context.Context, project capacity.ProjectKey, start, end capacity.Date) ([]capacity.Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + allocationColumns + ` FROM allocations
		WHERE project_key = ? AND start_date <= ? AND end_date >= ?
		ORDER BY start_date ASC, display_name ASC`

	return s.queryAllocations(ctx, query, project, end.String(), start.String())
}

// FindByProject returns all allocations for a project.
func (s *Store) FindByProject(ctx context.Context, project capacity.ProjectKey) ([]capacity.Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + allocationColumns + ` FROM allocations
		WHERE project_key = ?
		ORDER BY start_date ASC, display_name ASC`

	return s.queryAllocations(ctx, query, project)
}

func (s *Store) queryAllocations(ctx context.Context, query string, args ...any) ([]capacity.Allocation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []capacity.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}

	return allocations, rows.Err()
}

func scanAllocation(rows *sql.Rows) (capacity.Allocation, error) {
	var (
		a                  capacity.Allocation
		avatarURL, notes   sql.NullString
		startDate, endDate string
		createdAt          string
		updatedAt          string
	)

	err := rows.Scan(
		&a.ID, &a.ProjectKey, &a.AccountID, &a.DisplayName, &avatarURL,
		&startDate, &endDate, &a.Percent, &notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return a, fmt.Errorf("failed to scan allocation: %w", err)
	}

	a.AvatarURL = avatarURL.String
	a.Notes = notes.String
	if a.StartDate, err = capacity.ParseDate(startDate); err != nil {
		return a, fmt.Errorf("bad start_date %q: %w", startDate, err)
	}
	if a.EndDate, err = capacity.ParseDate(endDate); err != nil {
		return a, fmt.Errorf("bad end_date %q: %w", endDate, err)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	a.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return a, nil
}

// =============================================================================
// SNAPSHOT STORE (capacity.SnapshotStore interface)
// =============================================================================

// Save persists a snapshot. The per-person rows go into a JSON column:
// they are only ever read back whole, so a child table buys nothing.
func (s *Store) Save(ctx context.Context, snap capacity.CapacitySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teamJSON, err := json.Marshal(snap.TeamCapacity)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot rows: %w", err)
	}

	query := `
		INSERT INTO capacity_snapshots (id, project_key, week_start, team_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		snap.ID,
		snap.ProjectKey,
		snap.WeekStart.String(),
		string(teamJSON),
		snap.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// ListRecent returns up to limit snapshots for a project, newest week first.
func (s *Store) ListRecent(ctx context.Context, project capacity.ProjectKey, limit int) ([]capacity.CapacitySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, project_key, week_start, team_json, created_at
		FROM capacity_snapshots
		WHERE project_key = ?
		ORDER BY week_start DESC, created_at DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, project, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []capacity.CapacitySnapshot
	for rows.Next() {
		var (
			snap      capacity.CapacitySnapshot
			weekStart string
			teamJSON  string
			createdAt string
		)
		if err := rows.Scan(&snap.ID, &snap.ProjectKey, &weekStart, &teamJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		if snap.WeekStart, err = capacity.ParseDate(weekStart); err != nil {
			return nil, fmt.Errorf("bad week_start %q: %w", weekStart, err)
		}
		if err := json.Unmarshal([]byte(teamJSON), &snap.TeamCapacity); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot rows: %w", err)
		}
		snap.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"allocations", "capacity_snapshots"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

/*
store.go - Persistence interfaces for allocations and snapshots

PURPOSE:

	Defines the boundary between the engine and the database. Implementations
	live in capacity/store (in-memory) and store/sqlite (production).

CONTRACTS:
  - FindByID returns (nil, nil) when the id does not exist; Update and
    Delete return ErrAllocationNotFound instead.
  - FindOverlapping and FindByProject order results by start date
    ascending, then display name ascending.
  - Snapshots are append-only: Save is the only write, ListRecent returns
    newest week first. Uniqueness per (project, week) is NOT enforced;
    callers that need it check before inserting.
*/
package capacity

import "context"

// AllocationStore persists allocation records.
type AllocationStore interface {
	// Insert adds a new allocation.
	Insert(ctx context.Context, a Allocation) error

	// Update replaces an existing allocation. Returns ErrAllocationNotFound
	// if the id does not exist.
	Update(ctx context.Context, a Allocation) error

	// Delete removes an allocation. Returns ErrAllocationNotFound if the id
	// does not exist.
	Delete(ctx context.Context, id string) error

	// FindByID returns the allocation, or (nil, nil) when absent.
	FindByID(ctx context.Context, id string) (*Allocation, error)

	// FindOverlapping returns the project's allocations whose [start, end]
	// interval overlaps [start, end] - not merely those contained in it.
	FindOverlapping(ctx context.Context, project ProjectKey, start, end Date) ([]Allocation, error)

	// FindByProject returns all allocations for a project.
	FindByProject(ctx context.Context, project ProjectKey) ([]Allocation, error)
}

// SnapshotStore persists weekly capacity snapshots.
type SnapshotStore interface {
	// Save persists a snapshot atomically: the full row set or nothing.
	Save(ctx context.Context, s CapacitySnapshot) error

	// ListRecent returns up to limit snapshots for a project, newest
	// week first.
	ListRecent(ctx context.Context, project ProjectKey, limit int) ([]CapacitySnapshot, error)
}

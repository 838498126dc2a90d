/*
builder.go - Weekly capacity snapshot construction

PURPOSE:

	Assembles one CapacitySnapshot for a project and a week: reads the
	allocations overlapping the week, resolves each person's overlapping
	periods into a weighted percentage and available hours, joins in the
	externally supplied actual hours, classifies, and persists the result.

GUARANTEES:
  - No partial writes: the store's Save is atomic for the full row set.
  - One row per person, even when the person has several overlapping
    allocation periods inside the week - the resolver weights them.
  - Numeric fields rounded to one decimal place.
  - No deduplication against existing snapshots for the same week; a
    caller wanting idempotence lists first.

WHERE ACTUAL HOURS COME FROM:

	The builder does not fetch worklogs. Callers hand it a per-person hours
	map for the week, however it was sourced.
*/
package capacity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultSnapshotLimit is how many snapshots ListRecent returns when the
// caller does not say.
const DefaultSnapshotLimit = 12

// SnapshotBuilder produces and lists weekly capacity snapshots.
type SnapshotBuilder struct {
	allocations AllocationStore
	snapshots   SnapshotStore
}

func NewSnapshotBuilder(allocations AllocationStore, snapshots SnapshotStore) *SnapshotBuilder {
	return &SnapshotBuilder{allocations: allocations, snapshots: snapshots}
}

// Build creates and persists a snapshot for the week containing day. Any
// day of the week may be passed; it is normalized to that week's Monday.
// actualHours maps each person to their logged hours for the week; absent
// people default to zero.
func (b *SnapshotBuilder) Build(ctx context.Context, project ProjectKey, day Date, actualHours map[AccountID]float64) (*CapacitySnapshot, error) {
	if project == "" {
		return nil, &ValidationError{Field: "projectKey", Message: "must not be empty"}
	}

	weekStart := WeekStart(day)
	weekEnd := weekStart.AddDays(6)

	allocs, err := b.allocations.FindOverlapping(ctx, project, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	// Group per person, keeping the store's ordering for row order.
	var order []AccountID
	byAccount := make(map[AccountID][]Allocation)
	names := make(map[AccountID]Allocation)
	for _, a := range allocs {
		if _, seen := byAccount[a.AccountID]; !seen {
			order = append(order, a.AccountID)
			names[a.AccountID] = a
		}
		byAccount[a.AccountID] = append(byAccount[a.AccountID], a)
	}

	rows := make([]MemberCapacity, 0, len(order))
	for _, account := range order {
		res := ResolveOverlap(byAccount[account], weekStart, weekEnd)

		actual := decimal.NewFromFloat(actualHours[account])
		utilization := decimal.Zero
		if res.TotalAvailableHours.IsPositive() {
			utilization = actual.Div(res.TotalAvailableHours).Mul(oneHundred)
		}

		rows = append(rows, MemberCapacity{
			AccountID:          account,
			DisplayName:        names[account].DisplayName,
			AvatarURL:          names[account].AvatarURL,
			PlannedAllocation:  res.WeightedAllocationPercent.InexactFloat64(),
			ActualHours:        actual.Round(1).InexactFloat64(),
			AvailableHours:     res.TotalAvailableHours.InexactFloat64(),
			UtilizationPercent: utilization.Round(1).InexactFloat64(),
			Status:             Classify(utilization, res.WeightedAllocationPercent),
		})
	}

	snap := CapacitySnapshot{
		ID:           uuid.NewString(),
		ProjectKey:   project,
		WeekStart:    weekStart,
		TeamCapacity: rows,
		CreatedAt:    time.Now().UTC(),
	}

	if err := b.snapshots.Save(ctx, snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ListRecent returns a project's snapshots, newest week first. A limit at
// or below zero means DefaultSnapshotLimit.
func (b *SnapshotBuilder) ListRecent(ctx context.Context, project ProjectKey, limit int) ([]CapacitySnapshot, error) {
	if limit <= 0 {
		limit = DefaultSnapshotLimit
	}
	return b.snapshots.ListRecent(ctx, project, limit)
}

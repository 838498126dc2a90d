package capacity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/capacity-engine/capacity"
	"github.com/warp/capacity-engine/capacity/store"
)

func newTestBuilder(t *testing.T) (*capacity.SnapshotBuilder, *store.MemoryAllocations, *store.MemorySnapshots) {
	t.Helper()
	allocs := store.NewMemoryAllocations()
	snaps := store.NewMemorySnapshots()
	return capacity.NewSnapshotBuilder(allocs, snaps), allocs, snaps
}

func seedAllocation(t *testing.T, allocs *store.MemoryAllocations, a capacity.Allocation) {
	t.Helper()
	require.NoError(t, allocs.Insert(context.Background(), a))
}

func TestBuild_FullyAllocatedWeek(t *testing.T) {
	// One allocation at 100% covering a 5-work-day week, 40 actual hours:
	// available 40.0, utilization 100.0, overloaded (rule order).
	ctx := context.Background()
	builder, allocs, _ := newTestBuilder(t)

	seedAllocation(t, allocs, alloc("alice", monday().AddDays(-30), monday().AddDays(30), 100))

	snap, err := builder.Build(ctx, "CAP", monday(), map[capacity.AccountID]float64{"alice": 40})
	require.NoError(t, err)

	require.Len(t, snap.TeamCapacity, 1)
	row := snap.TeamCapacity[0]
	assert.Equal(t, capacity.AccountID("alice"), row.AccountID)
	assert.Equal(t, 100.0, row.PlannedAllocation)
	assert.Equal(t, 40.0, row.ActualHours)
	assert.Equal(t, 40.0, row.AvailableHours)
	assert.Equal(t, 100.0, row.UtilizationPercent)
	assert.Equal(t, capacity.StatusOverloaded, row.Status)
	assert.True(t, snap.WeekStart.Equal(monday()))
}

func TestBuild_NormalizesToWeekMonday(t *testing.T) {
	ctx := context.Background()
	builder, allocs, _ := newTestBuilder(t)
	seedAllocation(t, allocs, alloc("alice", monday(), monday().AddDays(6), 100))

	// Thursday of the same week resolves to the same snapshot week.
	snap, err := builder.Build(ctx, "CAP", monday().AddDays(3), nil)
	require.NoError(t, err)
	assert.True(t, snap.WeekStart.Equal(monday()), "week start should normalize to Monday")
	require.Len(t, snap.TeamCapacity, 1)
}

func TestBuild_MissingActualHoursDefaultToZero(t *testing.T) {
	ctx := context.Background()
	builder, allocs, _ := newTestBuilder(t)
	seedAllocation(t, allocs, alloc("alice", monday(), monday().AddDays(6), 100))

	snap, err := builder.Build(ctx, "CAP", monday(), map[capacity.AccountID]float64{})
	require.NoError(t, err)

	row := snap.TeamCapacity[0]
	assert.Equal(t, 0.0, row.ActualHours)
	assert.Equal(t, 0.0, row.UtilizationPercent)
	assert.Equal(t, capacity.StatusUnderloaded, row.Status)
}

func TestBuild_ZeroAvailableHoursYieldsZeroUtilization(t *testing.T) {
	// 0% allocation: available hours are zero, utilization must not divide
	// by zero.
	ctx := context.Background()
	builder, allocs, _ := newTestBuilder(t)
	seedAllocation(t, allocs, alloc("alice", monday(), monday().AddDays(6), 0))

	snap, err := builder.Build(ctx, "CAP", monday(), map[capacity.AccountID]float64{"alice": 12})
	require.NoError(t, err)

	row := snap.TeamCapacity[0]
	assert.Equal(t, 0.0, row.AvailableHours)
	assert.Equal(t, 0.0, row.UtilizationPercent)
}

func TestBuild_OnePersonWithConcurrentAllocations(t *testing.T) {
	// Two allocation periods inside the week resolve to one weighted row,
	// not two rows.
	ctx := context.Background()
	builder, allocs, _ := newTestBuilder(t)

	// Mon-Tue at 50%, Wed-Fri at 100%: (50x2 + 100x3)/5 = 80, hours 8+24=32.
	seedAllocation(t, allocs, alloc("alice", monday(), monday().AddDays(1), 50))
	seedAllocation(t, allocs, alloc("alice", monday().AddDays(2), monday().AddDays(4), 100))

	snap, err := builder.Build(ctx, "CAP", monday(), map[capacity.AccountID]float64{"alice": 24})
	require.NoError(t, err)

	require.Len(t, snap.TeamCapacity, 1)
	row := snap.TeamCapacity[0]
	assert.Equal(t, 80.0, row.PlannedAllocation)
	assert.Equal(t, 32.0, row.AvailableHours)
	assert.Equal(t, 75.0, row.UtilizationPercent)
	assert.Equal(t, capacity.StatusOptimal, row.Status)
}

func TestBuild_AllocationOutsideWeekExcluded(t *testing.T) {
	ctx := context.Background()
	builder, allocs, _ := newTestBuilder(t)

	seedAllocation(t, allocs, alloc("alice", monday(), monday().AddDays(6), 100))
	seedAllocation(t, allocs, alloc("bob", monday().AddDays(14), monday().AddDays(20), 100))

	snap, err := builder.Build(ctx, "CAP", monday(), nil)
	require.NoError(t, err)

	require.Len(t, snap.TeamCapacity, 1)
	assert.Equal(t, capacity.AccountID("alice"), snap.TeamCapacity[0].AccountID)
}

func TestBuild_PersistsSnapshot(t *testing.T) {
	ctx := context.Background()
	builder, allocs, _ := newTestBuilder(t)
	seedAllocation(t, allocs, alloc("alice", monday(), monday().AddDays(6), 100))

	built, err := builder.Build(ctx, "CAP", monday(), nil)
	require.NoError(t, err)

	listed, err := builder.ListRecent(ctx, "CAP", 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, built.ID, listed[0].ID)
}

func TestListRecent_NewestWeekFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	builder, allocs, _ := newTestBuilder(t)
	seedAllocation(t, allocs, alloc("alice", monday().AddDays(-365), monday().AddDays(365), 100))

	for week := 0; week < 4; week++ {
		_, err := builder.Build(ctx, "CAP", monday().AddDays(7*week), nil)
		require.NoError(t, err)
	}

	listed, err := builder.ListRecent(ctx, "CAP", 2)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.True(t, listed[0].WeekStart.Equal(monday().AddDays(21)))
	assert.True(t, listed[1].WeekStart.Equal(monday().AddDays(14)))
}

func TestBuild_DuplicateWeeksAllowed(t *testing.T) {
	// The engine does not deduplicate; same-week builds create separate
	// snapshots and readers see the newest first.
	ctx := context.Background()
	builder, allocs, _ := newTestBuilder(t)
	seedAllocation(t, allocs, alloc("alice", monday(), monday().AddDays(6), 100))

	first, err := builder.Build(ctx, "CAP", monday(), nil)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond) // distinct CreatedAt ordering
	second, err := builder.Build(ctx, "CAP", monday(), nil)
	require.NoError(t, err)

	listed, err := builder.ListRecent(ctx, "CAP", 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}

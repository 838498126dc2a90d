// Package store provides in-memory store implementations for testing/dev.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/capacity-engine/capacity"
)

// =============================================================================
// MEMORY ALLOCATION STORE
// =============================================================================

type MemoryAllocations struct {
	mu          sync.RWMutex
	allocations map[string]capacity.Allocation
}

func NewMemoryAllocations() *MemoryAllocations {
	return &MemoryAllocations{allocations: make(map[string]capacity.Allocation)}
}

func (m *MemoryAllocations) Insert(_ context.Context, a capacity.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocations[a.ID] = a
	return nil
}

func (m *MemoryAllocations) Update(_ context.Context, a capacity.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.allocations[a.ID]; !ok {
		return capacity.ErrAllocationNotFound
	}
	m.allocations[a.ID] = a
	return nil
}

func (m *MemoryAllocations) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.allocations[id]; !ok {
		return capacity.ErrAllocationNotFound
	}
	delete(m.allocations, id)
	return nil
}

func (m *MemoryAllocations) FindByID(_ context.Context, id string) (*capacity.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.allocations[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *MemoryAllocations) FindOverlapping(_ context.Context, project capacity.ProjectKey, start, end capacity.Date) ([]capacity.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []capacity.Allocation
	for _, a := range m.allocations {
		if a.ProjectKey != project {
			continue
		}
		// Interval overlap, not containment.
		if a.StartDate.BeforeOrEqual(end) && a.EndDate.AfterOrEqual(start) {
			result = append(result, a)
		}
	}
	sortAllocations(result)
	return result, nil
}

func (m *MemoryAllocations) FindByProject(_ context.Context, project capacity.ProjectKey) ([]capacity.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []capacity.Allocation
	for _, a := range m.allocations {
		if a.ProjectKey == project {
			result = append(result, a)
		}
	}
	sortAllocations(result)
	return result, nil
}

func sortAllocations(allocs []capacity.Allocation) {
	sort.Slice(allocs, func(i, j int) bool {
		if !allocs[i].StartDate.Equal(allocs[j].StartDate) {
			return allocs[i].StartDate.Before(allocs[j].StartDate)
		}
		return allocs[i].DisplayName < allocs[j].DisplayName
	})
}

// =============================================================================
// MEMORY SNAPSHOT STORE
// =============================================================================

type MemorySnapshots struct {
	mu        sync.RWMutex
	snapshots map[capacity.ProjectKey][]capacity.CapacitySnapshot
}

func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{snapshots: make(map[capacity.ProjectKey][]capacity.CapacitySnapshot)}
}

func (m *MemorySnapshots) Save(_ context.Context, s capacity.CapacitySnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy the rows so later caller mutation can't reach stored state.
	rows := make([]capacity.MemberCapacity, len(s.TeamCapacity))
	copy(rows, s.TeamCapacity)
	s.TeamCapacity = rows

	m.snapshots[s.ProjectKey] = append(m.snapshots[s.ProjectKey], s)
	return nil
}

func (m *MemorySnapshots) ListRecent(_ context.Context, project capacity.ProjectKey, limit int) ([]capacity.CapacitySnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.snapshots[project]
	result := make([]capacity.CapacitySnapshot, len(all))
	copy(result, all)

	sort.Slice(result, func(i, j int) bool {
		if !result[i].WeekStart.Equal(result[j].WeekStart) {
			return result[i].WeekStart.After(result[j].WeekStart)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

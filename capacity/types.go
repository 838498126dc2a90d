/*
Package capacity is the allocation and utilization engine.

PURPOSE:

	Tracks planned staffing (allocations) of people against projects over
	date ranges and reconciles those plans with actual logged hours into a
	per-person utilization status per week.

KEY CONCEPTS IN THIS FILE (types.go):
  - Allocation: a planned assignment of one person to one project over an
    inclusive date range at a percentage of full-time (0-200).
  - Resolution: the weighted combination of overlapping allocation periods
    for a query window, with a per-period breakdown for auditing.
  - CapacitySnapshot: an immutable weekly capture of per-person capacity
    rows for one project.

DESIGN PRINCIPLES:
 1. Bare calendar dates everywhere (see date.go) - no timezone ambiguity.
 2. decimal.Decimal for all percent/hour arithmetic; presentation values
    are rounded to one decimal place exactly once, when rows are built.
 3. The engine holds no state: every operation is a pure computation or a
    single read/write against a store interface.

SEE ALSO:
  - resolver.go: weighted overlap resolution
  - classifier.go: utilization status taxonomy
  - builder.go: weekly snapshot construction
  - service.go: allocation CRUD
*/
package capacity

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ProjectKey string
type AccountID string

// =============================================================================
// ALLOCATION - Planned assignment over a date range
// =============================================================================

// Allocation plans one person on one project for [StartDate, EndDate]
// (inclusive) at Percent of full-time. Multiple allocations for the same
// person and project may overlap in time; readers resolve the overlap,
// writers never reject it.
type Allocation struct {
	ID          string
	ProjectKey  ProjectKey
	AccountID   AccountID
	DisplayName string
	AvatarURL   string
	StartDate   Date
	EndDate     Date
	Percent     int // 0-200
	Notes       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllocationUpdate carries a partial update. Nil fields are left unchanged.
type AllocationUpdate struct {
	DisplayName *string
	AvatarURL   *string
	StartDate   *Date
	EndDate     *Date
	Percent     *int
	Notes       *string
}

// =============================================================================
// RESOLUTION - Weighted view of overlapping allocation periods
// =============================================================================

// PeriodContribution is one allocation's share of a resolved range: the
// clamped overlap bounds and what that overlap contributes.
type PeriodContribution struct {
	Start    Date
	End      Date
	Percent  int
	WorkDays int
	Hours    decimal.Decimal
}

// Resolution is the combined view of all allocations overlapping a query
// range: one effective percentage weighted by contributed working days,
// and the total available hours across contributions.
type Resolution struct {
	WeightedAllocationPercent decimal.Decimal
	TotalAvailableHours       decimal.Decimal
	Periods                   []PeriodContribution
}

// =============================================================================
// STATUS - Utilization taxonomy
// =============================================================================

type Status string

const (
	StatusOverloaded  Status = "overloaded"
	StatusAtRisk      Status = "at-risk"
	StatusUnderloaded Status = "underloaded"
	StatusOptimal     Status = "optimal"
)

// =============================================================================
// CAPACITY SNAPSHOT - Immutable weekly capture
// =============================================================================

// MemberCapacity is one person's row in a weekly snapshot. Numeric fields
// are already rounded to one decimal place.
type MemberCapacity struct {
	AccountID          AccountID `json:"account_id"`
	DisplayName        string    `json:"display_name"`
	AvatarURL          string    `json:"avatar_url,omitempty"`
	PlannedAllocation  float64   `json:"planned_allocation"`
	ActualHours        float64   `json:"actual_hours"`
	AvailableHours     float64   `json:"available_hours"`
	UtilizationPercent float64   `json:"utilization_percent"`
	Status             Status    `json:"status"`
}

// CapacitySnapshot is a point-in-time record of per-person utilization for
// one project and one week. Never mutated after creation. The store does
// not enforce one snapshot per (project, week); callers that want
// idempotence check before building.
type CapacitySnapshot struct {
	ID           string
	ProjectKey   ProjectKey
	WeekStart    Date
	TeamCapacity []MemberCapacity
	CreatedAt    time.Time
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:

	JSON structures for API communication, decoupling the domain model from
	the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:

	Shape validation (parseable dates, well-formed JSON) happens in the
	handlers; domain validation (percent range, date order) lives in the
	capacity package and surfaces here as 400s.
*/
package api

import (
	"time"

	"github.com/warp/capacity-engine/capacity"
)

// =============================================================================
// ALLOCATION TYPES
// =============================================================================

// AllocationDTO represents an allocation in API responses.
type AllocationDTO struct {
	ID                string `json:"id"`
	ProjectKey        string `json:"project_key"`
	AccountID         string `json:"account_id"`
	DisplayName       string `json:"display_name"`
	AvatarURL         string `json:"avatar_url,omitempty"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	AllocationPercent int    `json:"allocation_percent"`
	Notes             string `json:"notes,omitempty"`
	CreatedAt         string `json:"created_at,omitempty"`
	UpdatedAt         string `json:"updated_at,omitempty"`
}

func toAllocationDTO(a capacity.Allocation) AllocationDTO {
	return AllocationDTO{
		ID:                a.ID,
		ProjectKey:        string(a.ProjectKey),
		AccountID:         string(a.AccountID),
		DisplayName:       a.DisplayName,
		AvatarURL:         a.AvatarURL,
		StartDate:         a.StartDate.String(),
		EndDate:           a.EndDate.String(),
		AllocationPercent: a.Percent,
		Notes:             a.Notes,
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         a.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateAllocationRequest is the request to create an allocation.
type CreateAllocationRequest struct {
	AccountID         string `json:"account_id"`
	DisplayName       string `json:"display_name"`
	AvatarURL         string `json:"avatar_url,omitempty"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	AllocationPercent int    `json:"allocation_percent"`
	Notes             string `json:"notes,omitempty"`
}

// UpdateAllocationRequest carries a partial update. Absent fields are
// left unchanged.
type UpdateAllocationRequest struct {
	DisplayName       *string `json:"display_name,omitempty"`
	AvatarURL         *string `json:"avatar_url,omitempty"`
	StartDate         *string `json:"start_date,omitempty"`
	EndDate           *string `json:"end_date,omitempty"`
	AllocationPercent *int    `json:"allocation_percent,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

// =============================================================================
// RESOLUTION TYPES
// =============================================================================

// PeriodDTO is one allocation period's contribution to a resolved range.
type PeriodDTO struct {
	Start             string  `json:"start"`
	End               string  `json:"end"`
	AllocationPercent int     `json:"allocation_percent"`
	WorkDays          int     `json:"work_days"`
	AvailableHours    float64 `json:"available_hours"`
}

// ResolutionDTO is the weighted allocation view for a query range.
type ResolutionDTO struct {
	WeightedAllocationPercent float64     `json:"weighted_allocation_percent"`
	TotalAvailableHours       float64     `json:"total_available_hours"`
	Periods                   []PeriodDTO `json:"periods"`
}

func toResolutionDTO(r capacity.Resolution) ResolutionDTO {
	periods := make([]PeriodDTO, len(r.Periods))
	for i, p := range r.Periods {
		periods[i] = PeriodDTO{
			Start:             p.Start.String(),
			End:               p.End.String(),
			AllocationPercent: p.Percent,
			WorkDays:          p.WorkDays,
			AvailableHours:    p.Hours.InexactFloat64(),
		}
	}
	return ResolutionDTO{
		WeightedAllocationPercent: r.WeightedAllocationPercent.InexactFloat64(),
		TotalAvailableHours:       r.TotalAvailableHours.InexactFloat64(),
		Periods:                   periods,
	}
}

// =============================================================================
// SNAPSHOT TYPES
// =============================================================================

// BuildSnapshotRequest triggers a snapshot build for the week containing
// week_start (any day of the week is accepted). actual_hours maps account
// ids to logged hours for that week, sourced by the caller.
type BuildSnapshotRequest struct {
	WeekStart   string             `json:"week_start"`
	ActualHours map[string]float64 `json:"actual_hours"`
}

// SnapshotDTO represents a capacity snapshot in API responses.
type SnapshotDTO struct {
	ID           string                    `json:"id"`
	ProjectKey   string                    `json:"project_key"`
	WeekStart    string                    `json:"week_start"`
	TeamCapacity []capacity.MemberCapacity `json:"team_capacity"`
	CreatedAt    string                    `json:"created_at"`
}

func toSnapshotDTO(s capacity.CapacitySnapshot) SnapshotDTO {
	rows := s.TeamCapacity
	if rows == nil {
		rows = []capacity.MemberCapacity{}
	}
	return SnapshotDTO{
		ID:           s.ID,
		ProjectKey:   string(s.ProjectKey),
		WeekStart:    s.WeekStart.String(),
		TeamCapacity: rows,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}
}

/*
service.go - Allocation CRUD and overlap resolution

PURPOSE:

	The write/read surface for allocation records. Validates input before
	any store write (percent within 0-200, start not after end), generates
	ids, and exposes the weighted overlap resolution for a query window.

ERROR HANDLING:
  - ValidationError for bad input, raised before touching the store.
  - ErrAllocationNotFound for operations on missing ids.
  - Store failures propagate unchanged.
*/
package capacity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MaxAllocationPercent is the upper bound on a planned allocation. Values
// above 100 are allowed deliberately: they represent planned overcommitment
// and classify as overloaded.
const MaxAllocationPercent = 200

// AllocationService owns the allocation lifecycle.
type AllocationService struct {
	store AllocationStore
}

func NewAllocationService(store AllocationStore) *AllocationService {
	return &AllocationService{store: store}
}

// CreateAllocationInput carries the fields for a new allocation.
type CreateAllocationInput struct {
	ProjectKey  ProjectKey
	AccountID   AccountID
	DisplayName string
	AvatarURL   string
	StartDate   Date
	EndDate     Date
	Percent     int
	Notes       string
}

// Create validates and persists a new allocation. Overlap with existing
// allocations for the same person is allowed; readers resolve it.
func (s *AllocationService) Create(ctx context.Context, in CreateAllocationInput) (*Allocation, error) {
	if in.ProjectKey == "" {
		return nil, &ValidationError{Field: "projectKey", Message: "must not be empty"}
	}
	if in.AccountID == "" {
		return nil, &ValidationError{Field: "accountId", Message: "must not be empty"}
	}
	if err := validatePercent(in.Percent); err != nil {
		return nil, err
	}
	if err := validateDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := Allocation{
		ID:          uuid.NewString(),
		ProjectKey:  in.ProjectKey,
		AccountID:   in.AccountID,
		DisplayName: in.DisplayName,
		AvatarURL:   in.AvatarURL,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Percent:     in.Percent,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Insert(ctx, a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update applies a partial update to an existing allocation. Validation
// runs against the merged record, so narrowing only the end date still
// fails when it crosses the start date.
func (s *AllocationService) Update(ctx context.Context, id string, upd AllocationUpdate) (*Allocation, error) {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAllocationNotFound
	}

	if upd.DisplayName != nil {
		a.DisplayName = *upd.DisplayName
	}
	if upd.AvatarURL != nil {
		a.AvatarURL = *upd.AvatarURL
	}
	if upd.StartDate != nil {
		a.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		a.EndDate = *upd.EndDate
	}
	if upd.Percent != nil {
		if err := validatePercent(*upd.Percent); err != nil {
			return nil, err
		}
		a.Percent = *upd.Percent
	}
	if upd.Notes != nil {
		a.Notes = *upd.Notes
	}

	if err := validateDates(a.StartDate, a.EndDate); err != nil {
		return nil, err
	}

	a.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, *a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an allocation by id.
func (s *AllocationService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// List returns a project's allocations. With both bounds set it returns
// those overlapping [start, end]; with neither it returns all. A single
// bound is rejected: half-open range queries are ambiguous at this layer.
func (s *AllocationService) List(ctx context.Context, project ProjectKey, start, end *Date) ([]Allocation, error) {
	switch {
	case start == nil && end == nil:
		return s.store.FindByProject(ctx, project)
	case start != nil && end != nil:
		if err := validateDates(*start, *end); err != nil {
			return nil, err
		}
		return s.store.FindOverlapping(ctx, project, *start, *end)
	default:
		return nil, &ValidationError{Field: "range", Message: "start and end must be given together"}
	}
}

// Resolve computes the weighted allocation view for one person over an
// arbitrary query range.
func (s *AllocationService) Resolve(ctx context.Context, project ProjectKey, account AccountID, start, end Date) (*Resolution, error) {
	if err := validateDates(start, end); err != nil {
		return nil, err
	}

	allocs, err := s.store.FindOverlapping(ctx, project, start, end)
	if err != nil {
		return nil, err
	}

	mine := allocs[:0:0]
	for _, a := range allocs {
		if a.AccountID == account {
			mine = append(mine, a)
		}
	}

	res := ResolveOverlap(mine, start, end)
	return &res, nil
}

func validatePercent(p int) error {
	if p < 0 || p > MaxAllocationPercent {
		return &ValidationError{Field: "allocationPercent", Message: "must be between 0 and 200"}
	}
	return nil
}

func validateDates(start, end Date) error {
	if start.After(end) {
		return &ValidationError{Field: "startDate", Message: "must not be after endDate"}
	}
	return nil
}

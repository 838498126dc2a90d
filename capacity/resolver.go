package capacity

import "github.com/shopspring/decimal"

// =============================================================================
// ALLOCATION RESOLVER - Weighted combination of overlapping periods
// =============================================================================

// ResolveOverlap turns a set of allocation records (already filtered to one
// person) into a single allocation percentage and total available hours for
// the query range [rangeStart, rangeEnd].
//
// Each allocation contributes its overlap with the range, clamped to
// [max(allocStart, rangeStart), min(allocEnd, rangeEnd)]. The effective
// percentage is the working-day-weighted average across contributions:
//
//	sum(percent x workDays) / sum(workDays)
//
// so a single allocation covering the whole range resolves to exactly its
// own percentage - the single-period case is not special-cased, it falls
// out of the formula. A range with no overlapping working days resolves
// to zero rather than dividing by zero.
//
// Both outputs are rounded to one decimal place.
func ResolveOverlap(allocations []Allocation, rangeStart, rangeEnd Date) Resolution {
	var (
		weightedSum = decimal.Zero // sum(percent x workDays)
		totalDays   int64
		totalHours  = decimal.Zero
		periods     []PeriodContribution
	)

	for _, a := range allocations {
		overlapStart := MaxDate(a.StartDate, rangeStart)
		overlapEnd := MinDate(a.EndDate, rangeEnd)
		if overlapStart.After(overlapEnd) {
			continue // no overlap with the range
		}

		days := WorkDays(overlapStart, overlapEnd)
		hours := AvailableHours(a.Percent, days)

		weightedSum = weightedSum.Add(decimal.NewFromInt(int64(a.Percent) * int64(days)))
		totalDays += int64(days)
		totalHours = totalHours.Add(hours)

		periods = append(periods, PeriodContribution{
			Start:    overlapStart,
			End:      overlapEnd,
			Percent:  a.Percent,
			WorkDays: days,
			Hours:    hours.Round(1),
		})
	}

	weighted := decimal.Zero
	if totalDays > 0 {
		weighted = weightedSum.Div(decimal.NewFromInt(totalDays))
	}

	return Resolution{
		WeightedAllocationPercent: weighted.Round(1),
		TotalAvailableHours:       totalHours.Round(1),
		Periods:                   periods,
	}
}

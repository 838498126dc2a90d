package capacity

import "github.com/shopspring/decimal"

var (
	fifty      = decimal.NewFromInt(50)
	oneHundred = decimal.NewFromInt(100)
	oneTwenty  = decimal.NewFromInt(120)
)

// Classify maps a utilization percentage and a planned allocation
// percentage onto a status. The branches are not mutually exclusive by
// range alone, so evaluation order is part of the contract:
//
//  1. allocation > 100 or utilization >= 100 -> overloaded
//  2. 100 <= utilization <= 120              -> at-risk
//  3. allocation < 50 or utilization < 50    -> underloaded
//  4. otherwise                              -> optimal
//
// Rule 1 captures utilization at exactly 100, so the at-risk branch is
// shadowed and never fires. The branch is retained in this order anyway:
// full utilization classifying as overloaded (not at-risk) is pinned by
// tests, and removing or reordering the band is a product decision.
func Classify(utilizationPercent, allocationPercent decimal.Decimal) Status {
	switch {
	case allocationPercent.GreaterThan(oneHundred) || utilizationPercent.GreaterThanOrEqual(oneHundred):
		return StatusOverloaded
	case utilizationPercent.GreaterThanOrEqual(oneHundred) && utilizationPercent.LessThanOrEqual(oneTwenty):
		return StatusAtRisk
	case allocationPercent.LessThan(fifty) || utilizationPercent.LessThan(fifty):
		return StatusUnderloaded
	default:
		return StatusOptimal
	}
}

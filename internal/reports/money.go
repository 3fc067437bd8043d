package reports

import (
	"github.com/shopspring/decimal"

	"github.com/cafephin/dashboard-backend/pkg/square"
)

// CompletedAmount returns a record's minor-unit amount when the record
// counts toward totals. Records carrying any status other than COMPLETED are
// skipped; a missing amount contributes zero, not an error. Accumulation
// stays in integer minor units so repeated summation cannot drift.
func CompletedAmount(status string, money *square.Money) (int64, bool) {
	if status != "" && status != square.StatusCompleted {
		return 0, false
	}
	return money.AmountOrZero(), true
}

// MajorUnits converts integer minor units to an exact major-unit decimal.
func MajorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Shift(-2)
}

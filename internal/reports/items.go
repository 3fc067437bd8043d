package reports

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog variations of the same drink differ only by a trailing qualifier:
// "Egg Coffee (Hot)", "Egg Coffee - Large", "Cold Brew - 16oz". The grouping
// key strips those qualifiers so variations merge into one report row. This
// is lossy, best-effort grouping with no uniqueness guarantee.
var (
	parentheticalSuffix = regexp.MustCompile(`\s*\([^()]*\)\s*$`)
	qualifierSuffix     = regexp.MustCompile(`(?i)\s*[-–]\s*(?:x-?small|small|medium|large|x-?large|regular|hot|iced|cold|warm|frozen|\d+\s*oz)\.?\s*$`)
)

// NormalizeItemName strips trailing parenthetical and size/temperature
// qualifiers, repeatedly, until the name stabilizes. A name that would strip
// to nothing is returned as-is.
func NormalizeItemName(raw string) string {
	name := strings.TrimSpace(raw)
	for {
		next := strings.TrimSpace(parentheticalSuffix.ReplaceAllString(name, ""))
		next = strings.TrimSpace(qualifierSuffix.ReplaceAllString(next, ""))
		if next == "" || next == name {
			return name
		}
		name = next
	}
}

// itemKey case-folds the normalized name into the grouping key.
func itemKey(raw string) string {
	return strings.ToLower(NormalizeItemName(raw))
}

type itemBucket struct {
	name       string
	quantity   decimal.Decimal
	totalMinor int64
}

// itemAccumulator merges line items across catalog variations. The display
// name is the normalized form of the first raw name seen for a key.
type itemAccumulator struct {
	order []string
	index map[string]*itemBucket

	grandMinor int64
}

func newItemAccumulator() *itemAccumulator {
	return &itemAccumulator{index: make(map[string]*itemBucket)}
}

func (a *itemAccumulator) add(rawName, rawQuantity string, amountMinor int64) {
	key := itemKey(rawName)
	if key == "" {
		return
	}
	bucket, ok := a.index[key]
	if !ok {
		bucket = &itemBucket{name: NormalizeItemName(rawName)}
		a.index[key] = bucket
		a.order = append(a.order, key)
	}
	bucket.quantity = bucket.quantity.Add(parseQuantity(rawQuantity))
	bucket.totalMinor += amountMinor
	a.grandMinor += amountMinor
}

// totals returns item rows sorted by revenue, highest first. Ties keep
// insertion order.
func (a *itemAccumulator) totals() []ItemTotal {
	out := make([]ItemTotal, 0, len(a.order))
	for _, key := range a.order {
		bucket := a.index[key]
		out = append(out, ItemTotal{
			ItemName:       bucket.name,
			Quantity:       bucket.quantity,
			Total:          MajorUnits(bucket.totalMinor),
			TotalFormatted: FormatUSD(bucket.totalMinor),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// parseQuantity reads Square's string quantity ("1", "2.5"). A missing
// quantity means one unit; garbage contributes zero.
func parseQuantity(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.NewFromInt(1)
	}
	qty, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return qty
}

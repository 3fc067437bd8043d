package reports

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cafephin/dashboard-backend/pkg/logger"
	"github.com/cafephin/dashboard-backend/pkg/square"
)

// Upstream is the slice of the Square API the reporting service consumes.
type Upstream interface {
	ListPayments(ctx context.Context, locationID string, begin, end time.Time) ([]square.Payment, error)
	ListRefunds(ctx context.Context, locationID string, begin, end time.Time) ([]square.Refund, error)
	SearchOrders(ctx context.Context, locationIDs []string, begin, end time.Time) ([]square.Order, error)
	SearchShifts(ctx context.Context, locationIDs []string, begin, end time.Time) ([]square.Shift, error)
}

// LocationProvider resolves the account's locations, possibly from a cache.
type LocationProvider interface {
	List(ctx context.Context) ([]square.Location, error)
}

// Service aggregates raw Square records into dashboard reports. All calendar
// math happens in the store timezone; all money math happens in integer
// minor units until the response is assembled.
type Service struct {
	upstream  Upstream
	locations LocationProvider
	tz        *time.Location
	logger    *logger.Logger
}

func NewService(upstream Upstream, locations LocationProvider, tz *time.Location, logg *logger.Logger) *Service {
	return &Service{
		upstream:  upstream,
		locations: locations,
		tz:        tz,
		logger:    logg,
	}
}

// moneyRecord is the common shape payments and refunds reduce to before
// bucketing.
type moneyRecord struct {
	locationID  string
	createdAt   time.Time
	amountMinor int64
}

// DailySales reports completed payment totals for one local calendar day.
func (s *Service) DailySales(ctx context.Context, date string) (*DailySalesResponse, error) {
	rng, err := ResolvePeriod(PeriodDay, date, s.tz)
	if err != nil {
		return nil, err
	}
	locs, err := s.activeLocations(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.collectPayments(ctx, locs, rng)
	if err != nil {
		return nil, err
	}
	totals, grandMinor, grandCount := s.locationTotals(locs, records)
	return &DailySalesResponse{
		Date:                rng.StartDate(s.tz),
		Timezone:            rng.Timezone,
		GrandTotal:          MajorUnits(grandMinor),
		GrandTotalFormatted: FormatUSD(grandMinor),
		GrandCount:          grandCount,
		LocationsCount:      len(totals),
		Locations:           totals,
	}, nil
}

// PeriodSales reports completed payment totals over a week, month, or year.
func (s *Service) PeriodSales(ctx context.Context, kind PeriodKind, value string) (*PeriodSalesResponse, error) {
	rng, err := ResolvePeriod(kind, value, s.tz)
	if err != nil {
		return nil, err
	}
	locs, err := s.activeLocations(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.collectPayments(ctx, locs, rng)
	if err != nil {
		return nil, err
	}
	totals, grandMinor, grandCount := s.locationTotals(locs, records)
	return &PeriodSalesResponse{
		Range:               rangeRef(rng, s.tz),
		Type:                periodTypeName(kind),
		Timezone:            rng.Timezone,
		GrandTotal:          MajorUnits(grandMinor),
		GrandTotalFormatted: FormatUSD(grandMinor),
		GrandCount:          grandCount,
		LocationsCount:      len(totals),
		Locations:           totals,
	}, nil
}

// DailyRefunds mirrors DailySales over completed refunds.
func (s *Service) DailyRefunds(ctx context.Context, date string) (*DailySalesResponse, error) {
	rng, err := ResolvePeriod(PeriodDay, date, s.tz)
	if err != nil {
		return nil, err
	}
	locs, err := s.activeLocations(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.collectRefunds(ctx, locs, rng)
	if err != nil {
		return nil, err
	}
	totals, grandMinor, grandCount := s.locationTotals(locs, records)
	return &DailySalesResponse{
		Date:                rng.StartDate(s.tz),
		Timezone:            rng.Timezone,
		GrandTotal:          MajorUnits(grandMinor),
		GrandTotalFormatted: FormatUSD(grandMinor),
		GrandCount:          grandCount,
		LocationsCount:      len(totals),
		Locations:           totals,
	}, nil
}

// PeriodRefunds mirrors PeriodSales over completed refunds.
func (s *Service) PeriodRefunds(ctx context.Context, kind PeriodKind, value string) (*PeriodSalesResponse, error) {
	rng, err := ResolvePeriod(kind, value, s.tz)
	if err != nil {
		return nil, err
	}
	locs, err := s.activeLocations(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.collectRefunds(ctx, locs, rng)
	if err != nil {
		return nil, err
	}
	totals, grandMinor, grandCount := s.locationTotals(locs, records)
	return &PeriodSalesResponse{
		Range:               rangeRef(rng, s.tz),
		Type:                periodTypeName(kind),
		Timezone:            rng.Timezone,
		GrandTotal:          MajorUnits(grandMinor),
		GrandTotalFormatted: FormatUSD(grandMinor),
		GrandCount:          grandCount,
		LocationsCount:      len(totals),
		Locations:           totals,
	}, nil
}

// Items reports line-item revenue over a period, merged across catalog
// variations, overall and per location.
func (s *Service) Items(ctx context.Context, kind PeriodKind, value string) (*ItemsResponse, error) {
	rng, err := ResolvePeriod(kind, value, s.tz)
	if err != nil {
		return nil, err
	}
	locs, err := s.activeLocations(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.upstream.SearchOrders(ctx, locationIDs(locs), rng.BeginUTC, rng.EndUTC)
	if err != nil {
		return nil, err
	}

	overall := newItemAccumulator()
	perLocation := make(map[string]*itemAccumulator, len(locs))
	for _, loc := range locs {
		perLocation[loc.ID] = newItemAccumulator()
	}
	for _, order := range orders {
		byLocation, ok := perLocation[order.LocationID]
		if !ok {
			// Defunct location still present in history.
			byLocation = newItemAccumulator()
			perLocation[order.LocationID] = byLocation
		}
		for _, line := range order.LineItems {
			amount := line.TotalMoney.AmountOrZero()
			overall.add(line.Name, line.Quantity, amount)
			byLocation.add(line.Name, line.Quantity, amount)
		}
	}

	locations := make([]ItemLocationTotal, 0, len(locs))
	for _, loc := range locs {
		acc := perLocation[loc.ID]
		locations = append(locations, ItemLocationTotal{
			LocationID:     loc.ID,
			LocationName:   loc.Name,
			Total:          MajorUnits(acc.grandMinor),
			TotalFormatted: FormatUSD(acc.grandMinor),
			Items:          acc.totals(),
		})
	}
	return &ItemsResponse{
		Range:               rangeRef(rng, s.tz),
		Type:                periodTypeName(kind),
		Timezone:            rng.Timezone,
		GrandTotal:          MajorUnits(overall.grandMinor),
		GrandTotalFormatted: FormatUSD(overall.grandMinor),
		OverallItems:        overall.totals(),
		Locations:           locations,
	}, nil
}

// activeLocations lists the account's locations, dropping any Square has
// deactivated. Upstream order is preserved so reports stay stable.
func (s *Service) activeLocations(ctx context.Context) ([]square.Location, error) {
	all, err := s.locations.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]square.Location, 0, len(all))
	for _, loc := range all {
		if loc.Status != "" && loc.Status != "ACTIVE" {
			continue
		}
		active = append(active, loc)
	}
	return active, nil
}

// collectPayments fans out one payments listing per location and reduces the
// results to completed money records. Any single location failing fails the
// whole report; partial dashboards misstate totals.
func (s *Service) collectPayments(ctx context.Context, locs []square.Location, rng TimeRange) ([]moneyRecord, error) {
	results := make([][]moneyRecord, len(locs))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, loc := range locs {
		i, loc := i, loc
		group.Go(func() error {
			payments, err := s.upstream.ListPayments(groupCtx, loc.ID, rng.BeginUTC, rng.EndUTC)
			if err != nil {
				return err
			}
			records := make([]moneyRecord, 0, len(payments))
			for _, payment := range payments {
				amount, counted := CompletedAmount(payment.Status, payment.AmountMoney)
				if !counted {
					continue
				}
				records = append(records, moneyRecord{
					locationID:  loc.ID,
					createdAt:   payment.CreatedAt,
					amountMinor: amount,
				})
			}
			results[i] = records
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return flatten(results), nil
}

// collectRefunds is collectPayments over the refunds listing.
func (s *Service) collectRefunds(ctx context.Context, locs []square.Location, rng TimeRange) ([]moneyRecord, error) {
	results := make([][]moneyRecord, len(locs))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, loc := range locs {
		i, loc := i, loc
		group.Go(func() error {
			refunds, err := s.upstream.ListRefunds(groupCtx, loc.ID, rng.BeginUTC, rng.EndUTC)
			if err != nil {
				return err
			}
			records := make([]moneyRecord, 0, len(refunds))
			for _, refund := range refunds {
				amount, counted := CompletedAmount(refund.Status, refund.AmountMoney)
				if !counted {
					continue
				}
				records = append(records, moneyRecord{
					locationID:  refund.LocationID,
					createdAt:   refund.CreatedAt,
					amountMinor: amount,
				})
			}
			results[i] = records
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return flatten(results), nil
}

// locationTotals buckets money records per location. Every known location
// appears even with zero activity.
func (s *Service) locationTotals(locs []square.Location, records []moneyRecord) ([]LocationTotal, int64, int64) {
	acc := NewAccumulator[string](locationIDs(locs))
	for _, rec := range records {
		acc.Add(rec.locationID, rec.amountMinor)
	}
	names := make(map[string]string, len(locs))
	for _, loc := range locs {
		names[loc.ID] = loc.Name
	}
	buckets := acc.Buckets()
	totals := make([]LocationTotal, 0, len(buckets))
	for _, bucket := range buckets {
		totals = append(totals, LocationTotal{
			LocationID:     bucket.Key,
			LocationName:   names[bucket.Key],
			Total:          MajorUnits(bucket.TotalMinor),
			TotalFormatted: FormatUSD(bucket.TotalMinor),
			Count:          bucket.Count,
		})
	}
	return totals, acc.GrandTotalMinor(), acc.GrandCount()
}

func locationIDs(locs []square.Location) []string {
	ids := make([]string, 0, len(locs))
	for _, loc := range locs {
		ids = append(ids, loc.ID)
	}
	return ids
}

func flatten(groups [][]moneyRecord) []moneyRecord {
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	out := make([]moneyRecord, 0, total)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func rangeRef(rng TimeRange, loc *time.Location) RangeRef {
	return RangeRef{Start: rng.StartDate(loc), End: rng.EndDate(loc)}
}

func periodTypeName(kind PeriodKind) string {
	switch kind {
	case PeriodDay:
		return "daily"
	case PeriodWeek:
		return "weekly"
	case PeriodMonth:
		return "monthly"
	case PeriodYear:
		return "yearly"
	default:
		return string(kind)
	}
}

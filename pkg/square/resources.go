package square

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ListLocations fetches every location on the account. The endpoint is not
// paginated.
func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	var out struct {
		Locations []Location `json:"locations"`
	}
	c.log(ctx, "request", "locations", nil)
	if err := c.do(ctx, http.MethodGet, "/v2/locations", nil, nil, &out, "locations"); err != nil {
		return nil, err
	}
	c.log(ctx, "response", "locations", map[string]any{"count": len(out.Locations)})
	return out.Locations, nil
}

// ListPayments fetches every payment created in [begin, end) at one
// location, following the continuation cursor until exhausted. The payments
// API only filters by a single location, so callers fan out per location.
func (c *Client) ListPayments(ctx context.Context, locationID string, begin, end time.Time) ([]Payment, error) {
	var all []Payment
	cursor := ""
	for {
		query := url.Values{
			"begin_time":  {begin.UTC().Format(time.RFC3339)},
			"end_time":    {end.UTC().Format(time.RFC3339)},
			"location_id": {locationID},
			"sort_order":  {"ASC"},
			"limit":       {strconv.Itoa(c.pageLimit)},
		}
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var page struct {
			Payments []Payment `json:"payments"`
			Cursor   string    `json:"cursor"`
		}
		if err := c.do(ctx, http.MethodGet, "/v2/payments", query, nil, &page, "payments"); err != nil {
			return nil, err
		}
		c.metrics.IncPage("payments")
		all = append(all, page.Payments...)
		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}
	c.log(ctx, "response", "payments", map[string]any{
		"location_id": locationID,
		"count":       len(all),
	})
	return all, nil
}

// ListRefunds fetches every refund created in [begin, end) at one location.
func (c *Client) ListRefunds(ctx context.Context, locationID string, begin, end time.Time) ([]Refund, error) {
	var all []Refund
	cursor := ""
	for {
		query := url.Values{
			"begin_time":  {begin.UTC().Format(time.RFC3339)},
			"end_time":    {end.UTC().Format(time.RFC3339)},
			"location_id": {locationID},
			"sort_order":  {"ASC"},
			"limit":       {strconv.Itoa(c.pageLimit)},
		}
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var page struct {
			Refunds []Refund `json:"refunds"`
			Cursor  string   `json:"cursor"`
		}
		if err := c.do(ctx, http.MethodGet, "/v2/refunds", query, nil, &page, "refunds"); err != nil {
			return nil, err
		}
		c.metrics.IncPage("refunds")
		all = append(all, page.Refunds...)
		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}
	c.log(ctx, "response", "refunds", map[string]any{
		"location_id": locationID,
		"count":       len(all),
	})
	return all, nil
}

// SearchOrders fetches completed orders closed in [begin, end) across the
// given locations. Unlike payments, the orders API accepts a multi-location
// filter, so one cursor walk covers every location.
func (c *Client) SearchOrders(ctx context.Context, locationIDs []string, begin, end time.Time) ([]Order, error) {
	var all []Order
	cursor := ""
	for {
		body := map[string]any{
			"location_ids":   locationIDs,
			"limit":          c.pageLimit,
			"return_entries": false,
			"query": map[string]any{
				"filter": map[string]any{
					"date_time_filter": map[string]any{
						"closed_at": map[string]any{
							"start_at": begin.UTC().Format(time.RFC3339),
							"end_at":   end.UTC().Format(time.RFC3339),
						},
					},
					"state_filter": map[string]any{
						"states": []string{"COMPLETED"},
					},
				},
				"sort": map[string]any{
					"sort_field": "CLOSED_AT",
					"sort_order": "ASC",
				},
			},
		}
		if cursor != "" {
			body["cursor"] = cursor
		}

		var page struct {
			Orders []Order `json:"orders"`
			Cursor string  `json:"cursor"`
		}
		if err := c.do(ctx, http.MethodPost, "/v2/orders/search", nil, body, &page, "orders"); err != nil {
			return nil, err
		}
		c.metrics.IncPage("orders")
		all = append(all, page.Orders...)
		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}
	c.log(ctx, "response", "orders", map[string]any{"count": len(all)})
	return all, nil
}

// SearchShifts fetches labor shifts starting in [begin, end) across the
// given locations.
func (c *Client) SearchShifts(ctx context.Context, locationIDs []string, begin, end time.Time) ([]Shift, error) {
	var all []Shift
	cursor := ""
	for {
		body := map[string]any{
			"limit": c.pageLimit,
			"query": map[string]any{
				"filter": map[string]any{
					"location_ids": locationIDs,
					"start": map[string]any{
						"start_at": begin.UTC().Format(time.RFC3339),
						"end_at":   end.UTC().Format(time.RFC3339),
					},
				},
			},
		}
		if cursor != "" {
			body["cursor"] = cursor
		}

		var page struct {
			Shifts []Shift `json:"shifts"`
			Cursor string  `json:"cursor"`
		}
		if err := c.do(ctx, http.MethodPost, "/v2/labor/shifts/search", nil, body, &page, "shifts"); err != nil {
			return nil, err
		}
		c.metrics.IncPage("shifts")
		all = append(all, page.Shifts...)
		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}
	c.log(ctx, "response", "shifts", map[string]any{"count": len(all)})
	return all, nil
}

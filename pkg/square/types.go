package square

import (
	"strings"
	"time"
)

// Statuses shared by payments and refunds. Only completed records count
// toward dashboard totals.
const (
	StatusCompleted = "COMPLETED"
)

// Money is Square's integer minor-unit representation.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// AmountOrZero treats a missing amount as zero, per the dashboard contract.
func (m *Money) AmountOrZero() int64 {
	if m == nil {
		return 0
	}
	return m.Amount
}

// Location is a physical store registered with Square.
type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Payment is one tender captured at a location.
type Payment struct {
	ID          string    `json:"id"`
	LocationID  string    `json:"location_id"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
	AmountMoney *Money    `json:"amount_money"`
}

// Refund is money returned against a payment.
type Refund struct {
	ID          string    `json:"id"`
	LocationID  string    `json:"location_id"`
	PaymentID   string    `json:"payment_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
	AmountMoney *Money    `json:"amount_money"`
}

// OrderLineItem is one itemized entry on an order.
type OrderLineItem struct {
	UID             string `json:"uid,omitempty"`
	Name            string `json:"name"`
	Quantity        string `json:"quantity"`
	CatalogObjectID string `json:"catalog_object_id,omitempty"`
	TotalMoney      *Money `json:"total_money"`
}

// Order groups line items sold in one transaction.
type Order struct {
	ID         string          `json:"id"`
	LocationID string          `json:"location_id"`
	State      string          `json:"state"`
	CreatedAt  time.Time       `json:"created_at"`
	ClosedAt   *time.Time      `json:"closed_at,omitempty"`
	LineItems  []OrderLineItem `json:"line_items"`
}

// Shift is one labor shift. The labor API has shipped the worker reference
// under several names over time, so every candidate field is captured and
// resolved through Worker.
type Shift struct {
	ID         string     `json:"id"`
	LocationID string     `json:"location_id"`
	StartAt    time.Time  `json:"start_at"`
	EndAt      *time.Time `json:"end_at,omitempty"`
	Status     string     `json:"status,omitempty"`

	TeamMemberID      string `json:"team_member_id,omitempty"`
	TeamMemberIDCamel string `json:"teamMemberId,omitempty"`
	EmployeeID        string `json:"employee_id,omitempty"`
}

// Worker resolves the shift's worker reference through a priority-ordered
// field list: team_member_id, then teamMemberId, then employee_id.
func (s Shift) Worker() string {
	for _, candidate := range []string{s.TeamMemberID, s.TeamMemberIDCamel, s.EmployeeID} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

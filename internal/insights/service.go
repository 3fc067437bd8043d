package insights

import (
	"context"
	"fmt"
	"strings"

	"github.com/cafephin/dashboard-backend/internal/reports"
	"github.com/cafephin/dashboard-backend/pkg/logger"
)

// Source labels where a summary came from.
const (
	SourceModel = "model"
	SourceRules = "rules"
)

// Insight is the /api/insights payload.
type Insight struct {
	Date    string `json:"date"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
	Model   string `json:"model,omitempty"`
}

// ReportSource is the slice of the reporting service insights reads from.
type ReportSource interface {
	DailySales(ctx context.Context, date string) (*reports.DailySalesResponse, error)
	HourlySales(ctx context.Context, kind reports.PeriodKind, value string, comparePrev bool) (*reports.HourlySalesResponse, error)
}

// Service turns a day's reports into a short narrative. A configured model
// writes the narrative; without one, or when the model call fails, the
// deterministic rule summary answers instead. Report failures still fail the
// request, only narration degrades.
type Service struct {
	reports   ReportSource
	generator Generator
	logger    *logger.Logger
}

// NewService wires the insights pipeline. A nil generator means rules-only.
func NewService(source ReportSource, generator Generator, logg *logger.Logger) *Service {
	return &Service{
		reports:   source,
		generator: generator,
		logger:    logg,
	}
}

// Daily summarizes one local calendar day.
func (s *Service) Daily(ctx context.Context, date string) (*Insight, error) {
	daily, err := s.reports.DailySales(ctx, date)
	if err != nil {
		return nil, err
	}
	hourly, err := s.reports.HourlySales(ctx, reports.PeriodDay, date, true)
	if err != nil {
		return nil, err
	}

	fallback := RuleSummary(daily, hourly)
	if s.generator == nil {
		return &Insight{Date: daily.Date, Summary: fallback, Source: SourceRules}, nil
	}

	summary, err := s.generator.Generate(ctx, buildPrompt(daily, hourly, fallback))
	if err != nil {
		s.warn(ctx, "insights model failed, serving rule summary", err)
		return &Insight{Date: daily.Date, Summary: fallback, Source: SourceRules}, nil
	}
	return &Insight{
		Date:    daily.Date,
		Summary: summary,
		Source:  SourceModel,
		Model:   s.generator.Model(),
	}, nil
}

// buildPrompt lays the day's figures out as labeled lines. The rule summary
// rides along as a baseline the model can rephrase but not contradict.
func buildPrompt(daily *reports.DailySalesResponse, hourly *reports.HourlySalesResponse, baseline string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s (%s)\n", daily.Date, daily.Timezone)
	fmt.Fprintf(&b, "Total sales: %s over %d completed payments\n", daily.GrandTotalFormatted, daily.GrandCount)
	for _, loc := range daily.Locations {
		fmt.Fprintf(&b, "Location %s: %s over %d payments\n", loc.LocationName, loc.TotalFormatted, loc.Count)
	}
	if hour, ok := busiestHour(hourly); ok {
		fmt.Fprintf(&b, "Busiest hour: %02d:00\n", hour)
	}
	if hourly != nil && hourly.Comparison != nil && hourly.Comparison.ChangePercent != nil {
		fmt.Fprintf(&b, "Change versus same day last week: %s%%\n", hourly.Comparison.ChangePercent.String())
	}
	fmt.Fprintf(&b, "Baseline summary: %s\n", baseline)
	return b.String()
}

func (s *Service) warn(ctx context.Context, msg string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(s.logger.WithField(ctx, "error", err.Error()), msg)
}

package adminkpi

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/girotrack/girotrack-backend/pkg/enums"
	"github.com/girotrack/girotrack-backend/pkg/logger"
)

const (
	// DefaultMonthsBack is the chart window when the caller does not ask
	// for one.
	DefaultMonthsBack = 6
	// MaxMonthsBack caps the chart window to keep the fan-out bounded.
	MaxMonthsBack = 24

	topDayLimit = 5
)

// Converter changes an amount from one currency into another.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to enums.Currency) decimal.Decimal
}

// ServiceParams groups dependencies for the admin KPI service.
type ServiceParams struct {
	Repo      Repository
	Converter Converter
	Logger    *logger.Logger
	Now       func() time.Time
}

// Service assembles the cross-tenant admin dashboard. Every amount is
// normalized into the reporting currency before it is summed, so figures
// from drivers billing in different currencies stay additive.
type Service struct {
	repo      Repository
	converter Converter
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds an admin KPI service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Converter == nil {
		return nil, errors.New("currency converter is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:      params.Repo,
		converter: params.Converter,
		logg:      params.Logger,
		now:       now,
	}, nil
}

// Dashboard computes KPIs, monthly charts, and the top revenue days over
// the trailing monthsBack window. Out-of-range values clamp to the
// default and the cap.
func (s *Service) Dashboard(ctx context.Context, monthsBack int) (*Dashboard, error) {
	if monthsBack <= 0 {
		monthsBack = DefaultMonthsBack
	}
	if monthsBack > MaxMonthsBack {
		monthsBack = MaxMonthsBack
	}

	now := s.now().UTC()
	currentMonth := monthStart(now)
	windowStart := currentMonth.AddDate(0, -(monthsBack - 1), 0)

	var (
		kpis    KPIs
		revenue []RevenuePoint
		signups []SignupPoint
		topDays []TopDay
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		kpis, err = s.headlineKPIs(groupCtx, currentMonth, now)
		return err
	})
	group.Go(func() error {
		var err error
		revenue, topDays, err = s.revenueCharts(groupCtx, windowStart, monthsBack)
		return err
	})
	group.Go(func() error {
		var err error
		signups, err = s.signupChart(groupCtx, windowStart, monthsBack)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		KPIs:           kpis,
		MonthlyRevenue: revenue,
		MonthlyUsers:   signups,
		TopDays:        topDays,
		Currency:       enums.CurrencyReporting,
	}, nil
}

// headlineKPIs derives the scalar block. MRR counts active subscriptions
// on paid plans only, with each plan price converted from the
// subscriber's configured currency. Free is total minus paying, so users
// without any subscription row land in the free bucket.
func (s *Service) headlineKPIs(ctx context.Context, currentMonth, now time.Time) (KPIs, error) {
	subs, err := s.repo.ListActiveSubscriptions(ctx)
	if err != nil {
		return KPIs{}, err
	}

	mrr := decimal.Zero
	paying := make(map[string]struct{})
	for _, sub := range subs {
		if sub.Plan == nil || sub.Plan.IsFree() {
			continue
		}
		paying[sub.UserID.String()] = struct{}{}

		price := sub.Plan.PriceMonthly
		from := enums.CurrencyReporting
		if sub.User != nil {
			from = sub.User.Currency
		}
		mrr = mrr.Add(s.converter.Convert(ctx, price, from, enums.CurrencyReporting))
	}

	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return KPIs{}, err
	}
	overdue, err := s.repo.CountOverdueSubscriptions(ctx)
	if err != nil {
		return KPIs{}, err
	}

	monthPayments, err := s.repo.ListPaidPayments(ctx, currentMonth, now)
	if err != nil {
		return KPIs{}, err
	}
	monthRevenue := decimal.Zero
	for _, payment := range monthPayments {
		monthRevenue = monthRevenue.Add(s.converter.Convert(ctx, payment.Amount, payment.Currency, enums.CurrencyReporting))
	}

	return KPIs{
		MRR:              mrr.Round(2),
		TotalUsers:       totalUsers,
		PayingUsers:      int64(len(paying)),
		FreeUsers:        totalUsers - int64(len(paying)),
		OverdueUsers:     overdue,
		RevenueThisMonth: monthRevenue.Round(2),
	}, nil
}

// revenueCharts loads the whole window's paid payments once and derives
// both the monthly series and the top revenue days from it.
func (s *Service) revenueCharts(ctx context.Context, windowStart time.Time, monthsBack int) ([]RevenuePoint, []TopDay, error) {
	payments, err := s.repo.ListPaidPayments(ctx, windowStart, windowStart.AddDate(0, monthsBack, 0))
	if err != nil {
		return nil, nil, err
	}

	byMonth := make(map[string]decimal.Decimal)
	byDay := make(map[string]decimal.Decimal)
	for _, payment := range payments {
		converted := s.converter.Convert(ctx, payment.Amount, payment.Currency, enums.CurrencyReporting)
		monthKey := payment.PaymentDate.UTC().Format("2006-01")
		dayKey := payment.PaymentDate.UTC().Format("2006-01-02")
		byMonth[monthKey] = byMonth[monthKey].Add(converted)
		byDay[dayKey] = byDay[dayKey].Add(converted)
	}

	series := make([]RevenuePoint, 0, monthsBack)
	for i := 0; i < monthsBack; i++ {
		month := windowStart.AddDate(0, i, 0)
		key := month.Format("2006-01")
		series = append(series, RevenuePoint{Month: key, Revenue: byMonth[key].Round(2)})
	}

	days := make([]TopDay, 0, len(byDay))
	for key, revenue := range byDay {
		days = append(days, TopDay{Date: key, Revenue: revenue.Round(2)})
	}
	sort.Slice(days, func(i, j int) bool {
		if !days[i].Revenue.Equal(days[j].Revenue) {
			return days[i].Revenue.GreaterThan(days[j].Revenue)
		}
		return days[i].Date < days[j].Date
	})
	if len(days) > topDayLimit {
		days = days[:topDayLimit]
	}

	return series, days, nil
}

// signupChart fans the per-month user counts out concurrently; months
// keep their position in the series regardless of completion order.
func (s *Service) signupChart(ctx context.Context, windowStart time.Time, monthsBack int) ([]SignupPoint, error) {
	series := make([]SignupPoint, monthsBack)

	group, groupCtx := errgroup.WithContext(ctx)
	for i := 0; i < monthsBack; i++ {
		month := windowStart.AddDate(0, i, 0)
		index := i
		group.Go(func() error {
			count, err := s.repo.CountUsersCreatedBetween(groupCtx, month, month.AddDate(0, 1, 0))
			if err != nil {
				return err
			}
			series[index] = SignupPoint{Month: month.Format("2006-01"), Signups: count}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return series, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

package reports

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/enums"
	"github.com/girotrack/girotrack-backend/pkg/logger"
)

// Converter changes an amount from one currency into another. Conversion
// is infallible by contract; degraded rate sources fall back internally.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to enums.Currency) decimal.Decimal
}

// TaxEstimator produces the advisory tax figure for a net profit.
type TaxEstimator interface {
	Estimate(ctx context.Context, netProfit decimal.Decimal, country string) decimal.Decimal
}

// Filter narrows a report to one platform or one expense category. Zero
// value means no narrowing.
type Filter struct {
	PlatformID *uuid.UUID
	Category   *enums.ExpenseCategory
}

// ServiceParams groups dependencies for the reports service.
type ServiceParams struct {
	Repo      Repository
	Converter Converter
	Tax       TaxEstimator
	Logger    *logger.Logger
}

// Service aggregates a driver's ledger into summaries, series, and
// breakdowns. Every figure is converted into the driver's configured
// currency entry by entry before summing, and rounded only when the
// aggregate is assembled.
type Service struct {
	repo      Repository
	converter Converter
	tax       TaxEstimator
	logg      *logger.Logger
}

// NewService builds a reports service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Converter == nil {
		return nil, errors.New("currency converter is required")
	}
	if params.Tax == nil {
		return nil, errors.New("tax estimator is required")
	}
	return &Service{
		repo:      params.Repo,
		converter: params.Converter,
		tax:       params.Tax,
		logg:      params.Logger,
	}, nil
}

// Summary computes headline totals for the period. Net profit is income
// minus expenses; the tax estimate applies to positive net profit only.
func (s *Service) Summary(ctx context.Context, user *models.User, from, to time.Time, filter Filter) (*Summary, error) {
	incomes, expenses, err := s.loadLedger(ctx, user, from, to, filter)
	if err != nil {
		return nil, err
	}

	totalIncome := decimal.Zero
	for _, income := range incomes {
		totalIncome = totalIncome.Add(s.converter.Convert(ctx, income.Amount, income.Currency, user.Currency))
	}

	totalExpenses := decimal.Zero
	for _, expense := range expenses {
		totalExpenses = totalExpenses.Add(s.converter.Convert(ctx, expense.Amount, expense.Currency, user.Currency))
	}

	netProfit := totalIncome.Sub(totalExpenses)
	taxEstimate := s.tax.Estimate(ctx, netProfit, user.Country)

	return &Summary{
		TotalIncome:   totalIncome.Round(2),
		TotalExpenses: totalExpenses.Round(2),
		NetProfit:     netProfit.Round(2),
		TaxEstimate:   taxEstimate.Round(2),
		NetAfterTax:   netProfit.Sub(taxEstimate).Round(2),
		Currency:      user.Currency,
		From:          from,
		To:            to,
	}, nil
}

// MonthlySeries returns per-month income, expenses, and net for the
// period, ascending by month. Months with no activity are omitted rather
// than emitted as zero points.
func (s *Service) MonthlySeries(ctx context.Context, user *models.User, from, to time.Time) ([]MonthlyPoint, error) {
	incomes, expenses, err := s.loadLedger(ctx, user, from, to, Filter{})
	if err != nil {
		return nil, err
	}

	type bucket struct {
		income   decimal.Decimal
		expenses decimal.Decimal
	}
	months := make(map[string]*bucket)
	at := func(key string) *bucket {
		b, ok := months[key]
		if !ok {
			b = &bucket{income: decimal.Zero, expenses: decimal.Zero}
			months[key] = b
		}
		return b
	}

	for _, income := range incomes {
		b := at(monthKey(income.Date))
		b.income = b.income.Add(s.converter.Convert(ctx, income.Amount, income.Currency, user.Currency))
	}
	for _, expense := range expenses {
		b := at(monthKey(expense.Date))
		b.expenses = b.expenses.Add(s.converter.Convert(ctx, expense.Amount, expense.Currency, user.Currency))
	}

	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	series := make([]MonthlyPoint, 0, len(keys))
	for _, key := range keys {
		b := months[key]
		series = append(series, MonthlyPoint{
			Month:    key,
			Income:   b.income.Round(2),
			Expenses: b.expenses.Round(2),
			Net:      b.income.Sub(b.expenses).Round(2),
		})
	}
	return series, nil
}

// IncomeByPlatform breaks the period's income down per platform, with a
// reserved bucket for entries not tied to any platform. Platforms the
// incomes reference but the user has since deleted keep their entries in
// the off-platform bucket.
func (s *Service) IncomeByPlatform(ctx context.Context, user *models.User, from, to time.Time) ([]Bucket, error) {
	var (
		incomes   []models.Income
		platforms []models.Platform
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		incomes, err = s.repo.ListIncomes(groupCtx, user.ID, from, to, nil)
		return err
	})
	group.Go(func() error {
		var err error
		platforms, err = s.repo.ListPlatforms(groupCtx, user.ID)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(platforms))
	for _, platform := range platforms {
		names[platform.ID] = platform.Name
	}

	// Keyed by platform id, never by name: the off-platform bucket uses
	// the zero uuid, so a platform named like its label stays separate.
	totals := make(map[uuid.UUID]decimal.Decimal)
	counts := make(map[uuid.UUID]int)
	for _, income := range incomes {
		var key uuid.UUID
		if income.PlatformID != nil {
			if _, ok := names[*income.PlatformID]; ok {
				key = *income.PlatformID
			}
		}
		converted := s.converter.Convert(ctx, income.Amount, income.Currency, user.Currency)
		totals[key] = totals[key].Add(converted)
		counts[key]++
	}

	buckets := make([]Bucket, 0, len(totals))
	for key, amount := range totals {
		bucket := Bucket{Label: OffPlatformLabel, Amount: amount, Count: counts[key]}
		if key != uuid.Nil {
			id := key
			bucket.PlatformID = &id
			bucket.Label = names[key]
		}
		buckets = append(buckets, bucket)
	}
	return finalizeBuckets(buckets), nil
}

// ExpensesByCategory breaks the period's expenses down per category.
func (s *Service) ExpensesByCategory(ctx context.Context, user *models.User, from, to time.Time) ([]Bucket, error) {
	expenses, err := s.repo.ListExpenses(ctx, user.ID, from, to, nil)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, expense := range expenses {
		label := expense.Category.String()
		converted := s.converter.Convert(ctx, expense.Amount, expense.Currency, user.Currency)
		totals[label] = totals[label].Add(converted)
		counts[label]++
	}

	buckets := make([]Bucket, 0, len(totals))
	for label, amount := range totals {
		buckets = append(buckets, Bucket{Label: label, Amount: amount, Count: counts[label]})
	}
	return finalizeBuckets(buckets), nil
}

func (s *Service) loadLedger(ctx context.Context, user *models.User, from, to time.Time, filter Filter) ([]models.Income, []models.Expense, error) {
	var (
		incomes  []models.Income
		expenses []models.Expense
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		incomes, err = s.repo.ListIncomes(groupCtx, user.ID, from, to, filter.PlatformID)
		return err
	})
	group.Go(func() error {
		var err error
		expenses, err = s.repo.ListExpenses(groupCtx, user.ID, from, to, filter.Category)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return incomes, expenses, nil
}

// finalizeBuckets rounds amounts, fills in percentages relative to the
// grand total (zero when the grand total itself is zero), and sorts by
// descending amount with ties broken by label.
func finalizeBuckets(buckets []Bucket) []Bucket {
	grand := decimal.Zero
	for _, bucket := range buckets {
		grand = grand.Add(bucket.Amount)
	}

	hundred := decimal.NewFromInt(100)
	for i := range buckets {
		if !grand.IsZero() {
			buckets[i].Percentage = buckets[i].Amount.Div(grand).Mul(hundred).Round(2)
		} else {
			buckets[i].Percentage = decimal.Zero
		}
		buckets[i].Amount = buckets[i].Amount.Round(2)
	}

	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].Amount.Equal(buckets[j].Amount) {
			return buckets[i].Amount.GreaterThan(buckets[j].Amount)
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}

func monthKey(date time.Time) string {
	return date.Format("2006-01")
}

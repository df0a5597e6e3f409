package adminkpi

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/girotrack/girotrack-backend/pkg/db/models"
	"github.com/girotrack/girotrack-backend/pkg/enums"
)

type stubRepo struct {
	payments      []models.Payment
	subscriptions []models.Subscription
	totalUsers    int64
	overdue       int64
	signups       map[string]int64
}

func (s *stubRepo) ListPaidPayments(_ context.Context, from, to time.Time) ([]models.Payment, error) {
	var matched []models.Payment
	for _, payment := range s.payments {
		if !payment.PaymentDate.Before(from) && payment.PaymentDate.Before(to) {
			matched = append(matched, payment)
		}
	}
	return matched, nil
}

func (s *stubRepo) ListActiveSubscriptions(context.Context) ([]models.Subscription, error) {
	return s.subscriptions, nil
}

func (s *stubRepo) CountUsers(context.Context) (int64, error) {
	return s.totalUsers, nil
}

func (s *stubRepo) CountUsersCreatedBetween(_ context.Context, from, _ time.Time) (int64, error) {
	return s.signups[from.Format("2006-01")], nil
}

func (s *stubRepo) CountOverdueSubscriptions(context.Context) (int64, error) {
	return s.overdue, nil
}

type fixedRates struct{}

func (fixedRates) Convert(_ context.Context, amount decimal.Decimal, from, to enums.Currency) decimal.Decimal {
	if from == to {
		return amount
	}
	if from == enums.CurrencyUSD && to == enums.CurrencyEUR {
		return amount.Mul(decimal.RequireFromString("0.92"))
	}
	if from == enums.CurrencyBRL && to == enums.CurrencyEUR {
		return amount.Mul(decimal.RequireFromString("0.17"))
	}
	return amount
}

func fixedNow() time.Time {
	return time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, Converter: fixedRates{}, Now: fixedNow})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func paidPayment(amount string, currency enums.Currency, date string) models.Payment {
	at, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Payment{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Amount:      decimal.RequireFromString(amount),
		Currency:    currency,
		Status:      enums.PaymentStatusPaid,
		PaymentDate: at,
	}
}

func activeSub(price string, free bool, currency enums.Currency) models.Subscription {
	userID := uuid.New()
	return models.Subscription{
		ID:     uuid.New(),
		UserID: userID,
		Status: enums.SubscriptionStatusActive,
		Plan: &models.Plan{
			ID:           uuid.New(),
			PriceMonthly: decimal.RequireFromString(price),
			IsDefault:    free,
		},
		User: &models.User{ID: userID, Currency: currency},
	}
}

func TestDashboardNormalizesRevenueToEUR(t *testing.T) {
	repo := &stubRepo{
		payments: []models.Payment{
			paidPayment("100", enums.CurrencyUSD, "2026-06-03"),
			paidPayment("50", enums.CurrencyEUR, "2026-06-10"),
		},
	}
	svc := newTestService(t, repo)

	dashboard, err := svc.Dashboard(context.Background(), 6)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	// 100 USD at the 0.92 fallback quote plus 50 EUR.
	want := decimal.RequireFromString("142")
	if !dashboard.KPIs.RevenueThisMonth.Equal(want) {
		t.Fatalf("revenue this month = %s, want 142", dashboard.KPIs.RevenueThisMonth)
	}
	if dashboard.Currency != enums.CurrencyEUR {
		t.Fatalf("dashboard currency = %s, want EUR", dashboard.Currency)
	}

	if len(dashboard.MonthlyRevenue) != 6 {
		t.Fatalf("expected 6 revenue months, got %d", len(dashboard.MonthlyRevenue))
	}
	last := dashboard.MonthlyRevenue[5]
	if last.Month != "2026-06" || !last.Revenue.Equal(want) {
		t.Fatalf("june revenue = %s/%s, want 2026-06/142", last.Month, last.Revenue)
	}
}

func TestDashboardMRRSkipsFreePlans(t *testing.T) {
	repo := &stubRepo{
		subscriptions: []models.Subscription{
			activeSub("29.90", false, enums.CurrencyBRL),
			activeSub("10", false, enums.CurrencyEUR),
			activeSub("0", true, enums.CurrencyBRL),
		},
		totalUsers: 10,
		overdue:    2,
	}
	svc := newTestService(t, repo)

	dashboard, err := svc.Dashboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	// 29.90 BRL at 0.17 is 5.083, rounded with the EUR price at the
	// presentation boundary.
	want := decimal.RequireFromString("15.08")
	if !dashboard.KPIs.MRR.Equal(want) {
		t.Fatalf("MRR = %s, want %s", dashboard.KPIs.MRR, want)
	}
	if dashboard.KPIs.PayingUsers != 2 || dashboard.KPIs.FreeUsers != 8 {
		t.Fatalf("paying/free = %d/%d, want 2/8", dashboard.KPIs.PayingUsers, dashboard.KPIs.FreeUsers)
	}
	if dashboard.KPIs.OverdueUsers != 2 || dashboard.KPIs.TotalUsers != 10 {
		t.Fatalf("overdue/total = %d/%d, want 2/10", dashboard.KPIs.OverdueUsers, dashboard.KPIs.TotalUsers)
	}
}

func TestDashboardFreeUsersIncludeUnsubscribed(t *testing.T) {
	// 10 users, one paid subscription, one dangling row without its plan
	// preloaded: everyone who is not paying is free.
	repo := &stubRepo{
		subscriptions: []models.Subscription{
			activeSub("10", false, enums.CurrencyEUR),
			{ID: uuid.New(), UserID: uuid.New(), Status: enums.SubscriptionStatusActive},
		},
		totalUsers: 10,
	}
	svc := newTestService(t, repo)

	dashboard, err := svc.Dashboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if dashboard.KPIs.PayingUsers != 1 {
		t.Fatalf("paying = %d, want 1", dashboard.KPIs.PayingUsers)
	}
	if dashboard.KPIs.FreeUsers != 9 {
		t.Fatalf("free = %d, want total minus paying = 9", dashboard.KPIs.FreeUsers)
	}
}

func TestDashboardClampsMonthsBack(t *testing.T) {
	svc := newTestService(t, &stubRepo{})

	dashboard, err := svc.Dashboard(context.Background(), 999)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(dashboard.MonthlyRevenue) != MaxMonthsBack {
		t.Fatalf("expected window capped at %d months, got %d", MaxMonthsBack, len(dashboard.MonthlyRevenue))
	}

	dashboard, err = svc.Dashboard(context.Background(), -3)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(dashboard.MonthlyRevenue) != DefaultMonthsBack {
		t.Fatalf("expected default window of %d months, got %d", DefaultMonthsBack, len(dashboard.MonthlyRevenue))
	}
}

func TestDashboardTopDaysRankedAndCapped(t *testing.T) {
	repo := &stubRepo{payments: []models.Payment{
		paidPayment("10", enums.CurrencyEUR, "2026-06-01"),
		paidPayment("60", enums.CurrencyEUR, "2026-06-02"),
		paidPayment("20", enums.CurrencyEUR, "2026-06-03"),
		paidPayment("30", enums.CurrencyEUR, "2026-06-04"),
		paidPayment("40", enums.CurrencyEUR, "2026-06-05"),
		paidPayment("50", enums.CurrencyEUR, "2026-06-06"),
		paidPayment("25", enums.CurrencyEUR, "2026-06-02"),
	}}
	svc := newTestService(t, repo)

	dashboard, err := svc.Dashboard(context.Background(), 6)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if len(dashboard.TopDays) != 5 {
		t.Fatalf("expected 5 top days, got %d", len(dashboard.TopDays))
	}
	top := dashboard.TopDays[0]
	if top.Date != "2026-06-02" || !top.Revenue.Equal(decimal.RequireFromString("85")) {
		t.Fatalf("top day = %s/%s, want 2026-06-02/85", top.Date, top.Revenue)
	}
	for i := 1; i < len(dashboard.TopDays); i++ {
		if dashboard.TopDays[i].Revenue.GreaterThan(dashboard.TopDays[i-1].Revenue) {
			t.Fatalf("top days not sorted by revenue at %d", i)
		}
	}
}

func TestDashboardMonthlySignups(t *testing.T) {
	repo := &stubRepo{signups: map[string]int64{
		"2026-05": 4,
		"2026-06": 7,
	}}
	svc := newTestService(t, repo)

	dashboard, err := svc.Dashboard(context.Background(), 3)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if len(dashboard.MonthlyUsers) != 3 {
		t.Fatalf("expected 3 signup months, got %d", len(dashboard.MonthlyUsers))
	}
	if dashboard.MonthlyUsers[0].Month != "2026-04" || dashboard.MonthlyUsers[0].Signups != 0 {
		t.Fatalf("april point = %s/%d, want 2026-04/0", dashboard.MonthlyUsers[0].Month, dashboard.MonthlyUsers[0].Signups)
	}
	if dashboard.MonthlyUsers[2].Signups != 7 {
		t.Fatalf("june signups = %d, want 7", dashboard.MonthlyUsers[2].Signups)
	}
}

package seed

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/girotrack/girotrack-backend/pkg/db/models"
)

type recordingPlansRepo struct {
	ensured []models.Plan
}

func (r *recordingPlansRepo) Ensure(_ context.Context, plan models.Plan) error {
	r.ensured = append(r.ensured, plan)
	return nil
}

func (r *recordingPlansRepo) FindDefault(context.Context) (*models.Plan, error) {
	return nil, nil
}

func (r *recordingPlansRepo) List(context.Context) ([]models.Plan, error) {
	return nil, nil
}

type recordingTaxRepo struct {
	ensured map[string]decimal.Decimal
}

func (r *recordingTaxRepo) FindActiveByCountry(context.Context, string) (*models.TaxRule, error) {
	return nil, nil
}

func (r *recordingTaxRepo) Ensure(_ context.Context, country string, percentage decimal.Decimal) error {
	if r.ensured == nil {
		r.ensured = make(map[string]decimal.Decimal)
	}
	r.ensured[country] = percentage
	return nil
}

func TestEnsureDefaultsSeedsPlansAndTaxRules(t *testing.T) {
	plansRepo := &recordingPlansRepo{}
	taxRepo := &recordingTaxRepo{}

	seeder, err := New(Params{Plans: plansRepo, Tax: taxRepo})
	if err != nil {
		t.Fatalf("new seeder: %v", err)
	}

	if err := seeder.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("ensure defaults: %v", err)
	}

	if len(plansRepo.ensured) != 2 {
		t.Fatalf("expected 2 plan tiers, got %d", len(plansRepo.ensured))
	}
	var sawDefault bool
	for _, plan := range plansRepo.ensured {
		if plan.IsDefault {
			sawDefault = true
			if !plan.PriceMonthly.IsZero() {
				t.Fatalf("default tier must be free, got %s", plan.PriceMonthly)
			}
		}
	}
	if !sawDefault {
		t.Fatalf("a default tier must be seeded")
	}

	if got := len(taxRepo.ensured); got != 4 {
		t.Fatalf("expected 4 tax rules, got %d", got)
	}
	if rate, ok := taxRepo.ensured["BR"]; !ok || !rate.Equal(decimal.RequireFromString("0.15")) {
		t.Fatalf("BR rate = %v, want 0.15", rate)
	}
}

package enums

import (
	"fmt"
	"strings"
)

// ExpenseCategory classifies a driver expense.
type ExpenseCategory string

const (
	ExpenseCategoryFuel        ExpenseCategory = "fuel"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryMeals       ExpenseCategory = "meals"
	ExpenseCategoryPhone       ExpenseCategory = "phone"
	ExpenseCategoryInsurance   ExpenseCategory = "insurance"
	ExpenseCategoryTolls       ExpenseCategory = "tolls"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

var validExpenseCategories = []ExpenseCategory{
	ExpenseCategoryFuel,
	ExpenseCategoryMaintenance,
	ExpenseCategoryMeals,
	ExpenseCategoryPhone,
	ExpenseCategoryInsurance,
	ExpenseCategoryTolls,
	ExpenseCategoryOther,
}

// String implements fmt.Stringer.
func (c ExpenseCategory) String() string {
	return string(c)
}

// IsValid reports whether the category is recognized.
func (c ExpenseCategory) IsValid() bool {
	for _, candidate := range validExpenseCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseExpenseCategory converts raw input into an ExpenseCategory.
func ParseExpenseCategory(value string) (ExpenseCategory, error) {
	normalized := ExpenseCategory(strings.ToLower(strings.TrimSpace(value)))
	for _, candidate := range validExpenseCategories {
		if candidate == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid expense category %q", value)
}

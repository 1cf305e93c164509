package services

import (
	"fmt"
	"unicode/utf8"

	"backoffice/internal/models"
)

// ValidationResult is the outcome of bundle validation. It is advisory data,
// not an error: callers decide whether to block persistence when IsValid is
// false. Warnings never block.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateBundle checks a bundle candidate before persistence. Every rule is
// evaluated; there is no short-circuit, so the caller always gets the complete
// list of problems in one pass.
func ValidateBundle(in BundleInput) ValidationResult {
	result := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	if utf8.RuneCountInString(in.Name) < 3 {
		result.Errors = append(result.Errors, "name is required and must be at least 3 characters")
	}

	if len(in.Items) < 2 {
		result.Errors = append(result.Errors, "a bundle needs at least 2 items")
	}

	for i, item := range in.Items {
		if item.Quantity < 1 {
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: quantity must be at least 1", i))
		}
	}

	switch in.Discount.Type {
	case models.DiscountPercentage:
		if in.Discount.Value < 0 || in.Discount.Value > 100 {
			result.Errors = append(result.Errors, "percentage discount must be between 0 and 100")
		}
	case models.DiscountFixed:
		if in.Discount.Value < 0 {
			result.Errors = append(result.Errors, "fixed discount cannot be negative")
		}
	case models.DiscountBundlePrice:
		if in.Discount.Value < 0 {
			result.Errors = append(result.Errors, "bundle price cannot be negative")
		}
	default:
		result.Errors = append(result.Errors, fmt.Sprintf("unknown discount type %q", in.Discount.Type))
	}

	if in.StartDate != nil && in.EndDate != nil && !in.EndDate.After(*in.StartDate) {
		result.Errors = append(result.Errors, "end date must be after start date")
	}

	if len(in.Items) > 10 {
		result.Warnings = append(result.Warnings, "bundles with more than 10 items may confuse the customer")
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

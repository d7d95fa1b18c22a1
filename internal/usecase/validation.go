package usecase

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCreateBuyerInput(input CreateBuyerInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) < 3 {
		errors = append(errors, ValidationError{"name", "must have at least 3 characters"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if input.PricePerLead <= 0 {
		errors = append(errors, ValidationError{"price_per_lead", "must be a positive amount in cents"})
	}

	if input.MinBalance < 0 {
		errors = append(errors, ValidationError{"min_balance", "must not be negative"})
	}

	return errors
}

func ValidateCreateCampaignInput(input CreateCampaignInput) []ValidationError {
	var errors []ValidationError

	if input.BuyerID == 0 {
		errors = append(errors, ValidationError{"buyer_id", "is required"})
	}

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	switch input.DeliveryMethod {
	case "portal", "email", "sms", "api":
	case "":
		errors = append(errors, ValidationError{"delivery_method", "is required"})
	default:
		errors = append(errors, ValidationError{"delivery_method", "must be portal, email, sms or api"})
	}

	if input.DeliveryMethod == "api" {
		if strings.TrimSpace(input.DeliveryTarget) == "" {
			errors = append(errors, ValidationError{"delivery_target", "is required for api delivery"})
		} else if !isValidURL(input.DeliveryTarget) {
			errors = append(errors, ValidationError{"delivery_target", "must be a valid http(s) URL"})
		}
	}

	if input.PricePerLead < 0 {
		errors = append(errors, ValidationError{"price_per_lead", "must not be negative"})
	}
	if input.MaxPerDay < 0 {
		errors = append(errors, ValidationError{"max_per_day", "must not be negative"})
	}
	if input.MaxPerWeek < 0 {
		errors = append(errors, ValidationError{"max_per_week", "must not be negative"})
	}

	return errors
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func joinValidationErrors(errs []ValidationError) string {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return strings.TrimSuffix(msg, ", ")
}

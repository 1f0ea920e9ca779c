package checkout

import (
	"regexp"
	"strings"

	"grocery-storefront/internal/domain"
)

// Input is the delivery and payment selection entered at checkout.
type Input struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	DeliveryType  string `json:"deliveryType"`
	PaymentMethod string `json:"paymentMethod"`
}

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// ValidationError carries the first failing rule per field. While any
// field fails, submission is blocked and no backend call is made.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return "checkout validation failed"
}

// Validate applies the checkout form rules; nil means all rules pass.
func Validate(in Input) *ValidationError {
	fields := make(map[string]string)

	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "Enter full name."
	}
	if strings.TrimSpace(in.Address) == "" {
		fields["address"] = "Enter address."
	}
	if strings.TrimSpace(in.City) == "" {
		fields["city"] = "Enter city."
	}
	if strings.TrimSpace(in.Phone) == "" {
		fields["phone"] = "Enter phone."
	} else if !phonePattern.MatchString(strings.TrimSpace(in.Phone)) {
		fields["phone"] = "Enter valid 10-digit number."
	}

	switch in.DeliveryType {
	case domain.DeliveryHome, domain.DeliveryPickup:
	default:
		fields["deliveryType"] = "Select delivery."
	}

	switch in.PaymentMethod {
	case domain.PaymentCOD, domain.PaymentOnline:
	default:
		fields["paymentMethod"] = "Select payment."
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

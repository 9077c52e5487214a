// Package lead defines the prospective-customer record collected by the
// in-chat form and its pre-submission validation.
package lead

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Lead is the contact record sent to POST /register. Field names match
// the wire format.
type Lead struct {
	Name        string `json:"name" validate:"required"`
	Mobile      string `json:"mobile" validate:"required,number,len=10"`
	Location    string `json:"location" validate:"required"`
	HouseType   string `json:"house_type" validate:"required"`
	BudgetRange string `json:"budget_range" validate:"required"`
	SessionID   string `json:"session_id,omitempty" validate:"-"`
}

// Normalize trims surrounding whitespace from every user-entered field.
func (l *Lead) Normalize() {
	l.Name = strings.TrimSpace(l.Name)
	l.Mobile = strings.TrimSpace(l.Mobile)
	l.Location = strings.TrimSpace(l.Location)
	l.HouseType = strings.TrimSpace(l.HouseType)
	l.BudgetRange = strings.TrimSpace(l.BudgetRange)
}

// Validate rejects the record unless every field is non-empty and the
// mobile number is exactly 10 digits. It performs no network calls.
func (l Lead) Validate() error {
	if err := validate.Struct(l); err != nil {
		return fmt.Errorf("invalid lead: %w", err)
	}
	return nil
}

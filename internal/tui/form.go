package tui

import (
	"errors"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/serenestudio/serenechat/pkg/lead"
)

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

// leadDraft holds the form field values between renders and across
// resubmissions after a failed register call.
type leadDraft struct {
	name        string
	mobile      string
	location    string
	houseType   string
	budgetRange string
}

func (d *leadDraft) lead() lead.Lead {
	return lead.Lead{
		Name:        d.name,
		Mobile:      d.mobile,
		Location:    d.location,
		HouseType:   d.houseType,
		BudgetRange: d.budgetRange,
	}
}

// newLeadForm builds the in-chat lead form. Field validators mirror the
// pre-submission rules in pkg/lead so the form cannot complete with
// values the widget would reject.
func newLeadForm(d *leadDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&d.name).
				Validate(notEmpty),
			huh.NewInput().
				Title("Mobile number").
				Description("10 digits").
				Value(&d.mobile).
				Validate(tenDigits),
			huh.NewInput().
				Title("Property location").
				Value(&d.location).
				Validate(notEmpty),
			huh.NewSelect[string]().
				Title("Type of property").
				Options(huh.NewOptions("1BHK", "2BHK", "3BHK", "4BHK+", "Villa", "Office")...).
				Value(&d.houseType),
			huh.NewSelect[string]().
				Title("Budget range").
				Options(huh.NewOptions(
					"Under ₹5 Lakh",
					"₹5-10 Lakh",
					"₹10-20 Lakh",
					"Above ₹20 Lakh",
				)...).
				Value(&d.budgetRange),
		),
	)
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("this field is required")
	}
	return nil
}

func tenDigits(s string) error {
	if !mobilePattern.MatchString(strings.TrimSpace(s)) {
		return errors.New("enter a 10-digit mobile number")
	}
	return nil
}

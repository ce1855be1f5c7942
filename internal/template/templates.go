// Package template provides pre-defined budget templates for common use
// cases. Templates carry zero amounts; the operator fills them in during
// budget creation.
package template

import (
	"fmt"
	"strings"
)

// Priority marks how essential a template entry is.
type Priority string

// Entry priorities.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Entry is one suggested line item in a template.
type Entry struct {
	Category string
	Name     string
	Priority Priority
}

// Template is a named catalog of suggested line items.
type Template struct {
	Name        string
	Description string
	Entries     []Entry
}

// Names lists the available template names in menu order.
func Names() []string {
	return []string{"personal", "business", "project", "event"}
}

// Get returns the template with the given name (case-insensitive).
func Get(name string) (Template, error) {
	switch strings.ToLower(name) {
	case "personal":
		return personal, nil
	case "business":
		return business, nil
	case "project":
		return project, nil
	case "event":
		return event, nil
	default:
		return Template{}, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}

// All returns every template in menu order.
func All() []Template {
	return []Template{personal, business, project, event}
}

var personal = Template{
	Name:        "personal",
	Description: "Personal/household budget",
	Entries: []Entry{
		{"Housing", "Rent/Mortgage", PriorityHigh},
		{"Housing", "Utilities", PriorityHigh},
		{"Housing", "Home Maintenance", PriorityMedium},
		{"Transportation", "Car Payment/Lease", PriorityHigh},
		{"Transportation", "Fuel", PriorityHigh},
		{"Transportation", "Insurance", PriorityHigh},
		{"Transportation", "Maintenance", PriorityMedium},
		{"Food", "Groceries", PriorityHigh},
		{"Food", "Dining Out", PriorityLow},
		{"Healthcare", "Insurance", PriorityHigh},
		{"Healthcare", "Medications", PriorityHigh},
		{"Healthcare", "Doctor Visits", PriorityMedium},
		{"Savings", "Emergency Fund", PriorityHigh},
		{"Savings", "Retirement", PriorityHigh},
		{"Savings", "Investments", PriorityMedium},
		{"Debt Payments", "Credit Cards", PriorityHigh},
		{"Debt Payments", "Student Loans", PriorityHigh},
		{"Entertainment", "Subscriptions", PriorityLow},
		{"Entertainment", "Hobbies", PriorityLow},
		{"Entertainment", "Vacations", PriorityLow},
		{"Personal Care", "Clothing", PriorityMedium},
		{"Personal Care", "Gym/Fitness", PriorityLow},
		{"Education", "Tuition", PriorityHigh},
		{"Education", "Books/Supplies", PriorityMedium},
		{"Miscellaneous", "Gifts", PriorityLow},
		{"Miscellaneous", "Charity", PriorityLow},
	},
}

var business = Template{
	Name:        "business",
	Description: "Business/company budget",
	Entries: []Entry{
		{"Personnel", "Salaries", PriorityHigh},
		{"Personnel", "Benefits", PriorityHigh},
		{"Personnel", "Training", PriorityMedium},
		{"Personnel", "Recruitment", PriorityMedium},
		{"Operations", "Rent/Lease", PriorityHigh},
		{"Operations", "Utilities", PriorityHigh},
		{"Operations", "Office Supplies", PriorityMedium},
		{"Operations", "Equipment", PriorityMedium},
		{"Technology", "Software Licenses", PriorityHigh},
		{"Technology", "Hardware", PriorityMedium},
		{"Technology", "IT Support", PriorityMedium},
		{"Technology", "Cloud Services", PriorityMedium},
		{"Marketing", "Digital Advertising", PriorityHigh},
		{"Marketing", "Content Creation", PriorityMedium},
		{"Marketing", "Events/Conferences", PriorityLow},
		{"Sales", "Commissions", PriorityHigh},
		{"Sales", "Travel", PriorityMedium},
		{"Professional Services", "Legal", PriorityMedium},
		{"Professional Services", "Accounting", PriorityHigh},
		{"Insurance", "Liability Insurance", PriorityHigh},
		{"Insurance", "Property Insurance", PriorityHigh},
		{"R&D", "Product Development", PriorityMedium},
		{"Contingency", "Emergency Fund", PriorityHigh},
		{"Contingency", "Reserve", PriorityMedium},
	},
}

var project = Template{
	Name:        "project",
	Description: "Project budget",
	Entries: []Entry{
		{"Labor", "Project Manager", PriorityHigh},
		{"Labor", "Developers/Engineers", PriorityHigh},
		{"Labor", "Designers", PriorityMedium},
		{"Labor", "QA/Testing", PriorityHigh},
		{"Materials", "Raw Materials", PriorityHigh},
		{"Materials", "Equipment", PriorityHigh},
		{"Materials", "Consumables", PriorityMedium},
		{"Software/Tools", "Licenses", PriorityHigh},
		{"Software/Tools", "Development Tools", PriorityMedium},
		{"Infrastructure", "Hosting", PriorityHigh},
		{"Infrastructure", "Domain/SSL", PriorityMedium},
		{"Infrastructure", "Storage", PriorityMedium},
		{"Third Party Services", "APIs", PriorityMedium},
		{"Third Party Services", "Contractors", PriorityMedium},
		{"Training", "Team Training", PriorityLow},
		{"Training", "Documentation", PriorityMedium},
		{"Contingency", "Risk Reserve", PriorityHigh},
		{"Contingency", "Change Requests", PriorityMedium},
	},
}

var event = Template{
	Name:        "event",
	Description: "Event budget",
	Entries: []Entry{
		{"Venue", "Venue Rental", PriorityHigh},
		{"Venue", "Setup/Breakdown", PriorityHigh},
		{"Venue", "Parking", PriorityMedium},
		{"Catering", "Food", PriorityHigh},
		{"Catering", "Beverages", PriorityHigh},
		{"Catering", "Staff", PriorityMedium},
		{"Entertainment", "Speakers/Performers", PriorityHigh},
		{"Entertainment", "Audio/Visual", PriorityHigh},
		{"Marketing", "Invitations", PriorityMedium},
		{"Marketing", "Promotion", PriorityMedium},
		{"Logistics", "Transportation", PriorityMedium},
		{"Logistics", "Accommodation", PriorityMedium},
		{"Contingency", "Emergency Fund", PriorityHigh},
	},
}

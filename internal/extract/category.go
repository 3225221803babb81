package extract

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BusinessType is the closed set of categories used to pick content templates.
type BusinessType string

const (
	TypeDesign     BusinessType = "design"
	TypeConsulting BusinessType = "consulting"
	TypeAgency     BusinessType = "agency"
	TypeRestaurant BusinessType = "restaurant"
	TypeLegal      BusinessType = "legal"
	TypePortfolio  BusinessType = "portfolio"
	TypeMedical    BusinessType = "medical"
	TypeBusiness   BusinessType = "business"
)

type categoryRule struct {
	Type     BusinessType
	Keywords []string
}

// categoryTable is scanned in order and the first rule with a matching keyword
// wins. Prompts often hit several rules ("design agency"), so the order here
// is the tie-break and must not be re-sorted.
var categoryTable = []categoryRule{
	{Type: TypeDesign, Keywords: []string{"design", "studio", "creative"}},
	{Type: TypeConsulting, Keywords: []string{"consulting", "consultant", "advisory"}},
	{Type: TypeAgency, Keywords: []string{"agency", "development", "developer", "software", "digital"}},
	{Type: TypeRestaurant, Keywords: []string{"restaurant", "cafe", "café", "food", "bakery", "bistro", "coffee"}},
	{Type: TypeLegal, Keywords: []string{"law", "legal", "attorney", "lawyer"}},
	{Type: TypePortfolio, Keywords: []string{"portfolio", "photographer", "photography", "artist"}},
	{Type: TypeMedical, Keywords: []string{"medical", "healthcare", "clinic", "doctor", "dental", "health"}},
}

// Classify returns the business type of a prompt.
func Classify(prompt string) BusinessType {
	lower := strings.ToLower(prompt)
	for _, rule := range categoryTable {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Type
			}
		}
	}
	return TypeBusiness
}

// AllTypes lists every business type in table order, followed by the fallback.
func AllTypes() []BusinessType {
	out := make([]BusinessType, 0, len(categoryTable)+1)
	for _, rule := range categoryTable {
		out = append(out, rule.Type)
	}
	return append(out, TypeBusiness)
}

// Valid reports whether t is one of the known types.
func (t BusinessType) Valid() bool {
	for _, known := range AllTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Label is the display form, e.g. "Restaurant".
func (t BusinessType) Label() string {
	return cases.Title(language.English).String(string(t))
}

// Keywords returns the classification keywords for t (nil for the fallback).
func (t BusinessType) Keywords() []string {
	for _, rule := range categoryTable {
		if rule.Type == t {
			return append([]string(nil), rule.Keywords...)
		}
	}
	return nil
}

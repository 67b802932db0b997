// Package form implements the in-memory draft of a municipality budget
// record and the state transitions the data-entry form performs on it:
// field edits, code autofill, name search, plan line management, and the
// derived spending total.
package form

import (
	"strconv"
	"unicode/utf8"

	"munibudget/internal/models"
	"munibudget/internal/reference"
)

// Field names accepted by SetField.
const (
	FieldMuniCode    = "muniCode"
	FieldMuniName    = "muniName"
	FieldProvince    = "province"
	FieldWebsite     = "website"
	FieldTotalBudget = "totalBudget"
)

// Plan line field names accepted by SetLineField.
const (
	LineFieldCategory = "category"
	LineFieldPlan     = "plan"
	LineFieldBudget   = "budget"
	LineFieldActual   = "actual"
)

const (
	// codeAutofillLength is the code length at which autofill kicks in.
	codeAutofillLength = 8
	// searchMinLength is the minimum query length that shows results.
	searchMinLength = 2
	// maxSearchResults caps the visible search result list.
	maxSearchResults = 7
)

// Data is the draft record being edited. TotalSpent is derived: it always
// equals the sum of the plan lines' actual amounts.
type Data struct {
	MuniCode    string            `json:"muniCode"`
	MuniName    string            `json:"muniName"`
	Province    string            `json:"province"`
	Website     string            `json:"website"`
	TotalBudget float64           `json:"totalBudget"`
	TotalSpent  float64           `json:"totalSpent"`
	Plans       []models.PlanItem `json:"plans"`
}

// Controller owns one draft plus the transient search state driving the
// municipality lookup. It is not safe for concurrent use; the form is a
// single-user, single-session surface.
type Controller struct {
	draft          Data
	municipalities []reference.Municipality

	searchQuery   string
	searchResults []reference.Municipality
	showResults   bool
}

// NewController creates a Controller over the loaded reference list. A
// nil list disables autofill and search but leaves the form usable.
func NewController(municipalities []reference.Municipality) *Controller {
	return &Controller{municipalities: municipalities}
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Data {
	d := c.draft
	d.Plans = append([]models.PlanItem(nil), c.draft.Plans...)
	return d
}

// Query returns the active search query.
func (c *Controller) Query() string { return c.searchQuery }

// Results returns the current search results, already truncated to the
// display limit.
func (c *Controller) Results() []reference.Municipality { return c.searchResults }

// ShowResults reports whether the result list should be visible.
func (c *Controller) ShowResults() bool { return c.showResults }

// SetField applies a header field edit. Text fields are stored as-is.
// totalBudget coerces empty input to 0 and otherwise parses as a number.
// Editing muniCode to a full-length code that matches the reference list
// autofills name, province, and website, overwriting whatever was typed
// there; editing it away from a match afterwards does not clear them.
// Editing muniName drives the search query.
func (c *Controller) SetField(name, value string) {
	switch name {
	case FieldMuniCode:
		c.draft.MuniCode = value
		if utf8.RuneCountInString(value) >= codeAutofillLength {
			if m, ok := reference.FindByCode(c.municipalities, value); ok {
				c.draft.MuniName = m.Name
				c.draft.Province = m.Province
				c.draft.Website = m.Website
			}
		}
	case FieldMuniName:
		c.draft.MuniName = value
		c.setQuery(value)
	case FieldProvince:
		c.draft.Province = value
	case FieldWebsite:
		c.draft.Website = value
	case FieldTotalBudget:
		c.draft.TotalBudget = parseNumber(value)
	}
}

func (c *Controller) setQuery(query string) {
	c.searchQuery = query
	if utf8.RuneCountInString(query) >= searchMinLength && len(c.municipalities) > 0 {
		results := reference.SearchByName(c.municipalities, query)
		if len(results) > maxSearchResults {
			results = results[:maxSearchResults]
		}
		c.searchResults = results
		c.showResults = len(results) > 0
		return
	}
	c.searchResults = nil
	c.showResults = false
}

// Select applies a search result to the draft, overwriting code, name,
// province, and website, and clears the search state.
func (c *Controller) Select(m reference.Municipality) {
	c.draft.MuniCode = m.Code
	c.draft.MuniName = m.Name
	c.draft.Province = m.Province
	c.draft.Website = m.Website
	c.searchQuery = ""
	c.searchResults = nil
	c.showResults = false
}

// AddLine appends a plan line with the default category.
func (c *Controller) AddLine() {
	c.draft.Plans = append(c.draft.Plans, models.PlanItem{Category: models.CategoryGeneralAdmin})
	c.recomputeTotal()
}

// RemoveLine removes the plan line at index i. Removal is positional;
// out-of-range indices are ignored.
func (c *Controller) RemoveLine(i int) {
	if i < 0 || i >= len(c.draft.Plans) {
		return
	}
	c.draft.Plans = append(c.draft.Plans[:i], c.draft.Plans[i+1:]...)
	c.recomputeTotal()
}

// SetLineField applies an edit to one plan line, with the same numeric
// coercion rule as SetField. Out-of-range indices are ignored.
func (c *Controller) SetLineField(i int, field, value string) {
	if i < 0 || i >= len(c.draft.Plans) {
		return
	}
	switch field {
	case LineFieldCategory:
		c.draft.Plans[i].Category = value
	case LineFieldPlan:
		c.draft.Plans[i].Plan = value
	case LineFieldBudget:
		c.draft.Plans[i].Budget = parseNumber(value)
	case LineFieldActual:
		c.draft.Plans[i].Actual = parseNumber(value)
	}
	c.recomputeTotal()
}

// Reset replaces the draft with an empty record. The reference list is
// untouched.
func (c *Controller) Reset() {
	c.draft = Data{}
}

// recomputeTotal maintains the derived-total invariant
// totalSpent == sum of plan actuals. It is idempotent.
func (c *Controller) recomputeTotal() {
	var total float64
	for _, p := range c.draft.Plans {
		total += p.Actual
	}
	c.draft.TotalSpent = total
}

// parseNumber coerces form input to a number: empty input is 0, and
// unparseable input also degrades to 0 rather than poisoning the draft.
func parseNumber(value string) float64 {
	if value == "" {
		return 0
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return n
}

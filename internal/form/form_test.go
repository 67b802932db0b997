package form

import (
	"testing"

	"munibudget/internal/models"
	"munibudget/internal/reference"
)

var testMunis = []reference.Municipality{
	{ID: 1, Code: "10100101", Name: "เทศบาลนครเชียงใหม่", Province: "เชียงใหม่", Website: "example.go.th"},
	{ID: 2, Code: "10100102", Name: "เทศบาลนครเชียงราย", Province: "เชียงราย", Website: "www.chiangraicity.go.th"},
	{ID: 3, Code: "10200101", Name: "เทศบาลนครขอนแก่น", Province: "ขอนแก่น", Website: "www.kkmuni.go.th"},
}

func TestSetField_LastWriteWins(t *testing.T) {
	c := NewController(nil)

	c.SetField(FieldProvince, "first")
	c.SetField(FieldProvince, "second")
	c.SetField(FieldWebsite, "a.go.th")
	c.SetField(FieldWebsite, "b.go.th")
	c.SetField(FieldTotalBudget, "100")
	c.SetField(FieldTotalBudget, "250.5")

	d := c.Draft()
	if d.Province != "second" {
		t.Errorf("expected last province write, got %q", d.Province)
	}
	if d.Website != "b.go.th" {
		t.Errorf("expected last website write, got %q", d.Website)
	}
	if d.TotalBudget != 250.5 {
		t.Errorf("expected last budget write, got %v", d.TotalBudget)
	}
}

func TestSetField_NumberCoercion(t *testing.T) {
	c := NewController(nil)

	c.SetField(FieldTotalBudget, "")
	if d := c.Draft(); d.TotalBudget != 0 {
		t.Errorf("empty input should coerce to 0, got %v", d.TotalBudget)
	}

	c.SetField(FieldTotalBudget, "not a number")
	if d := c.Draft(); d.TotalBudget != 0 {
		t.Errorf("unparseable input should coerce to 0, got %v", d.TotalBudget)
	}

	// Negative values pass through; only the UI hints min=0.
	c.SetField(FieldTotalBudget, "-5")
	if d := c.Draft(); d.TotalBudget != -5 {
		t.Errorf("expected -5, got %v", d.TotalBudget)
	}
}

func TestSetField_CodeAutofill(t *testing.T) {
	c := NewController(testMunis)
	c.SetField(FieldMuniCode, "10100101")

	d := c.Draft()
	if d.MuniCode != "10100101" {
		t.Errorf("expected code kept, got %q", d.MuniCode)
	}
	if d.MuniName != "เทศบาลนครเชียงใหม่" {
		t.Errorf("expected autofilled name, got %q", d.MuniName)
	}
	if d.Province != "เชียงใหม่" {
		t.Errorf("expected autofilled province, got %q", d.Province)
	}
	if d.Website != "example.go.th" {
		t.Errorf("expected autofilled website, got %q", d.Website)
	}
}

func TestSetField_CodeAutofillOverwritesTypedFields(t *testing.T) {
	c := NewController(testMunis)
	c.SetField(FieldMuniName, "something the user typed")
	c.SetField(FieldProvince, "typed province")

	c.SetField(FieldMuniCode, "10100101")

	d := c.Draft()
	if d.MuniName != "เทศบาลนครเชียงใหม่" || d.Province != "เชียงใหม่" {
		t.Errorf("autofill should overwrite typed fields, got %+v", d)
	}
}

func TestSetField_NoAutofillBelowThresholdOrWithoutMatch(t *testing.T) {
	c := NewController(testMunis)

	c.SetField(FieldMuniCode, "1010010")
	if d := c.Draft(); d.MuniName != "" {
		t.Errorf("no autofill below 8 characters, got %q", d.MuniName)
	}

	c.SetField(FieldMuniCode, "99999999")
	if d := c.Draft(); d.MuniName != "" {
		t.Errorf("no autofill without a match, got %q", d.MuniName)
	}
}

func TestSetField_AutofilledFieldsNotClearedOnLaterEdit(t *testing.T) {
	c := NewController(testMunis)
	c.SetField(FieldMuniCode, "10100101")

	// Editing the code so it no longer matches leaves the autofilled
	// fields in place.
	c.SetField(FieldMuniCode, "101001019")

	d := c.Draft()
	if d.MuniCode != "101001019" {
		t.Errorf("expected edited code, got %q", d.MuniCode)
	}
	if d.MuniName != "เทศบาลนครเชียงใหม่" || d.Province != "เชียงใหม่" || d.Website != "example.go.th" {
		t.Errorf("autofilled fields should persist, got %+v", d)
	}
}

func TestNameSearch(t *testing.T) {
	c := NewController(testMunis)

	c.SetField(FieldMuniName, "เ")
	if c.ShowResults() {
		t.Error("single-character query should not show results")
	}

	c.SetField(FieldMuniName, "เชียง")
	if !c.ShowResults() {
		t.Fatal("expected results to be visible")
	}
	if len(c.Results()) != 2 {
		t.Fatalf("expected 2 results, got %d", len(c.Results()))
	}

	c.SetField(FieldMuniName, "ไม่มีอยู่จริง")
	if c.ShowResults() {
		t.Error("query with no matches should hide results")
	}
}

func TestNameSearch_TruncatesToSeven(t *testing.T) {
	var many []reference.Municipality
	for i := 0; i < 10; i++ {
		many = append(many, reference.Municipality{Code: "1010010" + string(rune('0'+i)), Name: "เทศบาลเชียงทดสอบ"})
	}
	c := NewController(many)

	c.SetField(FieldMuniName, "เชียง")
	if len(c.Results()) != 7 {
		t.Fatalf("expected 7 results, got %d", len(c.Results()))
	}
}

func TestSelect(t *testing.T) {
	c := NewController(testMunis)
	c.SetField(FieldMuniName, "เชียง")

	c.Select(testMunis[1])

	d := c.Draft()
	if d.MuniCode != "10100102" || d.MuniName != "เทศบาลนครเชียงราย" || d.Province != "เชียงราย" {
		t.Errorf("select should overwrite draft fields, got %+v", d)
	}
	if c.Query() != "" || c.ShowResults() {
		t.Error("select should clear the search state")
	}
}

func TestLines_AddRemoveAndEdit(t *testing.T) {
	c := NewController(nil)

	c.AddLine()
	c.AddLine()
	d := c.Draft()
	if len(d.Plans) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(d.Plans))
	}
	if d.Plans[0].Category != models.CategoryGeneralAdmin {
		t.Errorf("new lines default to the first category, got %q", d.Plans[0].Category)
	}

	c.SetLineField(0, LineFieldPlan, "แผนงานหนึ่ง")
	c.SetLineField(0, LineFieldPlan, "แผนงานสอง")
	c.SetLineField(1, LineFieldCategory, models.CategoryEconomy)
	c.SetLineField(1, LineFieldBudget, "1000")
	c.SetLineField(1, LineFieldActual, "750")

	d = c.Draft()
	if d.Plans[0].Plan != "แผนงานสอง" {
		t.Errorf("expected last write per line field, got %q", d.Plans[0].Plan)
	}
	if d.Plans[1].Category != models.CategoryEconomy || d.Plans[1].Budget != 1000 || d.Plans[1].Actual != 750 {
		t.Errorf("line edits mismatch: %+v", d.Plans[1])
	}

	// Removal is positional.
	c.RemoveLine(0)
	d = c.Draft()
	if len(d.Plans) != 1 || d.Plans[0].Actual != 750 {
		t.Errorf("expected the second line to remain, got %+v", d.Plans)
	}

	// Out-of-range indices are ignored.
	c.RemoveLine(5)
	c.SetLineField(9, LineFieldPlan, "x")
	if len(c.Draft().Plans) != 1 {
		t.Errorf("out-of-range ops must not change the draft")
	}
}

func TestDerivedTotal_HoldsAfterEveryOperation(t *testing.T) {
	c := NewController(nil)

	check := func(step string) {
		t.Helper()
		d := c.Draft()
		var sum float64
		for _, p := range d.Plans {
			sum += p.Actual
		}
		if d.TotalSpent != sum {
			t.Errorf("%s: totalSpent %v != sum of actuals %v", step, d.TotalSpent, sum)
		}
	}

	c.AddLine()
	check("after add")
	c.SetLineField(0, LineFieldActual, "100")
	check("after first edit")
	c.AddLine()
	c.SetLineField(1, LineFieldActual, "250")
	check("after second edit")
	c.SetLineField(0, LineFieldActual, "50")
	check("after re-edit")
	c.RemoveLine(1)
	check("after remove")

	if got := c.Draft().TotalSpent; got != 50 {
		t.Errorf("expected totalSpent 50, got %v", got)
	}
}

func TestReset(t *testing.T) {
	c := NewController(testMunis)
	c.SetField(FieldMuniCode, "10100101")
	c.AddLine()
	c.SetLineField(0, LineFieldActual, "42")

	c.Reset()

	d := c.Draft()
	if d.MuniCode != "" || d.MuniName != "" || len(d.Plans) != 0 || d.TotalSpent != 0 {
		t.Errorf("expected empty draft after reset, got %+v", d)
	}

	// Reference data survives: autofill still works.
	c.SetField(FieldMuniCode, "10100102")
	if got := c.Draft().MuniName; got != "เทศบาลนครเชียงราย" {
		t.Errorf("reference lookup should survive reset, got %q", got)
	}
}

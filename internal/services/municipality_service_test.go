package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"munibudget/internal/models"
	"munibudget/internal/testutil"
)

func TestUpsert_Insert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewMunicipalityService(db)

	record := &models.BudgetRecord{
		MuniCode:    "10100101",
		MuniName:    "เทศบาลนครเชียงใหม่",
		Province:    "เชียงใหม่",
		Website:     "cmcity.go.th",
		TotalBudget: 1000000,
		TotalSpent:  250000,
		Plans: models.PlanList{
			{Category: models.CategoryGeneralAdmin, Plan: "แผนงานบริหารงานทั่วไป", Budget: 500000, Actual: 250000},
		},
	}

	saved, operation, err := service.Upsert(record)
	testutil.AssertNoError(t, err)

	if operation != OperationInserted {
		t.Errorf("expected operation %q, got %q", OperationInserted, operation)
	}
	if saved.ID == 0 {
		t.Error("expected a persisted ID")
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestUpsert_InsertWithNilPlans(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewMunicipalityService(db)

	saved, _, err := service.Upsert(&models.BudgetRecord{
		MuniCode: "10100101",
		MuniName: "เทศบาลนครเชียงใหม่",
		Province: "เชียงใหม่",
	})
	testutil.AssertNoError(t, err)

	if saved.Plans == nil {
		t.Error("expected nil plans to be normalized to an empty list")
	}
}

func TestUpsert_UpdatePreservesCreatedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewMunicipalityService(db)

	original := testutil.CreateTestRecordWithCode(t, db, "10100101")
	createdAt := original.CreatedAt

	time.Sleep(10 * time.Millisecond)

	saved, operation, err := service.Upsert(&models.BudgetRecord{
		MuniCode:    "10100101",
		MuniName:    "เทศบาลนครเชียงใหม่ (แก้ไข)",
		Province:    "เชียงใหม่",
		TotalBudget: 2000000,
		TotalSpent:  500000,
		Plans: models.PlanList{
			{Category: models.CategoryEconomy, Plan: "แผนงานการพาณิชย์", Budget: 2000000, Actual: 500000},
		},
	})
	testutil.AssertNoError(t, err)

	if operation != OperationUpdated {
		t.Errorf("expected operation %q, got %q", OperationUpdated, operation)
	}
	if saved.ID != original.ID {
		t.Errorf("expected the existing row to be updated, got ID %d want %d", saved.ID, original.ID)
	}
	if !saved.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt changed on update: %v -> %v", createdAt, saved.CreatedAt)
	}
	if !saved.UpdatedAt.After(createdAt) {
		t.Error("expected UpdatedAt to advance on update")
	}
	if saved.MuniName != "เทศบาลนครเชียงใหม่ (แก้ไข)" || saved.TotalBudget != 2000000 {
		t.Errorf("update did not overwrite payload fields: %+v", saved)
	}
	if len(saved.Plans) != 1 || saved.Plans[0].Category != models.CategoryEconomy {
		t.Errorf("update did not replace plans: %+v", saved.Plans)
	}

	// Only one row exists for the code.
	var count int64
	db.Model(&models.BudgetRecord{}).Where("muni_code = ?", "10100101").Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one row, got %d", count)
	}
}

func TestUpsert_InsertRaceReturnsDuplicateCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewMunicipalityService(db)

	// Sneak a conflicting row in between the existence pre-check and
	// the insert, as a concurrent writer would. The guard keeps the
	// rival insert from recursing into itself.
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("rival_insert", func(tx *gorm.DB) {
		if raced {
			return
		}
		raced = true

		rival := &models.BudgetRecord{
			MuniCode: "10100101",
			MuniName: "เทศบาลนครเชียงใหม่",
			Province: "เชียงใหม่",
			Plans:    models.PlanList{},
		}
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(rival).Error; err != nil {
			t.Errorf("failed to insert rival row: %v", err)
		}
	})
	testutil.AssertNoError(t, err)
	defer func() { _ = db.Callback().Create().Remove("rival_insert") }()

	_, _, err = service.Upsert(&models.BudgetRecord{
		MuniCode: "10100101",
		MuniName: "เทศบาลนครเชียงใหม่",
		Province: "เชียงใหม่",
	})
	testutil.AssertAppError(t, err, "DUPLICATE_CODE")
}

func TestGetByCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewMunicipalityService(db)

	created := testutil.CreateTestRecordWithCode(t, db, "10100101")

	record, err := service.GetByCode("10100101")
	testutil.AssertNoError(t, err)
	if record.MuniName != created.MuniName {
		t.Errorf("expected %q, got %q", created.MuniName, record.MuniName)
	}
	if len(record.Plans) != 1 {
		t.Errorf("expected the plans to round-trip, got %+v", record.Plans)
	}
}

func TestGetByCode_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewMunicipalityService(db)

	_, err := service.GetByCode("99999999")
	testutil.AssertAppError(t, err, "MUNICIPALITY_NOT_FOUND")
}

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewMunicipalityService(db)

	testutil.CreateTestRecordWithCode(t, db, "20200202")
	testutil.CreateTestRecordWithCode(t, db, "10100101")

	summaries, err := service.List()
	testutil.AssertNoError(t, err)

	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].MuniCode != "10100101" || summaries[1].MuniCode != "20200202" {
		t.Errorf("expected ordering by code, got %+v", summaries)
	}
	if summaries[0].MuniName == "" || summaries[0].TotalBudget == 0 {
		t.Errorf("expected projected fields to be populated: %+v", summaries[0])
	}
}

func TestList_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewMunicipalityService(db)

	summaries, err := service.List()
	testutil.AssertNoError(t, err)
	if len(summaries) != 0 {
		t.Errorf("expected no summaries, got %+v", summaries)
	}
}

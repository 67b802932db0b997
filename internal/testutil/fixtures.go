package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"munibudget/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestRecord creates a budget record with a unique municipal code.
func CreateTestRecord(t *testing.T, db *gorm.DB) *models.BudgetRecord {
	t.Helper()
	code := fmt.Sprintf("999%05d", nextID())
	return CreateTestRecordWithCode(t, db, code)
}

// CreateTestRecordWithCode creates a budget record with the given code.
func CreateTestRecordWithCode(t *testing.T, db *gorm.DB, code string) *models.BudgetRecord {
	t.Helper()

	record := &models.BudgetRecord{
		MuniCode:    code,
		MuniName:    fmt.Sprintf("เทศบาลทดสอบ %d", nextID()),
		Province:    "เชียงใหม่",
		Website:     "example.go.th",
		TotalBudget: 1000000,
		TotalSpent:  250000,
		Plans: models.PlanList{
			{Category: models.CategoryGeneralAdmin, Plan: "แผนงานบริหารงานทั่วไป", Budget: 500000, Actual: 250000},
		},
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test record: %v", err)
	}
	return record
}

package services

import "munibudget/internal/models"

// Operation reported by an upsert: whether the record was newly
// inserted or an existing one was updated.
const (
	OperationInserted = "inserted"
	OperationUpdated  = "updated"
)

// MunicipalityServicer defines the contract for municipality budget
// business logic.
type MunicipalityServicer interface {
	// Upsert inserts or updates the record keyed by its muniCode and
	// reports which operation took place.
	Upsert(record *models.BudgetRecord) (*models.BudgetRecord, string, error)
	// List returns all stored records projected to their summary fields.
	List() ([]models.BudgetRecordSummary, error)
	// GetByCode returns the record with the given muniCode.
	GetByCode(code string) (*models.BudgetRecord, error)
}

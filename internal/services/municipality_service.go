package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "munibudget/internal/errors"
	"munibudget/internal/models"
)

// municipalityService handles municipality budget business logic.
type municipalityService struct {
	db *gorm.DB
}

// NewMunicipalityService creates a new MunicipalityServicer.
func NewMunicipalityService(db *gorm.DB) MunicipalityServicer {
	return &municipalityService{db: db}
}

// Upsert inserts a new record or updates the existing one with the same
// muniCode. Updates overwrite all payload fields and advance UpdatedAt;
// CreatedAt is preserved.
func (s *municipalityService) Upsert(record *models.BudgetRecord) (*models.BudgetRecord, string, error) {
	var existing models.BudgetRecord
	err := s.db.Where("muni_code = ?", record.MuniCode).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if record.Plans == nil {
			record.Plans = models.PlanList{}
		}
		if err := s.db.Create(record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a race with a concurrent insert on the same code.
				return nil, "", apperrors.Wrap(apperrors.ErrDuplicateCode, err)
			}
			return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return record, OperationInserted, nil
	}

	existing.MuniName = record.MuniName
	existing.Province = record.Province
	existing.Website = record.Website
	existing.TotalBudget = record.TotalBudget
	existing.TotalSpent = record.TotalSpent
	existing.Plans = record.Plans
	if existing.Plans == nil {
		existing.Plans = models.PlanList{}
	}

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &existing, OperationUpdated, nil
}

// List returns all stored records projected to the summary fields.
func (s *municipalityService) List() ([]models.BudgetRecordSummary, error) {
	var summaries []models.BudgetRecordSummary
	err := s.db.Model(&models.BudgetRecord{}).
		Select("muni_code", "muni_name", "province", "website", "total_budget", "total_spent").
		Order("muni_code").
		Find(&summaries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return summaries, nil
}

// GetByCode returns the record with the given muniCode.
func (s *municipalityService) GetByCode(code string) (*models.BudgetRecord, error) {
	var record models.BudgetRecord
	if err := s.db.Where("muni_code = ?", code).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMunicipalityNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &record, nil
}

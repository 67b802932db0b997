package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "munibudget/internal/errors"
	"munibudget/internal/models"
	"munibudget/internal/services"
)

// MunicipalityHandler handles municipality budget requests.
type MunicipalityHandler struct {
	service services.MunicipalityServicer
}

// NewMunicipalityHandler creates a new MunicipalityHandler.
func NewMunicipalityHandler(service services.MunicipalityServicer) *MunicipalityHandler {
	return &MunicipalityHandler{service: service}
}

// PlanItemRequest is one budget line in a save request.
type PlanItemRequest struct {
	Category string  `json:"category" binding:"required,budget_category"`
	Plan     string  `json:"plan"`
	Budget   float64 `json:"budget"`
	Actual   float64 `json:"actual"`
}

// SaveFormRequest is the payload for the upsert endpoint.
type SaveFormRequest struct {
	MuniCode    string            `json:"muniCode" binding:"required"`
	MuniName    string            `json:"muniName" binding:"required"`
	Province    string            `json:"province" binding:"required"`
	Website     string            `json:"website"`
	TotalBudget float64           `json:"totalBudget"`
	TotalSpent  float64           `json:"totalSpent"`
	Plans       []PlanItemRequest `json:"plans" binding:"omitempty,dive"`
}

// Save upserts a municipality budget record keyed by muniCode.
// Responds 201 with operation "inserted" for a new record, 200 with
// "updated" for an existing one.
func (h *MunicipalityHandler) Save(c *gin.Context) {
	var req SaveFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return
	}

	plans := make(models.PlanList, 0, len(req.Plans))
	for _, p := range req.Plans {
		plans = append(plans, models.PlanItem{
			Category: p.Category,
			Plan:     p.Plan,
			Budget:   p.Budget,
			Actual:   p.Actual,
		})
	}

	record := &models.BudgetRecord{
		MuniCode:    req.MuniCode,
		MuniName:    req.MuniName,
		Province:    req.Province,
		Website:     req.Website,
		TotalBudget: req.TotalBudget,
		TotalSpent:  req.TotalSpent,
		Plans:       plans,
	}

	saved, operation, err := h.service.Upsert(record)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status := http.StatusOK
	message := "Municipality data updated successfully"
	if operation == services.OperationInserted {
		status = http.StatusCreated
		message = "Municipality data saved successfully"
	}

	c.JSON(status, gin.H{
		"success":   true,
		"message":   message,
		"operation": operation,
		"data":      saved,
	})
}

// List returns all stored records projected to their summary fields.
func (h *MunicipalityHandler) List(c *gin.Context) {
	summaries, err := h.service.List()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": summaries})
}

// GetByCode returns a single record by municipal code, or 404.
func (h *MunicipalityHandler) GetByCode(c *gin.Context) {
	record, err := h.service.GetByCode(c.Param("code"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Budget plan categories. These are the four canonical labels offered by
// the data-entry form; the API rejects anything else.
const (
	CategoryGeneralAdmin     = "ด้านบริหารทั่วไป"
	CategoryCommunityService = "ด้านบริการชุมชนและสังคม"
	CategoryEconomy          = "ด้านเศรษฐกิจ"
	CategoryOther            = "ด้านดำเนินงานอื่น"
)

// Categories lists the canonical plan categories in display order.
var Categories = []string{
	CategoryGeneralAdmin,
	CategoryCommunityService,
	CategoryEconomy,
	CategoryOther,
}

// ValidCategory reports whether c is one of the canonical plan categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// PlanItem is one budget line embedded in a BudgetRecord. It has no
// identity of its own; order within Plans is display order.
type PlanItem struct {
	Category string  `json:"category"`
	Plan     string  `json:"plan"`
	Budget   float64 `json:"budget"`
	Actual   float64 `json:"actual"`
}

// PlanList stores a record's plan items as a single JSON column.
type PlanList []PlanItem

// Value implements driver.Valuer, serializing the list to JSON.
func (p PlanList) Value() (driver.Value, error) {
	if p == nil {
		p = PlanList{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling plan list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner, deserializing the JSON column.
func (p *PlanList) Scan(value interface{}) error {
	if value == nil {
		*p = PlanList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported plan list column type %T", value)
	}
	if len(data) == 0 {
		*p = PlanList{}
		return nil
	}
	return json.Unmarshal(data, p)
}

// BudgetRecord is the persisted municipal budget entity, keyed by the
// municipal code (muniCode). The surrogate ID exists only for the store.
type BudgetRecord struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	MuniCode    string    `gorm:"uniqueIndex;not null" json:"muniCode"`
	MuniName    string    `gorm:"not null" json:"muniName"`
	Province    string    `gorm:"not null" json:"province"`
	Website     string    `json:"website"`
	TotalBudget float64   `gorm:"default:0" json:"totalBudget"`
	TotalSpent  float64   `gorm:"default:0" json:"totalSpent"`
	Plans       PlanList  `gorm:"type:jsonb" json:"plans"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName keeps the table name aligned with the migrations.
func (BudgetRecord) TableName() string {
	return "municipalities"
}

// BudgetRecordSummary is the projection returned by the list endpoint.
type BudgetRecordSummary struct {
	MuniCode    string  `json:"muniCode"`
	MuniName    string  `json:"muniName"`
	Province    string  `json:"province"`
	Website     string  `json:"website"`
	TotalBudget float64 `json:"totalBudget"`
	TotalSpent  float64 `json:"totalSpent"`
}

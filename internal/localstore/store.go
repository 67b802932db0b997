// Package localstore is the client-side fallback store used when the
// API is unreachable. It keeps one JSON file per municipal code in the
// Thai-labeled export shape. Best-effort, single-device, non-syncing;
// last write per key wins.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"munibudget/internal/form"
)

const filePrefix = "municipality_budget_"

// PlanEntry is one budget line in the Thai-labeled export shape.
type PlanEntry struct {
	Category string  `json:"ประเภท"`
	Plan     string  `json:"แผนงาน"`
	Budget   float64 `json:"งบประมาณ"`
	Actual   float64 `json:"ใช้จริง"`
}

// Record is the Thai-labeled export shape. Scalar values are wrapped
// in one-element arrays to match the published export format.
type Record struct {
	MuniCode    []string    `json:"รหัส อปท."`
	MuniName    []string    `json:"ชื่ออปท."`
	Province    []string    `json:"จังหวัด"`
	Website     []string    `json:"เว็บไซต์"`
	TotalBudget []float64   `json:"งบประมาณรวม"`
	TotalSpent  []float64   `json:"รายจ่ายจริงรวม"`
	Plans       []PlanEntry `json:"แผนงบประมาณ"`
}

// FromForm converts a draft into the export shape.
func FromForm(d form.Data) Record {
	plans := make([]PlanEntry, 0, len(d.Plans))
	for _, p := range d.Plans {
		plans = append(plans, PlanEntry{
			Category: p.Category,
			Plan:     p.Plan,
			Budget:   p.Budget,
			Actual:   p.Actual,
		})
	}
	return Record{
		MuniCode:    []string{d.MuniCode},
		MuniName:    []string{d.MuniName},
		Province:    []string{d.Province},
		Website:     []string{d.Website},
		TotalBudget: []float64{d.TotalBudget},
		TotalSpent:  []float64{d.TotalSpent},
		Plans:       plans,
	}
}

// Store persists records under a directory, one file per municipal code.
type Store struct {
	dir string
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating local store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(code string) string {
	return filepath.Join(s.dir, filePrefix+code+".json")
}

// Save upserts the record under its municipal code, overwriting any
// prior copy. It reports "inserted" when no prior entry existed and
// "updated" otherwise.
func (s *Store) Save(code string, rec Record) (string, error) {
	path := s.path(code)

	operation := "inserted"
	if _, err := os.Stat(path); err == nil {
		operation = "updated"
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshaling record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing record: %w", err)
	}
	return operation, nil
}

// Get returns the stored record for a code, with ok=false when absent.
func (s *Store) Get(code string) (Record, bool, error) {
	data, err := os.ReadFile(s.path(code))
	if os.IsNotExist(err) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("reading record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("parsing record: %w", err)
	}
	return rec, true, nil
}

// All returns every stored record.
func (s *Store) All() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing local store: %w", err)
	}

	var records []Record
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		code := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), ".json")
		rec, ok, err := s.Get(code)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// Package reference provides the static municipality lookup table used
// for autofill and name search. The data is read-only: loaded once per
// session from a delimited text file and scanned linearly afterwards.
package reference

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Municipality is one row of the reference dataset.
type Municipality struct {
	ID       int
	Code     string
	Name     string
	Type     string
	District string
	Region   string
	Province string
	Website  string
}

// Column positions in the dataset; index 0 is unused.
const (
	colCode     = 1
	colName     = 2
	colType     = 3
	colDistrict = 4
	colProvince = 5
	colRegion   = 6
	colWebsite  = 7
)

// Load parses the delimited municipality table. The first line is a
// header and is skipped; blank lines are ignored. Rows are split on
// commas without quoting, matching the source file's format; short or
// malformed rows yield empty-string fields instead of failing the load.
func Load(r io.Reader) ([]Municipality, error) {
	scanner := bufio.NewScanner(r)

	var munis []Municipality
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if first {
			first = false
			continue
		}

		fields := strings.Split(line, ",")
		munis = append(munis, Municipality{
			ID:       len(munis) + 1,
			Code:     field(fields, colCode),
			Name:     field(fields, colName),
			Type:     field(fields, colType),
			District: field(fields, colDistrict),
			Province: field(fields, colProvince),
			Region:   field(fields, colRegion),
			Website:  field(fields, colWebsite),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading municipality data: %w", err)
	}
	return munis, nil
}

// LoadFile loads the reference dataset from a file. Callers should
// degrade to an empty list on error; the form stays usable without
// autofill and search.
func LoadFile(path string) ([]Municipality, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening municipality data: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

func field(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

// FindByCode returns the first municipality with an exactly matching
// code. Codes are expected unique.
func FindByCode(munis []Municipality, code string) (Municipality, bool) {
	for _, m := range munis {
		if m.Code == code {
			return m, true
		}
	}
	return Municipality{}, false
}

// SearchByName returns all municipalities whose name or code contains
// the query, case-insensitively, in original list order. Callers are
// responsible for truncating to a display limit.
func SearchByName(munis []Municipality, query string) []Municipality {
	q := strings.ToLower(strings.TrimSpace(query))

	var results []Municipality
	for _, m := range munis {
		if strings.Contains(strings.ToLower(m.Name), q) || strings.Contains(strings.ToLower(m.Code), q) {
			results = append(results, m)
		}
	}
	return results
}

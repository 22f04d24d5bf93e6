package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"inflation-forecast-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

// DatasetService parses the two uploaded tables (inflation and GDP growth) and
// aligns them into one annual table. Rows that fail numeric coercion are dropped
// during construction; alignment is a strict inner join on year with no imputation.
type DatasetService struct {
	inflationSkipRows int
}

// NewDatasetService creates a DatasetService. skipRows is the number of non-data
// header lines at the top of the inflation source (the GDP source has none).
func NewDatasetService(skipRows int) *DatasetService {
	if skipRows < 0 {
		skipRows = 0
	}
	return &DatasetService{inflationSkipRows: skipRows}
}

// ParseInflationTable parses the inflation upload. The first skipRows lines are
// discarded, the remainder is read as (year, value) rows. Returns the surviving
// rows sorted ascending by year and the number of dropped rows.
func (s *DatasetService) ParseInflationTable(data []byte, filename string) ([]models.RawPoint, int, error) {
	rows, err := rowsFromUpload(data, filename)
	if err != nil {
		return nil, 0, err
	}
	if len(rows) > s.inflationSkipRows {
		rows = rows[s.inflationSkipRows:]
	} else {
		rows = nil
	}
	return coerceRows(rows)
}

// ParseGDPTable parses the GDP growth upload: (year, growth) rows with no header skip.
func (s *DatasetService) ParseGDPTable(data []byte, filename string) ([]models.RawPoint, int, error) {
	rows, err := rowsFromUpload(data, filename)
	if err != nil {
		return nil, 0, err
	}
	return coerceRows(rows)
}

// Align inner-joins the two sorted tables on year. Years present in only one
// source are silently excluded; there is no imputation.
func (s *DatasetService) Align(inflation, gdp []models.RawPoint) ([]models.AnnualPoint, error) {
	gdpByYear := make(map[int]float64, len(gdp))
	for _, p := range gdp {
		gdpByYear[p.Year] = p.Value
	}

	aligned := make([]models.AnnualPoint, 0, len(inflation))
	for _, p := range inflation {
		if g, ok := gdpByYear[p.Year]; ok {
			aligned = append(aligned, models.AnnualPoint{Year: p.Year, Inflation: p.Value, GDPGrowth: g})
		}
	}
	if len(aligned) == 0 {
		return nil, ErrNoOverlap
	}
	return aligned, nil
}

// rowsFromUpload reads raw cells from a CSV or Excel upload, picking the reader
// by file extension the way the file-analysis endpoint does.
func rowsFromUpload(data []byte, filename string) ([][]string, error) {
	name := strings.ToLower(filename)
	if strings.HasSuffix(name, ".xlsx") {
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputFormat, err)
		}
		defer f.Close()
		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputFormat, err)
		}
		return rows, nil
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputFormat, err)
	}
	return rows, nil
}

// coerceRows converts raw cells to (year, value) points. The year cell must
// parse as an integer (this discards footnote and metadata rows); the value
// cell must parse as a float. Rows failing either check are dropped and
// counted. The result is sorted ascending by year with duplicate years
// collapsed (last occurrence wins).
func coerceRows(rows [][]string) ([]models.RawPoint, int, error) {
	var points []models.RawPoint
	dropped := 0

	for _, row := range rows {
		if len(row) < 2 {
			dropped++
			continue
		}
		yearStr := strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff"))
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			dropped++
			continue
		}
		valStr := filterNumeric(strings.TrimSpace(row[1]))
		if valStr == "" {
			dropped++
			continue
		}
		v, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			dropped++
			continue
		}
		points = append(points, models.RawPoint{Year: year, Value: v})
	}

	if len(points) == 0 {
		return nil, dropped, fmt.Errorf("%w: no valid (year, value) rows", ErrInputFormat)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })

	// collapse duplicate years, last wins
	dedup := points[:0]
	for _, p := range points {
		if len(dedup) > 0 && dedup[len(dedup)-1].Year == p.Year {
			dedup[len(dedup)-1] = p
		} else {
			dedup = append(dedup, p)
		}
	}
	return dedup, dropped, nil
}

// filterNumeric keeps digits, dot, and minus so values like "2.5%" or "1,234" parse.
func filterNumeric(s string) string {
	b := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b = append(b, r)
		}
	}
	return string(b)
}

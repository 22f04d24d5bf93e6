package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const inflationCSV = `Title,UK CPIH Annual Rate
Dataset,CPIH01
Unit,%
Base year,2015=100
Source,ONS
Important notes,see release
2015,0.4
2016,1.0
2017,2.6
2018,2.3
2019,1.7
2020,1.0
2021,2.5
2022,7.9
Note: 2022 figure is provisional,
`

const gdpCSV = `Year,Growth
2010,1.9
2011,1.5
2012,1.5
2013,1.8
2014,3.2
2015,2.4
2016,2.2
2017,2.4
2018,1.4
2019,1.6
2020,-10.4
`

func TestParseInflationTableSkipsHeaderAndFootnotes(t *testing.T) {
	svc := NewDatasetService(6)

	points, dropped, err := svc.ParseInflationTable([]byte(inflationCSV), "cpih.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(points) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(points))
	}
	if dropped != 1 {
		t.Errorf("expected 1 dropped footnote row, got %d", dropped)
	}
	if points[0].Year != 2015 || points[len(points)-1].Year != 2022 {
		t.Errorf("expected years 2015..2022, got %d..%d", points[0].Year, points[len(points)-1].Year)
	}
	for i := 1; i < len(points); i++ {
		if points[i].Year <= points[i-1].Year {
			t.Errorf("years not strictly increasing at index %d", i)
		}
	}
}

func TestParseGDPTableDropsHeaderRow(t *testing.T) {
	svc := NewDatasetService(6)

	points, dropped, err := svc.ParseGDPTable([]byte(gdpCSV), "gdp.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(points) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(points))
	}
	// The "Year,Growth" header fails integer coercion and is dropped.
	if dropped != 1 {
		t.Errorf("expected 1 dropped row, got %d", dropped)
	}
	if points[10].Value != -10.4 {
		t.Errorf("expected 2020 growth -10.4, got %f", points[10].Value)
	}
}

func TestParseTableAllRowsInvalid(t *testing.T) {
	svc := NewDatasetService(0)

	_, _, err := svc.ParseGDPTable([]byte("abc,def\nghi,jkl\n"), "bad.csv")
	if !errors.Is(err, ErrInputFormat) {
		t.Fatalf("expected ErrInputFormat, got %v", err)
	}
}

func TestParseTableDuplicateYearLastWins(t *testing.T) {
	svc := NewDatasetService(0)

	points, _, err := svc.ParseGDPTable([]byte("2019,1.0\n2019,2.0\n2020,3.0\n"), "dup.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 rows after dedup, got %d", len(points))
	}
	if points[0].Value != 2.0 {
		t.Errorf("expected last duplicate to win (2.0), got %f", points[0].Value)
	}
}

func TestParseTableUnsortedInputIsSorted(t *testing.T) {
	svc := NewDatasetService(0)

	points, _, err := svc.ParseGDPTable([]byte("2020,3.0\n2018,1.0\n2019,2.0\n"), "unsorted.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(points); i++ {
		if points[i].Year <= points[i-1].Year {
			t.Fatalf("rows not sorted ascending: %v", points)
		}
	}
}

func TestAlignInnerJoin(t *testing.T) {
	svc := NewDatasetService(6)

	inflation, _, err := svc.ParseInflationTable([]byte(inflationCSV), "cpih.csv")
	if err != nil {
		t.Fatalf("inflation parse failed: %v", err)
	}
	gdp, _, err := svc.ParseGDPTable([]byte(gdpCSV), "gdp.csv")
	if err != nil {
		t.Fatalf("gdp parse failed: %v", err)
	}

	table, err := svc.Align(inflation, gdp)
	if err != nil {
		t.Fatalf("align failed: %v", err)
	}

	// Inflation covers 2015-2022, GDP covers 2010-2020: overlap is 2015-2020.
	if len(table) != 6 {
		t.Fatalf("expected 6 aligned rows, got %d", len(table))
	}
	for i, row := range table {
		if row.Year != 2015+i {
			t.Errorf("expected year %d at index %d, got %d", 2015+i, i, row.Year)
		}
	}
}

func TestAlignNoOverlap(t *testing.T) {
	svc := NewDatasetService(0)

	inflation, _, err := svc.ParseGDPTable([]byte("2000,1.0\n2001,2.0\n"), "a.csv")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	gdp, _, err := svc.ParseGDPTable([]byte("2010,1.0\n2011,2.0\n"), "b.csv")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	_, err = svc.Align(inflation, gdp)
	if !errors.Is(err, ErrNoOverlap) {
		t.Fatalf("expected ErrNoOverlap, got %v", err)
	}
}

func TestParseXLSXUpload(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{2018, 1.4},
		{2019, 1.6},
		{2020, -10.4},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("SetCellValue failed: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}

	svc := NewDatasetService(0)
	points, _, err := svc.ParseGDPTable(buf.Bytes(), "gdp.xlsx")
	if err != nil {
		t.Fatalf("xlsx parse failed: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 rows from xlsx, got %d", len(points))
	}
	if points[0].Year != 2018 {
		t.Errorf("expected first year 2018, got %d", points[0].Year)
	}
}

func TestParseValueWithUnits(t *testing.T) {
	svc := NewDatasetService(0)

	var sb strings.Builder
	for year, v := range map[int]string{2018: "1.4%", 2019: "\"1,6\""} {
		fmt.Fprintf(&sb, "%d,%s\n", year, v)
	}

	points, _, err := svc.ParseGDPTable([]byte(sb.String()), "units.csv")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(points))
	}
}

// Package export writes the farmer directory as a spreadsheet for officers.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"agroalert.dev/dashboard-service/pkg/models"
)

const (
	SheetName   = "Farmers"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	FileName    = "farmers.xlsx"
)

var Header = []string{"Name", "Phone", "Location", "Latitude", "Longitude", "Crops"}

var columnWidths = []float64{28, 18, 22, 12, 12, 8}

// CropCounts counts plantings per farmer.
func CropCounts(plantings []models.FarmerCrop) map[string]int {
	counts := make(map[string]int)
	for _, fc := range plantings {
		counts[fc.FarmerID]++
	}
	return counts
}

// Farmers renders one row per farmer, in the order given, under a header row.
func Farmers(farmers []models.Farmer, cropCounts map[string]int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E3F2E1"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(SheetName, name, name, columnWidths[col]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(Header), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, farmer := range farmers {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			farmer.Name,
			farmer.Phone,
			farmer.LocationName,
			farmer.Latitude,
			farmer.Longitude,
			cropCounts[farmer.ID],
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row for farmer %s: %w", farmer.ID, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

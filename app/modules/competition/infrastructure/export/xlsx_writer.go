// Package competitionexport renders competition rosters as spreadsheets.
package competitionexport

import (
	"fmt"
	"time"

	competitiondb "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/repositories"
	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the worksheet holding the roster.
	SheetName = "Registrations"
	// ContentType is the MIME type of the rendered workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Header is the first row of the roster sheet.
var Header = []string{"First name", "Last name", "Age", "User ID", "Registered at"}

// Filename returns the download name for a competition's roster.
func Filename(c *competitiondb.Competition) string {
	return c.Slug + "-registrations.xlsx"
}

// Registrations renders one row per registration below a header row.
func Registrations(regs []*competitiondb.Registration) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range regs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := []any{
			r.FirstName,
			r.LastName,
			r.Age,
			r.UserID,
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write XLSX file: %w", err)
	}
	return buf.Bytes(), nil
}

// Package export writes admin data snapshots as Excel workbooks.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wellspring/internal/models"
	"wellspring/internal/notes"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Exporter produces XLSX files under a configured directory.
type Exporter struct {
	dir    string
	logger *zerolog.Logger
}

func NewExporter(dir string, logger *zerolog.Logger) *Exporter {
	return &Exporter{dir: dir, logger: logger}
}

// Bookings writes a workbook with one Bookings sheet and one
// Customers sheet and returns the file path.
func (e *Exporter) Bookings(ctx context.Context, bookings []*models.Booking, customers []*models.Customer) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeBookingsSheet(f, bookings); err != nil {
		return "", err
	}
	if err := e.writeCustomersSheet(f, customers); err != nil {
		return "", err
	}
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02_150405"))
	filePath := filepath.Join(e.dir, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Excel file created")
	return filePath, nil
}

var bookingHeaders = []string{
	"ID", "Service", "Expert", "Date", "Status",
	"Customer", "Email", "Phone", "Concern", "Meeting Link",
}

func (e *Exporter) writeBookingsSheet(f *excelize.File, bookings []*models.Booking) error {
	const sheetName = "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	writeHeaderRow(f, sheetName, bookingHeaders)

	for i, b := range bookings {
		// Same contact resolution as the customer list: a notes email
		// supplies the whole identity, otherwise the profile does.
		parsed := notes.Decode(b.CustomerNotes)
		name, email, phone := parsed.Name, parsed.Email, parsed.Phone
		if parsed.Email == "" && b.Profile != nil {
			name, email, phone = b.Profile.FullName, b.Profile.Email, b.Profile.Phone
		}

		row := i + 2
		values := []interface{}{
			b.ID, b.ServiceID, b.ExpertID, b.BookingDate.Format("2006-01-02 15:04"), b.Status,
			name, email, phone, parsed.Concern, b.MeetingLink,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 36)
	_ = f.SetColWidth(sheetName, "B", "J", 22)
	return nil
}

var customerHeaders = []string{"Email", "Name", "Phone", "Bookings"}

func (e *Exporter) writeCustomersSheet(f *excelize.File, customers []*models.Customer) error {
	const sheetName = "Customers"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("error creating sheet: %v", err)
	}

	writeHeaderRow(f, sheetName, customerHeaders)

	for i, c := range customers {
		row := i + 2
		values := []interface{}{c.Email, c.FullName, c.Phone, len(c.Bookings)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "D", 25)
	return nil
}

func writeHeaderRow(f *excelize.File, sheetName string, headers []string) {
	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

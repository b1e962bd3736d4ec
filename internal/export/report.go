package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/booking-slots/internal/dto"
)

const reportSheet = "Appointments"

var reportHeader = []string{"Date", "Time", "Status", "Customer", "Service", "Duration (min)", "Notes"}

// AppointmentReport writes one row per appointment, cancelled ones included,
// to a single-sheet workbook.
func AppointmentReport(title string, appointments []dto.AppointmentListDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	f.SetCellValue(reportSheet, "A1", title)

	for i, h := range reportHeader {
		c := cell(i+1, 2)
		f.SetCellValue(reportSheet, c, h)
		f.SetCellStyle(reportSheet, c, c, headerStyle)
	}
	f.SetColWidth(reportSheet, "A", "B", 12)
	f.SetColWidth(reportSheet, "C", "E", 20)
	f.SetColWidth(reportSheet, "G", "G", 40)

	for i, ap := range appointments {
		row := i + 3
		values := []any{
			ap.Date.String(),
			ap.Time.String(),
			ap.Status,
			firstNonEmpty(ap.CustomerName, ap.CustomerID),
			firstNonEmpty(ap.ServiceName, ap.ServiceID),
			ap.DurationMin,
			ap.Notes,
		}
		for col, v := range values {
			f.SetCellValue(reportSheet, cell(col+1, row), v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

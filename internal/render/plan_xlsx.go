package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/xuri/excelize/v2"
)

var planHeader = []interface{}{
	"id", "dow", "day", "time", "subject", "level", "teacher", "center", "seatsLeft", "status", "coins",
}

// ExportPlanXLSX выгружает выбранные слоты и итоговый расчёт в Excel.
// Колонки совпадают с форматом каталога, поэтому файл читается catalog.DecodeXLSX;
// строки итогов без id, времени и предмета при чтении пропускаются.
func ExportPlanXLSX(slots []model.Slot, quote planner.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Plan"
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &planHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, s := range slots {
		var seats interface{} = ""
		if s.SeatsLeft != model.SeatsUnknown {
			seats = s.SeatsLeft
		}
		excelRow := []interface{}{
			s.ID,
			s.DayOfWeek,
			model.WeekdayShort(s.DayOfWeek),
			s.TimeRange,
			s.Subject,
			s.Level,
			s.Teacher,
			s.Center,
			seats,
			string(s.Status),
			s.Price,
		}
		if err := setRow(f, sheet, row, excelRow); err != nil {
			return nil, err
		}
		row++
	}

	row++
	totals := [][]interface{}{
		totalsRow("Subtotal", quote.Subtotal),
		totalsRow("Discount", quote.Discount),
		totalsRow("Due / month", quote.Due),
	}
	for _, t := range totals {
		if err := setRow(f, sheet, row, t); err != nil {
			return nil, err
		}
		row++
	}

	if err := f.SetColWidth(sheet, "D", "E", 18); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// PlanFileName имя файла выгрузки
func PlanFileName(now time.Time) string {
	return fmt.Sprintf("weekly_plan_%s.xlsx", now.Format("20060102_150405"))
}

// totalsRow подпись в колонке status, сумма в колонке coins
func totalsRow(label string, amount int64) []interface{} {
	row := make([]interface{}, len(planHeader))
	for i := range row {
		row[i] = ""
	}
	row[len(row)-2] = label
	row[len(row)-1] = amount
	return row
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/xuri/excelize/v2"
)

var ErrUnknownFormat = errors.New("unknown catalog format")

// Decode выбирает формат по расширению имени (.json или .xlsx)
func Decode(name string, r io.Reader) ([]model.Slot, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return DecodeJSON(r)
	case ".xlsx":
		return DecodeXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// DecodeJSON читает массив записей каталога
func DecodeJSON(r io.Reader) ([]model.Slot, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode catalog json: %w", err)
	}

	slots := make([]model.Slot, 0, len(records))
	for _, rec := range records {
		slots = append(slots, rec.toSlot())
	}
	return slots, nil
}

// DecodeXLSX читает первый лист: строка заголовков с теми же именами колонок, что и в JSON
func DecodeXLSX(r io.Reader) ([]model.Slot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog xlsx: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open catalog xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(name)] = i
	}

	cell := func(row []string, name string) (string, bool) {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[i])
		return v, v != ""
	}

	slots := make([]model.Slot, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var rec record
		rec.ID, _ = cell(row, "id")
		rec.Day, _ = cell(row, "day")
		rec.DateLabel, _ = cell(row, "dateLabel")
		rec.Time, _ = cell(row, "time")
		rec.Subject, _ = cell(row, "subject")
		rec.Level, _ = cell(row, "level")
		rec.Teacher, _ = cell(row, "teacher")
		rec.Center, _ = cell(row, "center")

		if v, ok := cell(row, "dow"); ok {
			rec.DayOfWeek, _ = strconv.Atoi(v)
		}
		if v, ok := cell(row, "coins"); ok {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				rec.Coins = &n
			}
		}
		if v, ok := cell(row, "seatsLeft"); ok {
			if n, err := strconv.Atoi(v); err == nil {
				rec.SeatsLeft = &n
			}
		}
		if v, ok := cell(row, "status"); ok {
			rec.Status = &v
		}

		if rec.ID == "" && rec.Time == "" && rec.Subject == "" {
			continue
		}
		slots = append(slots, rec.toSlot())
	}
	return slots, nil
}

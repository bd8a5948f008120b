package common

import (
	"strconv"
	"strings"

	"github.com/Freeeeeet/afterschool_planner/internal/planner"
)

// Форматы callback data. Telegram ограничивает их 64 байтами,
// поэтому предмет передаётся индексом в списке предметов каталога.
const (
	PrefixDay     = "day:"     // day:3
	PrefixBand    = "band:"    // band:morning
	PrefixSubject = "subj:"    // subj:2 или subj:all
	PrefixSlot    = "slot:"    // slot:<id>
	PrefixScreen  = "screen:"  // screen:planner

	DataOverview = "overview"
	DataExport   = "export"
	DataConfirm  = "confirm"
	DataReset    = "reset"
	DataNoop     = "noop"

	SubjectAll = "all"
)

// Kind тип разобранного callback
type Kind int

const (
	KindUnknown Kind = iota
	KindDay
	KindBand
	KindSubject
	KindAllSubjects
	KindSlot
	KindScreen
	KindOverview
	KindExport
	KindConfirm
	KindReset
	KindNoop
)

// Callback разобранные данные кнопки
type Callback struct {
	Kind   Kind
	Day    int
	Band   planner.Band
	Index  int
	SlotID string
	Screen planner.Screen
}

// ParseCallback разбирает callback data. Неизвестный формат даёт KindUnknown.
func ParseCallback(data string) Callback {
	switch data {
	case DataOverview:
		return Callback{Kind: KindOverview}
	case DataExport:
		return Callback{Kind: KindExport}
	case DataConfirm:
		return Callback{Kind: KindConfirm}
	case DataReset:
		return Callback{Kind: KindReset}
	case DataNoop:
		return Callback{Kind: KindNoop}
	}

	switch {
	case strings.HasPrefix(data, PrefixDay):
		day, err := strconv.Atoi(strings.TrimPrefix(data, PrefixDay))
		if err != nil {
			return Callback{}
		}
		return Callback{Kind: KindDay, Day: day}

	case strings.HasPrefix(data, PrefixBand):
		band, ok := planner.ParseBand(strings.TrimPrefix(data, PrefixBand))
		if !ok {
			return Callback{}
		}
		return Callback{Kind: KindBand, Band: band}

	case strings.HasPrefix(data, PrefixSubject):
		raw := strings.TrimPrefix(data, PrefixSubject)
		if raw == SubjectAll {
			return Callback{Kind: KindAllSubjects}
		}
		idx, err := strconv.Atoi(raw)
		if err != nil || idx < 0 {
			return Callback{}
		}
		return Callback{Kind: KindSubject, Index: idx}

	case strings.HasPrefix(data, PrefixSlot):
		id := strings.TrimPrefix(data, PrefixSlot)
		if id == "" {
			return Callback{}
		}
		return Callback{Kind: KindSlot, SlotID: id}

	case strings.HasPrefix(data, PrefixScreen):
		screen, ok := planner.ParseScreen(strings.TrimPrefix(data, PrefixScreen))
		if !ok {
			return Callback{}
		}
		return Callback{Kind: KindScreen, Screen: screen}
	}

	return Callback{}
}

func DayData(day int) string { return PrefixDay + strconv.Itoa(day) }
func BandData(b planner.Band) string { return PrefixBand + string(b) }
func SubjectData(idx int) string { return PrefixSubject + strconv.Itoa(idx) }
func SlotData(id string) string { return PrefixSlot + id }
func ScreenData(s planner.Screen) string { return PrefixScreen + string(s) }

package render

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image/color"
	"sync"

	"github.com/Freeeeeet/afterschool_planner/internal/formatting"
	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = ""
	FontStyleMedium  FontStyle = "medium"
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	headerHeight     = 130
	leftLabelsWidth  = 110
	dayHeaderHeight  = 44
	rowMinHeight     = 120
	cardHeight       = 52
	cardGap          = 6
	dayPaddingX      = 6
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	footerHeight     = 40
)

// Константы шрифтов
const (
	titleFontSize    = 30.0
	subtitleFontSize = 20.0
	dayFontSize      = 22.0
	rowLabelFontSize = 18.0
	cardFontSize     = 15.0
	cardSmallSize    = 13.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	textColor      = color.RGBA{80, 85, 90, 220}
	rowLabelColor  = color.RGBA{110, 115, 120, 200}
	rowLineColor   = color.NRGBA{150, 150, 150, 255}
	activeDayColor = color.NRGBA{255, 214, 102, 140}
	evenDayColor   = color.NRGBA{240, 240, 240, 255}
	oddDayColor    = color.NRGBA{225, 225, 225, 255}
	cardTextColor  = color.RGBA{20, 24, 28, 230}
	shadowColor    = color.RGBA{0, 0, 0, 20}
	emptyTextColor = color.RGBA{150, 150, 150, 255}

	subjectPalette = []color.RGBA{
		{133, 193, 85, 220},
		{120, 170, 230, 220},
		{255, 182, 120, 230},
		{200, 150, 230, 220},
		{240, 200, 90, 220},
		{110, 200, 190, 220},
		{255, 160, 170, 230},
	}
)

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// loadFont ставит шрифт Go нужного стиля или basicfont, если разобрать не удалось
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	var data []byte
	switch style {
	case FontStyleBold:
		data = gobold.TTF
	case FontStyleMedium:
		data = gomedium.TTF
	default:
		data = goregular.TTF
	}

	fontsMu.Lock()
	parsed, ok := cachedFonts[style]
	if !ok {
		var err error
		parsed, err = opentype.Parse(data)
		if err != nil {
			fontsMu.Unlock()
			dc.SetFontFace(basicfont.Face7x13)
			return
		}
		cachedFonts[style] = parsed
	}
	fontsMu.Unlock()

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// row строка сетки: одна временная полоса или "прочее"
type row struct {
	label string
	band  planner.Band
	other bool
}

func gridRows() []row {
	rows := make([]row, 0, len(planner.AllBands)+1)
	for _, b := range planner.AllBands {
		rows = append(rows, row{label: b.Label(), band: b})
	}
	return append(rows, row{label: "Other", other: true})
}

// rowIndex первая подходящая полоса, иначе последняя строка "прочее"
func rowIndex(rows []row, timeRange string) int {
	for i, r := range rows {
		if !r.other && r.band.Matches(timeRange) {
			return i
		}
	}
	return len(rows) - 1
}

// WeekImageOptions что подсветить и что написать в шапке
type WeekImageOptions struct {
	Title     string
	ActiveDay int
	Quote     planner.Quote
}

// GenerateWeekImage рисует недельный план: колонки дни, строки временные полосы
func GenerateWeekImage(overview planner.Overview, opts WeekImageOptions) ([]byte, error) {
	rows := gridRows()

	// ячейки [строка][день]
	cells := make([][model.DaysInWeek][]model.Slot, len(rows))
	for d := model.Monday; d <= model.Sunday; d++ {
		for _, s := range overview.Day(d) {
			r := rowIndex(rows, s.TimeRange)
			cells[r][d-1] = append(cells[r][d-1], s)
		}
	}

	rowHeights := make([]float64, len(rows))
	gridHeight := 0.0
	for i := range rows {
		maxCards := 0
		for d := 0; d < model.DaysInWeek; d++ {
			if n := len(cells[i][d]); n > maxCards {
				maxCards = n
			}
		}
		h := float64(maxCards*(cardHeight+cardGap) + cardGap)
		if h < rowMinHeight {
			h = rowMinHeight
		}
		// пустую строку "прочее" делаем ниже
		if rows[i].other && maxCards == 0 {
			h = rowMinHeight / 3
		}
		rowHeights[i] = h
		gridHeight += h
	}

	height := int(headerHeight + dayHeaderHeight + gridHeight + footerHeight)
	dayWidth := (imageWidth - leftLabelsWidth - 20) / model.DaysInWeek

	dc := gg.NewContext(imageWidth, height)
	dc.SetColor(bgColor)
	dc.Clear()

	drawHeader(dc, opts)
	top := float64(headerHeight)
	drawDayColumns(dc, top, dayWidth, dayHeaderHeight+gridHeight, opts.ActiveDay)
	drawRows(dc, rows, rowHeights, top+dayHeaderHeight, dayWidth)

	y := top + dayHeaderHeight
	for i := range rows {
		for d := 0; d < model.DaysInWeek; d++ {
			x := float64(leftLabelsWidth + d*dayWidth)
			for k, s := range cells[i][d] {
				drawCard(dc, s, x, y+float64(cardGap+k*(cardHeight+cardGap)), dayWidth)
			}
		}
		y += rowHeights[i]
	}

	if opts.Quote.Count == 0 {
		loadFont(dc, subtitleFontSize, FontStyleMedium)
		dc.SetColor(emptyTextColor)
		dc.DrawStringAnchored("No sessions selected yet", imageWidth/2, top+dayHeaderHeight+gridHeight/2, 0.5, 0.5)
	}

	return encodeImage(dc)
}

func drawHeader(dc *gg.Context, opts WeekImageOptions) {
	title := opts.Title
	if title == "" {
		title = "Weekly plan"
	}

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, 30, 50, 0, 0)

	q := opts.Quote
	sub := fmt.Sprintf("%d sessions · Subtotal %s · Discount %s · Due %s / month",
		q.Count, formatting.FormatCoins(q.Subtotal), formatting.FormatCoins(q.Discount), formatting.FormatCoins(q.Due))
	if q.NextTier != nil && q.Count > 0 {
		sub += fmt.Sprintf(" · add %d more to save %s", q.NextTier.More, formatting.FormatCoins(q.NextTier.Save))
	}

	loadFont(dc, subtitleFontSize, FontStyleDefault)
	dc.DrawStringAnchored(sub, 30, 95, 0, 0)
}

func drawDayColumns(dc *gg.Context, top float64, dayWidth int, height float64, activeDay int) {
	for d := 0; d < model.DaysInWeek; d++ {
		x := float64(leftLabelsWidth + d*dayWidth)

		switch {
		case d+1 == activeDay:
			dc.SetColor(activeDayColor)
		case d%2 == 0:
			dc.SetColor(evenDayColor)
		default:
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(x, top, float64(dayWidth), height)
		dc.Fill()

		loadFont(dc, dayFontSize, FontStyleBold)
		dc.SetColor(textColor)
		dc.DrawStringAnchored(model.WeekdayShort(d+1), x+float64(dayWidth)/2, top+dayHeaderHeight/2, 0.5, 0.5)
	}
}

func drawRows(dc *gg.Context, rows []row, heights []float64, top float64, dayWidth int) {
	right := float64(leftLabelsWidth + model.DaysInWeek*dayWidth)
	y := top

	for i, r := range rows {
		dc.SetLineWidth(0.5)
		dc.SetColor(rowLineColor)
		dc.DrawLine(float64(leftLabelsWidth), y, right, y)
		dc.Stroke()

		loadFont(dc, rowLabelFontSize, FontStyleMedium)
		dc.SetColor(rowLabelColor)
		dc.DrawStringAnchored(r.label, float64(leftLabelsWidth)-12, y+heights[i]/2, 1, 0.5)
		y += heights[i]
	}
}

func drawCard(dc *gg.Context, s model.Slot, x, y float64, dayWidth int) {
	fill := subjectColor(s.Subject)
	w := float64(dayWidth) - float64(dayPaddingX*2)
	left := x + float64(dayPaddingX)

	dc.SetColor(shadowColor)
	dc.DrawRoundedRectangle(left+shadowOffset, y+shadowOffset, w, cardHeight, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(left, y, w, cardHeight, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(left, y, w, cardHeight, slotBorderRadius)
	dc.Stroke()

	loadFont(dc, cardFontSize, FontStyleBold)
	dc.SetColor(cardTextColor)
	dc.DrawStringAnchored(truncate(s.Subject, 18), left+8, y+20, 0, 0)

	loadFont(dc, cardSmallSize, FontStyleDefault)
	dc.DrawStringAnchored(truncate(s.TimeRange, 20), left+8, y+40, 0, 0)
}

// subjectColor стабильный цвет по названию предмета
func subjectColor(subject string) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return subjectPalette[h.Sum32()%uint32(len(subjectPalette))]
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

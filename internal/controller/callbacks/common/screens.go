package common

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/afterschool_planner/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/afterschool_planner/internal/formatting"
	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/go-telegram/bot/models"
)

const (
	NoSessionsText = "No sessions for this selection."
	maxCallbackLen = 64
)

// BuildScreen выбирает экран по состоянию сессии
func BuildScreen(snap planner.Snapshot, tiers planner.TierTable, center string) (string, *models.InlineKeyboardMarkup) {
	switch snap.Screen {
	case planner.ScreenPlanner:
		return BuildPlannerScreen(snap, center)
	case planner.ScreenCheckout:
		return BuildCheckoutScreen(snap, center)
	default:
		return BuildIntroScreen(snap, tiers, center)
	}
}

// BuildIntroScreen приветствие и таблица скидок
func BuildIntroScreen(snap planner.Snapshot, tiers planner.TierTable, center string) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder

	sb.WriteString("👋 <b>Afterschool weekly planner</b>\n")
	if center != "" {
		sb.WriteString("Center: <b>" + html.EscapeString(center) + "</b>\n")
	}
	sb.WriteString("\nPick recurring weekly sessions for your child. ")
	sb.WriteString("Prices are per month, and the more sessions you add, the more you save:\n")
	for i, t := range tiers {
		label := fmt.Sprintf("%d sessions", t.MinCount)
		if i == len(tiers)-1 {
			label = fmt.Sprintf("%d+ sessions", t.MinCount)
		}
		sb.WriteString(fmt.Sprintf("• %s: save %s\n", label, formatting.FormatCoins(t.Discount)))
	}

	sb.WriteString(fmt.Sprintf("\n%d %s across %d subjects this week.",
		len(snap.Filtered), formatting.PluralizeSessions(len(snap.Filtered)), len(snap.Subjects)))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🗓 Start planning", ScreenData(planner.ScreenPlanner)))
	if !snap.Cart.IsEmpty() {
		kb.Row(keyboard.CheckoutButton(snap.Cart.Count()))
	}
	return sb.String(), kb.Build()
}

// BuildPlannerScreen фильтры, сессии выбранного дня и итог корзины
func BuildPlannerScreen(snap planner.Snapshot, center string) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder

	sb.WriteString("📅 <b>Weekly planner</b>")
	if center != "" {
		sb.WriteString(" · " + html.EscapeString(center))
	}
	sb.WriteString("\n")
	sb.WriteString("Times: " + bandsSummary(snap.Filter.Bands) + "\n")
	sb.WriteString("Subjects: " + subjectsSummary(snap) + "\n\n")

	active, hasActive := snap.ActiveSection()
	switch {
	case len(snap.Filtered) == 0:
		sb.WriteString("<i>" + NoSessionsText + "</i>\n")
	case !hasActive:
		sb.WriteString(fmt.Sprintf("<i>No sessions on %s for this selection.</i>\n",
			model.WeekdayName(snap.Filter.ActiveDay)))
	default:
		writeSection(&sb, active, snap.Cart)
	}

	sb.WriteString("\n")
	writeCartSummary(&sb, snap.Quote)

	kb := keyboard.NewBuilder()
	kb.Grid(4, dayButtons(snap)...)
	kb.Grid(4, bandButtons(snap.Filter.Bands)...)
	kb.Grid(3, subjectButtons(snap)...)
	if hasActive {
		kb.Grid(1, slotButtons(active, snap.Cart)...)
	}
	kb.AddDayPagination(PrefixDay, snap.Filter.ActiveDay, model.DaysInWeek, model.WeekdayShort)
	kb.Row(
		keyboard.Button("🗓 Week overview", DataOverview),
		keyboard.CheckoutButton(snap.Cart.Count()),
	)

	return sb.String(), kb.Build()
}

// BuildCheckoutScreen сводка выбранного плана
func BuildCheckoutScreen(snap planner.Snapshot, center string) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder

	sb.WriteString("🧾 <b>Your weekly plan</b>")
	if center != "" {
		sb.WriteString(" · " + html.EscapeString(center))
	}
	sb.WriteString("\n\n")

	items := snap.Cart.Sorted()
	for _, s := range items {
		sb.WriteString(fmt.Sprintf("• %s · %s · %s · %s\n",
			model.WeekdayShort(s.DayOfWeek),
			html.EscapeString(s.TimeRange),
			html.EscapeString(s.Subject),
			formatting.FormatCoins(s.Price),
		))
	}
	sb.WriteString("\n")

	q := snap.Quote
	sb.WriteString("Subtotal: " + formatting.FormatCoins(q.Subtotal) + "\n")
	if q.Discount > 0 {
		sb.WriteString("Discount: −" + formatting.FormatCoins(q.Discount) + "\n")
	}
	sb.WriteString("<b>Due / month: " + formatting.FormatCoins(q.Due) + "</b>\n")
	if q.NextTier != nil {
		sb.WriteString("\n" + NudgeText(q.NextTier))
	}

	kb := keyboard.NewBuilder()
	for _, s := range items {
		label := fmt.Sprintf("✖ %s %s", model.WeekdayShort(s.DayOfWeek), s.Subject)
		kb.Row(keyboard.Button(label, slotCallback(s.ID)))
	}
	kb.Row(
		keyboard.Button("🗓 Overview", DataOverview),
		keyboard.Button("📄 Export .xlsx", DataExport),
	)
	kb.Row(keyboard.Button("✅ Confirm enrollment", DataConfirm))
	kb.Row(keyboard.BackToPlannerButton())

	return sb.String(), kb.Build()
}

// BuildConfirmedScreen ответ после отправки заявки
func BuildConfirmedScreen(req *model.EnrollmentRequest) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"✅ <b>Enrollment request sent</b>\n\n"+
			"Request: <code>%s</code>\n"+
			"Center: %s\n"+
			"%d %s · Due / month: <b>%s</b>\n\n"+
			"The center will contact you to confirm seats.",
		req.ID.String()[:8],
		html.EscapeString(req.Center),
		req.Count, formatting.PluralizeSessions(req.Count),
		formatting.FormatCoins(req.Due),
	)

	kb := keyboard.NewBuilder().Row(keyboard.StartOverButton()).Build()
	return text, kb
}

// NudgeText подсказка о следующей ступени скидки
func NudgeText(next *planner.NextTier) string {
	return fmt.Sprintf("💡 Add %d more to save %s", next.More, formatting.FormatCoins(next.Save))
}

func writeSection(sb *strings.Builder, section planner.DaySection, cart planner.Cart) {
	sb.WriteString("<b>" + model.WeekdayName(section.Day) + "</b>\n")
	for _, g := range section.Groups {
		sb.WriteString("<i>" + html.EscapeString(g.TimeRange) + "</i>\n")
		for _, s := range g.Slots {
			mark := "▫️"
			if cart.Contains(s.ID) {
				mark = "✅"
			}
			line := fmt.Sprintf("%s %s · %s", mark, html.EscapeString(s.Subject), formatting.FormatCoins(s.Price))
			if s.Level != "" {
				line += " · " + html.EscapeString(s.Level)
			}
			line += " · " + seatsText(s)
			sb.WriteString(line + "\n")
		}
	}
}

func writeCartSummary(sb *strings.Builder, q planner.Quote) {
	if q.Count == 0 {
		sb.WriteString("🛒 Nothing selected yet.")
		return
	}

	sb.WriteString(fmt.Sprintf("🛒 %d %s · %s\n", q.Count, formatting.PluralizeSessions(q.Count), formatting.FormatCoins(q.Subtotal)))
	if q.Discount > 0 {
		sb.WriteString("Savings applied: −" + formatting.FormatCoins(q.Discount) + "\n")
	}
	if q.NextTier != nil {
		sb.WriteString(NudgeText(q.NextTier) + "\n")
	}
	sb.WriteString("<b>Due / month: " + formatting.FormatCoins(q.Due) + "</b>")
}

func seatsText(s model.Slot) string {
	switch {
	case s.Status == model.SlotStatusClosed:
		return "closed"
	case s.SeatsLeft == 0:
		return "full"
	case s.SeatsLeft == model.SeatsUnknown:
		return "open"
	case s.SeatsLeft == 1:
		return "1 seat left"
	default:
		return fmt.Sprintf("%d seats left", s.SeatsLeft)
	}
}

func bandsSummary(bands planner.BandSet) string {
	if len(bands) == len(planner.AllBands) {
		return "all"
	}
	if len(bands) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(bands))
	for _, b := range bands.List() {
		labels = append(labels, b.Label())
	}
	return strings.Join(labels, ", ")
}

func subjectsSummary(snap planner.Snapshot) string {
	if snap.SubjectsAll() {
		return "all"
	}
	var picked []string
	for _, s := range snap.Subjects {
		if snap.Filter.Subjects.Has(s) {
			picked = append(picked, html.EscapeString(s))
		}
	}
	if len(picked) == 0 {
		return "none"
	}
	return strings.Join(picked, ", ")
}

func dayButtons(snap planner.Snapshot) []models.InlineKeyboardButton {
	counts := make(map[int]int, len(snap.Sections))
	for _, s := range snap.Sections {
		counts[s.Day] = s.Count()
	}

	buttons := make([]models.InlineKeyboardButton, 0, model.DaysInWeek)
	for d := model.Monday; d <= model.Sunday; d++ {
		label := model.WeekdayShort(d)
		if n := counts[d]; n > 0 {
			label = fmt.Sprintf("%s (%d)", label, n)
		}
		if d == snap.Filter.ActiveDay {
			label = "• " + label + " •"
		}
		buttons = append(buttons, keyboard.Button(label, DayData(d)))
	}
	return buttons
}

func bandButtons(bands planner.BandSet) []models.InlineKeyboardButton {
	buttons := make([]models.InlineKeyboardButton, 0, len(planner.AllBands))
	for _, b := range planner.AllBands {
		buttons = append(buttons, keyboard.Toggle(b.Label(), bands.Has(b), BandData(b)))
	}
	return buttons
}

func subjectButtons(snap planner.Snapshot) []models.InlineKeyboardButton {
	all := snap.SubjectsAll()
	buttons := []models.InlineKeyboardButton{
		keyboard.Toggle("All", all, PrefixSubject+SubjectAll),
	}
	for i, s := range snap.Subjects {
		buttons = append(buttons, keyboard.Toggle(s, !all && snap.Filter.Subjects.Has(s), SubjectData(i)))
	}
	return buttons
}

func slotButtons(section planner.DaySection, cart planner.Cart) []models.InlineKeyboardButton {
	var buttons []models.InlineKeyboardButton
	for _, g := range section.Groups {
		for _, s := range g.Slots {
			var label string
			switch {
			case cart.Contains(s.ID):
				label = "✅ "
			case s.Disabled():
				label = "⛔ "
			default:
				label = "➕ "
			}
			label += s.Subject + " · " + s.TimeRange
			buttons = append(buttons, keyboard.Button(label, slotCallback(s.ID)))
		}
	}
	return buttons
}

// slotCallback слишком длинный id не влезет в callback data
func slotCallback(id string) string {
	data := SlotData(id)
	if len(data) > maxCallbackLen {
		return DataNoop
	}
	return data
}

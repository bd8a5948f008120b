package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Freeeeeet/afterschool_planner/internal/catalog"
	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/Freeeeeet/afterschool_planner/internal/render"
)

// Рисует недельный план по файлу каталога: week.png и выгрузку в Excel
func main() {
	path := flag.String("catalog", "catalog/batches.json", "catalog file (.json or .xlsx)")
	ids := flag.String("ids", "", "comma separated slot ids, by default the first open slot of each day")
	out := flag.String("out", "week.png", "output image")
	xlsx := flag.Bool("xlsx", true, "also write the plan as .xlsx")
	flag.Parse()

	slots, err := catalog.NewFileProvider(*path).Load(context.Background())
	if err != nil {
		fmt.Printf("Ошибка чтения каталога: %v\n", err)
		os.Exit(1)
	}
	slots = catalog.Sanitize(slots, nil)

	cart := pick(slots, *ids)
	quote := planner.Price(cart)

	imageData, err := render.GenerateWeekImage(planner.WeekOverview(cart), render.WeekImageOptions{
		Title:     "Weekly plan",
		ActiveDay: model.Monday,
		Quote:     quote,
	})
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Изображение сохранено в %s\n", *out)

	if *xlsx {
		data, err := render.ExportPlanXLSX(cart.Sorted(), quote)
		if err != nil {
			fmt.Printf("Ошибка выгрузки: %v\n", err)
			os.Exit(1)
		}
		name := render.PlanFileName(time.Now())
		if err := os.WriteFile(name, data, 0644); err != nil {
			fmt.Printf("Ошибка сохранения файла: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ План сохранён в %s\n", name)
	}

	fmt.Printf("📊 Слотов: %d, к оплате: %d (скидка %d)\n", quote.Count, quote.Due, quote.Discount)
}

func pick(slots []model.Slot, ids string) planner.Cart {
	var cart planner.Cart

	if ids != "" {
		byID := make(map[string]model.Slot, len(slots))
		for _, s := range slots {
			byID[s.ID] = s
		}
		for _, id := range strings.Split(ids, ",") {
			if s, ok := byID[strings.TrimSpace(id)]; ok {
				cart = planner.Toggle(cart, s)
			}
		}
		return cart
	}

	seen := make(map[int]bool)
	for _, s := range slots {
		if seen[s.DayOfWeek] || s.Disabled() {
			continue
		}
		seen[s.DayOfWeek] = true
		cart = planner.Toggle(cart, s)
	}
	return cart
}

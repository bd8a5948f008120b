package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/afterschool_planner/internal/catalog"
	"github.com/Freeeeeet/afterschool_planner/internal/metrics"
	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"go.uber.org/zap"
)

// SlotWriter сохраняет новый слот в постоянном источнике каталога
type SlotWriter interface {
	Create(ctx context.Context, slot model.Slot) error
}

// PlannerService связывает чистый движок планировщика с текущим каталогом
type PlannerService struct {
	store   *catalog.Store
	writer  SlotWriter
	tiers   planner.TierTable
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewPlannerService(
	store *catalog.Store,
	writer SlotWriter,
	tiers planner.TierTable,
	m *metrics.Metrics,
	logger *zap.Logger,
) *PlannerService {
	return &PlannerService{
		store:   store,
		writer:  writer,
		tiers:   tiers,
		metrics: m,
		logger:  logger,
	}
}

func (s *PlannerService) Tiers() planner.TierTable {
	return s.tiers
}

// Catalog текущий каталог и его версия
func (s *PlannerService) Catalog() ([]model.Slot, int64) {
	return s.store.Snapshot()
}

// FindSlot ищет слот в текущем каталоге
func (s *PlannerService) FindSlot(id string) (model.Slot, bool) {
	return s.store.Find(id)
}

// Subjects предметы каталога в порядке первого появления
func (s *PlannerService) Subjects() []string {
	return planner.Subjects(s.store.Slots())
}

// SubjectAt предмет по индексу в списке Subjects
func (s *PlannerService) SubjectAt(idx int) (string, bool) {
	subjects := s.Subjects()
	if idx < 0 || idx >= len(subjects) {
		return "", false
	}
	return subjects[idx], true
}

// Apply применяет действие пользователя к состоянию
func (s *PlannerService) Apply(userID int64, st planner.State, action planner.Action) planner.State {
	next := planner.Reduce(st, action)

	if action != nil {
		if s.metrics != nil {
			s.metrics.Actions.WithLabelValues(action.Name()).Inc()
		}
		s.logger.Debug("Planner action applied",
			zap.Int64("user_id", userID),
			zap.String("action", action.Name()),
			zap.String("screen", string(next.Screen)),
			zap.Int("cart", next.Cart.Count()),
		)
	}
	return next
}

// Reconcile сверяет корзину с каталогом, если тот изменился с версии seen.
// Пропавшие и закрытые слоты удаляются из корзины.
func (s *PlannerService) Reconcile(st planner.State, seen int64) (planner.State, int64) {
	slots, version := s.store.Snapshot()
	if version == seen {
		return st, version
	}

	before := st.Cart.Count()
	st.Cart = st.Cart.Reconcile(slots)
	if st.Screen == planner.ScreenCheckout && st.Cart.IsEmpty() {
		st.Screen = planner.ScreenPlanner
	}

	if dropped := before - st.Cart.Count(); dropped > 0 {
		s.logger.Info("Cart reconciled with catalog",
			zap.Int("dropped", dropped),
			zap.Int64("catalog_version", version),
		)
	}
	return st, version
}

// View пересчитывает всё производное состояние для отображения
func (s *PlannerService) View(st planner.State) planner.Snapshot {
	return planner.Derive(st, s.store.Slots(), s.tiers)
}

// Search фильтрует каталог без привязки к сессии
func (s *PlannerService) Search(bands planner.BandSet, subjects planner.SubjectSet) []model.Slot {
	return planner.FilterSlots(s.store.Slots(), bands, subjects)
}

// QuoteIDs считает цену для набора id. Неизвестные id возвращаются отдельно,
// закрытые слоты в корзину не попадают.
func (s *PlannerService) QuoteIDs(ids []string) (planner.Quote, planner.Cart, []string) {
	var (
		cart    planner.Cart
		missing []string
	)
	for _, id := range ids {
		slot, ok := s.store.Find(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		if !cart.Contains(id) {
			cart = planner.Toggle(cart, slot)
		}
	}
	return s.tiers.Price(cart), cart, missing
}

// AddDemoBatch добавляет тестовую группу в каталог
func (s *PlannerService) AddDemoBatch(ctx context.Context, center string) (model.Slot, error) {
	slot := catalog.DemoBatch(center)

	if err := s.store.Add(slot); err != nil {
		return model.Slot{}, err
	}
	if s.writer != nil {
		if err := s.writer.Create(ctx, slot); err != nil {
			// в базе слота нет, убираем его и из памяти
			s.store.Remove(slot.ID)
			return model.Slot{}, fmt.Errorf("persist demo batch: %w", err)
		}
	}

	slots, version := s.store.Snapshot()
	if s.metrics != nil {
		s.metrics.CatalogSlots.Set(float64(len(slots)))
		s.metrics.CatalogVersion.Set(float64(version))
	}
	s.logger.Info("Demo batch added", zap.String("slot_id", slot.ID), zap.Int64("catalog_version", version))
	return slot, nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSlotExists  = errors.New("slot already exists")
	ErrInvalidSlot = errors.New("invalid slot")
)

// Store держит текущий каталог в памяти.
// Срезы, которые он отдаёт, никто не изменяет: при каждом изменении создаётся новый.
type Store struct {
	mu       sync.RWMutex
	slots    []model.Slot
	index    map[string]int
	version  int64
	loadedAt time.Time

	provider Provider
	logger   *zap.Logger
}

func NewStore(provider Provider, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		provider: provider,
		logger:   logger,
		index:    map[string]int{},
	}
}

// Reload загружает каталог из провайдера и атомарно подменяет текущий.
// При ошибке старый каталог остаётся на месте.
func (s *Store) Reload(ctx context.Context) error {
	if s.provider == nil {
		return fmt.Errorf("reload catalog: no provider")
	}

	loaded, err := s.provider.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload catalog: %w", err)
	}

	s.Replace(loaded)
	return nil
}

// Replace подменяет каталог готовым набором слотов
func (s *Store) Replace(slots []model.Slot) {
	clean := Sanitize(slots, s.logger)

	s.mu.Lock()
	s.setLocked(clean)
	version := s.version
	s.mu.Unlock()

	s.logger.Info("Catalog replaced",
		zap.Int("slots", len(clean)),
		zap.Int64("version", version),
	)
}

func (s *Store) setLocked(slots []model.Slot) {
	index := make(map[string]int, len(slots))
	for i, sl := range slots {
		index[sl.ID] = i
	}
	s.slots = slots
	s.index = index
	s.version++
	s.loadedAt = time.Now()
}

// Snapshot возвращает текущий каталог и его версию
func (s *Store) Snapshot() ([]model.Slot, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots, s.version
}

// Slots возвращает текущий каталог
func (s *Store) Slots() []model.Slot {
	slots, _ := s.Snapshot()
	return slots
}

func (s *Store) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}

// Find ищет слот по id
func (s *Store) Find(id string) (model.Slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.Slot{}, false
	}
	return s.slots[i], true
}

// Add добавляет слот в конец каталога
func (s *Store) Add(slot model.Slot) error {
	if slot.ID == "" || !model.ValidDay(slot.DayOfWeek) {
		return fmt.Errorf("%w: id=%q dow=%d", ErrInvalidSlot, slot.ID, slot.DayOfWeek)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[slot.ID]; exists {
		return fmt.Errorf("%w: %s", ErrSlotExists, slot.ID)
	}

	next := make([]model.Slot, len(s.slots), len(s.slots)+1)
	copy(next, s.slots)
	next = append(next, slot)
	s.setLocked(next)

	return nil
}

// Remove убирает слот из каталога. false если такого id нет.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false
	}

	next := make([]model.Slot, 0, len(s.slots)-1)
	next = append(next, s.slots[:i]...)
	next = append(next, s.slots[i+1:]...)
	s.setLocked(next)
	return true
}

// DemoBatch собирает тестовую группу: вторник вечером, Art & Design
func DemoBatch(center string) model.Slot {
	return model.Slot{
		ID:        "sample-" + uuid.NewString()[:8],
		DayOfWeek: 2,
		DayLabel:  model.WeekdayShort(2),
		TimeRange: "5:00–7:00 PM",
		Subject:   "Art & Design",
		Level:     "beginner",
		Price:     3000,
		SeatsLeft: 6,
		Status:    model.SlotStatusOpen,
		Teacher:   "TBD",
		Center:    center,
	}
}

package state

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Manager хранит сессии пользователей в памяти, неактивные удаляются через ttl
type Manager struct {
	mu    sync.Mutex
	cache *cache.Cache
}

// NewManager создаёт новый менеджер сессий
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		cache: cache.New(ttl, ttl/2),
	}
}

func key(telegramID int64) string {
	return strconv.FormatInt(telegramID, 10)
}

// Get возвращает сессию пользователя или новую, если её нет
func (sm *Manager) Get(telegramID int64) Session {
	if v, ok := sm.cache.Get(key(telegramID)); ok {
		return v.(Session)
	}
	return NewSession()
}

// Update атомарно применяет fn к сессии и сохраняет результат, продлевая ttl
func (sm *Manager) Update(telegramID int64, fn func(Session) Session) Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	next := fn(sm.Get(telegramID))
	sm.cache.SetDefault(key(telegramID), next)
	return next
}

// Clear удаляет сессию пользователя
func (sm *Manager) Clear(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.cache.Delete(key(telegramID))
}

// Count количество живых сессий
func (sm *Manager) Count() int {
	return sm.cache.ItemCount()
}

// OnEvicted вызывается при удалении сессии по ttl или через Clear
func (sm *Manager) OnEvicted(fn func(telegramID int64)) {
	sm.cache.OnEvicted(func(k string, _ interface{}) {
		id, err := strconv.ParseInt(k, 10, 64)
		if err == nil {
			fn(id)
		}
	})
}

package session

import (
	"container/list"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Conte777/MovieFlow/internal/domain/catalog/entities"
)

const defaultPresentedPerChat = 50

// PresentedCache stores the most recently presented movies per chat.
// Uses an LRU list to keep the last N movies per chat.
type PresentedCache struct {
	data       map[int64]*chatMovies
	mu         sync.RWMutex
	maxPerChat int
	logger     zerolog.Logger
}

type chatMovies struct {
	order *list.List // movie ids, newest at front
	items map[int64]*list.Element
}

type presentedEntry struct {
	movie entities.Movie
}

// NewPresentedCache creates a new PresentedCache instance
func NewPresentedCache(maxPerChat int, logger zerolog.Logger) *PresentedCache {
	if maxPerChat <= 0 {
		maxPerChat = defaultPresentedPerChat
	}
	return &PresentedCache{
		data:       make(map[int64]*chatMovies),
		maxPerChat: maxPerChat,
		logger:     logger.With().Str("component", "presented_cache").Logger(),
	}
}

// Add stores movies for a chat, refreshing ones already present.
// Oldest entries are evicted when the limit is reached.
func (c *PresentedCache) Add(chatID int64, movies ...entities.Movie) {
	if len(movies) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cm, exists := c.data[chatID]
	if !exists {
		cm = &chatMovies{
			order: list.New(),
			items: make(map[int64]*list.Element),
		}
		c.data[chatID] = cm
	}

	for _, m := range movies {
		if elem, found := cm.items[m.ID]; found {
			elem.Value.(*presentedEntry).movie = m
			cm.order.MoveToFront(elem)
			continue
		}
		cm.items[m.ID] = cm.order.PushFront(&presentedEntry{movie: m})
	}

	evicted := 0
	for cm.order.Len() > c.maxPerChat {
		oldest := cm.order.Back()
		delete(cm.items, oldest.Value.(*presentedEntry).movie.ID)
		cm.order.Remove(oldest)
		evicted++
	}

	if evicted > 0 {
		c.logger.Debug().
			Int64("chat_id", chatID).
			Int("evicted", evicted).
			Msg("evicted presented movies")
	}
}

// Get returns a presented movie by id
func (c *PresentedCache) Get(chatID, movieID int64) (entities.Movie, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cm, exists := c.data[chatID]
	if !exists {
		return entities.Movie{}, false
	}
	elem, found := cm.items[movieID]
	if !found {
		return entities.Movie{}, false
	}
	return elem.Value.(*presentedEntry).movie, true
}

// Clear removes all entries for a chat
func (c *PresentedCache) Clear(chatID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, chatID)
}

// Count returns the number of cached movies for a chat
func (c *PresentedCache) Count(chatID int64) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cm, exists := c.data[chatID]
	if !exists {
		return 0
	}
	return cm.order.Len()
}

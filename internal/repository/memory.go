// Package repository содержит хранилище сохранённых расчётов в рамках сессии.
package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mmeshcher/commission-calculator/internal/model"
)

// ErrEmptySession возвращается при обращении к хранилищу без идентификатора сессии.
var ErrEmptySession = errors.New("empty session id")

// MemoryRepository хранит расчёты каждой сессии в памяти процесса.
// Список сессии удаляется после ttl бездействия.
type MemoryRepository struct {
	mu    sync.Mutex
	cache *gocache.Cache
}

// NewMemoryRepository создаёт хранилище с заданным временем жизни неактивной сессии.
func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}

	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}

	return &MemoryRepository{
		cache: gocache.New(ttl, cleanup),
	}
}

// Close освобождает все хранимые списки.
func (r *MemoryRepository) Close() error {
	r.cache.Flush()
	return nil
}

func (r *MemoryRepository) load(sessionID string) []model.CalculationRecord {
	v, ok := r.cache.Get(sessionID)
	if !ok {
		return nil
	}
	records, _ := v.([]model.CalculationRecord)
	return records
}

// Append добавляет запись в начало списка сессии и продлевает её время жизни.
func (r *MemoryRepository) Append(ctx context.Context, sessionID string, rec model.CalculationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sessionID == "" {
		return ErrEmptySession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.load(sessionID)

	// Ранее выданные срезы не изменяются.
	records := make([]model.CalculationRecord, 0, len(existing)+1)
	records = append(records, rec)
	records = append(records, existing...)

	r.cache.Set(sessionID, records, gocache.DefaultExpiration)
	return nil
}

// List возвращает записи сессии, начиная с самой новой.
func (r *MemoryRepository) List(ctx context.Context, sessionID string) ([]model.CalculationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if sessionID == "" {
		return nil, ErrEmptySession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.load(sessionID)
	res := make([]model.CalculationRecord, len(existing))
	copy(res, existing)
	return res, nil
}

// Clear удаляет все записи сессии.
func (r *MemoryRepository) Clear(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sessionID == "" {
		return ErrEmptySession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Delete(sessionID)
	return nil
}

package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrSessionNotFound = errors.New("sessão não encontrada")

const sessionPrefix = "wizard:"

type InterfaceRepository interface {
	Get(ctx context.Context, sessionID string) (State, error)
	Save(ctx context.Context, state State) error
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// MemoryRepository keeps sessions in process; used when Redis is not configured.
type MemoryRepository struct {
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
	}
}

func (r *MemoryRepository) Get(_ context.Context, sessionID string) (State, error) {
	r.mu.RLock()
	entry, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return State{}, ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.sessions, sessionID)
		r.mu.Unlock()
		return State{}, ErrSessionNotFound
	}
	return entry.state, nil
}

func (r *MemoryRepository) Save(_ context.Context, state State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[state.SessionID] = memoryEntry{state: state, expiresAt: time.Now().Add(r.ttl)}
	return nil
}

type RedisRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRepository(rdb *redis.Client, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisRepository) Get(ctx context.Context, sessionID string) (State, error) {
	data, err := r.rdb.Get(ctx, sessionPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return State{}, ErrSessionNotFound
		}
		return State{}, fmt.Errorf("erro ao ler sessão: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("erro ao decodificar sessão: %w", err)
	}
	return state, nil
}

func (r *RedisRepository) Save(ctx context.Context, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("erro ao codificar sessão: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionPrefix+state.SessionID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("erro ao salvar sessão: %w", err)
	}
	return nil
}

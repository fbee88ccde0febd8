package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryEngine struct {
	mu     sync.Mutex
	values map[string][]byte
	err    error
}

func newMemoryEngine() *memoryEngine {
	return &memoryEngine{values: make(map[string][]byte)}
}

func (e *memoryEngine) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return nil, false, e.err
	}
	value, ok := e.values[key]
	if !ok {
		return nil, false, ErrKeyNotFound
	}
	return value, true, nil
}

func (e *memoryEngine) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	e.values[key] = data
	return nil
}

func (e *memoryEngine) Delete(ctx context.Context, key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.values, key)
	return nil
}

type cachedCommunity struct {
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
}

func TestHandleHitCache(t *testing.T) {
	ctx := context.Background()
	engine := newMemoryEngine()

	var miss cachedCommunity
	err := HandleHitCache(ctx, &miss, engine, "community:gophers")
	require.Error(t, err)
	assert.True(t, IsMiss(err))

	require.NoError(t, HandleSetCache(ctx, cachedCommunity{Name: "gophers", MemberCount: 3}, engine, "community:gophers", time.Minute))

	var hit cachedCommunity
	require.NoError(t, HandleHitCache(ctx, &hit, engine, "community:gophers"))
	assert.Equal(t, "gophers", hit.Name)
	assert.Equal(t, 3, hit.MemberCount)

	require.NoError(t, HandleDeleteCache(ctx, engine, "community:gophers"))
	assert.True(t, IsMiss(HandleHitCache(ctx, &hit, engine, "community:gophers")))
}

func TestHandleHitCache_CorruptValue(t *testing.T) {
	ctx := context.Background()
	engine := newMemoryEngine()
	engine.values["broken"] = []byte("{not json")

	var target cachedCommunity
	err := HandleHitCache(ctx, &target, engine, "broken")
	require.Error(t, err)
	assert.False(t, IsMiss(err))
}

func TestHandleHitCache_EngineFailure(t *testing.T) {
	engine := newMemoryEngine()
	engine.err = errors.New("connection refused")

	var target cachedCommunity
	err := HandleHitCache(context.Background(), &target, engine, "anything")
	require.Error(t, err)
	assert.False(t, IsMiss(err))
}

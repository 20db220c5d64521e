package reconcile_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"catalog-manager/core/reconcile"
	"catalog-manager/core/reconcile/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestVariantCache_Hit tests that a fresh entry is reused.
func TestVariantCache_Hit(t *testing.T) {
	loader := new(mocks.VariantLoader)
	loader.On("LoadVariants", mock.Anything, "42").
		Return([]reconcile.Variant{{ID: "100", Title: "S"}}, nil).Once()

	cache := reconcile.NewVariantCache(loader, 5*time.Minute)

	// First call - should load
	first, err := cache.Get(context.Background(), "42")
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	// Second call - should use cached
	second, err := cache.Get(context.Background(), "42")
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	loader.AssertNumberOfCalls(t, "LoadVariants", 1)
}

// TestVariantCache_Invalidate tests that invalidation forces a reload.
func TestVariantCache_Invalidate(t *testing.T) {
	loader := new(mocks.VariantLoader)
	loader.On("LoadVariants", mock.Anything, "42").Return([]reconcile.Variant{}, nil)

	cache := reconcile.NewVariantCache(loader, 5*time.Minute)
	_, _ = cache.Get(context.Background(), "42")
	cache.Invalidate("42")
	_, _ = cache.Get(context.Background(), "42")

	loader.AssertNumberOfCalls(t, "LoadVariants", 2)
}

// TestVariantCache_Disabled tests that a zero TTL always loads.
func TestVariantCache_Disabled(t *testing.T) {
	loader := new(mocks.VariantLoader)
	loader.On("LoadVariants", mock.Anything, "42").Return([]reconcile.Variant{}, nil)

	cache := reconcile.NewVariantCache(loader, 0)
	_, _ = cache.Get(context.Background(), "42")
	_, _ = cache.Get(context.Background(), "42")

	loader.AssertNumberOfCalls(t, "LoadVariants", 2)
}

func TestVariantCache_Error(t *testing.T) {
	loader := new(mocks.VariantLoader)
	loader.On("LoadVariants", mock.Anything, "42").Return(nil, errors.New("db error"))

	cache := reconcile.NewVariantCache(loader, time.Minute)
	variants, err := cache.Get(context.Background(), "42")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
	assert.Nil(t, variants)
}

func TestPairsFromStored(t *testing.T) {
	stored := reconcile.StoredVariant{
		Variant: reconcile.Variant{ID: "100", Title: "S"},
		ProductOptionValues: []reconcile.StoredOptionValue{
			{ID: "10", Value: "S", ProductOption: reconcile.StoredOption{ID: "1", Title: "Size"}},
		},
	}

	v := stored.ToVariant()
	assert.Equal(t, []reconcile.OptionValuePair{{Option: "Size", Value: "S", OptionID: "1", ValueID: "10"}}, v.OptionValues)
	assert.NotNil(t, v.Prices)

	empty := reconcile.StoredVariant{Variant: reconcile.Variant{ID: "101"}}.ToVariant()
	assert.NotNil(t, empty.OptionValues)
	assert.Len(t, reconcile.VariantsFromStored([]reconcile.StoredVariant{stored}), 1)
}

// gatedLoader blocks every load until release is closed.
type gatedLoader struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	once    sync.Once
	ctxErrs chan error
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{
		started: make(chan struct{}),
		release: make(chan struct{}),
		ctxErrs: make(chan error, 16),
	}
}

func (l *gatedLoader) LoadVariants(ctx context.Context, productID string) ([]reconcile.Variant, error) {
	l.calls.Add(1)
	l.once.Do(func() { close(l.started) })
	<-l.release
	l.ctxErrs <- ctx.Err()
	return []reconcile.Variant{{ID: "100", Title: "S"}}, nil
}

// TestVariantCache_ConcurrentMisses tests that concurrent misses share one load.
func TestVariantCache_ConcurrentMisses(t *testing.T) {
	loader := newGatedLoader()
	cache := reconcile.NewVariantCache(loader, time.Minute)

	var wg sync.WaitGroup
	results := make(chan int, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			variants, err := cache.Get(context.Background(), "42")
			if err == nil {
				results <- len(variants)
			}
		}()
	}

	<-loader.started
	close(loader.release)
	wg.Wait()
	close(results)

	count := 0
	for n := range results {
		assert.Equal(t, 1, n)
		count++
	}
	assert.Equal(t, 5, count)
	assert.Equal(t, int32(1), loader.calls.Load())
}

// TestVariantCache_CanceledCallerDoesNotFailWaiters tests that one caller giving up
// neither cancels the shared load nor fails the callers still waiting on it.
func TestVariantCache_CanceledCallerDoesNotFailWaiters(t *testing.T) {
	loader := newGatedLoader()
	cache := reconcile.NewVariantCache(loader, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := cache.Get(ctx, "42")
		first <- err
	}()

	<-loader.started
	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	second := make(chan []reconcile.Variant, 1)
	go func() {
		variants, err := cache.Get(context.Background(), "42")
		assert.NoError(t, err)
		second <- variants
	}()

	close(loader.release)
	assert.Len(t, <-second, 1)
	assert.NoError(t, <-loader.ctxErrs)
	assert.Equal(t, int32(1), loader.calls.Load())
}

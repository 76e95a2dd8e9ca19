package geo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// funcSource adapts a function into a PositionSource.
type funcSource func(ctx context.Context) (Position, error)

func (f funcSource) Position(ctx context.Context) (Position, error) {
	return f(ctx)
}

func TestLocator_Current(t *testing.T) {
	t.Run("returns a fix from the source", func(t *testing.T) {
		source := FixedSource{Point: Point{Longitude: -74.006, Latitude: 40.7128}, Accuracy: 20}
		locator := NewLocator(source, LocatorOptions{})

		pos, err := locator.Current(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 40.7128, pos.Latitude)
		assert.Equal(t, -74.006, pos.Longitude)
		assert.Equal(t, 20.0, pos.Accuracy)
		assert.False(t, pos.Timestamp.IsZero())
	})

	t.Run("reuses a recent fix within max age", func(t *testing.T) {
		calls := 0
		source := funcSource(func(ctx context.Context) (Position, error) {
			calls++
			return Position{Latitude: 1, Longitude: 2, Timestamp: time.Now()}, nil
		})
		locator := NewLocator(source, LocatorOptions{MaxAge: time.Minute})

		_, err := locator.Current(context.Background())
		assert.NoError(t, err)
		_, err = locator.Current(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("consults the source again after reset", func(t *testing.T) {
		calls := 0
		source := funcSource(func(ctx context.Context) (Position, error) {
			calls++
			return Position{Timestamp: time.Now()}, nil
		})
		locator := NewLocator(source, LocatorOptions{MaxAge: time.Minute})

		_, _ = locator.Current(context.Background())
		locator.Reset()
		_, _ = locator.Current(context.Background())
		assert.Equal(t, 2, calls)
	})

	t.Run("slow source times out", func(t *testing.T) {
		source := funcSource(func(ctx context.Context) (Position, error) {
			<-ctx.Done()
			return Position{}, ctx.Err()
		})
		locator := NewLocator(source, LocatorOptions{Timeout: 10 * time.Millisecond})

		_, err := locator.Current(context.Background())
		assert.ErrorIs(t, err, ErrPositionTimeout)
	})

	t.Run("source errors pass through", func(t *testing.T) {
		source := funcSource(func(ctx context.Context) (Position, error) {
			return Position{}, ErrPermissionDenied
		})
		locator := NewLocator(source, LocatorOptions{})

		_, err := locator.Current(context.Background())
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}

func TestLocator_Watch(t *testing.T) {
	source := funcSource(func(ctx context.Context) (Position, error) {
		return Position{Latitude: 48.8566, Longitude: 2.3522, Timestamp: time.Now()}, nil
	})
	locator := NewLocator(source, LocatorOptions{WatchInterval: 5 * time.Millisecond})

	id, ch := locator.Watch(context.Background())

	select {
	case pos, ok := <-ch:
		assert.True(t, ok)
		assert.Equal(t, 48.8566, pos.Latitude)
	case <-time.After(time.Second):
		t.Fatal("no fix received")
	}

	locator.ClearWatch(id)

	// The channel closes once the subscription is cancelled.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after ClearWatch")
		}
	}
}

func TestLocator_WatchContextCancel(t *testing.T) {
	source := FixedSource{Point: Point{Longitude: 2.3522, Latitude: 48.8566}}
	locator := NewLocator(source, LocatorOptions{WatchInterval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	_, ch := locator.Watch(ctx)
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after context cancel")
		}
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"permission denied", ErrPermissionDenied, "Location access denied by user"},
		{"unavailable", ErrPositionUnavailable, "Location information is unavailable"},
		{"timeout", ErrPositionTimeout, "Location request timed out"},
		{"wrapped timeout", fmt.Errorf("fetch fix: %w", ErrPositionTimeout), "Location request timed out"},
		{"unknown", errors.New("boom"), "An unknown error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeError(tt.err))
		})
	}
}

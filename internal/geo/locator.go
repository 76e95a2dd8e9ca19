package geo

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Position is a located fix.
type Position struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"` // meters
	Timestamp time.Time `json:"timestamp"`
}

// Position lookup failures fall into fixed categories the caller can render.
var (
	// ErrPermissionDenied is returned when the source refuses access.
	ErrPermissionDenied = errors.New("location access denied")
	// ErrPositionUnavailable is returned when no fix can be produced.
	ErrPositionUnavailable = errors.New("location information is unavailable")
	// ErrPositionTimeout is returned when a fix did not arrive in time.
	ErrPositionTimeout = errors.New("location request timed out")
)

// CategorizeError maps a position lookup failure to one of four
// human-readable categories.
func CategorizeError(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return "Location access denied by user"
	case errors.Is(err, ErrPositionUnavailable):
		return "Location information is unavailable"
	case errors.Is(err, ErrPositionTimeout):
		return "Location request timed out"
	default:
		return "An unknown error occurred"
	}
}

// PositionSource produces position fixes. Implementations may be backed by a
// connected device, a client-reported position, or a fixed test value.
type PositionSource interface {
	Position(ctx context.Context) (Position, error)
}

// FixedSource is a PositionSource that always reports the same point,
// used as the fallback position feed and in tests.
type FixedSource struct {
	Point    Point
	Accuracy float64
}

// Position implements PositionSource.
func (s FixedSource) Position(ctx context.Context) (Position, error) {
	select {
	case <-ctx.Done():
		return Position{}, ctx.Err()
	default:
	}
	return Position{
		Latitude:  s.Point.Latitude,
		Longitude: s.Point.Longitude,
		Accuracy:  s.Accuracy,
		Timestamp: time.Now(),
	}, nil
}

// LocatorOptions configures fix acquisition.
type LocatorOptions struct {
	// Timeout bounds a single fix request. Default 15s.
	Timeout time.Duration
	// MaxAge lets Current reuse a cached fix at most this old. Default 10m.
	MaxAge time.Duration
	// WatchInterval is the polling period for Watch. Default 5s.
	WatchInterval time.Duration
}

func (o *LocatorOptions) normalize() {
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	if o.MaxAge <= 0 {
		o.MaxAge = 10 * time.Minute
	}
	if o.WatchInterval <= 0 {
		o.WatchInterval = 5 * time.Second
	}
}

// Locator provides one-shot and continuous access to the current position.
// A failed fix is returned to the caller as-is; there is no retry policy.
type Locator struct {
	source PositionSource
	opts   LocatorOptions

	mu      sync.Mutex
	last    *Position
	watches map[int]context.CancelFunc
	nextID  int
}

// NewLocator creates a locator over the given source.
func NewLocator(source PositionSource, opts LocatorOptions) *Locator {
	opts.normalize()
	return &Locator{
		source:  source,
		opts:    opts,
		watches: make(map[int]context.CancelFunc),
	}
}

// Current requests a one-time fix. A cached fix younger than MaxAge is
// returned without consulting the source.
func (l *Locator) Current(ctx context.Context) (Position, error) {
	l.mu.Lock()
	if l.last != nil && time.Since(l.last.Timestamp) < l.opts.MaxAge {
		pos := *l.last
		l.mu.Unlock()
		return pos, nil
	}
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, l.opts.Timeout)
	defer cancel()

	pos, err := l.source.Position(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Position{}, ErrPositionTimeout
		}
		return Position{}, err
	}
	if pos.Timestamp.IsZero() {
		pos.Timestamp = time.Now()
	}

	l.mu.Lock()
	l.last = &pos
	l.mu.Unlock()
	return pos, nil
}

// Watch streams fixes on the configured interval until ClearWatch is called
// or ctx is cancelled. The returned handle cancels this subscription only.
// The channel is closed when the subscription ends; lookup failures are
// skipped, matching the one-shot contract of surfacing only the last error
// state to the caller.
func (l *Locator) Watch(ctx context.Context) (int, <-chan Position) {
	ctx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.watches[id] = cancel
	l.mu.Unlock()

	ch := make(chan Position, 1)
	go func() {
		defer close(ch)
		defer l.ClearWatch(id)

		ticker := time.NewTicker(l.opts.WatchInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pos, err := l.source.Position(ctx)
				if err != nil {
					continue
				}
				if pos.Timestamp.IsZero() {
					pos.Timestamp = time.Now()
				}
				l.mu.Lock()
				l.last = &pos
				l.mu.Unlock()
				select {
				case ch <- pos:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return id, ch
}

// ClearWatch cancels the subscription with the given handle.
func (l *Locator) ClearWatch(id int) {
	l.mu.Lock()
	cancel, ok := l.watches[id]
	if ok {
		delete(l.watches, id)
	}
	l.mu.Unlock()
	if ok {
		cancel()
	}
}

// Reset drops the cached fix so the next Current consults the source.
func (l *Locator) Reset() {
	l.mu.Lock()
	l.last = nil
	l.mu.Unlock()
}

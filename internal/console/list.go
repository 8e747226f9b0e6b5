package console

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/deepinsight/backend/pkg/client"
)

// NotAvailable is rendered for missing timestamps.
const NotAvailable = "N/A"

// ErrStale is returned by loads whose result was discarded because a newer
// load, Clear or Leave happened while they were in flight.
var ErrStale = errors.New("console: stale response discarded")

const msgLoadFailed = "목록을 불러오지 못했습니다."

// FormatTime renders t in local time, or NotAvailable for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Local().Format("2006-01-02 15:04")
}

// Loader fetches one page. page is zero-origin.
type Loader[T any] func(ctx context.Context, page, size int) (*client.Page[T], error)

// ListState is a snapshot of a ListView.
type ListState[T any] struct {
	Items         []T
	Page          int
	Size          int
	TotalElements int
	TotalPages    int
	Loading       bool
	Loaded        bool
	Error         string
}

// Empty reports whether a load finished without error and returned nothing.
func (s ListState[T]) Empty() bool {
	return s.Loaded && s.Error == "" && len(s.Items) == 0
}

// HasNext reports whether a page after the current one exists.
func (s ListState[T]) HasNext() bool { return s.Page+1 < s.TotalPages }

// HasPrev reports whether a page before the current one exists.
func (s ListState[T]) HasPrev() bool { return s.Page > 0 }

// ListView is a paged list. Every page change fetches; nothing is cached
// beyond the page on screen.
type ListView[T any] struct {
	mu    sync.Mutex
	load  Loader[T]
	state ListState[T]
	gen   uint64
}

// NewListView creates a ListView that fetches size items per page.
func NewListView[T any](size int, load Loader[T]) *ListView[T] {
	return &ListView[T]{load: load, state: ListState[T]{Size: size}}
}

// Load fetches page and shows it, unless the view moved on meanwhile.
func (v *ListView[T]) Load(ctx context.Context, page int) error {
	if page < 0 {
		page = 0
	}
	v.mu.Lock()
	v.gen++
	gen := v.gen
	size := v.state.Size
	v.state.Loading = true
	v.state.Error = ""
	v.mu.Unlock()

	result, err := v.load(ctx, page, size)

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return ErrStale
	}
	v.state.Loading = false
	if err != nil {
		v.state.Error = client.Message(err, msgLoadFailed)
		return err
	}
	var items []T
	if result != nil {
		items = result.Content
	} else {
		result = &client.Page[T]{}
	}
	if items == nil {
		items = []T{}
	}
	v.state = ListState[T]{
		Items:         items,
		Page:          page,
		Size:          size,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		Loaded:        true,
	}
	return nil
}

// Reload fetches the current page again.
func (v *ListView[T]) Reload(ctx context.Context) error {
	v.mu.Lock()
	page := v.state.Page
	v.mu.Unlock()
	return v.Load(ctx, page)
}

// Next loads the following page when there is one.
func (v *ListView[T]) Next(ctx context.Context) error {
	st := v.State()
	if !st.HasNext() {
		return nil
	}
	return v.Load(ctx, st.Page+1)
}

// Prev loads the preceding page when there is one.
func (v *ListView[T]) Prev(ctx context.Context) error {
	st := v.State()
	if !st.HasPrev() {
		return nil
	}
	return v.Load(ctx, st.Page-1)
}

// Leave discards any in-flight load. The shown page is kept.
func (v *ListView[T]) Leave() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.state.Loading = false
}

// Clear drops the shown items and any in-flight load.
func (v *ListView[T]) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.state = ListState[T]{Size: v.state.Size}
}

// State returns a snapshot of the view.
func (v *ListView[T]) State() ListState[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	st := v.state
	st.Items = append([]T(nil), v.state.Items...)
	if st.Loaded && st.Items == nil {
		st.Items = []T{}
	}
	return st
}

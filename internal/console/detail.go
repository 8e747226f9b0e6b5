package console

import (
	"context"
	"sync"

	"github.com/deepinsight/backend/pkg/client"
)

const msgPostLoadFailed = "게시글을 불러오지 못했습니다."

// PostFetcher fetches one post; the server counts the view.
type PostFetcher func(ctx context.Context, id string) (*client.Post, error)

// DetailState is a snapshot of a DetailView.
type DetailState struct {
	ID      string
	Post    *client.Post
	Loading bool
	Error   string
}

// DetailView shows one post. Each Open is one navigation and fetches once;
// reading the view never fetches.
type DetailView struct {
	mu    sync.Mutex
	fetch PostFetcher
	state DetailState
	gen   uint64
}

// NewDetailView creates a DetailView.
func NewDetailView(fetch PostFetcher) *DetailView {
	return &DetailView{fetch: fetch}
}

// Open navigates to the post with id.
func (d *DetailView) Open(ctx context.Context, id string) error {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.state = DetailState{ID: id, Loading: true}
	d.mu.Unlock()

	post, err := d.fetch(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return ErrStale
	}
	d.state.Loading = false
	if err != nil {
		d.state.Error = client.Message(err, msgPostLoadFailed)
		return err
	}
	d.state.Post = post
	return nil
}

// Leave closes the view; a fetch still in flight is discarded.
func (d *DetailView) Leave() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.state = DetailState{}
}

// State returns a snapshot of the view.
func (d *DetailView) State() DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.state
	if st.Post != nil {
		p := *st.Post
		st.Post = &p
	}
	return st
}

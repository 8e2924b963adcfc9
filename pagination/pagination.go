// Package pagination implements the paginated post-listing protocol
// shared by every front end: sequential page fetches with a lookahead
// row to detect whether a next page exists, and backward correction
// when the current page turns out to be empty after a concurrent
// delete.
package pagination

import (
	"context"
	"errors"
	"sync"

	"weblog/app/models"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 5

// ErrStale is returned when a fetch was superseded by a Reset or a
// newer navigation before its result could be applied. The result is
// discarded; the pager state belongs to the newer operation.
var ErrStale = errors.New("page fetch superseded")

// Source is the listing contract the pager drives. Results must be
// ordered by a stable key (creation order) and stable across calls
// absent mutation.
type Source interface {
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
}

// Page is one classified fetch result. Items never contains the
// lookahead row.
type Page struct {
	Index   int
	Items   []*models.Post
	HasPrev bool
	HasNext bool
}

// Pager owns the current page index. It is safe for concurrent use,
// though front ends are expected to serialize navigation.
type Pager struct {
	source Source
	size   int

	mu    sync.Mutex
	index int
	gen   uint64
}

// New creates a pager over source. A non-positive size falls back to
// DefaultPageSize.
func New(source Source, size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{source: source, size: size}
}

// Index returns the current page index.
func (p *Pager) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Size returns the page size.
func (p *Pager) Size() int {
	return p.size
}

// Reset returns the pager to page 0 without fetching. Invoked after
// any mutation that can shift result membership (create, update,
// delete, login, logout). In-flight fetches started before the reset
// are discarded when they complete.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index = 0
	p.gen++
}

// Goto jumps to an arbitrary page index and fetches it. An index past
// the end corrects back to the last non-empty page.
func (p *Pager) Goto(ctx context.Context, index int) (*Page, error) {
	if index < 0 {
		index = 0
	}
	p.mu.Lock()
	gen := p.gen
	p.mu.Unlock()
	return p.fetch(ctx, index, gen)
}

// Fetch retrieves the current page.
func (p *Pager) Fetch(ctx context.Context) (*Page, error) {
	p.mu.Lock()
	start, gen := p.index, p.gen
	p.mu.Unlock()
	return p.fetch(ctx, start, gen)
}

// Next advances one page and fetches it. The increment is
// unconditional: overshooting past the last page is healed by the
// empty-page correction in fetch.
func (p *Pager) Next(ctx context.Context) (*Page, error) {
	p.mu.Lock()
	start, gen := p.index+1, p.gen
	p.mu.Unlock()
	return p.fetch(ctx, start, gen)
}

// Prev steps back one page, if there is one, and fetches.
func (p *Pager) Prev(ctx context.Context) (*Page, error) {
	p.mu.Lock()
	start, gen := p.index, p.gen
	if start > 0 {
		start--
	}
	p.mu.Unlock()
	return p.fetch(ctx, start, gen)
}

// fetch requests page start using a limit of size+1: the extra row
// proves a next page exists with a single round trip and is never
// shown. An empty result above page 0 means the page no longer exists
// (rows were deleted since the index was valid); the pager walks back
// one page and retries. The walk is strictly decreasing and bounded by
// page 0, where an empty result is the canonical empty store.
//
// The committed index only changes on success: source errors leave the
// pager where it was so a retry keeps position.
func (p *Pager) fetch(ctx context.Context, start int, gen uint64) (*Page, error) {
	index := start
	for {
		items, err := p.source.List(ctx, p.size+1, index*p.size)
		if err != nil {
			return nil, err
		}

		if len(items) == 0 && index > 0 {
			index--
			continue
		}

		page := &Page{
			Index:   index,
			Items:   items,
			HasPrev: index > 0,
			HasNext: len(items) == p.size+1,
		}
		if page.HasNext {
			page.Items = items[:p.size]
		}

		p.mu.Lock()
		if p.gen != gen {
			p.mu.Unlock()
			return nil, ErrStale
		}
		p.index = index
		p.gen++
		p.mu.Unlock()

		return page, nil
	}
}

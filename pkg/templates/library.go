package templates

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/autoplan/internal/logging"
	"github.com/aretw0/autoplan/pkg/convert"
	"github.com/aretw0/autoplan/pkg/domain"
	"github.com/aretw0/autoplan/pkg/ports"
	"golang.org/x/sync/singleflight"
)

const indexKey = "index"

// Library serves the template corpus.
type Library struct {
	source    ports.TemplateSource
	converter *convert.Converter
	logger    *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	index *domain.TemplateIndex
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger used to report index load failures.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithConverter sets the converter used by Import.
func WithConverter(c *convert.Converter) Option {
	return func(l *Library) {
		if c != nil {
			l.converter = c
		}
	}
}

// New creates a Library backed by source. A nil source yields an empty corpus.
func New(source ports.TemplateSource, opts ...Option) *Library {
	l := &Library{
		source: source,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.converter == nil {
		l.converter = convert.New(convert.WithLogger(l.logger))
	}
	return l
}

// LoadIndex returns the memoised index, fetching it on first use.
//
// The fetch is shared by every caller that arrives before it completes and
// is not cancelled when one of them gives up. A caller whose ctx ends first
// gets an empty index; the fetch still completes and is memoised for later
// calls. The returned index is shared and must not be modified.
func (l *Library) LoadIndex(ctx context.Context) *domain.TemplateIndex {
	if idx := l.cached(); idx != nil {
		return idx
	}

	ch := l.group.DoChan(indexKey, func() (any, error) {
		if idx := l.cached(); idx != nil {
			return idx, nil
		}
		idx := l.fetch(context.WithoutCancel(ctx))

		l.mu.Lock()
		l.index = idx
		l.mu.Unlock()
		return idx, nil
	})

	select {
	case res := <-ch:
		return res.Val.(*domain.TemplateIndex)
	case <-ctx.Done():
		return domain.EmptyTemplateIndex()
	}
}

func (l *Library) cached() *domain.TemplateIndex {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.index
}

func (l *Library) fetch(ctx context.Context) *domain.TemplateIndex {
	if l.source == nil {
		return domain.EmptyTemplateIndex()
	}
	idx, err := l.source.Fetch(ctx)
	if err != nil {
		l.logger.Warn("template index unavailable, serving empty corpus", "err", err)
		return domain.EmptyTemplateIndex()
	}
	if idx == nil {
		return domain.EmptyTemplateIndex()
	}
	l.logger.Debug("template index loaded", "workflows", idx.TotalWorkflows, "version", idx.Version)
	return idx
}

// Search runs Search over the loaded corpus.
func (l *Library) Search(ctx context.Context, opts SearchOptions) SearchResult {
	return Search(l.LoadIndex(ctx).Workflows, opts)
}

// Related runs Related over the loaded corpus.
func (l *Library) Related(ctx context.Context, t domain.TemplateEntry, limit int) []domain.TemplateEntry {
	return Related(l.LoadIndex(ctx).Workflows, t, limit)
}

// Featured runs Featured over the loaded corpus.
func (l *Library) Featured(ctx context.Context, limit int) []domain.TemplateEntry {
	return Featured(l.LoadIndex(ctx).Workflows, limit)
}

// FindByID returns the template with the given ID.
// Returns domain.ErrTemplateNotFound if no template matches.
func (l *Library) FindByID(ctx context.Context, id string) (domain.TemplateEntry, error) {
	for _, t := range l.LoadIndex(ctx).Workflows {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.TemplateEntry{}, fmt.Errorf("template %q: %w", id, domain.ErrTemplateNotFound)
}

// Import converts the template's embedded workflow into a Graph.
// Returns domain.ErrTemplatePayloadMissing, naming the template, when the
// entry carries no workflow document.
func (l *Library) Import(t domain.TemplateEntry) (domain.Graph, error) {
	if t.WorkflowData == nil {
		name := t.Name
		if name == "" {
			name = t.ID
		}
		return domain.Graph{}, fmt.Errorf("template %q: %w", name, domain.ErrTemplatePayloadMissing)
	}
	return l.converter.Import(*t.WorkflowData), nil
}

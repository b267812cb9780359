package lookup

import (
	"context"
	"fmt"

	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/models"
)

// DefaultPageSize is how many candidates one query returns.
const DefaultPageSize = 50

// Option is one selectable entry. Value is the raw id the form stores.
type Option[T any] struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Group  string `json:"group,omitempty"`
	Entity T      `json:"entity"`
}

// Source describes how one entity kind is searched and labelled.
type Source[T any] struct {
	Kind   string
	Search func(ctx context.Context, api *gateway.Client, p models.ListParams) (*models.List[T], error)
	Get    func(ctx context.Context, api *gateway.Client, id string) (*T, error)
	ID     func(T) string
	Label  func(T) string
	// Group is optional.
	Group func(T) string
}

// Selector resolves a query into options and keeps the current selection
// in front of them.
type Selector[T any] struct {
	source   Source[T]
	pageSize int
}

// NewSelector creates a selector. pageSize <= 0 means DefaultPageSize.
func NewSelector[T any](source Source[T], pageSize int) *Selector[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Selector[T]{source: source, pageSize: pageSize}
}

// Kind names the entity kind, e.g. "organization".
func (s *Selector[T]) Kind() string { return s.source.Kind }

// Options returns the selected entities first, in selection order, then at
// most pageSize query matches. Every id appears once. Selected ids the
// query did not return are fetched one by one; ids the backend no longer
// knows are dropped.
func (s *Selector[T]) Options(ctx context.Context, api *gateway.Client, query string, selected []string) ([]Option[T], error) {
	list, err := s.source.Search(ctx, api, models.ListParams{Current: 1, PageSize: s.pageSize, Search: query})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.source.Kind, err)
	}
	var records []T
	if list != nil {
		records = list.Records
	}
	if len(records) > s.pageSize {
		records = records[:s.pageSize]
	}

	byID := make(map[string]T, len(records))
	for _, r := range records {
		byID[s.source.ID(r)] = r
	}

	out := make([]Option[T], 0, len(selected)+len(records))
	seen := make(map[string]bool, len(selected)+len(records))
	for _, id := range selected {
		if id == "" || seen[id] {
			continue
		}
		entity, ok := byID[id]
		if !ok {
			fetched, err := s.source.Get(ctx, api, id)
			if gateway.StatusOf(err) == 404 {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("resolve %s %s: %w", s.source.Kind, id, err)
			}
			entity = *fetched
		}
		seen[id] = true
		out = append(out, s.option(entity))
	}
	for _, r := range records {
		id := s.source.ID(r)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, s.option(r))
	}
	return out, nil
}

// Find satisfies Finder.
func (s *Selector[T]) Find(ctx context.Context, api *gateway.Client, query string, selected []string) (interface{}, error) {
	return s.Options(ctx, api, query, selected)
}

// Selected satisfies Finder: only the options for ids, in ids order.
func (s *Selector[T]) Selected(ctx context.Context, api *gateway.Client, ids []string) (interface{}, error) {
	options, err := s.Options(ctx, api, "", ids)
	if err != nil {
		return nil, err
	}
	return Resolve(options, ids...), nil
}

func (s *Selector[T]) option(e T) Option[T] {
	o := Option[T]{Value: s.source.ID(e), Label: s.source.Label(e), Entity: e}
	if s.source.Group != nil {
		o.Group = s.source.Group(e)
	}
	return o
}

// Resolve returns the options whose value is in ids, in ids order. It is
// how a selection emits both the raw id and the entity.
func Resolve[T any](options []Option[T], ids ...string) []Option[T] {
	idx := make(map[string]int, len(options))
	for i, o := range options {
		if _, ok := idx[o.Value]; !ok {
			idx[o.Value] = i
		}
	}
	out := make([]Option[T], 0, len(ids))
	for _, id := range ids {
		if i, ok := idx[id]; ok {
			out = append(out, options[i])
		}
	}
	return out
}

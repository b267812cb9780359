package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/pkg/response"
	"github.com/fec-cms/console/pkg/validation"
)

type item struct {
	ID   string
	Name string
}

type recorder struct {
	mu      sync.Mutex
	creates int
	updates []string
	err     error
	block   chan struct{}
}

func (r *recorder) actions() Actions[item, item, item] {
	return Actions[item, item, item]{
		Entity: "item",
		ID:     func(d item) string { return d.ID },
		Validate: func(d item) validation.Errors {
			if d.Name == "" {
				return validation.Errors{"name": "is required"}
			}
			return nil
		},
		Wire: func(d item) item { return d },
		Create: func(_ context.Context, _ *gateway.Client, w item) (item, error) {
			if r.block != nil {
				<-r.block
			}
			r.mu.Lock()
			defer r.mu.Unlock()
			r.creates++
			if r.err != nil {
				return item{}, r.err
			}
			w.ID = "created-1"
			return w, nil
		},
		Update: func(_ context.Context, _ *gateway.Client, id string, w item) (item, error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.updates = append(r.updates, id)
			return w, r.err
		},
		ResultID: func(i item) string { return i.ID },
		Redirect: func(id string) string { return "/dashboard/item/" + id + "/edit" },
	}
}

func TestValidationBlocksNetworkCall(t *testing.T) {
	rec := &recorder{}
	s := NewSubmitter(rec.actions(), zap.NewNop())

	out := s.Submit(context.Background(), nil, Key("sid", "item", ""), item{})

	assert.False(t, out.OK())
	assert.Equal(t, "is required", out.Errors["name"])
	assert.Equal(t, StateEditing, out.State)
	require.NotNil(t, out.Notice)
	assert.Equal(t, response.LevelError, out.Notice.Level)
	assert.Zero(t, rec.creates)
	assert.Empty(t, rec.updates)
}

func TestCreateNavigatesToEditView(t *testing.T) {
	rec := &recorder{}
	s := NewSubmitter(rec.actions(), zap.NewNop())

	out := s.Submit(context.Background(), nil, Key("sid", "item", ""), item{Name: "x"})

	require.True(t, out.OK())
	assert.True(t, out.Created)
	assert.Equal(t, "/dashboard/item/created-1/edit", out.Redirect)
	assert.Equal(t, StateNavigated, out.State)
	assert.Equal(t, response.LevelSuccess, out.Notice.Level)
	assert.Equal(t, 1, rec.creates)
}

func TestDraftWithIDUpdates(t *testing.T) {
	rec := &recorder{}
	s := NewSubmitter(rec.actions(), zap.NewNop())

	out := s.Submit(context.Background(), nil, Key("sid", "item", "e1"), item{ID: "e1", Name: "x"})

	require.True(t, out.OK())
	assert.False(t, out.Created)
	assert.Equal(t, []string{"e1"}, rec.updates)
	assert.Zero(t, rec.creates)
	assert.Equal(t, "/dashboard/item/e1/edit", out.Redirect)
}

func TestBackendFailureReturnsToEditing(t *testing.T) {
	rec := &recorder{err: errors.New("backend down")}
	s := NewSubmitter(rec.actions(), zap.NewNop())

	out := s.Submit(context.Background(), nil, Key("sid", "item", ""), item{Name: "x"})

	assert.False(t, out.OK())
	assert.False(t, out.Created)
	assert.Equal(t, StateEditing, out.State)
	assert.Equal(t, "backend down", out.Notice.Message)
	assert.Empty(t, out.Redirect)
}

func TestReentrantSubmitIsRefused(t *testing.T) {
	rec := &recorder{block: make(chan struct{})}
	s := NewSubmitter(rec.actions(), zap.NewNop())
	key := Key("sid", "item", "")

	done := make(chan Outcome[item])
	go func() { done <- s.Submit(context.Background(), nil, key, item{Name: "x"}) }()

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		_, busy := s.inflight[key]
		return busy
	}, time.Second, time.Millisecond)

	second := s.Submit(context.Background(), nil, key, item{Name: "x"})
	assert.ErrorIs(t, second.Err, ErrSubmitting)
	assert.Equal(t, StateSubmitting, second.State)

	rec.block <- struct{}{}
	first := <-done
	assert.True(t, first.OK())
	assert.Equal(t, 1, rec.creates)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "s:event:new", Key("s", "event", ""))
	assert.Equal(t, "s:event:e1", Key("s", "event", "e1"))
}

package form

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/apperr"
	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/pkg/response"
	"github.com/fec-cms/console/pkg/validation"
)

// State is the lifecycle position of a form instance.
type State string

const (
	StateLoading    State = "loading"
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateNavigated  State = "navigated"
)

// ErrSubmitting is returned while an earlier submit of the same form is in flight.
var ErrSubmitting = apperr.NewConflict("form: submit already in progress")

// Actions binds a draft type D, its wire shape W and the backend result R.
type Actions[D any, W any, R any] struct {
	Entity   string
	ID       func(D) string
	Validate func(D) validation.Errors
	Wire     func(D) W
	Create   func(ctx context.Context, api *gateway.Client, w W) (R, error)
	Update   func(ctx context.Context, api *gateway.Client, id string, w W) (R, error)
	ResultID func(R) string
	// Redirect returns where the shell goes after success; nil stays put.
	Redirect func(id string) string
}

// Outcome reports what a submit did. Every outcome carries a notice.
type Outcome[R any] struct {
	Result   R
	Created  bool
	Errors   validation.Errors
	Err      error
	Notice   *response.Notice
	Redirect string
	State    State
}

// OK reports whether the submit reached the backend and succeeded.
func (o Outcome[R]) OK() bool {
	return o.Err == nil && len(o.Errors) == 0
}

// Submitter runs the validate, transform, create-or-update sequence and
// refuses re-entrant submits of the same form instance.
type Submitter[D any, W any, R any] struct {
	actions Actions[D, W, R]
	logger  *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewSubmitter creates a submitter for one entity type.
func NewSubmitter[D any, W any, R any](actions Actions[D, W, R], logger *zap.Logger) *Submitter[D, W, R] {
	return &Submitter[D, W, R]{actions: actions, logger: logger, inflight: make(map[string]struct{})}
}

// Key identifies a form instance: one per session, entity and record.
func Key(sessionID, entity, id string) string {
	if id == "" {
		id = "new"
	}
	return sessionID + ":" + entity + ":" + id
}

// Submit validates draft and, when valid, creates or updates it through api.
func (s *Submitter[D, W, R]) Submit(ctx context.Context, api *gateway.Client, key string, draft D) Outcome[R] {
	var out Outcome[R]

	if errs := s.actions.Validate(draft); len(errs) > 0 {
		out.Errors = errs
		out.Notice = response.Failure("Validation failed", errs.JSON())
		out.State = StateEditing
		return out
	}

	if !s.acquire(key) {
		out.Err = ErrSubmitting
		out.Notice = response.Failure(apperr.Failure, ErrSubmitting.Error())
		out.State = StateSubmitting
		return out
	}
	defer s.release(key)

	wire := s.actions.Wire(draft)
	id := s.actions.ID(draft)
	var (
		res R
		err error
	)
	if id != "" {
		res, err = s.actions.Update(ctx, api, id, wire)
	} else {
		res, err = s.actions.Create(ctx, api, wire)
		out.Created = true
	}
	if err != nil {
		s.logger.Warn("submit failed", zap.String("entity", s.actions.Entity), zap.String("id", id), zap.Error(err))
		out.Created = false
		out.Err = err
		out.Notice = response.Failure(apperr.Failure, err.Error())
		out.State = StateEditing
		return out
	}

	out.Result = res
	resultID := s.actions.ResultID(res)
	if out.Created {
		out.Notice = response.Success("Created", s.actions.Entity+" created")
	} else {
		out.Notice = response.Success("Updated", s.actions.Entity+" updated")
		if resultID == "" {
			resultID = id
		}
	}
	if s.actions.Redirect != nil {
		out.Redirect = s.actions.Redirect(resultID)
	}
	out.State = StateNavigated
	return out
}

func (s *Submitter[D, W, R]) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[key]; busy {
		return false
	}
	s.inflight[key] = struct{}{}
	return true
}

func (s *Submitter[D, W, R]) release(key string) {
	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()
}

package store

import (
	"io"
	"log/slog"
	"reflect"
	"slices"

	"grider/internal/formula"
	"grider/internal/grid"
	"grider/internal/matrix"
	"grider/internal/point"
	"grider/internal/selection"
)

// Callbacks are the notifications a Store sends to its host. Each one is
// called at most once per Dispatch, after every action has been applied.
type Callbacks struct {
	OnChange     func(data matrix.Matrix[grid.Cell])
	OnSelect     func(points []point.Point)
	OnActivate   func(active point.Point)
	OnModeChange func(mode Mode)
}

// Store owns the state of one sheet. It is not safe for concurrent use;
// all dispatching happens on the host's event goroutine.
type Store struct {
	state     State
	reducer   Reducer
	callbacks Callbacks
	logger    *slog.Logger

	active   *point.Point
	selected selection.Selection
}

// Option configures a Store.
type Option func(*Store)

// WithParser sets the formula evaluator.
func WithParser(p formula.Parser) Option {
	return func(s *Store) { s.reducer.Parser = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithActive sets the initially active cell.
func WithActive(p point.Point) Option {
	return func(s *Store) { s.active = &p }
}

// WithSelected sets the initial selection.
func WithSelected(sel selection.Selection) Option {
	return func(s *Store) { s.selected = sel }
}

func WithCallbacks(cb Callbacks) Option {
	return func(s *Store) { s.callbacks = cb }
}

// New returns a Store holding data.
func New(data matrix.Matrix[grid.Cell], opts ...Option) *Store {
	s := &Store{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	state := NewState(data)
	size := data.Size()
	if s.active != nil && size.Has(*s.active) {
		state.Active = s.active
		state.Selected = selection.Cell(*s.active)
	}
	if s.selected != nil {
		state.Selected = s.selected.Normalize(size)
	}
	state.Bindings = formula.AllBindings(s.reducer.Parser, data)
	s.state = state
	return s
}

// State returns the current state.
func (s *Store) State() State {
	return s.state
}

// Parser returns the formula evaluator in use.
func (s *Store) Parser() formula.Parser {
	return s.reducer.Parser
}

// SetParser replaces the formula evaluator and recomputes all bindings.
func (s *Store) SetParser(p formula.Parser) {
	s.reducer.Parser = p
	s.state.Bindings = formula.AllBindings(p, s.state.Data)
}

// Dispatch applies actions in order and then notifies the host of what
// changed.
func (s *Store) Dispatch(actions ...Action) {
	prev := s.state
	next := prev
	for _, a := range actions {
		next = s.reducer.Reduce(next, a)
		s.logger.Debug("dispatch", "action", a.Type(), "mode", string(next.Mode), "selected", next.Selected.String())
	}
	s.state = next
	s.notify(prev, next)
}

func (s *Store) notify(prev, next State) {
	cb := s.callbacks
	if cb.OnChange != nil && !reflect.DeepEqual(prev.Data, next.Data) {
		cb.OnChange(next.Data)
	}
	if cb.OnSelect != nil {
		before := selection.Points(prev.Selected, prev.Size())
		after := selection.Points(next.Selected, next.Size())
		if !slices.Equal(before, after) {
			cb.OnSelect(after)
		}
	}
	if cb.OnActivate != nil && next.Active != nil && !IsActive(prev.Active, *next.Active) {
		cb.OnActivate(*next.Active)
	}
	if cb.OnModeChange != nil && prev.Mode != next.Mode {
		cb.OnModeChange(next.Mode)
	}
}

// Evaluate returns the computed value of the cell at p.
func (s *Store) Evaluate(p point.Point) any {
	return formula.Evaluate(s.reducer.Parser, s.state.Data, p)
}

// ClipboardText renders the copied cells as TSV.
func (s *Store) ClipboardText() string {
	return ClipboardText(s.state)
}

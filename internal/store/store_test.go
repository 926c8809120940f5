package store_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grider/internal/calc"
	"grider/internal/grid"
	"grider/internal/matrix"
	"grider/internal/point"
	"grider/internal/selection"
	"grider/internal/store"
)

type recorder struct {
	changes   []matrix.Matrix[grid.Cell]
	selects   [][]point.Point
	activates []point.Point
	modes     []store.Mode
}

func (r *recorder) callbacks() store.Callbacks {
	return store.Callbacks{
		OnChange:     func(data matrix.Matrix[grid.Cell]) { r.changes = append(r.changes, data) },
		OnSelect:     func(points []point.Point) { r.selects = append(r.selects, points) },
		OnActivate:   func(active point.Point) { r.activates = append(r.activates, active) },
		OnModeChange: func(mode store.Mode) { r.modes = append(r.modes, mode) },
	}
}

func TestStoreOptions(t *testing.T) {
	s := store.New(sheet([]string{"1", "=A1*2"}),
		store.WithParser(calc.New()),
		store.WithActive(at(0, 1)),
	)

	st := s.State()
	require.NotNil(t, st.Active)
	assert.Equal(t, at(0, 1), *st.Active)
	assert.Equal(t, selection.Cell(at(0, 1)), st.Selected)
	assert.True(t, st.Bindings.Has(at(0, 1)))
	assert.Equal(t, 2.0, s.Evaluate(at(0, 1)))

	s = store.New(square(3), store.WithSelected(selection.NewRange(at(1, 1), at(5, 5))))
	assert.Equal(t, selection.NewRange(at(1, 1), at(2, 2)), s.State().Selected)
	assert.Nil(t, s.State().Active)

	s = store.New(square(3), store.WithActive(at(9, 9)))
	assert.Nil(t, s.State().Active)
}

func TestDispatchNotifiesOncePerBatch(t *testing.T) {
	rec := &recorder{}
	s := store.New(square(4), store.WithCallbacks(rec.callbacks()))

	s.Dispatch(store.Activate{Point: at(0, 0)}, store.Select{Point: at(1, 1)})

	assert.Empty(t, rec.changes)
	require.Len(t, rec.selects, 1)
	assert.Equal(t, []point.Point{at(0, 0), at(0, 1), at(1, 0), at(1, 1)}, rec.selects[0])
	assert.Equal(t, []point.Point{at(0, 0)}, rec.activates)
	assert.Empty(t, rec.modes)

	s.Dispatch(store.Edit{})
	assert.Equal(t, []store.Mode{store.ModeEdit}, rec.modes)

	s.Dispatch(store.Commit{Value: "x"})
	require.Len(t, rec.changes, 1)
	cell, _ := rec.changes[0].Get(at(0, 0))
	assert.Equal(t, "x", cell.Value)
	assert.Equal(t, []store.Mode{store.ModeEdit, store.ModeView}, rec.modes)
	assert.Len(t, rec.activates, 1)

	s.Dispatch(store.Edit{}, store.CancelEdit{})
	assert.Len(t, rec.modes, 2)
}

func TestDispatchLogsActions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := store.New(square(2), store.WithLogger(logger))

	s.Dispatch(store.Activate{Point: at(1, 1)})

	assert.Contains(t, buf.String(), "action=activate")
}

func TestStoreClipboardText(t *testing.T) {
	s := store.New(sheet([]string{"a", "b\tc"}))
	s.Dispatch(store.SelectEntireWorksheet{}, store.Copy{})

	assert.Equal(t, "a\t\"b\tc\"", s.ClipboardText())
}

func TestSetParserRebinds(t *testing.T) {
	s := store.New(sheet([]string{"1", "=A1"}))
	assert.False(t, s.State().Bindings.Has(at(0, 1)))

	s.SetParser(calc.New())
	assert.True(t, s.State().Bindings.Has(at(0, 1)))
	assert.NotNil(t, s.Parser())
}

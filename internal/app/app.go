// Package app is the terminal host of a sheet: it owns the tcell screen,
// lays out and draws the grid, and feeds terminal events to the store.
package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"grider/internal/config"
	"grider/internal/formula"
	"grider/internal/grid"
	"grider/internal/keys"
	"grider/internal/matrix"
	"grider/internal/point"
	"grider/internal/store"
)

// Options configure a new App.
type Options struct {
	Config     config.Config
	ConfigPath string
	Parser     formula.Parser
	Logger     *slog.Logger
	Clipboard  Clipboard
	// MinRows and MinColumns are the least size of a loaded sheet.
	MinRows    int
	MinColumns int
	// Header makes the first row of opened CSV files the column labels.
	Header       bool
	RowLabels    []string
	ColumnLabels []string
}

type App struct {
	// layout
	LeftGutter    int
	StatusLines   int
	DefaultWidth  int
	DefaultHeight int
	CellPadding   int

	HideRowIndicators    bool
	HideColumnIndicators bool

	// labels shown instead of row numbers and column letters
	RowLabels    []string
	ColumnLabels []string

	// per column and row overrides of the defaults
	ColWidths  map[int]int
	RowHeights map[int]int

	// first visible row and column
	ViewRow int
	ViewCol int

	// Viewers render cells naming them in DataViewer.
	Viewers map[string]Viewer

	HelpVisible bool
	Status      string
	Quit        bool

	screen     tcell.Screen
	store      *store.Store
	mapper     *keys.Mapper
	clipboard  Clipboard
	logger     *slog.Logger
	configPath string
	minRows    int
	minColumns int
	hasHeader  bool
	// follow scrolls the view to the active cell on the next layout.
	follow bool
}

// reloadConfig is posted to the screen when the config file changes.
type reloadConfig struct{}

func New(screen tcell.Screen, data matrix.Matrix[grid.Cell], opts Options) *App {
	a := &App{
		LeftGutter:   4,
		StatusLines:  2,
		RowLabels:    opts.RowLabels,
		ColumnLabels: opts.ColumnLabels,
		ColWidths:    map[int]int{},
		RowHeights:   map[int]int{},
		Viewers:      DefaultViewers(),
		screen:       screen,
		mapper:       keys.NewMapper(),
		clipboard:    opts.Clipboard,
		logger:       opts.Logger,
		configPath:   opts.ConfigPath,
		minRows:      opts.MinRows,
		minColumns:   opts.MinColumns,
		hasHeader:    opts.Header,
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if a.clipboard == nil {
		a.clipboard = SystemClipboard()
	}
	a.Apply(opts.Config)

	a.store = store.New(data.Pad(a.minRows, a.minColumns),
		store.WithParser(opts.Parser),
		store.WithLogger(a.logger),
		store.WithActive(point.Origin),
		store.WithCallbacks(store.Callbacks{
			OnChange: func(data matrix.Matrix[grid.Cell]) {
				size := data.Size()
				a.logger.Debug("Sheet changed.", "rows", size.Rows, "columns", size.Columns)
			},
			OnActivate: func(point.Point) { a.follow = true },
			OnModeChange: func(mode store.Mode) {
				a.logger.Debug("Mode changed.", "mode", string(mode))
			},
		}),
	)
	a.mapper.OnKeyDown = a.onKeyDown
	return a
}

// Store returns the store holding the sheet.
func (a *App) Store() *store.Store {
	return a.store
}

// Apply takes the options of cfg into use.
func (a *App) Apply(cfg config.Config) {
	a.DefaultWidth = cfg.DefaultWidth
	a.DefaultHeight = cfg.DefaultHeight
	a.CellPadding = cfg.CellPadding
	a.HideRowIndicators = cfg.HideRowIndicators
	a.HideColumnIndicators = cfg.HideColumnIndicators
	a.mapper.EnterStartsEdit = cfg.EnterStartsEdit
	a.mapper.MoveAfterEnter = cfg.MoveAfterEnter
}

// ReloadConfig reads the config file again. A broken file keeps the
// current options.
func (a *App) ReloadConfig() {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		a.logger.Warn("Config reload failed.", "path", a.configPath, "error", err)
		a.Status = "config error, see log"
		return
	}
	a.Apply(cfg)
	a.logger.Info("Config reloaded.", "path", a.configPath)
	a.Status = "config reloaded"
}

// Run draws the sheet and handles events until the user quits or the
// screen is finalized.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.configPath != "" {
		err := config.Watch(ctx, a.configPath, a.logger, func() {
			a.screen.PostEvent(tcell.NewEventInterrupt(reloadConfig{}))
		})
		if err != nil {
			a.logger.Warn("Config live reload disabled.", "error", err)
		}
	}

	for !a.Quit {
		a.Render()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		a.HandleEvent(ev)
	}
	return nil
}

// Render lays the sheet out and draws it.
func (a *App) Render() {
	a.layout()
	a.Draw()
}

func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.follow = true
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(reloadConfig); ok {
			a.ReloadConfig()
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	// the help popup swallows keys until it is closed with Esc or "?"
	if a.HelpVisible {
		if ev.Key() == tcell.KeyEsc || (ev.Key() == tcell.KeyRune && ev.Rune() == '?') {
			a.HelpVisible = false
		}
		return
	}
	a.Status = ""
	a.apply(a.mapper.Key(ev, a.store.State()))
}

// onKeyDown handles the host's own keys before the sheet sees them.
func (a *App) onKeyDown(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlQ {
		a.Quit = true
		return true
	}
	if a.store.State().Mode == store.ModeEdit || ev.Key() != tcell.KeyRune {
		return false
	}
	switch ev.Rune() {
	case ':':
		if cmd, ok := a.PopupInput(":", ""); ok {
			a.ExecuteCommand(cmd)
		}
		return true
	case '?':
		a.HelpVisible = true
		return true
	}
	return false
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	var at *point.Point
	if p, ok := a.CellAt(x, y); ok {
		at = &p
	}
	a.apply(a.mapper.Mouse(ev, at, a.store.State()))
}

func (a *App) apply(res keys.Result) {
	if len(res.Actions) > 0 {
		a.store.Dispatch(res.Actions...)
	}
	switch res.Clipboard {
	case keys.ClipboardCopy:
		a.copyToClipboard()
	case keys.ClipboardPaste:
		a.pasteFromClipboard()
	}
	if res.Resize != (point.Point{}) {
		a.resize(res.Resize)
	}
	if res.Scroll != 0 {
		a.scroll(res.Scroll)
	}
}

// resize changes the active column width (min 4) and row height (min 1).
func (a *App) resize(delta point.Point) {
	active := a.store.State().Active
	if active == nil {
		return
	}
	if delta.Column != 0 {
		if w := a.colWidth(active.Column) + delta.Column; w >= 4 {
			a.ColWidths[active.Column] = w
		}
	}
	if delta.Row != 0 {
		if h := a.rowHeight(active.Row) + delta.Row; h >= 1 {
			a.RowHeights[active.Row] = h
		}
	}
}

func (a *App) scroll(rows int) {
	last := max(a.sheetSize().Rows-1, 0)
	a.ViewRow = min(max(a.ViewRow+rows, 0), last)
}

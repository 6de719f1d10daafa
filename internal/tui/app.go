// Package tui is the terminal front end: a project picker, the pattern view
// driven by the navigation tracker and mark overlay, and a small settings
// screen.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kiru/beadtrack/internal/config"
	"github.com/kiru/beadtrack/internal/database/repository"
	"github.com/kiru/beadtrack/internal/marks"
	"github.com/kiru/beadtrack/internal/nav"
	"github.com/kiru/beadtrack/internal/pattern"
	"github.com/kiru/beadtrack/internal/prefs"
	"github.com/kiru/beadtrack/internal/service"
)

type appState string

const (
	viewPicker   appState = "picker"
	viewPattern  appState = "pattern"
	viewSettings appState = "settings"
)

// Repos is the storage surface the app needs.
type Repos struct {
	Projects  *repository.ProjectRepo
	Positions *repository.PositionRepo
	Marks     *repository.MarkRepo
}

// Services holds the app's service layer.
type Services struct {
	Projects    *service.ProjectService
	Maintenance *service.MaintenanceService
}

// openPattern is the live state of the pattern view: one tracker, one mark
// overlay, and the writer draining position changes to storage.
type openPattern struct {
	loaded  *service.LoadedProject
	tracker *nav.Tracker
	overlay *marks.Overlay
	writer  *service.PositionWriter
}

// overlayActivator routes the tracker's unit-activation side effect into the
// mark overlay, so crossing into a row marks its first step when a mark
// mode is active.
type overlayActivator struct {
	overlay *marks.Overlay
}

func (a overlayActivator) ActivateStep(pos pattern.Position) {
	a.overlay.Activate(pos)
}

// App ties together views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	repos    Repos
	services Services
	keys     keyMap
	sty      styles

	state  appState
	width  int
	height int
	status string

	// picker
	projects  []repository.Project
	filtered  []repository.Project
	picker    int
	searching bool
	query     string

	// pattern view
	open *openPattern

	// settings
	settingsCursor int
	confirmReset   bool
}

func New(ctx context.Context, cfg config.Config, repos Repos, services Services) *App {
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		repos:    repos,
		services: services,
		keys:     defaultKeyMap(),
		sty:      newStyles(cfg.UI.Accent),
		state:    viewPicker,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadProjects()
}

// --- messages ---------------------------------------------------------------

type errMsg struct{ err error }

type projectsMsg []repository.Project

type openedMsg struct{ loaded *service.LoadedProject }

type exportedMsg struct{ path string }

type progressResetMsg struct{}

// --- commands ---------------------------------------------------------------

func (a *App) loadProjects() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Projects.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return projectsMsg(list)
	}
}

func (a *App) openProject(id string) tea.Cmd {
	return func() tea.Msg {
		loaded, err := a.services.Projects.Load(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return openedMsg{loaded: loaded}
	}
}

func (a *App) exportProject(id, name string) tea.Cmd {
	return func() tea.Msg {
		f, err := a.services.Projects.Export(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		path := filepath.Join(exportDir(), sanitizeFilename(name)+".json")
		if err := prefs.SaveProject(path, f); err != nil {
			return errMsg{err}
		}
		return exportedMsg{path: path}
	}
}

func (a *App) resetProgress(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Maintenance.ResetProgress(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return progressResetMsg{}
	}
}

func (a *App) toggleCombine() tea.Cmd {
	id := a.open.loaded.Project.ID
	next := !a.open.loaded.Project.RowCombine
	return func() tea.Msg {
		if err := a.repos.Projects.SetRowCombine(a.ctx, id, next); err != nil {
			return errMsg{err}
		}
		loaded, err := a.services.Projects.Load(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return openedMsg{loaded: loaded}
	}
}

// --- update -----------------------------------------------------------------

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case errMsg:
		a.status = "error: " + msg.err.Error()
		return a, nil

	case projectsMsg:
		a.projects = msg
		a.applyFilter()
		return a, nil

	case openedMsg:
		a.attach(msg.loaded)
		a.state = viewPattern
		a.status = msg.loaded.CombineWarning
		return a, nil

	case exportedMsg:
		a.status = "exported to " + msg.path
		return a, nil

	case progressResetMsg:
		a.confirmReset = false
		a.status = "progress cleared"
		if a.open != nil {
			id := a.open.loaded.Project.ID
			return a, a.openProject(id)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

// attach swaps the live pattern state, closing the previous position writer.
func (a *App) attach(loaded *service.LoadedProject) {
	if a.open != nil {
		a.open.writer.Close()
	}
	writer := service.NewPositionWriter(a.ctx, a.repos.Positions, loaded.Project.ID)
	overlay := marks.New(&service.MarkWriter{
		ProjectID: loaded.Project.ID,
		Repo:      a.repos.Marks,
		Ctx:       a.ctx,
	})
	overlay.Load(loaded.StepMarks, loaded.RowMarks)

	tracker := nav.New(loaded.Rows, writer, overlayActivator{overlay: overlay})
	if loaded.Position != nil {
		if err := tracker.Select(*loaded.Position); err != nil {
			_ = tracker.Reset()
		}
	} else {
		_ = tracker.Reset()
	}

	a.open = &openPattern{loaded: loaded, tracker: tracker, overlay: overlay, writer: writer}
}

// Close flushes pending position writes. Call after the program exits.
func (a *App) Close() {
	if a.open != nil {
		a.open.writer.Close()
		a.open = nil
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.searching {
		return a.handleSearchKey(msg)
	}
	if key.Matches(msg, a.keys.Quit) && a.state == viewPicker {
		return a, tea.Quit
	}
	switch a.state {
	case viewPicker:
		return a.handlePickerKey(msg)
	case viewPattern:
		return a.handlePatternKey(msg)
	case viewSettings:
		return a.handleSettingsKey(msg)
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.searching = false
		a.query = ""
		a.applyFilter()
	case tea.KeyEnter:
		a.searching = false
	case tea.KeyBackspace:
		if len(a.query) > 0 {
			a.query = a.query[:len(a.query)-1]
			a.applyFilter()
		}
	case tea.KeySpace:
		a.query += " "
		a.applyFilter()
	case tea.KeyRunes:
		a.query += string(msg.Runes)
		a.applyFilter()
	}
	return a, nil
}

func (a *App) applyFilter() {
	a.filtered = service.SearchProjects(a.projects, a.query)
	if a.picker >= len(a.filtered) {
		a.picker = 0
	}
}

func (a *App) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		if a.picker < len(a.filtered)-1 {
			a.picker++
		}
	case key.Matches(msg, a.keys.Up):
		if a.picker > 0 {
			a.picker--
		}
	case key.Matches(msg, a.keys.Search):
		a.searching = true
		a.query = ""
	case key.Matches(msg, a.keys.Open):
		if a.picker < len(a.filtered) {
			return a, a.openProject(a.filtered[a.picker].ID)
		}
	}
	return a, nil
}

func (a *App) handlePatternKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.open == nil {
		a.state = viewPicker
		return a, nil
	}
	o := a.open
	switch {
	case key.Matches(msg, a.keys.Back):
		a.state = viewPicker
		a.status = ""
		return a, a.loadProjects()

	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Advance):
		if o.tracker.AdvanceOne() == nav.Wrapped {
			a.status = "wrapped to the start"
		} else {
			a.status = ""
		}

	case key.Matches(msg, a.keys.Retreat):
		if o.tracker.RetreatOne() == nav.Wrapped {
			a.status = "wrapped to the end"
		} else {
			a.status = ""
		}

	case key.Matches(msg, a.keys.Batch):
		taken := o.tracker.Advance(a.cfg.Navigation.BatchSize)
		a.status = fmt.Sprintf("advanced %d", taken)

	case key.Matches(msg, a.keys.BatchBack):
		taken := o.tracker.Retreat(a.cfg.Navigation.BatchSize)
		a.status = fmt.Sprintf("retreated %d", taken)

	case key.Matches(msg, a.keys.RowNext):
		if o.tracker.RowForward() == nav.AtPatternEnd {
			a.status = "already on the last row"
		} else {
			a.status = ""
		}

	case key.Matches(msg, a.keys.RowPrev):
		if o.tracker.RowBackward() == nav.AtPatternStart {
			a.status = "already on the first row"
		} else {
			a.status = ""
		}

	case key.Matches(msg, a.keys.CycleMark):
		mode := o.overlay.CycleMode()
		if mode == 0 {
			a.status = "mark mode off"
		} else {
			a.status = fmt.Sprintf("mark mode %d", mode)
		}

	case key.Matches(msg, a.keys.Activate):
		pos, ok := o.tracker.Position()
		if !ok {
			break
		}
		if o.overlay.Activate(pos) == marks.ActivationSelect {
			// Mark mode off: enter is a plain re-selection of the
			// current step.
			_ = o.tracker.Select(pos)
		}

	case key.Matches(msg, a.keys.MarkRow):
		if pos, ok := o.tracker.Position(); ok {
			o.overlay.ActivateRow(pos.Row)
		}

	case key.Matches(msg, a.keys.Export):
		return a, a.exportProject(o.loaded.Project.ID, o.loaded.Project.Name)

	case msg.String() == "s":
		a.state = viewSettings
		a.settingsCursor = 0
		a.confirmReset = false
	}
	return a, nil
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmReset {
		if key.Matches(msg, a.keys.Confirm) {
			return a, a.resetProgress(a.open.loaded.Project.ID)
		}
		a.confirmReset = false
		return a, nil
	}
	switch {
	case key.Matches(msg, a.keys.Back):
		a.state = viewPattern
	case key.Matches(msg, a.keys.Combine):
		return a, a.toggleCombine()
	case key.Matches(msg, a.keys.Reset):
		a.confirmReset = true
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	}
	return a, nil
}

// --- helpers ----------------------------------------------------------------

func exportDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return dir
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "project"
	}
	repl := strings.NewReplacer("/", "-", "\\", "-", ":", "-", " ", "_")
	return repl.Replace(name)
}

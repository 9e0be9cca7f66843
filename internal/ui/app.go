package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/kisanportal/kisan/internal/assistant"
	"github.com/kisanportal/kisan/internal/config"
	"github.com/kisanportal/kisan/internal/debounce"
	"github.com/kisanportal/kisan/internal/market"
	"github.com/kisanportal/kisan/internal/notify"
	"github.com/kisanportal/kisan/internal/prefs"
	"github.com/kisanportal/kisan/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewPrices View = iota
	ViewAssistant
)

// Search is the debounced commodity lookup driven by the search box.
type Search = debounce.Coordinator[string, market.PriceSeries]

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Prefs     *prefs.Store
	Schemes   *SchemeRelay
	Changes   *Signal // woken when toasts or search state change
	Toasts    *notify.Queue
	Notifier  notify.Notifier
	Search    *Search
	Assistant assistant.Asker
	Config    *config.Config
	Logger    *zap.Logger
	PollTick  time.Duration
}

// exchange is one question and its answer in the assistant transcript.
type exchange struct {
	seq      int
	question string
	reply    assistant.Reply
	err      error
	pending  bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	store    *state.Store
	prefs    *prefs.Store
	schemes  *SchemeRelay
	changes  *Signal
	toasts   *notify.Queue
	notifier notify.Notifier
	search   *Search
	asker    assistant.Asker
	config   *config.Config
	logger   *zap.Logger
	pollTick time.Duration
	keys     keyMap

	// UI state
	theme       Theme
	lang        language.Tag
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	spinner     spinner.Model

	// Data state
	snapshot    state.Snapshot
	searchState debounce.State[string, market.PriceSeries]
	items       []notify.Item

	// Prices
	pricesViewport viewport.Model
	searchInput    textinput.Model
	searching      bool

	// Assistant
	askInput           textinput.Model
	transcript         []exchange
	transcriptViewport viewport.Model
	nextSeq            int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	theme := ThemeFor(prefs.SchemeLight)
	lang := prefs.DefaultLanguage
	if opts.Prefs != nil {
		st := opts.Prefs.State()
		theme = ThemeFor(st.Effective)
		lang = st.Language
	}

	var notifier notify.Notifier
	if opts.Notifier != nil {
		notifier = opts.Notifier
	} else if opts.Toasts != nil {
		notifier = opts.Toasts
	}

	searchInput := textinput.New()
	searchInput.Prompt = "/ "
	searchInput.CharLimit = 40

	askInput := textinput.New()
	askInput.Prompt = "> "
	askInput.CharLimit = 500

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		prefs:       opts.Prefs,
		schemes:     opts.Schemes,
		changes:     opts.Changes,
		toasts:      opts.Toasts,
		notifier:    notify.Fallback(notifier, logger),
		search:      opts.Search,
		asker:       opts.Assistant,
		config:      opts.Config,
		logger:      logger,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       theme,
		lang:        lang,
		currentView: ViewPrices,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		searchInput: searchInput,
		askInput:    askInput,
	}
	m.applyLanguage()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		m.spinner.Tick,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if cmd := listenScheme(m.ctx, m.schemes); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := listenSignal(m.ctx, m.changes); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.updatePricesViewport()
		m.updateTranscriptViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.updatePricesViewport()
		return m, nil

	case schemeMsg:
		m.theme = ThemeFor(prefs.Scheme(msg))
		m.updatePricesViewport()
		m.updateTranscriptViewport()
		return m, listenScheme(m.ctx, m.schemes)

	case signalMsg:
		// A settled search has already written the store.
		m.refresh()
		cmds := []tea.Cmd{listenSignal(m.ctx, m.changes)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case askResultMsg:
		m.handleAskResult(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.hasPendingExchange() {
			m.redrawTranscript()
		}
		return m, cmd
	}

	// Cursor blink and other input messages.
	var cmd tea.Cmd
	switch {
	case m.searching:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case m.askInput.Focused():
		m.askInput, cmd = m.askInput.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return T(m.lang, "status.loading")
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.currentView == ViewAssistant && m.askInput.Focused() {
		return m.handleAskKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleMode):
		if m.prefs != nil {
			mode := m.prefs.ToggleMode()
			m.notifier.Info(T(m.lang, "label.theme") + ": " + m.modeLabel(mode))
		}
		return m, nil

	case key.Matches(msg, m.keys.SystemMode):
		if m.prefs != nil {
			if err := m.prefs.SetMode(prefs.ModeSystem); err == nil {
				m.notifier.Info(T(m.lang, "label.theme") + ": " + m.modeLabel(prefs.ModeSystem))
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Language):
		if m.prefs != nil {
			m.lang = m.prefs.CycleLanguage()
			m.applyLanguage()
			m.updatePricesViewport()
			m.updateTranscriptViewport()
			m.notifier.Info(T(m.lang, "label.language") + ": " + LanguageName(m.lang))
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewPrices), key.Matches(msg, m.keys.Escape):
		m.currentView = ViewPrices
		return m, nil

	case key.Matches(msg, m.keys.ViewAssistant):
		m.currentView = ViewAssistant
		return m, m.askInput.Focus()

	case key.Matches(msg, m.keys.Tab):
		if m.currentView == ViewPrices {
			m.currentView = ViewAssistant
			return m, m.askInput.Focus()
		}
		m.currentView = ViewPrices
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.currentView = ViewPrices
		m.searching = true
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Refresh):
		if m.search != nil && m.store != nil {
			m.search.Request(m.store.Commodity())
			m.search.Flush()
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.currentView == ViewAssistant {
			return m, m.askInput.Focus()
		}
		return m, nil
	}

	// Remaining keys scroll the active pane.
	var cmd tea.Cmd
	if m.currentView == ViewAssistant {
		m.transcriptViewport, cmd = m.transcriptViewport.Update(msg)
	} else {
		m.pricesViewport, cmd = m.pricesViewport.Update(msg)
	}
	return m, cmd
}

// handleSearchKey feeds the search box. Every edit restarts the debounce
// timer; enter dispatches immediately.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.searchInput.Blur()
		if m.search != nil {
			m.search.Cancel()
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.searchInput.Blur()
		if m.search != nil {
			m.search.Flush()
		}
		m.refresh()
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	after := strings.TrimSpace(m.searchInput.Value())
	if after != strings.TrimSpace(before) && m.search != nil {
		if after == "" {
			m.search.Cancel()
		} else {
			m.search.Request(after)
		}
		m.refresh()
	}
	return m, cmd
}

// handleAskKey feeds the assistant box.
func (m Model) handleAskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.askInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		question := strings.TrimSpace(m.askInput.Value())
		if question == "" {
			return m, nil
		}
		m.askInput.SetValue("")
		return m, m.ask(question)
	}

	var cmd tea.Cmd
	m.askInput, cmd = m.askInput.Update(msg)
	return m, cmd
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	m.refresh()

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// refresh copies toast and search state into the model.
func (m *Model) refresh() {
	m.items = m.toasts.Items()
	if m.search != nil {
		m.searchState = m.search.State()
	}
}

// applyLanguage updates widget text after a language change.
func (m *Model) applyLanguage() {
	m.searchInput.Placeholder = T(m.lang, "search.placeholder")
	m.askInput.Placeholder = T(m.lang, "assistant.placeholder")
}

// resize lays out the viewports for the current window.
func (m *Model) resize() {
	// header + command bar + reserved toast rows
	contentHeight := max(m.height-2-ToastLimit, 3)
	if !m.ready {
		m.pricesViewport = viewport.New(m.width, contentHeight)
		m.transcriptViewport = viewport.New(m.width, contentHeight)
	} else {
		m.pricesViewport.Width, m.pricesViewport.Height = m.width, contentHeight
		m.transcriptViewport.Width, m.transcriptViewport.Height = m.width, contentHeight
	}
	m.searchInput.Width = max(m.width/3, 20)
	m.askInput.Width = max(m.width-4, 20)
}

func (m Model) modeLabel(mode prefs.Mode) string {
	return T(m.lang, "theme."+mode.String())
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderToasts())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAssistant:
		return m.transcriptViewport.View()
	default:
		return m.pricesViewport.View()
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

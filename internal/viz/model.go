package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gridreplay/internal/config"
	"github.com/san-kum/gridreplay/internal/export"
	"github.com/san-kum/gridreplay/internal/logging"
	"github.com/san-kum/gridreplay/internal/metrics"
	"github.com/san-kum/gridreplay/internal/playback"
	"github.com/san-kum/gridreplay/internal/replay"
	"github.com/san-kum/gridreplay/internal/storage"
)

// Board frame position in the view: below the two-row header, flush left.
const (
	boardLeft  = 0
	boardTop   = 2
	sparkWidth = 24
)

type TickMsg time.Time

// ConfigReloadedMsg carries a config file that changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

type exportDoneMsg struct {
	turn   int
	result export.Result
	err    error
}

var keyBindings = map[string]playback.Key{
	"left":  playback.KeyStepBack,
	"h":     playback.KeyStepBack,
	"right": playback.KeyStepForward,
	"l":     playback.KeyStepForward,
	"up":    playback.KeyPageBack,
	"k":     playback.KeyPageBack,
	"down":  playback.KeyPageForward,
	"j":     playback.KeyPageForward,
	"z":     playback.KeyJumpStart,
	"home":  playback.KeyJumpStart,
	"x":     playback.KeyJumpEnd,
	"end":   playback.KeyJumpEnd,
	"p":     playback.KeyToggleProduction,
}

var toggleBindings = map[string]string{
	"n": playback.ShowNeutrals,
	"s": playback.ShowStrength,
	"d": playback.DarkTheme,
}

type statusLine struct{ text string }

func (s *statusLine) SetStatus(text string) { s.text = text }

// Options wires a viewer session.
type Options struct {
	Record     *replay.MatchRecord
	ReplayPath string
	Config     *config.Config
	Recorder   *export.Recorder
	Log        *logging.Logger
	Theme      string
}

// Model is the terminal viewer.
type Model struct {
	ctrl       *playback.Controller
	input      *playback.Input
	keys       *keyTracker
	rec        *replay.MatchRecord
	replayPath string
	cfg        *config.Config
	recorder   *export.Recorder
	log        *logging.Logger
	theme      Theme
	styles     styles
	board      *board
	stats      []metrics.TurnStats
	status     *statusLine
	title      string
	message    string
	msgErr     bool
	prompt     textinput.Model
	prompting  bool
	showHelp   bool
	now        func() time.Time
}

func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Log
	if log == nil {
		log = logging.NopLogger()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = export.NewRecorder(nil, log)
	}

	ctrlOpts, err := cfg.ControllerOptions()
	if err != nil {
		return Model{}, err
	}
	status := &statusLine{}
	ctrlOpts = append(ctrlOpts, playback.WithStatusSink(status), playback.WithLogger(log))

	ti := textinput.New()
	ti.Prompt = "export to: "
	ti.CharLimit = 512
	ti.Width = 60

	theme := GetTheme(opts.Theme)
	m := Model{
		ctrl:       playback.New(opts.Record, ctrlOpts...),
		input:      &playback.Input{},
		keys:       newKeyTracker(cfg.RepeatDelay(), cfg.KeyRelease()),
		rec:        opts.Record,
		replayPath: opts.ReplayPath,
		cfg:        cfg,
		recorder:   recorder,
		log:        log,
		theme:      theme,
		styles:     newStyles(theme),
		stats:      metrics.Compute(opts.Record),
		status:     status,
		prompt:     ti,
		now:        time.Now,
	}
	m.refresh()
	return m, nil
}

// Controller exposes the session state, mainly for tests.
func (m Model) Controller() *playback.Controller { return m.ctrl }

func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(m.title), m.nextTick())
}

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(m.cfg.TickInterval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update routes input into the controller and redraws only when it reports a change.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.prompting {
		if key, ok := msg.(tea.KeyMsg); ok {
			return m.promptKey(key)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			return m, tea.Batch(cmd, m.refresh())
		}
	case tea.MouseMsg:
		x, y := cellAt(msg.X, msg.Y, boardLeft, boardTop)
		m.ctrl.MoveCursor(x, y)
	case tea.BlurMsg:
		m.releaseAll()
	case TickMsg:
		m.tick(time.Time(msg))
		return m, tea.Batch(m.refresh(), m.nextTick())
	case ConfigReloadedMsg:
		m.applyConfig(msg)
	case exportDoneMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("export failed: %v", msg.err))
		} else {
			m.setMessage(fmt.Sprintf("exported turn %d to %s (%s)", msg.turn, msg.result.Destination, msg.result.ID))
		}
	}
	return m, m.refresh()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if k, ok := keyBindings[key]; ok {
		m.keys.key(k, m.now(), m.input)
		return nil
	}
	if name, ok := toggleBindings[key]; ok {
		if err := m.ctrl.FlipToggle(name); err != nil {
			m.setError(err.Error())
		}
		return nil
	}

	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "e":
		m.releaseAll()
		m.prompting = true
		m.prompt.SetValue(storage.DefaultDestination(m.replayPath, m.ctrl.Turn(), m.cfg.Export.Extension))
		m.prompt.CursorEnd()
		m.prompt.Focus()
		return textinput.Blink
	case "S":
		dest := storage.DefaultDestination(m.replayPath, m.ctrl.Turn(), string(export.FormatSVG))
		return m.exportCmd(export.FormatSVG, dest)
	case "t":
		m.theme = m.theme.next()
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	case "esc":
		m.ctrl.ClearCursor()
		m.showHelp = false
	}
	return nil
}

func (m Model) promptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		dest := strings.TrimSpace(m.prompt.Value())
		m.prompting = false
		m.prompt.Blur()
		if dest == "" {
			m.setError("export cancelled: empty destination")
			return m, nil
		}
		return m, m.exportCmd(export.FormatText, dest)
	case tea.KeyEsc, tea.KeyCtrlC:
		m.prompting = false
		m.prompt.Blur()
		m.setMessage("export cancelled")
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// exportCmd captures the current turn now and writes it off the update loop.
func (m *Model) exportCmd(format export.Format, dest string) tea.Cmd {
	req := export.Request{
		Record:      m.rec,
		ReplayPath:  m.replayPath,
		Turn:        m.ctrl.Turn(),
		Format:      format,
		Destination: dest,
		Params:      m.ctrl.Params(),
	}
	recorder := m.recorder
	return func() tea.Msg {
		res, err := recorder.Export(req)
		return exportDoneMsg{turn: req.Turn, result: res, err: err}
	}
}

// tick releases keys that stopped repeating, then samples the held set once.
func (m *Model) tick(now time.Time) {
	m.keys.sweep(now, m.input)
	m.input.Tick(m.ctrl)
}

func (m *Model) releaseAll() {
	m.keys.reset(m.input)
}

func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.log.Warn("config reload failed", "error", msg.Err)
		m.setError(fmt.Sprintf("config reload failed: %v", msg.Err))
		return
	}
	cfg := msg.Config
	pal, err := cfg.Palette()
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.ctrl.SetPalette(pal)
	t := cfg.Toggles()
	_ = m.ctrl.SetToggle(playback.ShowNeutrals, t.ShowNeutrals)
	_ = m.ctrl.SetToggle(playback.ShowStrength, t.ShowStrength)
	_ = m.ctrl.SetToggle(playback.DarkTheme, t.DarkTheme)
	m.cfg = cfg
	m.log.Info("config reloaded")
	m.setMessage("config reloaded")
}

// refresh redraws the board if the controller asks for it and retitles the
// window when the turn moved.
func (m *Model) refresh() tea.Cmd {
	if m.ctrl.NeedsRedraw() {
		m.board = renderBoard(m.rec, m.ctrl.Turn(), m.ctrl.Params())
		m.ctrl.MarkRendered()
	}
	if title := m.ctrl.Title(); title != m.title {
		m.title = title
		return tea.SetWindowTitle(title)
	}
	return nil
}

func (m *Model) setMessage(text string) { m.message, m.msgErr = text, false }
func (m *Model) setError(text string)   { m.message, m.msgErr = text, true }

func (m Model) View() string {
	var s strings.Builder

	mode := m.ctrl.Mode().String()
	header := GradientText("GRIDREPLAY", m.theme.Primary, m.theme.Secondary) + "  " +
		m.styles.title.Render(m.ctrl.Title()) + "  " + m.styles.subtle.Render(mode)
	s.WriteString(m.styles.header.Render(header) + "\n")

	cx, cy, ok := m.ctrl.Cursor()
	boardView := m.board.View(cx, cy, ok, m.styles.cursorStyle)
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boardView, " ", m.panelView()) + "\n")

	status := m.status.text
	if status == "" {
		status = m.styles.subtle.Render("hover a cell to inspect it")
	}
	s.WriteString(m.styles.status.Render(status) + "\n")

	if m.message != "" {
		if m.msgErr {
			s.WriteString(m.styles.errMessage.Render(m.message) + "\n")
		} else {
			s.WriteString(m.styles.message.Render(m.message) + "\n")
		}
	}

	switch {
	case m.prompting:
		s.WriteString(m.styles.prompt.Render(m.prompt.View()) + "\n")
		s.WriteString(m.styles.keyHint.Render("enter: export  esc: cancel"))
	case m.showHelp:
		s.WriteString(m.helpView())
	default:
		s.WriteString(m.styles.keyHint.Render("←/→ step  ↑/↓ page  z/x ends  p production  n/s/d toggles  e export  ? help  q quit"))
	}
	return s.String()
}

func (m Model) panelView() string {
	var s strings.Builder
	turn := m.ctrl.Turn()
	ts := m.stats[turn]
	params := m.ctrl.Params()

	s.WriteString(m.styles.title.Render(m.rec.Summary()) + "\n")
	progress := 0.0
	if last := m.rec.LastTurn(); last > 0 {
		progress = float64(turn) / float64(last)
	}
	s.WriteString(m.styles.ProgressBar(progress, sparkWidth) + "\n")
	s.WriteString(m.styles.Separator(sparkWidth+2) + "\n")

	for owner := 1; owner <= m.rec.NumPlayers; owner++ {
		swatch := lipgloss.NewStyle().Foreground(params.Palette[owner]).Render("■")
		name := m.rec.PlayerName(owner)
		p := ts.Players[owner]
		s.WriteString(fmt.Sprintf("%s %s\n", swatch, m.styles.value.Render(name)))
		s.WriteString(m.styles.label.Render("cells") + fmt.Sprintf("%d  st %d  pr %d\n", p.Cells, p.Strength, p.Production))
		s.WriteString(m.styles.SparklineChart(metrics.Series(m.stats, owner, metrics.Cells), sparkWidth) + "\n")
	}

	s.WriteString(m.styles.Separator(sparkWidth+2) + "\n")
	t := m.ctrl.Toggles()
	s.WriteString(m.styles.label.Render("neutrals") + onOff(t.ShowNeutrals) + "\n")
	s.WriteString(m.styles.label.Render("strength") + onOff(t.ShowStrength) + "\n")
	s.WriteString(m.styles.label.Render("dark") + onOff(t.DarkTheme))
	return m.styles.panel.Render(s.String())
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (m Model) helpView() string {
	rows := [][2]string{
		{"← / h, → / l", "step one turn"},
		{"↑ / k, ↓ / j", "page ten turns"},
		{"z / home, x / end", "jump to first or last turn"},
		{"p", "toggle production view"},
		{"n / s / d", "toggle neutrals, strength, dark board"},
		{"e", "export turn as text"},
		{"S", "export turn as svg"},
		{"t", "cycle theme"},
		{"mouse", "inspect cell"},
		{"q", "quit"},
	}
	var s strings.Builder
	for _, r := range rows {
		s.WriteString(m.styles.value.Render(fmt.Sprintf("%-20s", r[0])) + m.styles.keyHint.Render(r[1]) + "\n")
	}
	s.WriteString(m.styles.subtle.Render(fmt.Sprintf(
		"terminals report no key release: repeated taps slower than the auto-repeat delay (%s) count as one held key",
		m.keys.delay.Round(10*time.Millisecond))) + "\n")
	return s.String()
}

// Run starts the viewer and, when configPath is set, reloads it through load
// on change.
func Run(m Model, configPath string, load Loader) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())

	if configPath != "" {
		w, err := WatchConfig(configPath, load, p.Send, m.log)
		if err != nil {
			m.log.Warn("config watch disabled", "path", configPath, "error", err)
		} else {
			defer w.Close()
		}
	}

	_, err := p.Run()
	return err
}

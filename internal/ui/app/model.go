package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stillpoint/internal/modules/timer/dto"
	"stillpoint/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

// timerPort is the minimal lifecycle surface this view requires.
type timerPort interface {
	Start(ctx context.Context, input dto.StartInput) (dto.Snapshot, error)
	Pause(ctx context.Context) (dto.Snapshot, error)
	Resume(ctx context.Context) (dto.Snapshot, error)
	Stop(ctx context.Context) (dto.Snapshot, error)
	Status(ctx context.Context) (dto.Snapshot, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

type snapshotMsg struct {
	snap dto.Snapshot
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Start  key.Binding
	Pause  key.Binding
	Resume key.Binding
	Stop   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Resume: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		Stop:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "end session")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Resume, k.Stop, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Resume, k.Stop},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model: a single countdown view over the
// timer lifecycle port. The 1 Hz tick does not count time itself; every
// tick asks the timer for a wall-clock resync, so a laptop lid closed for
// ten minutes shows the right remaining time on the very next frame.
type Model struct {
	timer    timerPort
	duration time.Duration

	snap     dto.Snapshot
	bar      progress.Model
	keys     keyMap
	help     help.Model
	showHelp bool
	status   string
	flash    string
	flashTTL int
	width    int
	height   int
}

func NewModel(timer timerPort, duration time.Duration) Model {
	bar := progress.New(progress.WithGradient(string(theme.Lavender), string(theme.Sapphire)))
	return Model{
		timer:    timer,
		duration: duration,
		bar:      bar,
		keys:     defaultKeys(),
		help:     help.New(),
		status:   "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.statusCmd(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		barWidth := msg.Width - 12
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth > 0 {
			m.bar.Width = barWidth
		}

	case tickMsg:
		if m.flashTTL > 0 {
			m.flashTTL--
			if m.flashTTL == 0 {
				m.flash = ""
			}
		}
		return m, tea.Batch(m.statusCmd(), tick())

	case snapshotMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.apply(msg.snap)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Start):
			return m, m.lifecycleCmd(func(ctx context.Context) (dto.Snapshot, error) {
				return m.timer.Start(ctx, dto.StartInput{Duration: m.duration})
			})
		case key.Matches(msg, m.keys.Pause):
			return m, m.lifecycleCmd(m.timer.Pause)
		case key.Matches(msg, m.keys.Resume):
			return m, m.lifecycleCmd(m.timer.Resume)
		case key.Matches(msg, m.keys.Stop):
			return m, m.lifecycleCmd(m.timer.Stop)
		}
	}
	return m, nil
}

func (m *Model) apply(snap dto.Snapshot) {
	m.snap = snap
	switch snap.Phase {
	case "running":
		m.status = "sitting"
	case "paused":
		m.status = "paused"
	default:
		m.status = "ready"
	}
	if snap.CompletedNow {
		m.status = "complete"
	}
	// Surface the saved confirmation briefly. It only appears when the
	// record is durably written, so its absence after an end is meaningful.
	if snap.SavedSessionID != "" {
		m.flash = fmt.Sprintf("saved ✓  streak %d day(s)", snap.Streak)
		m.flashTTL = 5
	}
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.showHelp {
		return theme.Pane.Render(m.help.View(m.keys))
	}

	title := theme.Title.Render("stillpoint")
	clock := theme.Hot.Render(formatClock(m.snap.Remaining))
	if m.snap.Phase == "" || m.snap.Phase == "idle" {
		clock = theme.Muted.Render(formatClock(m.duration))
	}

	var lines []string
	lines = append(lines, title, "")
	lines = append(lines, clock)
	lines = append(lines, m.bar.ViewAs(m.snap.Progress), "")
	lines = append(lines, theme.Muted.Render(m.status))
	if m.flash != "" {
		lines = append(lines, theme.Calm.Render(m.flash))
	}
	lines = append(lines, "", theme.Muted.Render("s:start  p:pause  r:resume  x:end  q:quit"))

	pane := theme.Pane.Render(strings.Join(lines, "\n"))
	if m.width == 0 {
		return pane
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, pane)
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	mnt := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mnt, sec)
	}
	return fmt.Sprintf("%02d:%02d", mnt, sec)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) statusCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.timer.Status(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

func (m Model) lifecycleCmd(op func(context.Context) (dto.Snapshot, error)) tea.Cmd {
	return func() tea.Msg {
		snap, err := op(context.Background())
		return snapshotMsg{snap: snap, err: err}
	}
}

// Package tui is a terminal front end for a race session. It only reads state
// snapshots and invokes game operations.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/horserace/internal/game"
	"github.com/lox/horserace/internal/race"
	"github.com/lox/horserace/internal/store"
)

const (
	tickInterval = 100 * time.Millisecond
	laneWidth    = 40
)

// Controller is the subset of *game.Game the UI drives.
type Controller interface {
	GenerateHorses() error
	GenerateSchedule() error
	StartRace(ctx context.Context) error
	PauseRace()
	ResumeRace()
	ResetRaceState()
	ResetGame()
	Snapshot() store.State
	Timing() game.Timing
}

type tickMsg time.Time

type raceDoneMsg struct{ err error }

// Model is the Bubble Tea model for a session.
type Model struct {
	ctx    context.Context
	ctrl   Controller
	logger *log.Logger

	state   store.State
	results viewport.Model

	// Animation of the current round, in wall time since it was selected.
	animRound   int
	animElapsed time.Duration

	status    string
	statusErr bool

	width    int
	height   int
	quitting bool
}

// NewModel creates a model driving ctrl. Races started from the UI run under ctx.
func NewModel(ctx context.Context, ctrl Controller, logger *log.Logger) *Model {
	vp := viewport.New(30, 10)
	return &Model{
		ctx:       ctx,
		ctrl:      ctrl,
		logger:    logger.WithPrefix("tui"),
		state:     ctrl.Snapshot(),
		results:   vp,
		animRound: -1,
		status:    "Press h to generate horses",
	}
}

// Run starts the UI and blocks until the user quits. Any race still running is
// abandoned on exit.
func Run(ctx context.Context, ctrl Controller, logger *log.Logger) error {
	lipgloss.SetColorProfile(termenv.EnvColorProfile())

	p := tea.NewProgram(NewModel(ctx, ctrl, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	ctrl.ResetRaceState()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the refresh ticker.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tickMsg:
		m.refresh()
		if m.state.IsRacing && !m.state.IsPaused {
			m.animElapsed += tickInterval
		}
		return m, tick()

	case raceDoneMsg:
		m.refresh()
		switch {
		case msg.err != nil:
			m.setError(msg.err)
		case m.state.IsRaceFinished():
			m.setStatus("All rounds complete")
		}

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	defer m.refresh()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit

	case "h":
		if m.state.IsRacing {
			m.setStatus("Cannot generate horses during a race")
			return nil
		}
		if err := m.ctrl.GenerateHorses(); err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus("Horses generated. Press s to build the schedule")

	case "s":
		if err := m.ctrl.GenerateSchedule(); err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus("Schedule ready. Press enter to start")

	case "enter", " ":
		if !m.state.CanStartRace() {
			m.setStatus("Nothing to start")
			return nil
		}
		m.setStatus("Racing")
		ctx, ctrl := m.ctx, m.ctrl
		return func() tea.Msg {
			return raceDoneMsg{err: ctrl.StartRace(ctx)}
		}

	case "p":
		switch {
		case m.state.CanPause():
			m.ctrl.PauseRace()
			m.setStatus("Paused")
		case m.state.CanResume():
			m.ctrl.ResumeRace()
			m.setStatus("Racing")
		}

	case "x":
		if m.state.IsRacing && !m.state.CanResetRace() {
			m.setStatus("Pause the race before resetting it")
			return nil
		}
		m.ctrl.ResetRaceState()
		m.setStatus("Race reset")

	case "R":
		m.ctrl.ResetGame()
		m.setStatus("Game reset")

	default:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return cmd
	}
	return nil
}

// refresh pulls a new snapshot and restarts the lane animation when the
// selected round changes.
func (m *Model) refresh() {
	m.state = m.ctrl.Snapshot()
	if m.state.CurrentRoundIndex != m.animRound {
		m.animRound = m.state.CurrentRoundIndex
		m.animElapsed = 0
	}
	m.results.SetContent(strings.Join(m.state.RaceResults, "\n"))
	m.results.GotoBottom()
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.logger.Error("Operation failed", "error", err)
	m.status, m.statusErr = err.Error(), true
}

// Status returns the current status line.
func (m *Model) Status() string {
	return m.status
}

// View renders the UI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render("Horse Racing") + " " + m.renderPhase()

	roster := PaneStyle.Render(m.renderRoster())
	track := ActivePaneStyle.Render(m.renderTrack())
	top := lipgloss.JoinHorizontal(lipgloss.Top, roster, track)

	m.results.Width = max(20, m.width/2-2)
	m.results.Height = max(3, m.height-lipgloss.Height(top)-6)
	program := PaneStyle.Render(m.renderProgram())
	results := PaneStyle.Render(TitleStyle.Render("Results") + "\n" + m.results.View())
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, program, results)

	return lipgloss.JoinVertical(lipgloss.Left, header, top, bottom, m.renderFooter())
}

func (m *Model) renderPhase() string {
	switch {
	case m.state.IsPaused:
		return WarningStyle.Render("PAUSED")
	case m.state.IsRacing:
		return SuccessStyle.Render("RACING")
	case m.state.IsRaceFinished():
		return SuccessStyle.Render("FINISHED")
	default:
		return InfoStyle.Render("IDLE")
	}
}

func (m *Model) renderRoster() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Horses"))
	b.WriteString("\n")
	if len(m.state.Horses) == 0 {
		b.WriteString(InfoStyle.Render("none yet"))
		return b.String()
	}
	for _, h := range m.state.Horses {
		fmt.Fprintf(&b, "%s %-18s %3d\n", horseStyle(h.Color).Render("■"), h.Name, h.Condition)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderTrack() string {
	round, ok := m.state.CurrentRound()
	if !ok {
		return TitleStyle.Render("Track") + "\n" + InfoStyle.Render("waiting for the first round")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", TitleStyle.Render(fmt.Sprintf("Round %d - %dm", round.RoundNumber, round.Distance)))

	times := make(map[string]float64, len(round.Results))
	for _, r := range round.Results {
		times[r.Horse.ID] = r.Time
	}
	simElapsed := m.animElapsed.Seconds() * m.ctrl.Timing().AnimationSpeedMultiplier

	for i, h := range round.Horses {
		progress := 0.0
		if round.IsCompleted {
			progress = 1
		} else if t, ok := times[h.ID]; ok && t > 0 {
			progress = min(1, simElapsed/t)
		}
		fmt.Fprintf(&b, "%2d %s\n", i+1, lane(h.Color, progress))
	}
	return strings.TrimRight(b.String(), "\n")
}

func lane(color string, progress float64) string {
	pos := int(progress * float64(laneWidth-1))
	return InfoStyle.Render(strings.Repeat("·", pos)) +
		horseStyle(color).Render("♞") +
		InfoStyle.Render(strings.Repeat("·", laneWidth-1-pos)) + "|"
}

func (m *Model) renderProgram() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Program"))
	b.WriteString("\n")
	if m.state.RaceSchedule == nil {
		b.WriteString(InfoStyle.Render("no schedule"))
		return b.String()
	}
	for i, round := range m.state.RaceSchedule {
		marker := " "
		switch {
		case round.IsCompleted:
			marker = SuccessStyle.Render("✓")
		case i == m.state.CurrentRoundIndex:
			marker = WarningStyle.Render("▶")
		}
		line := fmt.Sprintf("%s Round %d  %4dm", marker, round.RoundNumber, round.Distance)
		if winner, ok := race.Winner(round.Results); ok && round.IsCompleted {
			line += "  " + horseStyle(winner.Horse.Color).Render(winner.Horse.Name)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderFooter() string {
	keys := InfoStyle.Render("h horses • s schedule • enter start • p pause/resume • x reset race • R reset game • q quit")
	status := m.status
	if m.statusErr {
		status = ErrorStyle.Render(status)
	}
	return keys + "\n" + status
}

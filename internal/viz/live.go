package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/adsorb/internal/kinetics"
)

const (
	DefaultFPS      = 30
	DefaultPlayback = 5 * time.Second
	minRevealed     = 2
)

type TickMsg time.Time

// LiveModel replays a finished solution, revealing one more slice of the
// sampled curve on every frame.
type LiveModel struct {
	sol      *kinetics.Solution
	params   kinetics.Params
	plotter  Plotter
	theme    Theme
	fps      int
	perFrame int
	shown    int
	running  bool
}

// NewLiveModel prepares a replay of sol lasting roughly playback at fps frames
// per second. sol must hold at least two samples.
func NewLiveModel(sol *kinetics.Solution, p kinetics.Params, plotter Plotter, theme Theme, fps int, playback time.Duration) LiveModel {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if playback <= 0 {
		playback = DefaultPlayback
	}
	frames := int(playback.Seconds() * float64(fps))
	if frames < 1 {
		frames = 1
	}
	perFrame := (len(sol.Q) + frames - 1) / frames
	if perFrame < 1 {
		perFrame = 1
	}
	shown := minRevealed
	if shown > len(sol.Q) {
		shown = len(sol.Q)
	}
	return LiveModel{
		sol:      sol,
		params:   p,
		plotter:  plotter,
		theme:    theme,
		fps:      fps,
		perFrame: perFrame,
		shown:    shown,
		running:  true,
	}
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Done reports whether every sample has been revealed.
func (m LiveModel) Done() bool { return m.shown >= len(m.sol.Q) }

// Shown is the number of samples currently drawn.
func (m LiveModel) Shown() int { return m.shown }

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.shown = minRevealed
			if m.shown > len(m.sol.Q) {
				m.shown = len(m.sol.Q)
			}
			m.running = true
		}
	case TickMsg:
		if m.running && !m.Done() {
			m.shown += m.perFrame
			if m.shown > len(m.sol.Q) {
				m.shown = len(m.sol.Q)
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m LiveModel) View() string {
	n := m.shown
	var sb strings.Builder

	sb.WriteString(Title(m.theme, "adsorb · live"))
	sb.WriteString("\n\n")
	sb.WriteString(m.plotter.Plot(m.sol.Times[:n], m.sol.Q[:n], m.params.Qe))
	sb.WriteString("\n\n")

	t, q := m.sol.Times[n-1], m.sol.Q[n-1]
	status := "running"
	switch {
	case m.Done():
		status = "done"
	case !m.running:
		status = "paused"
	}
	progress := float64(n) / float64(len(m.sol.Q))

	sb.WriteString(Panel.Render(KeyValues([][2]string{
		{"t (min)", fmt.Sprintf("%.2f", t)},
		{"q (mg/g)", fmt.Sprintf("%.4f", q)},
		{"q / qe", fmt.Sprintf("%.1f%%", 100*q/m.params.Qe)},
		{"status", status},
	})))
	sb.WriteString("\n")
	sb.WriteString(ProgressBar(progress, 40))
	sb.WriteString("\n")
	sb.WriteString(KeyHint.Render("space pause · r restart · q quit"))
	return sb.String()
}

package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/phanxgames/bough"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <spec>",
	Short: "Play a chart spec as terminal bars",
	Long: `tui draws every datum of every leaf as a horizontal bar scaled to the y
domain. Press r to replay the load transition and q to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, root, spec, err := loadScene(cmd, args[0])
		if err != nil {
			return err
		}
		if err := scene.Mount(root); err != nil {
			return err
		}
		stop, err := startMetrics(cmd, scene)
		if err != nil {
			return err
		}
		defer stop()

		fps, _ := cmd.Flags().GetInt("fps")
		m := newChartModel(scene, root, spec.Title, fps)
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	tuiCmd.Flags().Int("fps", 30, "Frames per second")
	rootCmd.AddCommand(tuiCmd)
}

var (
	colorText   = lipgloss.Color("#e6edf3")
	colorDim    = lipgloss.Color("#8b949e")
	colorAccent = lipgloss.Color("#58a6ff")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	metaStyle  = lipgloss.NewStyle().Foreground(colorDim)
	labelStyle = lipgloss.NewStyle().Foreground(colorText).Width(8)
	valueStyle = lipgloss.NewStyle().Foreground(colorDim)

	barColors = []lipgloss.Color{"#58a6ff", "#3fb950", "#d29922", "#bc8cff", "#f85149", "#76e3ea"}
)

type tickMsg time.Time

// chartModel advances a scene on a timer and draws its frames.
type chartModel struct {
	scene *bough.Scene
	root  *bough.Node
	title string
	tick  time.Duration
	width int
}

func newChartModel(scene *bough.Scene, root *bough.Node, title string, fps int) chartModel {
	if fps <= 0 {
		fps = 30
	}
	if title == "" {
		title = "bough"
	}
	return chartModel{scene: scene, root: root, title: title, tick: time.Second / time.Duration(fps), width: 80}
}

func (m chartModel) Init() tea.Cmd {
	return m.nextTick()
}

func (m chartModel) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if err := m.scene.Mount(m.root); err != nil {
				return m, tea.Quit
			}
		}
		return m, nil

	case tickMsg:
		m.scene.Update(m.tick)
		return m, m.nextTick()
	}
	return m, nil
}

func (m chartModel) View() string {
	var b strings.Builder
	state := "animating"
	if m.scene.Settled() {
		state = "settled"
	}
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString(metaStyle.Render(fmt.Sprintf("  frame %d  %s", m.scene.FrameCount(), state)))
	b.WriteString("\n\n")

	barWidth := max(m.width-24, 10)
	for _, f := range m.scene.Frames() {
		name := ""
		if f.Leaf != nil {
			name = f.Leaf.Name
		}
		b.WriteString(metaStyle.Render(fmt.Sprintf("%s (%s)", name, f.Phase)))
		b.WriteString("\n")
		style := lipgloss.NewStyle().Foreground(barColors[f.Index%len(barColors)])
		y := f.Domain(bough.AxisY)
		for i, d := range f.Data() {
			b.WriteString(labelStyle.Render(bough.KeyOf(d, i)))
			v, _ := toFloat(d[bough.FieldY])
			b.WriteString(style.Render(bar(y.Normalize(v), barWidth)))
			b.WriteString(valueStyle.Render(" " + formatValue(v)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(metaStyle.Render("r replay · q quit"))
	return b.String()
}

// bar renders frac of width cells with eighth-block precision.
func bar(frac float64, width int) string {
	if math.IsNaN(frac) {
		return ""
	}
	frac = math.Max(0, math.Min(1, frac))
	eighths := int(math.Round(frac * float64(width) * 8))
	full, rest := eighths/8, eighths%8
	s := strings.Repeat("█", full)
	if rest > 0 {
		s += string([]rune("▏▎▍▌▋▊▉")[rest-1])
	}
	return s
}

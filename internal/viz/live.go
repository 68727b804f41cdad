package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mverlet/spinlab/internal/lattice"
)

const historyCapacity = 120

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(40)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Live is a bubbletea model that advances the lattice a fixed number
// of sweeps per frame and shows the grid next to its observables.
type Live struct {
	cfg            lattice.Config
	model          *lattice.Model
	frameRate      int
	sweepsPerFrame int
	sweep          int
	running        bool
	energyHistory  []float64
	err            error
}

func NewLive(cfg lattice.Config, frameRate, sweepsPerFrame int) (Live, error) {
	model, err := lattice.New(cfg)
	if err != nil {
		return Live{}, err
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	if sweepsPerFrame <= 0 {
		sweepsPerFrame = 1
	}
	return Live{
		cfg:            cfg,
		model:          model,
		frameRate:      frameRate,
		sweepsPerFrame: sweepsPerFrame,
		running:        true,
		energyHistory:  make([]float64, 0, historyCapacity),
	}, nil
}

func (l Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(l.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (l Live) Init() tea.Cmd {
	return l.tick()
}

func (l Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.running = !l.running
		case "r":
			model, err := lattice.New(l.cfg)
			if err != nil {
				l.err = err
				return l, tea.Quit
			}
			l.model = model
			l.sweep = 0
			l.energyHistory = l.energyHistory[:0]
		case "up", "k":
			if err := l.model.SetTemperature(l.model.Temperature() * 1.05); err != nil {
				l.err = err
			}
		case "down", "j":
			if err := l.model.SetTemperature(l.model.Temperature() * 0.95); err != nil {
				l.err = err
			}
		}
	case TickMsg:
		if l.running {
			for i := 0; i < l.sweepsPerFrame; i++ {
				if err := l.model.Sweep(); err != nil {
					l.err = err
					return l, tea.Quit
				}
				l.sweep++
			}
			l.energyHistory = append(l.energyHistory, l.model.Energy())
			if len(l.energyHistory) > historyCapacity {
				l.energyHistory = l.energyHistory[1:]
			}
		}
		return l, l.tick()
	}
	return l, nil
}

func (l Live) View() string {
	if l.err != nil {
		return fmt.Sprintf("error: %v\n", l.err)
	}

	grid := RenderGrid(l.model.Grid())
	sites := float64(l.model.Rows() * l.model.Cols())

	status := "running"
	if !l.running {
		status = "paused"
	}

	stats := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(fmt.Sprintf("spinlab %s %dx%d", l.model.Dynamics(), l.model.Rows(), l.model.Cols())),
		labelStyle.Render("status")+valueStyle.Render(status),
		labelStyle.Render("sweep")+valueStyle.Render(fmt.Sprintf("%d", l.sweep)),
		labelStyle.Render("temperature")+valueStyle.Render(fmt.Sprintf("%.3f", l.model.Temperature())),
		labelStyle.Render("energy")+valueStyle.Render(fmt.Sprintf("%.1f", l.model.Energy())),
		labelStyle.Render("|M|/site")+valueStyle.Render(fmt.Sprintf("%.3f", l.model.Magnetism()/sites)),
		"",
		Sparkline(l.energyHistory, 32),
	)

	view := lipgloss.JoinHorizontal(lipgloss.Top, grid, statsStyle.Render(stats))
	help := helpStyle.Render("space pause · r reset · up/down temperature · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, view, help)
}

// Err reports a dynamics error that ended the live view.
func (l Live) Err() error { return l.err }

// RunLive starts the interactive view and blocks until it exits.
func RunLive(cfg lattice.Config, frameRate, sweepsPerFrame int) error {
	live, err := NewLive(cfg, frameRate, sweepsPerFrame)
	if err != nil {
		return err
	}

	p := tea.NewProgram(live, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if l, ok := final.(Live); ok && l.err != nil {
		return l.err
	}
	return nil
}

// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-suntimes/internal/backend"
	"github.com/litescript/ls-suntimes/internal/state"
	"github.com/litescript/ls-suntimes/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewNow ViewMode = iota
	ViewDay
	viewCount
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers a tracker update.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time
)

// Options configures the dashboard.
type Options struct {
	Name            string
	Latitude        float64
	Longitude       float64
	Zone            *time.Location
	Backend         string
	RefreshInterval time.Duration
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	tracker *state.Tracker
	opts    Options
	now     func() time.Time

	// UI state
	viewMode   ViewMode
	width      int
	height     int
	ready      bool
	animTick   int
	useUTC     bool
	backendIdx int
	statusMsg  string

	// Sub-models
	dashboard DashboardModel
	dayView   DayViewModel

	// Data snapshot (updated on TickMsg)
	snapshot state.Snapshot
}

// New creates a new root UI model. The tracker is switched to the backend
// named in opts.
func New(tracker *state.Tracker, opts Options) Model {
	if opts.Zone == nil {
		opts.Zone = time.Local
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = time.Second
	}

	idx := 0
	for i, b := range backend.All() {
		if b.Name == opts.Backend {
			idx = i
		}
	}

	m := Model{
		tracker:    tracker,
		opts:       opts,
		now:        time.Now,
		viewMode:   ViewNow,
		backendIdx: idx,
		dashboard:  NewDashboardModel(),
		dayView:    NewDayViewModel(opts.Latitude, opts.Longitude),
	}
	tracker.SetTimes(m.backend().Times)
	return m
}

func (m Model) backend() backend.Backend {
	return backend.All()[m.backendIdx]
}

// zone is the location times are displayed in.
func (m Model) zone() *time.Location {
	if m.useUTC {
		return time.UTC
	}
	return m.opts.Zone
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		animTickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "n":
			m.viewMode = ViewNow
		case "2", "d":
			m.viewMode = ViewDay

		case "tab":
			// Cycle through views
			m.viewMode = (m.viewMode + 1) % viewCount

		case "b":
			m.backendIdx = (m.backendIdx + 1) % len(backend.All())
			m.tracker.SetTimes(m.backend().Times)
			m.statusMsg = "backend: " + m.backend().Name
			m.refresh()

		case "u":
			m.useUTC = !m.useUTC
			m.statusMsg = "zone: " + m.zone().String()
			m.refresh()

		default:
			// Pass to active view
			if m.viewMode == ViewDay {
				m.dayView = m.dayView.Update(msg)
				m.refresh()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header takes 4 lines, footer 2
		contentHeight := msg.Height - 6
		m.dashboard = m.dashboard.SetSize(msg.Width, contentHeight)
		m.dayView = m.dayView.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, m.tickCmd())
		m.tracker.Update(time.Time(msg))
		m.refresh()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++
	}

	return m, tea.Batch(cmds...)
}

// refresh pulls a fresh snapshot and pushes it to the views.
func (m *Model) refresh() {
	m.snapshot = m.tracker.Snapshot()
	at := m.snapshot.Updated
	if at.IsZero() {
		at = m.now()
	}
	m.dashboard = m.dashboard.UpdateData(m.snapshot, m.zone())
	m.dayView = m.dayView.UpdateData(at, m.backend(), m.zone())
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewNow:
		content = m.dashboard.View()
	case ViewDay:
		content = m.dayView.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F2A541")).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	place := fmt.Sprintf("%.5f, %.5f", m.opts.Latitude, m.opts.Longitude)
	if m.opts.Name != "" {
		place = m.opts.Name + " (" + place + ")"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  ☀ ls-suntimes"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s · %s · %s · %s", version.Version, place, m.backend().Name, m.zone())))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Now", "[2] Day"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F2A541")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F2A541"))

	// Animated spinner frames
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	if m.snapshot.Updated.IsZero() {
		status = accentStyle.Render(spinner) + dimStyle.Render(" waiting for first update")
	} else {
		status = accentStyle.Render(spinner) + dimStyle.Render(" updated "+m.snapshot.Updated.In(m.zone()).Format("15:04:05"))
	}

	var help string
	switch m.viewMode {
	case ViewDay:
		help = dimStyle.Render("←/→: day | t: today | b: backend | u: UTC | tab: switch view | q: quit")
	default:
		help = dimStyle.Render("b: backend | u: UTC | tab: switch view | q: quit")
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

func (m Model) tickCmd() tea.Cmd {
	now := m.now
	return tea.Tick(m.opts.RefreshInterval, func(time.Time) tea.Msg {
		return TickMsg(now())
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ethanniser/gtui/graphite"
	"github.com/ethanniser/gtui/nav"
	"github.com/ethanniser/gtui/session"
	"github.com/ethanniser/gtui/ui"
)

type loadFunc func(ctx context.Context) (*graphite.Data, error)

type commandRunner interface {
	Run(ctx context.Context, args []string) (string, error)
}

var copyToClipboard = clipboard.WriteAll

type loadedMsg struct {
	token session.Token
	data  *graphite.Data
	err   error
}

type reloadMsg struct{}

type checkoutDoneMsg struct {
	id     int
	branch string
	output string
	err    error
}

type model struct {
	sess    *session.Session
	load    loadFunc
	runner  commandRunner
	cfg     Config
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  ui.Styles
	layout  ui.Layout
	status  string

	confirm       *huh.Form
	confirmBranch string
	confirmResult *bool
}

func newModel(load loadFunc, runner commandRunner, cfg Config) model {
	return model{
		sess: session.New(session.Options{
			GTCommand: cfg.GTCommand,
			Lines:     ui.LineCount,
		}),
		load:    load,
		runner:  runner,
		cfg:     cfg,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: newSpinner(),
		styles:  ui.DefaultStyles(),
	}
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	return s
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.spinner.Tick)
}

// reload starts a load whose result is applied only if no newer load begins
// before it finishes.
func (m model) reload() tea.Cmd {
	tok := m.sess.BeginLoad()
	load := m.load
	return func() tea.Msg {
		data, err := load(context.Background())
		return loadedMsg{token: tok, data: data, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if m.sess.Complete(msg.token, msg.data, msg.err) && msg.err == nil {
			m.status = ""
		}
		return m, nil
	case reloadMsg:
		return m, tea.Batch(m.reload(), m.spinner.Tick)
	case checkoutDoneMsg:
		m.sess.RecordResult(msg.id, msg.output, msg.err)
		if msg.err != nil {
			m.status = fmt.Sprintf("Checkout of %s failed", msg.branch)
		} else {
			m.status = "Checked out " + msg.branch
		}
		return m, tea.Batch(m.reload(), m.spinner.Tick)
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.layout = ui.ComputeLayout(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.sess.SetViewportHeights(m.layout.Heights())
		return m, nil
	case tea.MouseMsg:
		if m.confirm != nil {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.sess.Step(nav.Up)
		case tea.MouseButtonWheelDown:
			m.sess.Step(nav.Down)
		}
		return m, nil
	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		return m.handleKey(msg)
	}
	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Overview):
		m.sess.SelectPane(nav.PaneOverview)
	case key.Matches(msg, m.keys.Stack):
		m.sess.SelectPane(nav.PaneStack)
	case key.Matches(msg, m.keys.Commits):
		m.sess.SelectPane(nav.PaneCommits)
	case key.Matches(msg, m.keys.Detail):
		m.sess.SelectPane(nav.PaneDetail)
	case key.Matches(msg, m.keys.Log):
		m.sess.SelectPane(nav.PaneLog)
	case key.Matches(msg, m.keys.NextPane):
		m.sess.SelectPane(m.sess.View().Nav.Active().Next())
	case key.Matches(msg, m.keys.Up):
		m.sess.Step(nav.Up)
	case key.Matches(msg, m.keys.Down):
		m.sess.Step(nav.Down)
	case key.Matches(msg, m.keys.Top):
		m.sess.Step(nav.Top)
	case key.Matches(msg, m.keys.Bottom):
		m.sess.Step(nav.Bottom)
	case key.Matches(msg, m.keys.Refresh):
		m.status = "Reloading"
		return m, tea.Batch(m.reload(), m.spinner.Tick)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Copy):
		branch, ok := m.sess.SelectedBranch()
		if !ok {
			m.status = "No branch selected"
			return m, nil
		}
		if err := copyToClipboard(branch); err != nil {
			m.status = "Copy failed: " + err.Error()
			return m, nil
		}
		m.status = "Copied " + branch
	case key.Matches(msg, m.keys.Checkout):
		return m.requestCheckout()
	}
	return m, nil
}

func (m model) requestCheckout() (tea.Model, tea.Cmd) {
	branch, ok := m.sess.SelectedBranch()
	if !ok {
		m.status = "No branch selected"
		return m, nil
	}
	if !m.cfg.confirmCheckout() {
		return m.startCheckout(branch)
	}
	result := true
	m.confirmResult = &result
	m.confirmBranch = branch
	m.confirm = newCheckoutConfirm(branch, m.confirmResult)
	return m, m.confirm.Init()
}

func (m model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return m.cancelConfirm(), nil
	}
	next, cmd := m.confirm.Update(msg)
	if form, ok := next.(*huh.Form); ok {
		m.confirm = form
	}
	switch m.confirm.State {
	case huh.StateCompleted:
		branch := m.confirmBranch
		accepted := m.confirmResult != nil && *m.confirmResult
		m = m.clearConfirm()
		if !accepted {
			m.status = "Checkout canceled"
			return m, nil
		}
		return m.startCheckout(branch)
	case huh.StateAborted:
		return m.cancelConfirm(), nil
	}
	return m, cmd
}

func (m model) cancelConfirm() model {
	m = m.clearConfirm()
	m.status = "Checkout canceled"
	return m
}

func (m model) clearConfirm() model {
	m.confirm = nil
	m.confirmBranch = ""
	m.confirmResult = nil
	return m
}

func (m model) startCheckout(branch string) (tea.Model, tea.Cmd) {
	req := m.sess.RequestCheckout(branch)
	m.status = "Running " + strings.Join(req.Args, " ")
	runner := m.runner
	run := func() tea.Msg {
		out, err := runner.Run(context.Background(), req.Args)
		return checkoutDoneMsg{id: req.ID, branch: req.Branch, output: out, err: err}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

func (m model) busy() bool {
	v := m.sess.View()
	if v.Loading {
		return true
	}
	for _, e := range v.Log {
		if e.Pending {
			return true
		}
	}
	return false
}

func (m model) View() string {
	if m.layout.Width == 0 || m.layout.Height == 0 {
		return "Loading Graphite stack..."
	}
	if m.confirm != nil {
		return m.overlay(m.confirm.View())
	}
	if m.help.ShowAll {
		return m.overlay(m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" + m.styles.Secondary("press ? to close"))
	}
	opts := ui.ScreenOptions{
		Styles:    m.styles,
		Highlight: m.cfg.syntaxHighlight(),
		Status:    m.status,
		Help:      m.help.ShortHelpView(m.keys.ShortHelp()),
	}
	if m.busy() {
		opts.Spinner = m.spinner.View()
	}
	return ui.RenderScreen(m.sess.View(), m.layout, opts)
}

func (m model) overlay(content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7D56F4")).
		Padding(1, 2).
		Render(content)
	return lipgloss.Place(m.layout.Width, m.layout.Height, lipgloss.Center, lipgloss.Center, box)
}

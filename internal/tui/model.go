// Package tui is the interactive terminal front end: it fetches the
// payload, shows the current render pass and feeds image results back in.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sdui-go/interpreter/internal/descriptor"
	"github.com/sdui-go/interpreter/internal/fetch"
	"github.com/sdui-go/interpreter/internal/imageload"
	"github.com/sdui-go/interpreter/internal/render"
	"github.com/sdui-go/interpreter/internal/screen"
	"github.com/sdui-go/interpreter/internal/view"
)

// Loader yields a component response; fetch.Client satisfies it.
type Loader interface {
	Load(ctx context.Context) (*descriptor.Response, fetch.Source, error)
}

// LoadedMsg carries a freshly loaded response.
type LoadedMsg struct {
	Response *descriptor.Response
	Source   fetch.Source
	Err      error
}

// ImageMsg carries one image retrieval result.
type ImageMsg imageload.Completion

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// Model is the bubbletea model.
type Model struct {
	ctx     context.Context
	loader  Loader
	session *screen.Session
	logger  *slog.Logger

	width  int
	state  view.State
	status string
}

// New returns a model that loads through loader and renders into session.
func New(ctx context.Context, loader Loader, session *screen.Session, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		ctx:     ctx,
		loader:  loader,
		session: session,
		logger:  logger.With("component", "tui"),
		width:   80,
		state:   view.NewState(),
		status:  "loading…",
	}
}

func (m Model) load() tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		resp, src, err := loader.Load(ctx)
		return LoadedMsg{Response: resp, Source: src, Err: err}
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case LoadedMsg:
		pass := m.session.Show(m.ctx, msg.Response)
		m.state = view.NewState()
		m.status = fmt.Sprintf("source: %s · %d components", msg.Source, len(pass.Widgets))
		if msg.Err != nil {
			m.status += " · " + msg.Err.Error()
		}

	case ImageMsg:
		if !m.session.Apply(imageload.Completion(msg)) {
			m.logger.Debug("image result dropped", "pass", msg.Pass.String(), "key", msg.Key)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.status = "reloading…"
			return m, m.load()
		case "tab":
			m.cycleFocus(1)
		case "shift+tab":
			m.cycleFocus(-1)
		case "left", "h":
			m.step(-1)
		case "right", "l":
			m.step(1)
		case "enter", " ":
			m.activate()
		}
	}
	return m, nil
}

func (m *Model) focused() (*render.Pass, bool) {
	pass := m.session.Current()
	return pass, pass != nil && m.state.Focus != ""
}

func (m *Model) cycleFocus(delta int) {
	pass := m.session.Current()
	if pass == nil {
		return
	}
	keys := view.Focusable(pass.Widgets, m.state)
	if len(keys) == 0 {
		m.state.Focus = ""
		return
	}
	idx := -1
	for i, k := range keys {
		if k == m.state.Focus {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta < 0:
		m.state.Focus = keys[len(keys)-1]
	case idx < 0:
		m.state.Focus = keys[0]
	default:
		m.state.Focus = keys[(idx+delta+len(keys))%len(keys)]
	}
}

func (m *Model) step(delta int) {
	pass, ok := m.focused()
	if !ok {
		return
	}
	if w, found := pass.Lookup(m.state.Focus); found {
		m.state.Step(w, delta)
	}
}

func (m *Model) activate() {
	pass, ok := m.focused()
	if !ok {
		return
	}
	if w, found := pass.Lookup(m.state.Focus); found && w.Activate() {
		m.status = "activated " + w.ID
	}
}

func (m Model) View() string {
	var out string
	m.session.View(func(p *render.Pass) {
		if p == nil {
			return
		}
		out = view.New(m.width).Render(p.Widgets, m.state)
	})
	help := "tab focus · ←/→ page/scroll · enter activate · r reload · q quit"
	return out + "\n" + statusStyle.Render(m.status) + "\n" + statusStyle.Render(help) + "\n"
}

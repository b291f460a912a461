package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stlalpha/icyengine/internal/attr"
	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/color"
)

// model renders a buffer.Buffer as a scrollable static view. It does not
// drive a live Connection/parser loop itself (that is
// internal/terminal.Orchestrator's job); it is the minimal viewer that
// proves the engine's composed output renders correctly in a real
// terminal, the same debug-only role the teacher's cmd/debug-tui plays
// for raw ANSI escapes, scrolled with the same bubbles/viewport the
// teacher's internal/editor uses for its text pane.
type model struct {
	buf      *buffer.Buffer
	width    int
	height   int
	viewport viewport.Model
	styleFor map[styleKey]lipgloss.Style
	rendered bool
}

type styleKey struct {
	fg, bg uint32
	bits   uint16
}

func newModel(buf *buffer.Buffer) *model {
	return &model{
		buf:      buf,
		viewport: viewport.New(80, 24),
		styleFor: make(map[styleKey]lipgloss.Style),
	}
}

func (m *model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = m.height - 1
		m.rendered = false
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	if !m.rendered {
		m.viewport.SetContent(m.renderBuffer())
		m.rendered = true
	}
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	footer := fmt.Sprintf("%s — q quits, arrows/pgup/pgdown scroll", m.buf.FileName)
	return m.viewport.View() + "\n" + footer
}

func (m *model) renderBuffer() string {
	var out strings.Builder
	for y := 0; y < m.buf.Size.Height; y++ {
		lineLen := m.buf.GetLineLength(y)
		for x := 0; x < m.buf.Size.Width; x++ {
			c := attr.AttributedChar{Ch: ' '}
			if x < lineLen {
				c = m.buf.GetChar(buffer.Position{X: x, Y: y})
			}
			out.WriteString(m.renderCell(c))
		}
		out.WriteByte('\n')
	}
	return out.String()
}

func (m *model) renderCell(c attr.AttributedChar) string {
	ch := c.Ch
	if ch == 0 {
		ch = ' '
	}
	key := styleKey{fg: c.Attr.Foreground, bg: c.Attr.Background, bits: c.Attr.Bits()}
	style, ok := m.styleFor[key]
	if !ok {
		style = m.buildStyle(c.Attr)
		m.styleFor[key] = style
	}
	return style.Render(string(ch))
}

func (m *model) buildStyle(a attr.TextAttribute) lipgloss.Style {
	style := lipgloss.NewStyle()
	if fg, ok := m.buf.Palette.At(int(a.Foreground)); ok {
		style = style.Foreground(resolveColor(fg, m.buf.Palette))
	}
	if bg, ok := m.buf.Palette.At(int(a.Background)); ok {
		style = style.Background(resolveColor(bg, m.buf.Palette))
	}
	if a.Has(attr.Bold) {
		style = style.Bold(true)
	}
	if a.Has(attr.Underlined) {
		style = style.Underline(true)
	}
	if a.Has(attr.Blinking) {
		style = style.Blink(true)
	}
	if a.Has(attr.CrossedOut) {
		style = style.Strikethrough(true)
	}
	return style
}

func resolveColor(c color.Color, pal *color.Palette) lipgloss.Color {
	r, g, b := c.Resolve(pal)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

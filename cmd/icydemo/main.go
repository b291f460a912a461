// Command icydemo is a small terminal-TTY driver for icyengine: it opens
// an art file (or starts a blank 80x25 buffer), loads it through the
// codec registered for its extension, and renders the composed buffer as a
// scrollable static view in the terminal via bubbletea/lipgloss. It is a
// debug executable,
// the programmatic API's only consumer in this repository, in the same
// spirit as the teacher's cmd/debug-tui and cmd/ansitest.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/stlalpha/icyengine/internal/buffer"
	"github.com/stlalpha/icyengine/internal/format"
	"github.com/stlalpha/icyengine/internal/logging"
)

func main() {
	path := flag.String("file", "", "art file to load (.ans, .bin, .xb, .icd, ...)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	logging.DebugEnabled = *debug || os.Getenv("DEBUG") == "1"

	buf, err := loadBuffer(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "icydemo:", err)
		os.Exit(1)
	}

	m := newModel(buf)
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		w, h = 80, 25
	}
	m.width, m.height = w, h
	m.viewport.Width, m.viewport.Height = w, h-1

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "icydemo:", err)
		os.Exit(1)
	}
}

func loadBuffer(path string) (*buffer.Buffer, error) {
	if path == "" {
		return buffer.New(buffer.Size{Width: 80, Height: 25}, nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	ext := filepath.Ext(path)
	reg := format.NewRegistry()
	return reg.Load(ext, path, data, format.LoadOptions{DefaultSize: buffer.Size{Width: 80, Height: 25}})
}

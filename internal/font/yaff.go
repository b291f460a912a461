package font

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// LoadYAFF parses a (simplified) YAFF bitmap font: a text format where each
// glyph is a label line ("0x41:", "u+0041:", or a bare decimal) followed by
// indented rows of pixel characters, '.' or '-' meaning unset and anything
// else meaning set. A blank line or a dedent ends a glyph. Width is taken
// from the widest row seen; all glyphs must agree on height.
func LoadYAFF(name string, data []byte) (*BitFont, error) {
	type pending struct {
		label rune
		rows  []string
	}
	var glyphs []pending
	var cur *pending

	flush := func() {
		if cur != nil && len(cur.rows) > 0 {
			glyphs = append(glyphs, *cur)
		}
		cur = nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(trimmed) == "" {
			flush()
			continue
		}
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") && strings.HasSuffix(trimmed, ":") {
			flush()
			label := strings.TrimSuffix(strings.TrimSpace(trimmed), ":")
			r, err := parseYAFFLabel(label)
			if err != nil {
				return nil, fmt.Errorf("font: yaff label %q: %w", label, err)
			}
			cur = &pending{label: r}
			continue
		}
		if cur != nil {
			cur.rows = append(cur.rows, strings.TrimSpace(trimmed))
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("font: yaff scan: %w", err)
	}
	if len(glyphs) == 0 {
		return nil, fmt.Errorf("font: yaff blob contains no glyphs")
	}

	height := len(glyphs[0].rows)
	width := 0
	for _, g := range glyphs {
		if len(g.rows) != height {
			return nil, fmt.Errorf("font: yaff glyph %q has %d rows, want %d", string(g.label), len(g.rows), height)
		}
		for _, row := range g.rows {
			if len(row) > width {
				width = len(row)
			}
		}
	}
	if width == 0 || width > 8 {
		return nil, fmt.Errorf("font: yaff width %d unsupported (only 1..8 px wide glyphs)", width)
	}

	f := New(name, width, height)
	for _, g := range glyphs {
		rows := make([]byte, height)
		for y, row := range g.rows {
			var b byte
			for x := 0; x < width; x++ {
				set := x < len(row) && row[x] != '.' && row[x] != '-' && row[x] != ' '
				if set {
					b |= 1 << uint(7-x)
				}
			}
			rows[y] = b
		}
		if err := f.SetGlyph(g.label, rows); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func parseYAFFLabel(label string) (rune, error) {
	lower := strings.ToLower(label)
	switch {
	case strings.HasPrefix(lower, "0x"):
		v, err := strconv.ParseInt(lower[2:], 16, 32)
		return rune(v), err
	case strings.HasPrefix(lower, "u+"):
		v, err := strconv.ParseInt(lower[2:], 16, 32)
		return rune(v), err
	case len(label) == 3 && label[0] == '\'' && label[2] == '\'':
		return rune(label[1]), nil
	default:
		v, err := strconv.ParseInt(label, 10, 32)
		return rune(v), err
	}
}

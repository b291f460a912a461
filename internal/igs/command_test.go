package igs

import "testing"

func TestDecodeDrawLineParams(t *testing.T) {
	cmd, err := Decode("L@0,0,10,10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Kind != CmdDrawLine {
		t.Fatalf("expected CmdDrawLine, got %v", cmd.Kind)
	}
	if len(cmd.Params) != 4 || cmd.Params[2] != 10 {
		t.Fatalf("unexpected params: %v", cmd.Params)
	}
}

func TestDecodeUnknownMnemonic(t *testing.T) {
	cmd, err := Decode("ZZ1,2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Kind != CmdUnknown {
		t.Fatalf("expected CmdUnknown, got %v", cmd.Kind)
	}
}

func TestParserFeedEmitsOnTerminator(t *testing.T) {
	p := NewParser()
	var got []Command
	for _, b := range []byte("GL@0,0,5,5#") {
		p.Feed(b, func(c Command) { got = append(got, c) })
	}
	if len(got) != 1 {
		t.Fatalf("expected one command, got %d", len(got))
	}
	if got[0].Kind != CmdDrawLine {
		t.Fatalf("expected CmdDrawLine, got %v", got[0].Kind)
	}
}

func TestParserFeedEmitsOnNextEscape(t *testing.T) {
	p := NewParser()
	var got []Command
	feed := func(s string) {
		for _, b := range []byte(s) {
			p.Feed(b, func(c Command) { got = append(got, c) })
		}
	}
	feed("GC@0")
	feed("GL@0,0,1,1#")
	if len(got) != 2 {
		t.Fatalf("expected two commands, got %d", len(got))
	}
}

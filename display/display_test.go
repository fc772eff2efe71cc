package display

import (
	"strings"
	"testing"
)

func TestCompose_Empty(t *testing.T) {
	g := Compose(nil)
	for _, line := range g.Lines() {
		if strings.TrimSpace(line) != "" {
			t.Fatalf("expected blank grid, got %q", line)
		}
	}
}

func TestCompose_PlacesText(t *testing.T) {
	g := Compose([]Command{Write(1, 4, "O6:3O")})
	line := g.Lines()[1]
	if got := line[4:9]; got != "O6:3O" {
		t.Errorf("row 1 = %q, want text at column 4", line)
	}
}

func TestCompose_LaterCommandsOverwrite(t *testing.T) {
	g := Compose([]Command{
		Write(0, 0, "AAAA"),
		Write(0, 2, "BB"),
	})
	if got := g.Lines()[0][:4]; got != "AABB" {
		t.Errorf("overlap = %q, want later command to win", got)
	}
}

func TestCompose_InvisibleSkipped(t *testing.T) {
	g := Compose([]Command{
		{Row: 0, Col: 0, Text: "hidden", Visible: false},
		Write(0, 0, "X"),
	})
	line := g.Lines()[0]
	if line[0] != 'X' || strings.Contains(line, "hidden") {
		t.Errorf("invisible command drawn: %q", line)
	}
}

func TestCompose_ClipsOutOfBounds(t *testing.T) {
	cases := []struct {
		name string
		cmd  Command
	}{
		{"row below", Write(-1, 0, "x")},
		{"row above", Write(Rows, 0, "x")},
		{"column overflow", Write(0, Cols-2, "xxxxxx")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := Compose([]Command{c.cmd}) // must not panic
			for _, line := range g.Lines() {
				if len(line) != Cols {
					t.Errorf("row length %d, want %d", len(line), Cols)
				}
			}
		})
	}
}

func TestCompose_PartialClip(t *testing.T) {
	g := Compose([]Command{Write(2, Cols-2, "abcd")})
	line := g.Lines()[2]
	if got := line[Cols-2:]; got != "ab" {
		t.Errorf("clipped text = %q, want \"ab\"", got)
	}
}

func TestNew_DefaultIsTerm(t *testing.T) {
	d, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := d.(*Term); !ok {
		t.Errorf("expected terminal output for empty config, got %T", d)
	}
}

func TestNew_None(t *testing.T) {
	d, err := New(Config{Type: "none"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := d.(*Noop); !ok {
		t.Errorf("expected Noop for type none, got %T", d)
	}
}

func TestNew_Term(t *testing.T) {
	d, err := New(Config{Type: "term"})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Update([]Command{Write(0, 0, "hello")}); err != nil {
		t.Errorf("term update: %v", err)
	}
}

package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Errorf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetKeepsColors(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetCell(1, 1, Cell{Rune: ' ', Fg: ColorWhite, Bg: ColorRed})
	s.Set(1, 1, '7')

	c := s.GetCell(1, 1)
	if c.Rune != '7' || c.Fg != ColorWhite || c.Bg != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, expected '7' white on red", c)
	}

	// Out of bounds writes are ignored
	s.Set(-1, 0, 'A')
	s.SetCell(0, 9, Cell{Rune: 'A'})
	if s.Get(-1, 0) != ' ' || s.Get(0, 9) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClearResetsColors(t *testing.T) {
	s := NewScreen(4, 2)
	s.FillRect(NewRect(0, 0, 4, 2), Cell{Rune: '#', Bg: ColorBlue})
	s.Clear()

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Errorf("After Clear, cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(10, 10)
	fill := Cell{Rune: ' ', Bg: ColorGreen}
	s.FillRect(NewRect(2, 2, 3, 2), fill)

	for y := 2; y < 4; y++ {
		for x := 2; x < 5; x++ {
			if s.GetCell(x, y) != fill {
				t.Errorf("FillRect: cell (%d, %d) not filled", x, y)
			}
		}
	}
	if s.GetCell(5, 2) != blankCell || s.GetCell(2, 4) != blankCell {
		t.Error("FillRect should not affect outside area")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	for i, ch := range "Hello" {
		if s.Get(2+i, 1) != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.Get(2+i, 1))
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextColored(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextColored(1, 0, "0,1", ColorBlack, ColorYellow)

	for i := 0; i < 3; i++ {
		c := s.GetCell(1+i, 0)
		if c.Fg != ColorBlack || c.Bg != ColorYellow {
			t.Errorf("cell %d colors = %v/%v, expected black/yellow", i, c.Fg, c.Bg)
		}
	}
	if s.Row(0) != " 0,1      " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.FillRect(NewRect(1, 1, 5, 4), Cell{Rune: ' ', Bg: ColorRed})
	s.DrawBox(NewRect(1, 1, 5, 4), ColorWhite)

	corners := map[Point]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for p, want := range corners {
		if got := s.Get(p.X, p.Y); got != want {
			t.Errorf("corner (%d, %d) = %q, expected %q", p.X, p.Y, got, want)
		}
	}

	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("Horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("Vertical edge missing at y=%d", y)
		}
	}

	// Outline keeps the background it was drawn over
	if c := s.GetCell(1, 1); c.Bg != ColorRed || c.Fg != ColorWhite {
		t.Errorf("corner colors = %v/%v, expected white on red", c.Fg, c.Bg)
	}
	// Interior untouched
	if s.Get(3, 2) != ' ' {
		t.Error("DrawBox should not fill the interior")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawTextColored(0, 1, "BBBBB", ColorRed, ColorDefault)
	s.DrawText(0, 2, "CCCCC")

	expected := "AAAAA\nBBBBB\nCCCCC"
	if result := s.String(); result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorCyan, ColorDefault)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Fg != ColorCyan {
		t.Error("Colors should be preserved on resize")
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
	if s.Row(-1) != strings.Repeat(" ", 15) {
		t.Errorf("Out of bounds row should be spaces, got %q", s.Row(-1))
	}
}

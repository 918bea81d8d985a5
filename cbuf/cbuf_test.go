package cbuf

import (
	"strings"
	"testing"
)

func TestPeekRead(t *testing.T) {
	b := New(strings.NewReader("hello\nworld"))
	if c := b.Peek(0); c != 'h' {
		t.Errorf("Expected peek(0) to be 'h', is %q", rune(c))
	}
	if c := b.Peek(5); c != '\n' {
		t.Errorf("Expected peek(5) to be newline, is %q", rune(c))
	}
	if s := b.Read(6); s != "hello\n" {
		t.Errorf("Expected read(6) to be \"hello\\n\", is %q", s)
	}
	if b.Pos() != 6 {
		t.Errorf("Expected position 6, is %d", b.Pos())
	}
	if c := b.Peek(0); c != 'w' {
		t.Errorf("Expected peek(0) to be 'w' after read, is %q", rune(c))
	}
}

func TestPeekBeyondEOF(t *testing.T) {
	b := New(strings.NewReader("ab"))
	if c := b.Peek(2); c != -1 {
		t.Errorf("Expected peek beyond end to be -1, is %d", c)
	}
	if c := b.Peek(1); c != 'b' {
		t.Errorf("Expected peek(1) to be 'b', is %q", rune(c))
	}
	if s := b.Read(5); s != "ab" {
		t.Errorf("Expected short read to be \"ab\", is %q", s)
	}
	if b.Err() != nil {
		t.Errorf("EOF must not surface as an error, got %v", b.Err())
	}
}

func TestSubstring(t *testing.T) {
	b := New(strings.NewReader("abcdef"))
	b.Peek(5) // materialize
	s, err := b.Substring(2, 3)
	if err != nil {
		t.Error(err)
	}
	if s != "cde" {
		t.Errorf("Expected substring \"cde\", is %q", s)
	}
	b.Read(3)
	if _, err = b.Substring(1, 2); err == nil {
		t.Errorf("Expected error for substring before position")
	}
}

func TestEmptyInput(t *testing.T) {
	b := New(strings.NewReader(""))
	if c := b.Peek(0); c != -1 {
		t.Errorf("Expected -1 on empty input, is %d", c)
	}
	if s := b.Read(1); s != "" {
		t.Errorf("Expected empty read, is %q", s)
	}
}

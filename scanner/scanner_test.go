package scanner

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/grammatica"
)

// Token ids for the test grammar.
const (
	tKeyword = iota + 1
	tNumber
	tIdentifier
	tWhitespace
	tError
)

func makeTokenizer(t *testing.T, input string, opts ...Option) *Tokenizer {
	tz := New(strings.NewReader(input), opts...)
	patterns := []*TokenPattern{
		NewTokenPattern(tKeyword, "KEYWORD", Literal, "keyword"),
		NewTokenPattern(tNumber, "NUMBER", Regexp, "[0-9]+"),
		NewTokenPattern(tIdentifier, "IDENTIFIER", Regexp, "[A-Z]+"),
		NewTokenPattern(tWhitespace, "WHITESPACE", Regexp, "[ \t\n]+").SetIgnore(),
	}
	for _, tp := range patterns {
		if err := tz.AddPattern(tp); err != nil {
			t.Fatal(err)
		}
	}
	return tz
}

func collect(t *testing.T, tz *Tokenizer) ([]*Token, []error) {
	var tokens []*Token
	var errs []error
	for {
		token, err := tz.Next()
		if err != nil {
			if pe, ok := err.(*grammatica.ParseError); ok && pe.Code.IsFatal() {
				errs = append(errs, err)
				return tokens, errs
			}
			errs = append(errs, err)
			continue
		}
		if token == nil {
			return tokens, errs
		}
		tokens = append(tokens, token)
	}
}

func TestTokenStream(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	tz := makeTokenizer(t, " 12 keyword 0 ")
	tokens, errs := collect(t, tz)
	if len(errs) > 0 {
		t.Fatalf("expected error-free scan, got %v", errs)
	}
	ids := []int{tNumber, tKeyword, tNumber}
	images := []string{"12", "keyword", "0"}
	if len(tokens) != len(ids) {
		t.Fatalf("expected %d tokens, got %d", len(ids), len(tokens))
	}
	for i, token := range tokens {
		if token.ID() != ids[i] || token.Image() != images[i] {
			t.Errorf("token #%d: expected %d %q, got %d %q",
				i, ids[i], images[i], token.ID(), token.Image())
		}
	}
}

func TestErrorPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	tz := makeTokenizer(t, "12 error1  ")
	err := tz.AddPattern(NewTokenPattern(tError, "ERROR", Literal, "error").
		SetError("error token found"))
	if err != nil {
		t.Fatal(err)
	}
	tokens, errs := collect(t, tz)
	if len(tokens) != 2 || tokens[0].ID() != tNumber || tokens[1].ID() != tNumber {
		t.Fatalf("expected two NUMBER tokens, got %v", tokens)
	}
	if len(errs) != 1 {
		t.Fatalf("expected one logged error, got %v", errs)
	}
	pe := errs[0].(*grammatica.ParseError)
	if pe.Code != grammatica.InvalidToken || pe.Info != "error token found" {
		t.Errorf("expected invalid-token with pattern message, got %v", pe)
	}
}

func TestLongestMatchWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	tz := New(strings.NewReader("<<= <"))
	tz.AddPattern(NewTokenPattern(1, "LT", Literal, "<"))
	tz.AddPattern(NewTokenPattern(2, "SHIFT", Literal, "<<"))
	tz.AddPattern(NewTokenPattern(3, "SHIFTEQ", Literal, "<<="))
	tz.AddPattern(NewTokenPattern(4, "WS", Regexp, " +").SetIgnore())
	tokens, errs := collect(t, tz)
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	if len(tokens) != 2 || tokens[0].ID() != 3 || tokens[1].ID() != 1 {
		t.Errorf("expected [SHIFTEQ LT], got %v", tokens)
	}
}

func TestFirstRegisteredWinsTies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	tz := New(strings.NewReader("abc"))
	tz.AddPattern(NewTokenPattern(1, "WORD", Regexp, "[a-z]+"))
	tz.AddPattern(NewTokenPattern(2, "ALSO", Regexp, "[a-w]+"))
	token, err := tz.Next()
	if err != nil {
		t.Fatal(err)
	}
	if token.ID() != 1 {
		t.Errorf("expected first-registered pattern to win the tie, got %v", token)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	tz := makeTokenizer(t, "12 # 34")
	tokens, errs := collect(t, tz)
	if len(tokens) != 2 {
		t.Fatalf("expected recovery to two tokens, got %v", tokens)
	}
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	pe := errs[0].(*grammatica.ParseError)
	if pe.Code != grammatica.UnexpectedCharacter || pe.Line != 1 || pe.Column != 4 {
		t.Errorf("expected unexpected-character at line 1, col 4, got %v", pe)
	}
}

func TestPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	tz := makeTokenizer(t, "12\n keyword")
	tokens, errs := collect(t, tz)
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	if tokens[0].StartLine() != 1 || tokens[0].StartColumn() != 1 {
		t.Errorf("expected 12 at (1,1), got (%d,%d)",
			tokens[0].StartLine(), tokens[0].StartColumn())
	}
	if tokens[0].EndLine() != 1 || tokens[0].EndColumn() != 2 {
		t.Errorf("expected 12 to end at (1,2), got (%d,%d)",
			tokens[0].EndLine(), tokens[0].EndColumn())
	}
	if tokens[1].StartLine() != 2 || tokens[1].StartColumn() != 2 {
		t.Errorf("expected keyword at (2,2), got (%d,%d)",
			tokens[1].StartLine(), tokens[1].StartColumn())
	}
	if tokens[1].EndColumn() != 8 {
		t.Errorf("expected keyword to end at col 8, is %d", tokens[1].EndColumn())
	}
}

func TestMultilineToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	tz := New(strings.NewReader("'a\nbc' x"))
	tz.AddPattern(NewTokenPattern(1, "STRING", Regexp, "'[^']*'"))
	tz.AddPattern(NewTokenPattern(2, "WS", Regexp, " +").SetIgnore())
	tz.AddPattern(NewTokenPattern(3, "ID", Regexp, "[a-z]+"))
	tokens, errs := collect(t, tz)
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	str := tokens[0]
	if str.EndLine() != 2 || str.EndColumn() != 3 {
		t.Errorf("expected string to end at (2,3), got (%d,%d)",
			str.EndLine(), str.EndColumn())
	}
	if tokens[1].StartLine() != 2 || tokens[1].StartColumn() != 5 {
		t.Errorf("expected x at (2,5), got (%d,%d)",
			tokens[1].StartLine(), tokens[1].StartColumn())
	}
}

func TestTokenList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	tz := makeTokenizer(t, " 12 keyword ", UseTokenList(true))
	_, errs := collect(t, tz)
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	var names []string
	for token := tz.Tokens(); token != nil; token = token.Next() {
		names = append(names, token.Name())
	}
	expected := "WHITESPACE NUMBER WHITESPACE KEYWORD WHITESPACE"
	if got := strings.Join(names, " "); got != expected {
		t.Errorf("expected token list %q, got %q", expected, got)
	}
	last := tz.Tokens()
	for last.Next() != nil {
		last = last.Next()
	}
	if last.Prev() == nil || last.Prev().Name() != "KEYWORD" {
		t.Errorf("expected backward chaining through the list")
	}
}

func TestIgnoreCaseTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	tz := New(strings.NewReader("KeyWord KEYWORD"), IgnoreCase(true))
	tz.AddPattern(NewTokenPattern(1, "KEYWORD", Literal, "keyword"))
	tz.AddPattern(NewTokenPattern(2, "WS", Regexp, " +").SetIgnore())
	tokens, errs := collect(t, tz)
	if len(errs) > 0 {
		t.Fatal(errs)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected two keyword tokens, got %v", tokens)
	}
	if tokens[0].Image() != "KeyWord" {
		t.Errorf("expected the image to keep the original casing, got %q",
			tokens[0].Image())
	}
}

func TestReset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	tz := makeTokenizer(t, "12")
	first, _ := collect(t, tz)
	tz.Reset(strings.NewReader("12"))
	second, _ := collect(t, tz)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one token per run, got %d/%d", len(first), len(second))
	}
	if first[0].Image() != second[0].Image() ||
		first[0].StartColumn() != second[0].StartColumn() {
		t.Errorf("expected reset to reproduce the first run")
	}
}

func TestPartialMatchAtEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	tz := New(strings.NewReader("keyw"))
	tz.AddPattern(NewTokenPattern(1, "KEYWORD", Literal, "keyword"))
	_, err := tz.Next()
	pe, ok := err.(*grammatica.ParseError)
	if !ok || pe.Code != grammatica.UnexpectedEOF {
		t.Errorf("expected unexpected-eof for a partial match, got %v", err)
	}
	token, err := tz.Next()
	if token != nil || err != nil {
		t.Errorf("expected end of input after the partial match, got %v/%v", token, err)
	}
}

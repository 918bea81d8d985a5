package lexmach

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello World",
	"x = 12 + y",
}

var tokenCounts = []int{1, 3, 2, 5}

func TestLMScan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	literals := []string{"+", "-", "=", "(", ")"}
	keywords := []string{"if", "then"}
	tokenIds := map[string]int{
		"ID":  100,
		"NUM": 101,
	}
	for i, lit := range literals {
		tokenIds[lit] = 10 + i
	}
	for i, kw := range keywords {
		tokenIds[kw] = 20 + i
	}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`([a-z]|[A-Z])+`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[0-9]+`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Fatal(err)
		}
		count := 0
		for {
			token, err := sc.Next()
			if err != nil {
				t.Fatal(err)
			}
			if token == nil {
				break
			}
			t.Logf(" %4d | %15s | @%5d", token.ID(), token.Image(), token.Span().From())
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLMTokenPatterns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grammatica.scanner")
	defer teardown()
	//
	tokenIds := map[string]int{"NUM": 101}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[0-9]+`), MakeToken("NUM", tokenIds["NUM"]))
	}
	LM, err := NewLMAdapter(init, nil, nil, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LM.Scanner("4711")
	if err != nil {
		t.Fatal(err)
	}
	token, err := sc.Next()
	if err != nil || token == nil {
		t.Fatalf("expected a token, got %v/%v", token, err)
	}
	if token.Name() != "NUM" || token.Image() != "4711" {
		t.Errorf("expected NUM \"4711\", got %s %q", token.Name(), token.Image())
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/grammatica"
	"github.com/npillmayer/grammatica/parser"
	"github.com/npillmayer/grammatica/scanner"
	"github.com/npillmayer/grammatica/tree"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

func tracer() tracing.Trace {
	return tracing.Select("grammatica.parser")
}

// Token and production ids of the demo grammar.
const (
	tNumber = iota + 1
	tIdentifier
	tAdd
	tMul
	tLParen
	tRParen
	tWhitespace
)

const (
	pExpression = iota + 10
	pExpressionRest
	pTerm
	pTermRest
	pFactor
	pAtom
)

// We provide a simple expression grammar as a default for parsing
// experiments:
//
//	Expression     ➞ Term ExpressionRest?
//	ExpressionRest ➞ '+' Expression
//	Term           ➞ Factor TermRest?
//	TermRest       ➞ '*' Term
//	Factor         ➞ Atom
//	Atom           ➞ number | identifier | '(' Expression ')'
func makeExprParser() (*parser.Parser, error) {
	tz := scanner.New(strings.NewReader(""))
	tokens := []*scanner.TokenPattern{
		scanner.NewTokenPattern(tNumber, "number", scanner.Regexp, "[0-9]+"),
		scanner.NewTokenPattern(tIdentifier, "identifier", scanner.Regexp, "[a-z]+"),
		scanner.NewTokenPattern(tAdd, "+", scanner.Literal, "+"),
		scanner.NewTokenPattern(tMul, "*", scanner.Literal, "*"),
		scanner.NewTokenPattern(tLParen, "(", scanner.Literal, "("),
		scanner.NewTokenPattern(tRParen, ")", scanner.Literal, ")"),
		scanner.NewTokenPattern(tWhitespace, "ws", scanner.Regexp, "[ \\t\\n]+").SetIgnore(),
	}
	for _, tp := range tokens {
		if err := tz.AddPattern(tp); err != nil {
			return nil, err
		}
	}
	p := parser.New(tz)
	productions := []struct {
		pp   *parser.ProductionPattern
		alts []*parser.ProductionPatternAlternative
	}{
		{parser.NewProductionPattern(pExpression, "Expression"),
			[]*parser.ProductionPatternAlternative{
				parser.NewAlternative().AddProduction(pTerm, 1, 1).AddProduction(pExpressionRest, 0, 1),
			}},
		{parser.NewProductionPattern(pExpressionRest, "ExpressionRest"),
			[]*parser.ProductionPatternAlternative{
				parser.NewAlternative().AddToken(tAdd, 1, 1).AddProduction(pExpression, 1, 1),
			}},
		{parser.NewProductionPattern(pTerm, "Term"),
			[]*parser.ProductionPatternAlternative{
				parser.NewAlternative().AddProduction(pFactor, 1, 1).AddProduction(pTermRest, 0, 1),
			}},
		{parser.NewProductionPattern(pTermRest, "TermRest"),
			[]*parser.ProductionPatternAlternative{
				parser.NewAlternative().AddToken(tMul, 1, 1).AddProduction(pTerm, 1, 1),
			}},
		{parser.NewProductionPattern(pFactor, "Factor"),
			[]*parser.ProductionPatternAlternative{
				parser.NewAlternative().AddProduction(pAtom, 1, 1),
			}},
		{parser.NewProductionPattern(pAtom, "Atom"),
			[]*parser.ProductionPatternAlternative{
				parser.NewAlternative().AddToken(tNumber, 1, 1),
				parser.NewAlternative().AddToken(tIdentifier, 1, 1),
				parser.NewAlternative().AddToken(tLParen, 1, 1).AddProduction(pExpression, 1, 1).AddToken(tRParen, 1, 1),
			}},
	}
	for _, prod := range productions {
		for _, alt := range prod.alts {
			if err := prod.pp.AddAlternative(alt); err != nil {
				return nil, err
			}
		}
		if err := p.AddPattern(prod.pp); err != nil {
			return nil, err
		}
	}
	if err := p.Prepare(); err != nil {
		return nil, err
	}
	return p, nil
}

// main starts an interactive CLI where users may enter expressions of
// the demo grammar. Every input line is tokenized and parsed; the
// resulting parse tree is rendered as a tree on the terminal, parse
// errors are listed with their positions.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to GREX") // colored welcome message
	p, err := makeExprParser()
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(2)
	}
	repl, err := readline.New("grex> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		parseAndPrint(p, line)
	}
	println("Good bye!")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func parseAndPrint(p *parser.Parser, input string) {
	p.Reset(strings.NewReader(input))
	root, err := p.Parse()
	if err != nil {
		if log, ok := err.(*grammatica.ParserLogError); ok {
			for i := 0; i < log.Count(); i++ {
				pterm.Error.Println(log.Err(i).Error())
			}
		} else {
			pterm.Error.Println(err.Error())
			return
		}
	}
	if root == nil {
		return
	}
	ll := leveledNodes(root, pterm.LeveledList{}, 0)
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
}

func leveledNodes(node tree.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	text := fmt.Sprintf("%s(%d)", node.Name(), node.ID())
	if token, ok := node.(*tree.TokenNode); ok {
		text = fmt.Sprintf("%s(%d) %q", token.Name(), token.ID(), token.Image())
	}
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	for i := 0; i < node.ChildCount(); i++ {
		ll = leveledNodes(node.Child(i), ll, level+1)
	}
	return ll
}

// Package format reads and writes automaton descriptions in a small text
// language:
//
//	# strings that start with 0
//	nfa startsWith0 {
//	  start S
//	  accept [A]
//	  S 0 -> A
//	  A 0 -> A
//	  A 1 -> A
//	  S eps -> [B, C]
//	}
//
// A file holds any number of nfa and dfa blocks. Symbols are 0, 1 and, in
// nfa blocks only, eps or lambda. States are identifiers, integers or
// double-quoted strings; labels that are keywords or contain punctuation
// must be quoted. Comments run from # to the end of the line.
package format

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed description file.
type File struct {
	Machines []*Machine `parser:"@@*"`
}

// Machine is one nfa or dfa block.
type Machine struct {
	Pos lexer.Position

	Kind  string  `parser:"@('nfa':Ident | 'dfa':Ident)"`
	Name  string  `parser:"@(Ident | Int | String)"`
	Items []*Item `parser:"'{' @@* '}'"`
}

// Item is a single statement inside a block.
type Item struct {
	Pos lexer.Position

	Start      *string     `parser:"  'start':Ident @(Ident | Int | String)"`
	Accept     *AcceptList `parser:"| @@"`
	Transition *Transition `parser:"| @@"`
}

// AcceptList is an accept statement; the list may be empty.
type AcceptList struct {
	Keyword bool     `parser:"@'accept':Ident"`
	States  []string `parser:"'[' ( @(Ident | Int | String) ( ',' @(Ident | Int | String) )* )? ']'"`
}

// Transition is a move from one state on one symbol to one or more targets.
type Transition struct {
	Pos lexer.Position

	From    string   `parser:"@(Ident | Int | String)"`
	Symbol  string   `parser:"@('0':Int | '1':Int | 'eps':Ident | 'lambda':Ident)"`
	Targets []string `parser:"'->' ( '[' ( @(Ident | Int | String) ( ',' @(Ident | Int | String) )* )? ']' | @(Ident | Int | String) )"`
}

var descLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.']*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[{}\[\],]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(descLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

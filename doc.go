/*
Package grammatica is a runtime parser generator for context-free grammars.

Grammatica creates tokenizers and parsers on the fly, without a
code-generation step. Clients register token patterns (string literals or
regular expressions) with a tokenizer, and production patterns with a
recursive-descent parser. On preparation the parser proves each production
choice unambiguous within a small token look-ahead and computes the
look-ahead sets used to drive parsing. Package structure is as follows:

■ cbuf: Package cbuf implements the look-ahead character buffer the
tokenizer and the regex engine read from.

■ rex: Package rex implements the regular-expression engine used for
regex token patterns, with greedy, reluctant and possessive repetition.

■ scanner: Package scanner implements token patterns, the literal-string
DFA and the tokenizer.

■ parser: Package parser implements production patterns, look-ahead set
computation and the recursive-descent parser.

■ tree: Package tree implements parse tree nodes, tree printing and
analyzer walks.

The base package contains data types which are used throughout all the
other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammatica

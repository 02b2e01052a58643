// Package irfmt implements the textual serialization format the
// optimizer's driver reads and writes: parse a source file into an
// ir.Module, run the pipeline, print the result back out in the same
// format, kept human-readable so round trips stay inspectable in tests.
package irfmt

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes the textual IR format: ordered rules with comments and
// identifiers matched first, punctuation last.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `;[^\n]*`, nil},
		{"Arrow", `->`, nil},
		{"Ident", `[A-Za-z_][A-Za-z0-9_.]*`, nil},
		{"Int", `-?[0-9]+`, nil},
		{"Punct", `[%@(){}\[\]:,=]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})

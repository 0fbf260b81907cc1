// Package fixture implements a textual notation for typed AST trees, so that
// lowering-pass tests (and the hlirc/hlir-lsp/repl front ends) have a
// concrete surface syntax to parse instead of hand-building internal/tast
// struct literals. The notation is not Move surface syntax: every type is
// written explicitly (this pass runs after type inference) and most
// expression forms use a prefix, parenthesized shape rather than Move's
// infix grammar, since the fixture format exists to pin down already-resolved
// trees precisely, not to be pleasant to write by hand.
package fixture

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// FixtureLexer is a stateful participle lexer: one flat rule set, ordered so
// identifiers and keywords share a single token and numeric suffixes (42u8,
// 1000u64) are captured whole rather than split across Integer+Ident.
var FixtureLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Address", `@0x[0-9a-fA-F]+|@[0-9]+`, nil},
		{"Bytearray", `x"[0-9a-fA-F]*"`, nil},
		{"Number", `0x[0-9a-fA-F]+(u8|u16|u32|u64|u128|u256)?|[0-9]+(u8|u16|u32|u64|u128|u256)?`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Punct", `(::|&&|\|\||==|!=|<=|>=|<<|>>|[(){}\[\]<>,;:.#&*!%^|+\-/=])`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})

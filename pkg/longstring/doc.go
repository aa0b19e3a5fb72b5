// Package longstring encodes arbitrary text as a Lua long-bracket literal.
//
// A long bracket of level w opens with '[' followed by w '=' and another
// '[', and closes with the mirrored ']' + w '=' + ']'. Inside the literal
// nothing is escaped: the only sequence that ends it is a closing bracket
// of exactly the same level. Encode therefore picks a level one above the
// longest bracket-like run found anywhere in the content, so no substring
// of the payload can close (or be confused with) the wrapper.
//
// The wrapped text carries one newline after the opening bracket and one
// before the closing bracket. Lua discards the first one when reading the
// literal; Decode keeps both so callers can check the exact framing.
package longstring

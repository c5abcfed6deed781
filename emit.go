// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package qjson

import (
	"bytes"
	"fmt"
)

// This file re-emits each of the four qjson string forms as a strict JSON
// string into the output buffer (spec §5). Each function assumes its
// token's val already passed the lexer's own validation and only needs
// re-escaping for JSON: tabs become \t, a bare `/` right after `<` is
// escaped (closing-tag defanging for strings destined for HTML), and an
// already-present `\x` escape is checked against the set JSON allows.

func posAt(p position, offset int) position {
	return position{byteIndex: p.byteIndex + offset, lineStart: p.lineStart, line: p.line}
}

func isValidJSONEscapeByte(c byte) bool {
	switch c {
	case 't', 'n', 'r', 'f', 'b', '/', '\\', '"':
		return true
	}
	return false
}

// isValidSingleQuotedEscapeByte is isValidJSONEscapeByte plus `'`, which is
// only a meaningful escape target inside a single-quoted token (spec §4.2
// item 2): `\'` collapses to a literal `'` in the JSON output.
func isValidSingleQuotedEscapeByte(c byte) bool {
	return c == '\'' || isValidJSONEscapeByte(c)
}

// emitDoubleQuotedString re-emits a "..." token, whose val includes the
// surrounding quotes.
func emitDoubleQuotedString(out *bytes.Buffer, tok token) error {
	str := tok.val
	out.WriteByte('"')
	for i := 1; i < len(str)-1; i++ {
		c := str[i]
		switch c {
		case '/':
			if str[i-1] == '<' {
				out.WriteByte('\\')
			}
		case '\t':
			out.WriteString("\\t")
			continue
		case '\\':
			next := str[i+1]
			if !isValidJSONEscapeByte(next) &&
				!(next == 'u' && len(str) >= i+6 && isHexDigit(str[i+2]) && isHexDigit(str[i+3]) && isHexDigit(str[i+4]) && isHexDigit(str[i+5])) {
				return newErr(posAt(tok.pos, i), errInvalidEscapeSequence)
			}
		}
		out.WriteByte(c)
	}
	out.WriteByte('"')
	return nil
}

// emitSingleQuotedString re-emits a '...' token. Single quotes need no
// escaping in JSON and an escaped `\'` collapses to a bare `'`; a literal
// `"` must be escaped since the output is JSON's doubly-quoted form.
func emitSingleQuotedString(out *bytes.Buffer, tok token) error {
	str := tok.val
	out.WriteByte('"')
	for i := 1; i < len(str)-1; i++ {
		c := str[i]
		switch c {
		case '/':
			if str[i-1] == '<' {
				out.WriteByte('\\')
			}
		case '\t':
			out.WriteString("\\t")
			continue
		case '\\':
			next := str[i+1]
			if !isValidSingleQuotedEscapeByte(next) &&
				!(next == 'u' && len(str) >= i+6 && isHexDigit(str[i+2]) && isHexDigit(str[i+3]) && isHexDigit(str[i+4]) && isHexDigit(str[i+5])) {
				return newErr(posAt(tok.pos, i), errInvalidEscapeSequence)
			}
			if next == '\'' {
				continue
			}
		case '"':
			out.WriteByte('\\')
		}
		out.WriteByte(c)
	}
	out.WriteByte('"')
	return nil
}

// emitQuotelessString re-emits a bare word/phrase token as a JSON string,
// escaping the bytes JSON requires and defanging a `</` sequence.
func emitQuotelessString(out *bytes.Buffer, tok token) {
	str := tok.val
	out.WriteByte('"')
	for i := 0; i < len(str); i++ {
		c := str[i]
		switch c {
		case '"', '\\':
			out.WriteByte('\\')
		case '\t':
			out.WriteString("\\t")
			continue
		case '/':
			if i > 0 && str[i-1] == '<' {
				out.WriteByte('\\')
			}
		}
		out.WriteByte(c)
	}
	out.WriteByte('"')
}

// emitMultilineString re-emits a back-tick multiline token. val spans
// from the start of the margin through the closing back-tick; this walks
// the same margin/newline-specifier/body structure the lexer validated
// to recover the body and re-render it with the chosen newline escape.
func emitMultilineString(out *bytes.Buffer, tok token) {
	str := tok.val
	p := 0
	for str[p] != '`' {
		p++
	}
	margin := str[:p]
	str = str[p+1:]
	for n := whitespaceLen(str); n > 0; n = whitespaceLen(str) {
		str = str[n:]
	}
	str = str[1:] // the backslash of the newline specifier
	var nl string
	if str[0] == 'n' {
		nl = "\\n"
		str = str[1:]
	} else {
		nl = "\\r\\n"
		str = str[3:]
	}
	for str[0] != '\n' {
		str = str[1:]
	}
	if len(str) == len(margin)+2 {
		// No content line: the closing back-tick follows the newline
		// specifier's line directly.
		out.WriteString(`""`)
		return
	}
	// skip the \n plus the first content line's margin, and drop the
	// closing back-tick, together with the \n and margin before it when
	// the back-tick sits on a line of its own.
	str = str[1+len(margin) : len(str)-1]
	if n := len(str) - len(margin); n > 0 && str[n-1] == '\n' && bytes.Equal(str[n:], margin) {
		str = str[:n-1]
	}
	out.WriteByte('"')
	for len(str) > 0 {
		if n := newlineLen(str); n != 0 {
			out.WriteString(nl)
			str = str[n+len(margin):]
			continue
		}
		switch {
		case str[0] < 0x20:
			switch str[0] {
			case '\b':
				out.WriteString("\\b")
			case '\t':
				out.WriteString("\\t")
			case '\r':
				out.WriteString("\\r")
			case '\f':
				out.WriteString("\\f")
			default:
				fmt.Fprintf(out, "\\u%04X", str[0])
			}
			str = str[1:]
		case str[0] == '<':
			out.WriteByte('<')
			if len(str) > 1 && str[1] == '/' {
				out.WriteByte('\\')
			}
			str = str[1:]
		case str[0] == '"':
			out.WriteString("\\\"")
			str = str[1:]
		case str[0] == '`' && len(str) > 1 && str[1] == '\\':
			out.WriteByte('`')
			str = str[2:]
		case str[0] == '\\':
			out.WriteString("\\\\")
			str = str[1:]
		default:
			out.WriteByte(str[0])
			str = str[1:]
		}
	}
	out.WriteByte('"')
}

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
	"strings"
)

// This file implements the structural parser of spec §4.3-§4.5: value(),
// values() and member()/members() stream straight into an output buffer
// rather than building a tree, mirroring qjson-c's value/values/member/
// members, adapted from pkg/yang/parse.go's mutual-recursion shape (there
// building a Statement tree; here writing bytes directly since qjson has
// no need to revisit a parsed node after emitting it).

// maxDepth caps object/array nesting (spec §4.3 edge cases).
const maxDepth = 200

type engine struct {
	l     *lexer
	tk    token
	depth int
	out   *bytes.Buffer
}

func newEngine(input []byte) *engine {
	e := &engine{l: newLexer(input), out: &bytes.Buffer{}}
	e.next()
	return e
}

// next advances to the next token unless the engine has already stopped
// on an error; qjson-c's nextToken has this same no-op guard so a caller
// that sets an error and then unconditionally calls next doesn't
// overwrite it with whatever the lexer would produce next.
func (e *engine) next() {
	if e.tk.tag == tagError {
		return
	}
	e.tk = e.l.advance()
}

func (e *engine) done() bool { return e.tk.tag == tagError }

func (e *engine) fail(pos position, msg string) { e.tk = token{tag: tagError, pos: pos, err: msg} }
func (e *engine) failHere(msg string)            { e.fail(e.tk.pos, msg) }

// isLiteralValue reports whether p is one of the boolean/null synonyms
// (spec §4.5): yes/no/on/off/true/false/null, compared case-insensitively,
// and if so which JSON literal it maps to.
func isLiteralValue(p []byte) (string, bool) {
	s := string(p)
	switch {
	case strings.EqualFold(s, "null"):
		return "null", true
	case strings.EqualFold(s, "true"), strings.EqualFold(s, "yes"), strings.EqualFold(s, "on"):
		return "true", true
	case strings.EqualFold(s, "false"), strings.EqualFold(s, "no"), strings.EqualFold(s, "off"):
		return "false", true
	}
	return "", false
}

// value processes one value at the current token and advances past it,
// returning e.done().
func (e *engine) value() bool {
	switch e.tk.tag {
	case tagCloseSquare:
		e.failHere(errUnexpectedCloseSquare)
		return true
	case tagCloseBrace:
		e.failHere(errUnexpectedCloseBrace)
		return true
	case tagDoubleQuotedString:
		if err := emitDoubleQuotedString(e.out, e.tk); err != nil {
			qe := err.(*qerror)
			e.fail(qe.pos, qe.msg)
			return true
		}
	case tagSingleQuotedString:
		if err := emitSingleQuotedString(e.out, e.tk); err != nil {
			qe := err.(*qerror)
			e.fail(qe.pos, qe.msg)
			return true
		}
	case tagMultilineString:
		emitMultilineString(e.out, e.tk)
	case tagQuotelessString:
		val := e.tk.val
		if str, ok := isLiteralValue(val); ok {
			e.out.WriteString(str)
			break
		}
		if looksLikeNumberExpr(val) {
			t := evalNumberExpression(val)
			if t.tag == tagError {
				e.fail(posAt(e.tk.pos, t.pos), t.err)
				return true
			}
			e.out.WriteString(formatNumberResult(t.f))
			break
		}
		emitQuotelessString(e.out, e.tk)
	case tagOpenBrace:
		if e.depth == maxDepth {
			e.failHere(errMaxObjectArrayDepth)
			return true
		}
		startPos := e.tk.pos
		e.next()
		if e.done() {
			if e.tk.err == endOfInput {
				e.fail(startPos, errUnclosedObject)
			}
			return true
		}
		e.depth++
		if e.members() {
			if e.tk.err == endOfInput {
				e.fail(startPos, errUnclosedObject)
			}
			return true
		}
		e.depth--
	case tagOpenSquare:
		if e.depth == maxDepth {
			e.failHere(errMaxObjectArrayDepth)
			return true
		}
		e.next()
		if e.done() {
			if e.tk.err == endOfInput {
				e.failHere(errUnclosedArray)
			}
			return true
		}
		startPos := e.tk.pos
		e.depth++
		if e.values() {
			if e.tk.err == endOfInput {
				e.fail(startPos, errUnclosedArray)
			}
			return true
		}
		e.depth--
	default:
		e.failHere(errSyntaxError)
		return true
	}
	e.next()
	return e.done()
}

// values processes zero or more comma-separated values up to and
// including the closing `]`.
func (e *engine) values() bool {
	notFirst := false
	e.out.WriteByte('[')
	for !e.done() && e.tk.tag != tagCloseSquare {
		if notFirst {
			e.out.WriteByte(',')
			if e.tk.tag == tagComma {
				e.next()
				if e.done() {
					if e.tk.err == endOfInput {
						e.failHere(errExpectValueAfterComma)
					}
					break
				}
				if e.tk.tag == tagCloseBrace || e.tk.tag == tagCloseSquare {
					e.failHere(errExpectValueAfterComma)
					break
				}
			}
		} else {
			notFirst = true
		}
		if e.value() {
			break
		}
	}
	e.out.WriteByte(']')
	return e.done()
}

// member processes one `identifier: value` pair.
func (e *engine) member() bool {
	switch e.tk.tag {
	case tagCloseSquare:
		e.failHere(errUnexpectedCloseSquare)
		return false
	case tagDoubleQuotedString:
		if err := emitDoubleQuotedString(e.out, e.tk); err != nil {
			qe := err.(*qerror)
			e.fail(qe.pos, qe.msg)
			return true
		}
	case tagSingleQuotedString:
		if err := emitSingleQuotedString(e.out, e.tk); err != nil {
			qe := err.(*qerror)
			e.fail(qe.pos, qe.msg)
			return true
		}
	case tagQuotelessString:
		emitQuotelessString(e.out, e.tk)
	default:
		e.failHere(errExpectStringIdentifier)
	}
	e.next()
	if e.done() {
		if e.tk.err == endOfInput {
			e.failHere(errUnexpectedEndOfInput)
		}
		return true
	}
	if e.tk.tag != tagColon {
		e.failHere(errExpectColon)
		return true
	}
	e.out.WriteByte(':')
	e.next()
	if e.done() {
		if e.tk.err == endOfInput {
			e.failHere(errUnexpectedEndOfInput)
		}
		return true
	}
	return e.value()
}

// members processes zero or more comma-separated members up to and
// including the closing `}`.
func (e *engine) members() bool {
	notFirst := false
	e.out.WriteByte('{')
	for !e.done() && e.tk.tag != tagCloseBrace {
		if notFirst {
			e.out.WriteByte(',')
			if e.tk.tag == tagComma {
				e.next()
				if e.done() {
					if e.tk.err == endOfInput {
						e.failHere(errExpectIdentifierAfterComma)
					}
					break
				}
				if e.tk.tag == tagCloseBrace || e.tk.tag == tagCloseSquare {
					e.failHere(errExpectIdentifierAfterComma)
					break
				}
			}
		} else {
			notFirst = true
		}
		if e.member() {
			break
		}
	}
	if !e.done() && e.depth == 0 {
		// the implicit top-level object has no `{` for a `}` to close
		e.failHere(errUnexpectedCloseBrace)
	}
	e.out.WriteByte('}')
	return e.done()
}

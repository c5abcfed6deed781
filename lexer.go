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

// This file implements the qjson lexer (spec §4.2): advance() produces one
// token at a time from the byte slice left to scan, tracking position the
// way pkg/yang/lex.go's *lexer tracks it, but organized as an ordered
// sequence of "try this production" calls rather than a stateFn chain,
// mirroring qjson-c's nextToken.

type lexer struct {
	input []byte // the whole original input, for position.column()
	rest  []byte // unconsumed suffix of input
	pos   position
}

func newLexer(input []byte) *lexer {
	return &lexer{input: input, rest: input}
}

func isWhitespaceByte(b byte) bool { return b == ' ' || b == '\t' }

// whitespaceLen returns the byte length of the single whitespace character
// (SPACE, TAB, or NBSP U+00A0) at the front of p, or 0.
func whitespaceLen(p []byte) int {
	if len(p) == 0 {
		return 0
	}
	if isWhitespaceByte(p[0]) {
		return 1
	}
	if len(p) > 1 && p[0] == 0xC2 && p[1] == 0xA0 {
		return 2
	}
	return 0
}

// newlineLen returns the byte length of the newline (LF or CRLF) at the
// front of p, or 0.
func newlineLen(p []byte) int {
	if len(p) == 0 {
		return 0
	}
	if p[0] == '\n' {
		return 1
	}
	if len(p) > 1 && p[0] == '\r' && p[1] == '\n' {
		return 2
	}
	return 0
}

// popBytes advances l.rest/l.pos.byteIndex by n plain (non-newline) bytes.
func (l *lexer) popBytes(n int) {
	l.rest = l.rest[n:]
	l.pos.byteIndex += n
}

// popNewline advances past a newline at the front of l.rest, updating
// line/lineStart bookkeeping. Returns false if there is no newline there.
func (l *lexer) popNewline() bool {
	n := newlineLen(l.rest)
	if n == 0 {
		return false
	}
	l.rest = l.rest[n:]
	l.pos.byteIndex += n
	l.pos.lineStart = l.pos.byteIndex
	l.pos.line++
	return true
}

func (l *lexer) skipWhitespace() {
	for n := whitespaceLen(l.rest); n != 0; n = whitespaceLen(l.rest) {
		l.popBytes(n)
	}
}

// skipRestOfLine pops every character up to and including the next
// newline, or to the end of input (not an error).
func (l *lexer) skipRestOfLine() error {
	for {
		if l.popNewline() || len(l.rest) == 0 {
			return nil
		}
		n, msg := nextCharLen(l.rest)
		if msg != "" {
			return newErr(l.pos, msg)
		}
		l.popBytes(n)
	}
}

// skipLineComment consumes a `#...` or `//...` comment through end of
// line, reporting whether one was found.
func (l *lexer) skipLineComment() (bool, error) {
	if len(l.rest) == 0 {
		return false, nil
	}
	if l.rest[0] == '#' || (l.rest[0] == '/' && len(l.rest) >= 2 && l.rest[1] == '/') {
		if err := l.skipRestOfLine(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// skipBlockComment consumes a `/*...*/` comment (no nesting). Reports
// whether one was found.
func (l *lexer) skipBlockComment() (bool, error) {
	if len(l.rest) < 2 || l.rest[0] != '/' || l.rest[1] != '*' {
		return false, nil
	}
	startPos := l.pos
	l.popBytes(2)
	for {
		if len(l.rest) == 0 {
			return false, newErr(startPos, errUnclosedSlashStarComment)
		}
		if l.rest[0] == '*' && len(l.rest) >= 2 && l.rest[1] == '/' {
			l.popBytes(2)
			return true, nil
		}
		if l.popNewline() {
			continue
		}
		if l.rest[0] < 0x20 {
			l.popBytes(1)
			continue
		}
		n, msg := nextCharLen(l.rest)
		if msg != "" {
			return false, newErr(l.pos, msg)
		}
		l.popBytes(n)
	}
}

// skipSpaces skips whitespace, comments, and newlines until none remain
// (or an error is found).
func (l *lexer) skipSpaces() error {
	for len(l.rest) > 0 {
		l.skipWhitespace()
		if ok, err := l.skipLineComment(); err != nil {
			return err
		} else if ok {
			continue
		}
		if ok, err := l.skipBlockComment(); err != nil {
			return err
		} else if ok {
			continue
		}
		if !l.popNewline() {
			break
		}
	}
	return nil
}

// delimTable maps single-character delimiters to their tag.
var delimTable = func() [256]tag {
	var t [256]tag
	t[','] = tagComma
	t[':'] = tagColon
	t['['] = tagOpenSquare
	t[']'] = tagCloseSquare
	t['{'] = tagOpenBrace
	t['}'] = tagCloseBrace
	return t
}()

func (l *lexer) delimiter() tag {
	t := delimTable[l.rest[0]]
	if t != tagUnknown {
		l.popBytes(1)
	}
	return t
}

// doubleQuotedString consumes a "..." string, returning the slice
// including the surrounding quotes. Returns nil, nil if rest does not
// start with a double quote.
func (l *lexer) doubleQuotedString() ([]byte, error) {
	if len(l.rest) == 0 || l.rest[0] != '"' {
		return nil, nil
	}
	startPos := l.pos
	startIdx := l.pos.byteIndex
	l.popBytes(1)
	for {
		if len(l.rest) == 0 {
			return nil, newErr(startPos, errUnclosedDoubleQuoteString)
		}
		if l.rest[0] == '\\' && len(l.rest) > 1 && l.rest[1] == '"' {
			l.popBytes(2)
			continue
		}
		if l.rest[0] == '"' {
			l.popBytes(1)
			return l.input[startIdx:l.pos.byteIndex], nil
		}
		if newlineLen(l.rest) != 0 {
			return nil, newErr(startPos, errNewlineInDoubleQuoteString)
		}
		n, msg := nextCharLen(l.rest)
		if msg != "" {
			return nil, newErr(l.pos, msg)
		}
		l.popBytes(n)
	}
}

// singleQuotedString is symmetric to doubleQuotedString for '...' strings.
func (l *lexer) singleQuotedString() ([]byte, error) {
	if len(l.rest) == 0 || l.rest[0] != '\'' {
		return nil, nil
	}
	startPos := l.pos
	startIdx := l.pos.byteIndex
	l.popBytes(1)
	for {
		if len(l.rest) == 0 {
			return nil, newErr(startPos, errUnclosedSingleQuoteString)
		}
		if l.rest[0] == '\\' && len(l.rest) > 1 && l.rest[1] == '\'' {
			l.popBytes(2)
			continue
		}
		if l.rest[0] == '\'' {
			l.popBytes(1)
			return l.input[startIdx:l.pos.byteIndex], nil
		}
		if newlineLen(l.rest) != 0 {
			return nil, newErr(startPos, errNewlineInSingleQuoteString)
		}
		n, msg := nextCharLen(l.rest)
		if msg != "" {
			return nil, newErr(l.pos, msg)
		}
		l.popBytes(n)
	}
}

// matchingMarginLength returns how many leading bytes of line match margin,
// capped at len(margin).
func matchingMarginLength(margin, line []byte) int {
	n := len(margin)
	if len(line) < n {
		n = len(line)
	}
	for i := 0; i < n; i++ {
		if line[i] != margin[i] {
			return i
		}
	}
	return n
}

// newlineSpecifierLen returns the byte length of a literal `\n` or `\r\n`
// specifier at the front of p, or 0.
func newlineSpecifierLen(p []byte) int {
	if len(p) == 0 || p[0] != '\\' {
		return 0
	}
	if len(p) > 1 && p[1] == 'n' {
		return 2
	}
	if len(p) > 3 && p[1] == 'r' && p[2] == '\\' && p[3] == 'n' {
		return 4
	}
	return 0
}

// multilineString consumes a back-tick-delimited indented multiline
// string (spec §4.2 item 4), including the margin and the closing
// back-tick in the returned slice. Returns nil, nil if rest does not start
// with a back-tick.
func (l *lexer) multilineString() ([]byte, error) {
	if len(l.rest) == 0 || l.rest[0] != '`' {
		return nil, nil
	}
	lineSoFar := l.input[l.pos.lineStart:l.pos.byteIndex]
	if whitespaceRunLen(lineSoFar) != len(lineSoFar) {
		return nil, newErr(position{l.pos.lineStart + whitespaceRunLen(lineSoFar), l.pos.lineStart, l.pos.line}, errMarginMustBeWhitespace)
	}
	margin := append([]byte(nil), lineSoFar...)
	startPos := l.pos
	startIdx := l.pos.lineStart // includes the margin, as emitMultilineString expects
	l.popBytes(1)               // opening `
	l.skipWhitespace()
	if len(l.rest) == 0 {
		return nil, newErr(startPos, errMissingNewlineSpecifier)
	}
	n := newlineSpecifierLen(l.rest)
	if n == 0 {
		return nil, newErr(startPos, errInvalidNewlineSpecifier)
	}
	l.popBytes(n)
	l.skipWhitespace()
	if !l.popNewline() {
		ok, err := l.skipLineComment()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, newErr(startPos, errInvalidMultilineStart)
		}
	}
	if len(l.rest) == 0 {
		return nil, newErr(startPos, errUnclosedMultiline)
	}
	if n := matchingMarginLength(margin, l.rest); n != len(margin) {
		return nil, newErr(position{l.pos.byteIndex + n, l.pos.lineStart, l.pos.line}, errInvalidMarginChar)
	}
	l.popBytes(len(margin))
	for len(l.rest) > 0 {
		if l.popNewline() {
			n := matchingMarginLength(margin, l.rest)
			if n != len(margin) {
				return nil, newErr(position{l.pos.byteIndex + n, l.pos.lineStart, l.pos.line}, errInvalidMarginChar)
			}
			if n > 0 {
				l.popBytes(n)
			}
			continue
		}
		if l.rest[0] < 0x20 {
			l.popBytes(1)
			continue
		}
		if l.rest[0] == '`' {
			l.popBytes(1)
			if len(l.rest) == 0 || l.rest[0] != '\\' {
				return l.input[startIdx:l.pos.byteIndex], nil
			}
			continue
		}
		n, msg := nextCharLen(l.rest)
		if msg != "" {
			return nil, newErr(l.pos, msg)
		}
		l.popBytes(n)
	}
	return nil, newErr(startPos, errUnclosedMultiline)
}

// whitespaceRunLen returns the length, in bytes, of the leading run of
// whitespaceLen matches in p (used to validate a multiline's margin is
// whitespace-only).
func whitespaceRunLen(p []byte) int {
	n := 0
	for len(p) > 0 {
		w := whitespaceLen(p)
		if w == 0 {
			break
		}
		p = p[w:]
		n += w
	}
	return n
}

// quotelessStopByte flags bytes that can terminate a quoteless string:
// `, : { } [ ] #` plus newline bytes and the start of `/` comments (the
// latter two are distinguished from a lone `/` or `\r` by the check in
// quotelessString; see spec §9's open question for the normative rule).
var quotelessStopByte = func() [256]bool {
	var t [256]bool
	for _, b := range []byte{',', ':', '{', '}', '[', ']', '#', '\n', '\r', '/'} {
		t[b] = true
	}
	return t
}()

// isoDateTimeExtraLen is called when the lexer is about to stop a
// quoteless string at a `:` that follows an already-consumed `YYYY-MM-DDThh`
// prefix, i.e. sits 13 bytes into it (spec §4.2 item 5, §9). If the bytes
// starting 13 positions back form a valid ISO date-time prefix that runs
// past the `:`, it returns how many bytes, counting the `:` itself, belong
// to it; otherwise 0.
func isoDateTimeExtraLen(l *lexer) int {
	if l.rest[0] != ':' || l.pos.byteIndex < 13 {
		return 0
	}
	start := l.pos.byteIndex - 13
	n := parseISODateTimePrefix(l.input[start:])
	if n > 13 {
		return n - 13
	}
	return 0
}

// quotelessString consumes a run of characters up to the first
// terminating delimiter, newline, comment start, or end of input (spec
// §4.2 item 5). The result is right-trimmed of trailing whitespace. It
// returns nil, nil only if the run was empty, which skipSpaces()'s prior
// consumption of leading whitespace/comments/newlines makes unreachable
// in practice for any non-empty remaining input.
func (l *lexer) quotelessString() ([]byte, error) {
	startIdx := l.pos.byteIndex
	endIdx := startIdx
	for len(l.rest) > 0 {
		if n := whitespaceLen(l.rest); n != 0 {
			l.skipWhitespace()
			continue
		}
		c := l.rest[0]
		if quotelessStopByte[c] {
			isCommentStart := c == '/' && len(l.rest) > 1 && (l.rest[1] == '/' || l.rest[1] == '*')
			isNewline := newlineLen(l.rest) != 0
			isOrdinaryStop := c != '\r' && c != '/'
			if isCommentStart || isNewline || isOrdinaryStop {
				n := isoDateTimeExtraLen(l)
				if n == 0 {
					break
				}
				l.popBytes(n)
				endIdx = l.pos.byteIndex
				continue
			}
		}
		n, msg := nextCharLen(l.rest)
		if msg != "" {
			return nil, newErr(l.pos, msg)
		}
		l.popBytes(n)
		endIdx = l.pos.byteIndex
	}
	if startIdx == endIdx {
		return nil, nil
	}
	return l.input[startIdx:endIdx], nil
}

// advance returns the next token from l. Once an error token (including
// the endOfInput sentinel) has been produced, callers must stop calling
// advance; the lexer does not re-enter a clean state.
func (l *lexer) advance() token {
	if err := l.skipSpaces(); err != nil {
		qe := err.(*qerror)
		return token{tag: tagError, pos: qe.pos, err: qe.msg}
	}
	tokenPos := l.pos
	if len(l.rest) == 0 {
		return token{tag: tagError, pos: l.pos, err: endOfInput}
	}
	if t := l.delimiter(); t != tagUnknown {
		return token{tag: t, pos: tokenPos}
	}
	if s, err := l.doubleQuotedString(); err != nil {
		qe := err.(*qerror)
		return token{tag: tagError, pos: qe.pos, err: qe.msg}
	} else if s != nil {
		return token{tag: tagDoubleQuotedString, pos: tokenPos, val: s}
	}
	if s, err := l.singleQuotedString(); err != nil {
		qe := err.(*qerror)
		return token{tag: tagError, pos: qe.pos, err: qe.msg}
	} else if s != nil {
		return token{tag: tagSingleQuotedString, pos: tokenPos, val: s}
	}
	if s, err := l.multilineString(); err != nil {
		qe := err.(*qerror)
		return token{tag: tagError, pos: qe.pos, err: qe.msg}
	} else if s != nil {
		return token{tag: tagMultilineString, pos: tokenPos, val: s}
	}
	s, err := l.quotelessString()
	if err != nil {
		qe := err.(*qerror)
		return token{tag: tagError, pos: qe.pos, err: qe.msg}
	}
	if s != nil {
		return token{tag: tagQuotelessString, pos: tokenPos, val: s}
	}
	// Unreachable: skipSpaces leaves a non-delimiter, non-quote byte at
	// the front of rest, which quotelessString always consumes at least
	// one byte of.
	return token{tag: tagError, pos: tokenPos, err: errSyntaxError}
}

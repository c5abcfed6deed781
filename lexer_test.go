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

import "testing"

// allTokens runs l to completion (or the first error) and returns every
// token it produces, including the terminal error/endOfInput token.
func allTokens(l *lexer) []token {
	var toks []token
	for {
		tk := l.advance()
		toks = append(toks, tk)
		if tk.tag == tagError {
			return toks
		}
	}
}

func TestLexerDelimiters(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		want []tag
	}{
		{line(), "{}[]:,", []tag{tagOpenBrace, tagCloseBrace, tagOpenSquare, tagCloseSquare, tagColon, tagComma, tagError}},
		{line(), "  {  }  ", []tag{tagOpenBrace, tagCloseBrace, tagError}},
	} {
		toks := allTokens(newLexer([]byte(tt.in)))
		if len(toks) != len(tt.want) {
			t.Errorf("%d: allTokens(%q): got %d tokens, want %d", tt.line, tt.in, len(toks), len(tt.want))
			continue
		}
		for i, tk := range toks {
			if tk.tag != tt.want[i] {
				t.Errorf("%d: allTokens(%q)[%d] = %v, want %v", tt.line, tt.in, i, tk.tag, tt.want[i])
			}
		}
	}
	if toks := allTokens(newLexer([]byte(""))); len(toks) != 1 || toks[0].tag != tagError || toks[0].err != endOfInput {
		t.Errorf("allTokens(%q) = %v, want a single endOfInput token", "", toks)
	}
}

func TestLexerQuotedStrings(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		want string
		err  string
	}{
		{line(), `"hello"`, `"hello"`, ""},
		{line(), `"he said \"hi\""`, `"he said \"hi\""`, ""},
		{line(), `"unterminated`, "", errUnclosedDoubleQuoteString},
		{line(), "\"a\nb\"", "", errNewlineInDoubleQuoteString},
		{line(), `'hello'`, `'hello'`, ""},
		{line(), `'it\'s'`, `'it\'s'`, ""},
		{line(), `'unterminated`, "", errUnclosedSingleQuoteString},
	} {
		tk := newLexer([]byte(tt.in)).advance()
		if tt.err != "" {
			if tk.tag != tagError || tk.err != tt.err {
				t.Errorf("%d: advance(%q) = %v/%q, want error %q", tt.line, tt.in, tk.tag, tk.err, tt.err)
			}
			continue
		}
		if tk.tag != tagDoubleQuotedString && tk.tag != tagSingleQuotedString {
			t.Errorf("%d: advance(%q): got tag %v, want a quoted string", tt.line, tt.in, tk.tag)
			continue
		}
		if got := string(tk.val); got != tt.want {
			t.Errorf("%d: advance(%q).val = %q, want %q", tt.line, tt.in, got, tt.want)
		}
	}
}

func TestLexerQuotelessString(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		want string
	}{
		{line(), "hello world", "hello world"},
		{line(), "hello world  ", "hello world"},
		{line(), "hello, world", "hello"},
		{line(), "hello: world", "hello"},
		{line(), "hello # comment", "hello"},
		{line(), "hello // comment", "hello"},
		{line(), "hello\nworld", "hello"},
	} {
		tk := newLexer([]byte(tt.in)).advance()
		if tk.tag != tagQuotelessString {
			t.Errorf("%d: advance(%q): got tag %v, want tagQuotelessString", tt.line, tt.in, tk.tag)
			continue
		}
		if got := string(tk.val); got != tt.want {
			t.Errorf("%d: advance(%q).val = %q, want %q", tt.line, tt.in, got, tt.want)
		}
	}
}

func TestLexerComments(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		want tag
	}{
		{line(), "# comment\n{", tagOpenBrace},
		{line(), "// comment\n{", tagOpenBrace},
		{line(), "/* block */{", tagOpenBrace},
		{line(), "/* multi\nline */{", tagOpenBrace},
	} {
		tk := newLexer([]byte(tt.in)).advance()
		if tk.tag != tt.want {
			t.Errorf("%d: advance(%q) = %v, want %v", tt.line, tt.in, tk.tag, tt.want)
		}
	}
	tk := newLexer([]byte("/* unterminated")).advance()
	if tk.tag != tagError || tk.err != errUnclosedSlashStarComment {
		t.Errorf("advance(%q) = %v/%q, want error %q", "/* unterminated", tk.tag, tk.err, errUnclosedSlashStarComment)
	}
}

func TestLexerMultilineString(t *testing.T) {
	in := "a:\n    `\\n\n    hello\n    world\n    `\n"
	l := newLexer([]byte(in))
	tk := l.advance() // identifier "a"
	if tk.tag != tagQuotelessString {
		t.Fatalf("first token = %v, want tagQuotelessString", tk.tag)
	}
	tk = l.advance() // colon
	if tk.tag != tagColon {
		t.Fatalf("second token = %v, want tagColon", tk.tag)
	}
	tk = l.advance()
	if tk.tag != tagMultilineString {
		t.Fatalf("third token = %v, want tagMultilineString", tk.tag)
	}
}

func TestLexerMultilineStringErrors(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		err  string
	}{
		{line(), "`", errMissingNewlineSpecifier},
		{line(), "`x\n", errInvalidNewlineSpecifier},
		{line(), "`\\n", errInvalidMultilineStart},
	} {
		tk := newLexer([]byte(tt.in)).advance()
		if tk.tag != tagError || tk.err != tt.err {
			t.Errorf("%d: advance(%q) = %v/%q, want error %q", tt.line, tt.in, tk.tag, tk.err, tt.err)
		}
	}
}

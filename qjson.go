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

// Package qjson decodes qjson, a human-friendly superset of JSON, into
// strict JSON. A qjson document is the body of an implicit top-level
// object: zero or more comma-separated `identifier: value` members, with
// no enclosing braces required.
package qjson

import "fmt"

const version = "v0.1.0"
const syntaxVersion = "v0.0.0"

// Version reports the decoder's own version together with the qjson
// syntax version it implements.
func Version() string {
	return fmt.Sprintf("qjson: %s syntax: %s", version, syntaxVersion)
}

// Decode reads input as qjson and returns the equivalent strict JSON. The
// result is never empty: empty input decodes to "{}", and a decode failure is returned as a JSON-incompatible
// diagnostic string of the form "<message> at line L col C" (L and C
// 1-based) rather than as a Go error, matching qjson-c's qjson_decode,
// which never returns NULL or an empty string. Callers that need the
// structured form of a failure should use DecodeErr instead.
func Decode(input []byte) []byte {
	if len(input) == 0 {
		return []byte("{}")
	}
	e := newEngine(input)
	e.members()
	if e.tk.tag == tagCloseBrace {
		e.fail(e.tk.pos, errSyntaxError)
	}
	if e.tk.err == endOfInput {
		return e.out.Bytes()
	}
	return []byte(fmt.Sprintf("%s at line %d col %d", e.tk.err, e.tk.pos.line+1, e.tk.pos.column(input)+1))
}

// DecodeErr is Decode's structured counterpart: it returns the decoded
// JSON and a nil error on success, or a nil result and a *DecodeError on
// failure.
func DecodeErr(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return []byte("{}"), nil
	}
	e := newEngine(input)
	e.members()
	if e.tk.tag == tagCloseBrace {
		e.fail(e.tk.pos, errSyntaxError)
	}
	if e.tk.err == endOfInput {
		return e.out.Bytes(), nil
	}
	return nil, &DecodeError{Msg: e.tk.err, Line: e.tk.pos.line + 1, Col: e.tk.pos.column(input) + 1}
}

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

// position is a location in the input: a byte offset, the byte offset of
// the start of the current line, and a 0-based line index. Column numbers
// are never stored; they are computed on demand by column() since they are
// only needed for diagnostics.
type position struct {
	byteIndex int // offset of the current byte in the input
	lineStart int // offset of the first byte of the current line
	line      int // 0-based line index
}

// column returns the number of UTF-8 codepoints between p's line start and
// p's byte index, by re-scanning the line from its stored start. input is
// the full input the position was recorded against.
func (p position) column(input []byte) int {
	return countCodepoints(input[p.lineStart:p.byteIndex])
}

// countCodepoints counts valid UTF-8 codepoints in b using the same
// lead-byte table the tokenizer uses to measure characters, so that a
// diagnostic's column always agrees with how the lexer itself advanced.
func countCodepoints(b []byte) int {
	n := 0
	for len(b) > 0 {
		w := leadByteTable[b[0]].length
		if w == 0 {
			w = 1 // a control byte, skipped one at a time in comments and multilines
		}
		if w > len(b) {
			break
		}
		b = b[w:]
		n++
	}
	return n
}

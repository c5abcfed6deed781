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
	"testing"
	"time"
)

func TestParseISODateTimePrefix(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		want int
	}{
		{line(), "1970-01-01T", 11},
		{line(), "1970-01-01T00:00", 16},
		{line(), "1970-01-01T00:00Z", 17},
		{line(), "1970-01-01T00:00:00Z", 20},
		{line(), "1970-01-01T00:00:00.450Z", 24},
		{line(), "1970-01-01T00:00:00.450000Z", 27},
		{line(), "1970-01-01T00:00:00+01:00", 25},
		{line(), "1970-01-01", 0},
		{line(), "1970-01-01Txx:00", -1},
		{line(), "1970-01-01T00:00:00.45Z", -1}, // fraction must be 3 or 6 digits
	} {
		if got := parseISODateTimePrefix([]byte(tt.in)); got != tt.want {
			t.Errorf("%d: parseISODateTimePrefix(%q) = %d, want %d", tt.line, tt.in, got, tt.want)
		}
	}
}

func TestDecodeISODateTime(t *testing.T) {
	epoch := func(y, mo, d, h, mi, s int) float64 {
		return float64(time.Date(y, time.Month(mo), d, h, mi, s, 0, time.UTC).Unix())
	}
	for _, tt := range []struct {
		line int
		in   string
		want float64
	}{
		{line(), "1970-01-01T00:00:00Z", 0},
		{line(), "1970-01-01T", epoch(1970, 1, 1, 0, 0, 0)},
		{line(), "2020-06-15T12:30", epoch(2020, 6, 15, 12, 30, 0)},
		{line(), "2020-06-15T12:30:45Z", epoch(2020, 6, 15, 12, 30, 45)},
		{line(), "1997-07-16T19:20:30+01:00", epoch(1997, 7, 16, 19, 20, 30) - 3600},
		{line(), "1997-07-16T19:20:30-01:00", epoch(1997, 7, 16, 19, 20, 30) + 3600},
	} {
		got, ok := decodeISODateTime([]byte(tt.in))
		if !ok {
			t.Errorf("%d: decodeISODateTime(%q): unexpected failure", tt.line, tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("%d: decodeISODateTime(%q) = %v, want %v", tt.line, tt.in, got, tt.want)
		}
	}
}

func TestDecodeISODateTimeFraction(t *testing.T) {
	got, ok := decodeISODateTime([]byte("1970-01-01T00:00:00.450Z"))
	if !ok {
		t.Fatal("decodeISODateTime: unexpected failure")
	}
	want := 0.450
	if got != want {
		t.Errorf("decodeISODateTime fraction = %v, want %v", got, want)
	}
}

func TestMakeTimeRejectsOutOfRange(t *testing.T) {
	for _, tt := range []struct {
		line int
		dt   isoDateTime
	}{
		{line(), isoDateTime{y: 1969, m: 1, d: 1}},
		{line(), isoDateTime{y: 2020, m: 13, d: 1}},
		{line(), isoDateTime{y: 2020, m: 1, d: 32}},
		{line(), isoDateTime{y: 2020, m: 1, d: 1, h: 25}},
		{line(), isoDateTime{y: 2020, m: 1, d: 1, hourOff: 16}},
		{line(), isoDateTime{y: 2020, m: 1, d: 1, h: 24, min: 30}},
	} {
		if _, ok := makeTime(tt.dt); ok {
			t.Errorf("%d: makeTime(%+v): want failure, got success", tt.line, tt.dt)
		}
	}
}

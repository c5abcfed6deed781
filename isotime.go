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

import "time"

// This file implements the ISO 8601 / RFC 3339 date-time literal of spec
// §4.6 ("1997-07-16T19:20:30.45+01:00" and its shorter forms), evaluated
// to UTC seconds since the epoch. The grammar is fixed-width and
// hand-matched by byte position, deliberately not delegated to
// time.Parse, since the accepted layout (optional time of day, optional
// seconds, a 3-or-6-digit fraction after the seconds, a `Z` after the
// minutes, seconds or fraction, and a `+hh:mm`/`-hh:mm` offset after the
// seconds or fraction) doesn't correspond to any single time.Parse
// reference layout. An offset directly after the minutes is not accepted.

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

// parseISODateTimePrefix reports how many leading bytes of v form a valid
// ISO date-time literal: 0 if v does not start with one, -1 if it starts
// like one but is malformed, or the matched length otherwise. The date
// portion (`YYYY-MM-DDT`) is mandatory; everything after is progressively
// optional, each optional suffix only consulted if the byte that would
// introduce it is present.
func parseISODateTimePrefix(v []byte) int {
	if len(v) < 11 || v[10] != 'T' || v[4] != '-' || v[7] != '-' ||
		!isDigitByte(v[0]) || !isDigitByte(v[1]) || !isDigitByte(v[2]) || !isDigitByte(v[3]) ||
		!isDigitByte(v[5]) || !isDigitByte(v[6]) || !isDigitByte(v[8]) || !isDigitByte(v[9]) {
		return 0
	}
	n := 11
	v = v[11:]
	if len(v) == 0 {
		return n
	}
	// hours and minutes; seconds and everything past it is optional.
	if len(v) < 5 || v[2] != ':' || !isDigitByte(v[0]) || !isDigitByte(v[1]) ||
		!isDigitByte(v[3]) || !isDigitByte(v[4]) {
		return -1
	}
	n += 5
	v = v[5:]
	if len(v) == 0 {
		return n
	}
	if v[0] == 'Z' {
		return n + 1
	}
	if v[0] != ':' {
		return n
	}
	if len(v) < 3 || !isDigitByte(v[1]) || !isDigitByte(v[2]) {
		return -1
	}
	n += 3
	v = v[3:]
	if len(v) == 0 {
		return n
	}
	if v[0] == 'Z' {
		return n + 1
	}
	if v[0] != '.' && v[0] != '+' && v[0] != '-' {
		return n
	}
	if v[0] == '.' {
		n++
		v = v[1:]
		p := 0
		for p < len(v) && isDigitByte(v[p]) {
			p++
		}
		if p != 6 && p != 3 {
			return -1
		}
		n += p
		v = v[p:]
	}
	if len(v) == 0 {
		return n
	}
	if v[0] == 'Z' {
		return n + 1
	}
	if v[0] != '+' && v[0] != '-' {
		return n
	}
	n++
	v = v[1:]
	if len(v) < 5 || v[2] != ':' || !isDigitByte(v[0]) || !isDigitByte(v[1]) ||
		!isDigitByte(v[3]) || !isDigitByte(v[4]) {
		return -1
	}
	return n + 5
}

// isoDateTime holds the decoded fields of an ISO date-time literal, named
// and ranged as spec §4.6 describes them.
type isoDateTime struct {
	y, m, d    int
	h, min, s  int
	hourOff    int // [-15, 15]
	minOff     int // [0, 59]
	frac       float64
}

func digits2(v []byte) int { return int(v[0]-'0')*10 + int(v[1]-'0') }
func digits4(v []byte) int {
	return int(v[0]-'0')*1000 + int(v[1]-'0')*100 + int(v[2]-'0')*10 + int(v[3]-'0')
}
func digitsN(v []byte) int {
	n := 0
	for _, b := range v {
		n = n*10 + int(b-'0')
	}
	return n
}

// makeTime converts dt to UTC seconds since the epoch, applying range
// validation and the timezone offset exactly as spec §4.6 describes.
func makeTime(dt isoDateTime) (float64, bool) {
	if dt.y < 1970 || dt.m < 1 || dt.m > 12 || dt.d < 1 || dt.d > 31 ||
		dt.h < 0 || dt.h > 24 || dt.min < 0 || dt.min > 59 || dt.s < 0 || dt.s > 60 ||
		dt.hourOff < -15 || dt.hourOff > 15 || dt.minOff < 0 || dt.minOff > 59 ||
		(dt.h == 24 && (dt.min != 0 || dt.s != 0 || dt.frac != 0)) {
		return 0, false
	}
	tm := time.Date(dt.y, time.Month(dt.m), dt.d, dt.h, dt.min, dt.s, 0, time.UTC)
	v := float64(tm.Unix()) + dt.frac
	if dt.hourOff < 0 {
		v = v - float64(dt.hourOff)*3600 + float64(dt.minOff)*60
	} else {
		v = v - float64(dt.hourOff)*3600 - float64(dt.minOff)*60
	}
	return v, true
}

// decodeISODateTime parses v, already known (via parseISODateTimePrefix)
// to be a structurally valid ISO date-time literal of exactly len(v)
// bytes, and evaluates it to UTC seconds since the epoch.
func decodeISODateTime(v []byte) (float64, bool) {
	if len(v) > 255 || len(v) < 11 {
		return 0, false
	}
	var dt isoDateTime
	dt.y = digits4(v[0:4])
	dt.m = digits2(v[5:7])
	dt.d = digits2(v[8:10])
	v = v[11:]
	if len(v) == 0 {
		return makeTime(dt)
	}
	dt.h = digits2(v[0:2])
	dt.min = digits2(v[3:5])
	v = v[5:]
	if len(v) == 0 || v[0] == 'Z' {
		return makeTime(dt)
	}
	if v[0] != ':' {
		return makeTime(dt)
	}
	dt.s = digits2(v[1:3])
	v = v[3:]
	if len(v) == 0 || v[0] == 'Z' {
		return makeTime(dt)
	}
	if v[0] == '.' {
		v = v[1:]
		p := 0
		for p < len(v) && isDigitByte(v[p]) {
			p++
		}
		if p != 3 && p != 6 {
			return 0, false
		}
		if p == 6 {
			dt.frac = float64(digitsN(v[:6])) / 1000000
		} else {
			dt.frac = float64(digitsN(v[:3])) / 1000
		}
		v = v[p:]
	}
	if len(v) == 0 || v[0] == 'Z' {
		return makeTime(dt)
	}
	sign := 1
	if v[0] == '-' {
		sign = -1
	}
	v = v[1:]
	if len(v) < 5 {
		return 0, false
	}
	dt.hourOff = sign * digits2(v[0:2])
	dt.minOff = digits2(v[3:5])
	return makeTime(dt)
}

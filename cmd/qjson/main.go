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

// Program qjson decodes qjson input into strict JSON.
//
// Usage: qjson [--pretty] [FILE ...]
//
// Each FILE is decoded and written to standard output as JSON, one per
// line unless --pretty is given. If no FILE is given, standard input is
// read and decoded. A decode failure for a given input is reported to
// standard error, prefixed with the file name when more than one FILE was
// given, and causes a non-zero exit status.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pborman/getopt"

	"github.com/qjson-go/qjson"
)

var stop = os.Exit

func main() {
	var pretty bool
	var showVersion bool
	var help bool
	getopt.BoolVarLong(&pretty, "pretty", 'p', "indent the JSON output")
	getopt.BoolVarLong(&showVersion, "version", 'V', "display the decoder version")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("[FILE ...]")

	if err := getopt.Getopt(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(2)
		return
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		stop(0)
		return
	}

	if showVersion {
		fmt.Println(qjson.Version())
		stop(0)
		return
	}

	files := getopt.Args()
	if len(files) == 0 {
		data, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(2)
			return
		}
		stop(decodeOne("<STDIN>", data, pretty, false))
		return
	}

	prefixErrors := len(files) > 1
	status := 0
	for _, name := range files {
		data, err := ioutil.ReadFile(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 2
			continue
		}
		if c := decodeOne(name, data, pretty, prefixErrors); c > status {
			status = c
		}
	}
	stop(status)
}

// decodeOne decodes data and writes either the JSON result or a diagnostic
// to standard output/error, returning the exit status it implies.
func decodeOne(name string, data []byte, pretty, prefixErrors bool) int {
	out, err := qjson.DecodeErr(data)
	if err != nil {
		if prefixErrors {
			fmt.Fprintf(os.Stderr, "%s: %s\n", name, err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	if pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, out, "", "  "); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", name, err)
			return 1
		}
		out = buf.Bytes()
	}
	os.Stdout.Write(out)
	fmt.Println()
	return 0
}

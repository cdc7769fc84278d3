/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package monitor captures line-oriented output from an embedded device's
serial port and annotates every line with the host wall clock at the moment
of capture. Lines that carry the device's millisecond counter get the
paired "(<ms> <HH:MM:SS.ffffff>)" annotation the drift analyzer parses.
*/
package monitor

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// deviceMsPattern matches the bare millisecond counter embedded device
// logging prints, e.g. the "(12345)" in "I (12345) wifi: got ip".
var deviceMsPattern = regexp.MustCompile(`\((\d+)\)`)

// hostTimeFormat is a time of day with microsecond precision.
const hostTimeFormat = "15:04:05.000000"

// AnnotateLine stamps a received log line with the host capture time.
// A line carrying a device counter becomes
// "(<ms> <HH:MM:SS.ffffff>) <rest of line after the counter>"; any other
// line gets the bare host time prepended.
func AnnotateLine(line string, received time.Time) string {
	hostTime := received.Format(hostTimeFormat)
	if loc := deviceMsPattern.FindStringSubmatchIndex(line); loc != nil {
		ms := line[loc[2]:loc[3]]
		rest := strings.TrimLeft(line[loc[1]:], " ")
		return fmt.Sprintf("(%s %s) %s", ms, hostTime, rest)
	}
	return fmt.Sprintf("%s %s", hostTime, line)
}

// Annotate copies lines from r to w, annotating each with the time
// reported by now when the line completed. It returns when r is
// exhausted or fails.
func Annotate(r io.Reader, w io.Writer, now func() time.Time) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(w, AnnotateLine(scanner.Text(), now())); err != nil {
			return fmt.Errorf("writing annotated line: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading device output: %w", err)
	}
	return nil
}

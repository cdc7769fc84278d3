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
Package drift analyzes logs captured from embedded devices whose output
carries a monotonic millisecond counter, annotated at capture time with the
host wall clock. It computes per-interval divergence between the two clocks,
segments the stream on device counter resets, and reports variance and
standard deviation per segment.
*/
package drift

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// annotationPattern matches the timestamp annotation the serial monitor
// prepends to device output: "(<milliseconds> <HH:MM:SS.ffffff>)".
// The annotation may appear anywhere in the line, with arbitrary text
// before and after it.
var annotationPattern = regexp.MustCompile(`\((\d+) (\d+:\d+:\d+\.\d+)\)`)

// hostTimeLayout is a 24h time of day, no date component. The non-padded
// minute and second tokens accept one or two digits, matching what the
// annotation regex admits. Fractional seconds in the input are picked up
// by time.Parse without being named in the layout.
const hostTimeLayout = "15:4:5"

// Record is a single log line that carried both timestamps.
type Record struct {
	// DeviceMs is the device monotonic counter, milliseconds since boot.
	DeviceMs uint64
	// HostTime is the host wall-clock time of day when the line was
	// captured, microsecond precision, date-free.
	HostTime time.Time
}

// ParseLine searches line for a timestamp annotation. On a match it
// returns the device counter and host capture time. ok is false when the
// line carries no annotation; such lines are skipped, not an error.
// An annotation that matches the pattern but holds an invalid time or an
// out-of-range counter is reported as an error.
func ParseLine(line string) (Record, bool, error) {
	m := annotationPattern.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false, nil
	}
	deviceMs, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Record{}, false, fmt.Errorf("device counter %q: %w", m[1], err)
	}
	hostTime, err := time.Parse(hostTimeLayout, m[2])
	if err != nil {
		return Record{}, false, fmt.Errorf("host time %q: %w", m[2], err)
	}
	return Record{DeviceMs: deviceMs, HostTime: hostTime}, true, nil
}

// hostDeltaMicros returns t2 - t1 in microseconds as same-day wall-clock
// arithmetic. Negative means the host clock went backward between lines.
func hostDeltaMicros(t1, t2 time.Time) int64 {
	return t2.Sub(t1).Microseconds()
}

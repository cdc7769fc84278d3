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

package drift

import (
	"bufio"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// DefaultMinSamples is the retention gate: segments holding this many
// samples or fewer are discarded as statistically unreliable.
const DefaultMinSamples = 10

// Segment is a maximal run of drift samples accumulated between two
// consecutive device counter resets.
type Segment struct {
	// Samples holds per-interval divergence between host and device
	// clocks, in microseconds.
	Samples []float64
}

// State carries the fold over the record stream: the last timestamped
// record seen, the samples of the segment in progress, and the segments
// completed so far.
type State struct {
	Previous *Record
	Current  []float64
	Segments []Segment
}

// Analyzer scans annotated log lines and accumulates drift segments.
type Analyzer struct {
	cfg Config
	log log.FieldLogger
}

// NewAnalyzer creates an Analyzer with the given config. A MinSamples of
// zero means DefaultMinSamples; pass a negative value to keep every
// non-empty segment. A nil logger means the standard logrus logger.
func NewAnalyzer(cfg Config, logger log.FieldLogger) *Analyzer {
	if cfg.MinSamples == 0 {
		cfg.MinSamples = DefaultMinSamples
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Analyzer{cfg: cfg, log: logger}
}

// step advances the fold by one timestamped record. The first record only
// seeds Previous. A negative host delta discards the interval but still
// advances Previous so the scan does not stall. A negative device delta is
// a reset: the segment in progress is flushed if it passed the retention
// gate and cleared either way.
func (a *Analyzer) step(s State, r Record) State {
	if s.Previous == nil {
		s.Previous = &r
		return s
	}
	deviceDeltaMs := int64(r.DeviceMs) - int64(s.Previous.DeviceMs)
	hostDelta := hostDeltaMicros(s.Previous.HostTime, r.HostTime)
	if hostDelta < 0 {
		a.log.Warnf("negative host time difference %d µs, skipping interval", hostDelta)
		s.Previous = &r
		return s
	}
	a.log.Debugf("device=%dms host=%s prev device=%dms prev host=%s device diff=%dms host diff=%dµs",
		r.DeviceMs, r.HostTime.Format("15:04:05.000000"),
		s.Previous.DeviceMs, s.Previous.HostTime.Format("15:04:05.000000"),
		deviceDeltaMs, hostDelta)
	if deviceDeltaMs < 0 {
		if n := len(s.Current); n > 0 && n > a.cfg.MinSamples {
			s.Segments = append(s.Segments, Segment{Samples: s.Current})
		}
		a.log.Infof("device counter reset detected, starting new segment")
		s.Current = nil
	} else {
		s.Current = append(s.Current, float64(hostDelta)-float64(deviceDeltaMs)*1000.0)
	}
	s.Previous = &r
	return s
}

// Run folds the analyzer over line-oriented input and returns the
// completed segments. Lines without a timestamp annotation are skipped.
// The segment in progress at end of input is discarded unless FlushAtEOF
// is set, in which case it goes through the same retention gate a reset
// applies.
func (a *Analyzer) Run(r io.Reader) ([]Segment, error) {
	scanner := bufio.NewScanner(r)
	var s State
	for scanner.Scan() {
		rec, ok, err := ParseLine(scanner.Text())
		if err != nil {
			a.log.Warnf("skipping malformed annotation: %v", err)
			continue
		}
		if !ok {
			continue
		}
		s = a.step(s, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	if n := len(s.Current); a.cfg.FlushAtEOF && n > 0 && n > a.cfg.MinSamples {
		s.Segments = append(s.Segments, Segment{Samples: s.Current})
	}
	return s.Segments, nil
}

// AnalyzeFile runs the analyzer over the log file at path.
func (a *Analyzer) AnalyzeFile(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return a.Run(f)
}

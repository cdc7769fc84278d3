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
	"errors"

	"github.com/eclesh/welford"
)

// ErrTooFewSamples is returned when variance is requested for a segment
// with fewer than two samples. The retention gate makes this unreachable
// for segments produced by the analyzer.
var ErrTooFewSamples = errors.New("variance requires at least two samples")

// Stats summarizes one retained segment.
type Stats struct {
	Variance float64 // µs²
	Stddev   float64 // µs
	Count    int
}

// Stats computes sample variance and standard deviation over the
// segment's drift samples, using the unbiased (n-1) estimator.
func (s Segment) Stats() (Stats, error) {
	if len(s.Samples) < 2 {
		return Stats{}, ErrTooFewSamples
	}
	w := welford.New()
	for _, v := range s.Samples {
		w.Add(v)
	}
	return Stats{Variance: w.Variance(), Stddev: w.Stddev(), Count: len(s.Samples)}, nil
}

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
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegmentStats(t *testing.T) {
	seg := Segment{Samples: []float64{2, 4, 4, 4, 5, 5, 7, 9}}
	st, err := seg.Stats()
	require.NoError(t, err)
	require.Equal(t, 8, st.Count)
	// unbiased estimator: sum of squared deviations 32, over n-1=7
	require.InDelta(t, 32.0/7.0, st.Variance, 1e-9)
	require.InDelta(t, math.Sqrt(32.0/7.0), st.Stddev, 1e-9)
}

func TestSegmentStatsConstantSamples(t *testing.T) {
	seg := Segment{Samples: []float64{5000, 5000, 5000}}
	st, err := seg.Stats()
	require.NoError(t, err)
	require.InDelta(t, 0.0, st.Variance, 1e-9)
	require.InDelta(t, 0.0, st.Stddev, 1e-9)
}

func TestSegmentStatsTooFewSamples(t *testing.T) {
	_, err := Segment{}.Stats()
	require.ErrorIs(t, err, ErrTooFewSamples)

	_, err = Segment{Samples: []float64{1.0}}.Stats()
	require.ErrorIs(t, err, ErrTooFewSamples)
}

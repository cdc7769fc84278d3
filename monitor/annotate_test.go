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

package monitor

import (
	"strings"
	"testing"
	"time"

	"github.com/embedlog/driftcheck/drift"
	"github.com/stretchr/testify/require"
)

func capturedAt(t *testing.T, value string) time.Time {
	ts, err := time.Parse("15:04:05.000000", value)
	require.NoError(t, err)
	return ts
}

func TestAnnotateLine(t *testing.T) {
	received := capturedAt(t, "10:00:00.105000")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "device counter",
			in:   "I (12345) main: boot done",
			want: "(12345 10:00:00.105000) main: boot done",
		},
		{
			name: "counter only",
			in:   "(42)",
			want: "(42 10:00:00.105000) ",
		},
		{
			name: "no counter",
			in:   "panic: something broke",
			want: "10:00:00.105000 panic: something broke",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AnnotateLine(tt.in, received))
		})
	}
}

func TestAnnotateRoundTripsThroughParser(t *testing.T) {
	annotated := AnnotateLine("I (12345) wifi: got ip", capturedAt(t, "23:59:59.999999"))
	rec, ok, err := drift.ParseLine(annotated)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(12345), rec.DeviceMs)
	require.Equal(t, "23:59:59.999999", rec.HostTime.Format("15:04:05.000000"))
}

func TestAnnotate(t *testing.T) {
	in := strings.NewReader("I (100) boot\nplain line\nI (200) done\n")
	clock := capturedAt(t, "10:00:00.000000")
	now := func() time.Time {
		clock = clock.Add(50 * time.Millisecond)
		return clock
	}

	var out strings.Builder
	require.NoError(t, Annotate(in, &out, now))
	require.Equal(t, strings.Join([]string{
		"(100 10:00:00.050000) boot",
		"10:00:00.100000 plain line",
		"(200 10:00:00.150000) done",
		"",
	}, "\n"), out.String())
}

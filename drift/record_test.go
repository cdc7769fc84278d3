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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		deviceMs uint64
		hostTime string
		ok       bool
		wantErr  bool
	}{
		{
			name:     "plain annotation",
			in:       "(1000 10:00:00.000000) A",
			deviceMs: 1000,
			hostTime: "10:00:00.000000",
			ok:       true,
		},
		{
			name:     "annotation embedded mid line",
			in:       "I boot (12345 23:59:59.999999) main: started",
			deviceMs: 12345,
			hostTime: "23:59:59.999999",
			ok:       true,
		},
		{
			name:     "short fractional seconds",
			in:       "(42 1:2:3.5)",
			deviceMs: 42,
			hostTime: "01:02:03.5",
			ok:       true,
		},
		{
			name: "no annotation",
			in:   "W wifi: disconnected",
		},
		{
			name: "counter alone is not an annotation",
			in:   "I (555) wifi: got ip",
		},
		{
			name:    "host time out of range",
			in:      "(1000 26:00:00.000000) A",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok, err := ParseLine(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			require.Equal(t, tt.deviceMs, rec.DeviceMs)
			want, err := time.Parse("15:04:05", tt.hostTime)
			require.NoError(t, err)
			require.True(t, rec.HostTime.Equal(want))
		})
	}
}

func TestHostDeltaMicros(t *testing.T) {
	t1, err := time.Parse("15:04:05", "10:00:00.000000")
	require.NoError(t, err)
	t2, err := time.Parse("15:04:05", "10:00:00.105000")
	require.NoError(t, err)
	require.Equal(t, int64(105000), hostDeltaMicros(t1, t2))
	require.Equal(t, int64(-105000), hostDeltaMicros(t2, t1))
}

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
	"os"

	"gopkg.in/yaml.v2"
)

// Config specifies analyzer run options
type Config struct {
	// MinSamples is the retention gate: a segment must hold more than
	// this many samples at reset time to be kept. Zero means
	// DefaultMinSamples; a negative value keeps every non-empty segment.
	MinSamples int
	// FlushAtEOF treats end of input like a reset for the segment in
	// progress. Off by default: only resets flush segments.
	FlushAtEOF bool
}

// ReadConfig reads config from the file
func ReadConfig(path string) (*Config, error) {
	c := &Config{MinSamples: DefaultMinSamples}
	cData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(cData, &c)
	if err != nil {
		return nil, err
	}

	return c, nil
}

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

package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/embedlog/driftcheck/drift"
)

var (
	analyzeInputFlag      string
	analyzeConfigFlag     string
	analyzeMinSamplesFlag int
	analyzeFlushFlag      bool
)

var warnString = color.YellowString("[WARN]")

func init() {
	RootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeInputFlag, "input", "i", "", "path to the annotated log file")
	analyzeCmd.Flags().StringVarP(&analyzeConfigFlag, "config", "c", "", "path to yaml config file, flags take precedence")
	analyzeCmd.Flags().IntVarP(&analyzeMinSamplesFlag, "min-samples", "m", drift.DefaultMinSamples, "discard segments holding this many samples or fewer")
	analyzeCmd.Flags().BoolVar(&analyzeFlushFlag, "flush-at-eof", false, "treat end of file as a reset for the segment in progress")
	if err := analyzeCmd.MarkFlagRequired("input"); err != nil {
		log.Fatal(err)
	}
}

// analyzeConfig merges the optional yaml config with flag overrides.
func analyzeConfig(c *cobra.Command) (drift.Config, error) {
	cfg := drift.Config{MinSamples: analyzeMinSamplesFlag, FlushAtEOF: analyzeFlushFlag}
	if analyzeConfigFlag == "" {
		return cfg, nil
	}
	fromFile, err := drift.ReadConfig(analyzeConfigFlag)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	cfg = *fromFile
	if c.Flags().Changed("min-samples") {
		cfg.MinSamples = analyzeMinSamplesFlag
	}
	if c.Flags().Changed("flush-at-eof") {
		cfg.FlushAtEOF = analyzeFlushFlag
	}
	return cfg, nil
}

func printReport(w io.Writer, segments []drift.Segment) error {
	if len(segments) == 0 {
		fmt.Fprintln(w, warnString, "no segments retained, nothing to report")
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header("segment", "variance (µs²)", "stddev (µs)", "samples")
	for i, segment := range segments {
		stats, err := segment.Stats()
		if err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		err = table.Append([]string{
			strconv.Itoa(i),
			fmt.Sprintf("%.2f", stats.Variance),
			fmt.Sprintf("%.2f", stats.Stddev),
			strconv.Itoa(stats.Count),
		})
		if err != nil {
			return fmt.Errorf("appending segment %d: %w", i, err)
		}
	}
	return table.Render()
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze clock drift between device and host timestamps in a captured log",
	Run: func(cmd *cobra.Command, args []string) {
		ConfigureVerbosity()

		cfg, err := analyzeConfig(cmd)
		if err != nil {
			log.Fatal(err)
		}
		analyzer := drift.NewAnalyzer(cfg, log.StandardLogger())
		segments, err := analyzer.AnalyzeFile(analyzeInputFlag)
		if err != nil {
			log.Fatal(err)
		}
		if err := printReport(cmd.OutOrStdout(), segments); err != nil {
			log.Fatal(err)
		}
	},
}

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
	"io"
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/embedlog/driftcheck/monitor"
)

var (
	monitorDeviceFlag string
	monitorBaudFlag   int
	monitorLogFlag    string
)

var infoString = color.GreenString("[INFO]")

func init() {
	RootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().StringVarP(&monitorDeviceFlag, "device", "d", "/dev/ttyUSB0", "serial port device")
	monitorCmd.Flags().IntVarP(&monitorBaudFlag, "baud", "b", monitor.DefaultBaudRate, "serial port baud rate")
	monitorCmd.Flags().StringVarP(&monitorLogFlag, "logfile", "l", "", "also write annotated lines to this file")
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Capture device serial output, annotating lines with host capture times",
	Run: func(cmd *cobra.Command, args []string) {
		ConfigureVerbosity()

		var out io.Writer = os.Stdout
		if monitorLogFlag != "" {
			f, err := os.OpenFile(monitorLogFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}

		m, err := monitor.Open(monitorDeviceFlag, monitorBaudFlag, out)
		if err != nil {
			log.Fatal(err)
		}
		defer m.Close()

		if term.IsTerminal(int(os.Stdout.Fd())) {
			os.Stdout.WriteString(infoString + " monitoring " + monitorDeviceFlag + ", Ctrl-C to stop\n")
		}
		if err := m.Run(); err != nil {
			log.Fatal(err)
		}
	},
}

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
	"io"
	"time"

	"go.bug.st/serial"
)

// DefaultBaudRate matches the default console baud rate of the devices
// this tool monitors.
const DefaultBaudRate = 115200

// Monitor reads device output from a serial port and writes annotated
// lines to out.
type Monitor struct {
	device string
	port   serial.Port
	out    io.Writer
}

// Open opens the serial port device at the given baud rate.
func Open(device string, baudRate int, out io.Writer) (*Monitor, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, err
	}

	return &Monitor{device: device, port: port, out: out}, nil
}

// Close is to close serial port
func (m *Monitor) Close() {
	m.port.Close()
}

// Run annotates device output until the port read fails. It does not
// return under normal operation; closing the port unblocks it.
func (m *Monitor) Run() error {
	return Annotate(m.port, m.out, time.Now)
}

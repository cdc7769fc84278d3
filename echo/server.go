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
Package echo implements the throwaway line server used to exercise the
remote debug client during development. It accepts connections, reads
line-delimited text tolerant of CRLF, LF and bare CR terminators, and
answers each line: the greeting gets a greeting back, anything else gets
a correction. No framing, no reconnect policy, no persistence.
*/
package echo

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

const (
	greeting      = "hheelllloo"
	greetingReply = "Hi there!"
	promptReply   = "Please say hello"
)

// Server accepts debug clients and validates the lines they send.
type Server struct {
	log log.FieldLogger

	mu      sync.Mutex
	clients map[net.Conn]struct{}
}

// NewServer creates a Server. A nil logger means the standard logrus
// logger.
func NewServer(logger log.FieldLogger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Server{log: logger, clients: map[net.Conn]struct{}{}}
}

// Serve accepts connections on l until it is closed, handling each client
// in its own goroutine. The accept error is returned when the listener
// goes away.
func (s *Server) Serve(l net.Listener) error {
	for {
		conn, err := l.Accept()
		if err != nil {
			return fmt.Errorf("accepting connection: %w", err)
		}
		go s.Handle(conn)
	}
}

// ClientCount reports how many clients are currently connected.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) join(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[conn] = struct{}{}
}

func (s *Server) leave(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, conn)
}

// Handle runs the line loop for one client until it disconnects.
func (s *Server) Handle(conn net.Conn) {
	s.log.Infof("new connection from %s", conn.RemoteAddr())
	s.join(conn)
	defer func() {
		s.leave(conn)
		conn.Close()
		s.log.Infof("connection closed with %s", conn.RemoteAddr())
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Split(scanLines)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		s.log.Debugf("received line from %s: %q", conn.RemoteAddr(), line)
		reply := promptReply
		if strings.EqualFold(line, greeting) {
			reply = greetingReply
		}
		if _, err := fmt.Fprintf(conn, "%s\n", reply); err != nil {
			s.log.Errorf("writing to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
	if err := scanner.Err(); err != nil {
		s.log.Errorf("reading from %s: %v", conn.RemoteAddr(), err)
	}
}

// scanLines is a bufio split function accepting the terminators the debug
// client may use: CRLF, bare LF or bare CR.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	for i, b := range data {
		switch b {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			// need one more byte to tell CR from CRLF
			return 0, nil, nil
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

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
	"net"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/embedlog/driftcheck/echo"
)

var echoAddrFlag string

func init() {
	RootCmd.AddCommand(echoServerCmd)
	echoServerCmd.Flags().StringVarP(&echoAddrFlag, "addr", "a", "127.0.0.1:8080", "address to listen on")
}

var echoServerCmd = &cobra.Command{
	Use:   "echoserver",
	Short: "Run the line echo server used to test the remote debug client",
	Run: func(cmd *cobra.Command, args []string) {
		ConfigureVerbosity()

		l, err := net.Listen("tcp", echoAddrFlag)
		if err != nil {
			log.Fatal(err)
		}
		log.Infof("listening on %s", l.Addr())
		s := echo.NewServer(log.StandardLogger())
		log.Fatal(s.Serve(l))
	},
}

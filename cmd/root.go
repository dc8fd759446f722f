// Copyright 2024 The volsched Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/containerd/containerd/log"
	"github.com/spf13/cobra"

	"github.com/volsched/volsched/pkg/api"
)

// configPath is the path of the config file, excluding the file extension.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "volsched",
	Short: "volsched filters candidate storage backends for volume and instance placement.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		conf, err := initConfig(configPath)
		if err != nil {
			log.L.WithError(err).Fatal("Error reading config")
		}

		pipeline, err := buildPipeline(conf)
		if err != nil {
			log.L.WithError(err).Fatal("Error building filter chain")
		}

		server := api.NewServer(conf.Port, pipeline)

		// SIGINT and SIGTERM shut the server down.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sig
			cancel()
		}()

		go func() {
			<-ctx.Done()

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				log.L.WithError(err).Error("Error shutting down server")
			}
		}()

		log.L.Infof("Serving filter decisions on :%d", conf.Port)
		if err := server.Serve(); err != nil {
			log.L.WithError(err).Fatal("Error serving")
		}
	},
}

// Execute executes the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.L.WithError(err).Fatal("Error executing root command")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/volsched", "config file (excluding file extension)")
}

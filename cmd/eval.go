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
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/containerd/containerd/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/volsched/volsched/pkg/backend"
	"github.com/volsched/volsched/pkg/request"
)

var requestPath string

// evalDoc is the YAML document the eval subcommand reads.
type evalDoc struct {
	Request struct {
		ID      string            `yaml:"id"`
		Rebuild bool              `yaml:"rebuild"`
		Hints   map[string]string `yaml:"hints"`
		User    string            `yaml:"user"`
		Project string            `yaml:"project"`
	} `yaml:"request"`
	Candidates []string `yaml:"candidates"`
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVar(&requestPath, "request", "", "YAML file describing the request and its candidate backends")
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate one placement request from a YAML file and print the decision per candidate",
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := initConfig(configPath)
		if err != nil {
			log.L.WithError(err).Fatal("Error reading config")
		}

		pipeline, err := buildPipeline(conf)
		if err != nil {
			log.L.WithError(err).Fatal("Error building filter chain")
		}

		data, err := ioutil.ReadFile(requestPath)
		if err != nil {
			log.L.WithError(err).Fatal("Error reading request file")
		}

		var doc evalDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			log.L.WithError(err).Fatal("Error parsing request file")
		}

		spec := request.Spec{
			ID:             doc.Request.ID,
			Rebuild:        doc.Request.Rebuild,
			SchedulerHints: doc.Request.Hints,
			Context: request.Context{
				UserID:    doc.Request.User,
				ProjectID: doc.Request.Project,
			},
		}
		if spec.ID == "" {
			spec.ID = uuid.New().String()
		}

		states := make([]*backend.State, 0, len(doc.Candidates))
		for _, backendID := range doc.Candidates {
			states = append(states, &backend.State{BackendID: backendID})
		}

		passed, failed := pipeline.Filter(context.Background(), &spec, states)

		for _, state := range passed {
			fmt.Printf("PASS %s\n", state.BackendID)
		}
		for backendID, names := range failed {
			fmt.Printf("FAIL %s (%s)\n", backendID, strings.Join(names, ", "))
		}
	},
}

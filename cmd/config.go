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

	"github.com/containerd/containerd/log"
	"github.com/cpuguy83/strongerrors"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/volsched/volsched/pkg/config"
	l "github.com/volsched/volsched/pkg/log"
	"github.com/volsched/volsched/pkg/scheduler"
)

func initConfig(path string) (*config.Config, error) {
	viper.SetConfigName(path)
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	log.G(context.TODO()).Debugf("Using config file %s", viper.ConfigFileUsed())

	conf := config.Config{
		LogLevel: "info",
		Port:     8480,
		Filters:  []string{"TargetHostFilter"},
		Volume:   config.VolumeConfig{Timeout: 10},
	}

	if err := viper.Unmarshal(&conf); err != nil {
		return nil, err
	}

	level, err := l.ParseLevel(conf.LogLevel)
	if err != nil {
		return nil, strongerrors.InvalidArgument(errors.Errorf("log level %q not supported", conf.LogLevel))
	}
	logrus.SetLevel(level)

	log.L.Debugf("Config: %+v", conf)

	return &conf, nil
}

func buildPipeline(conf *config.Config) (*scheduler.Pipeline, error) {
	volumes := config.BuildVolumeGetter(conf.Volume)

	filters, err := config.BuildFilters(conf.Filters, volumes)
	if err != nil {
		return nil, err
	}

	pipeline := scheduler.NewPipeline()
	for _, f := range filters {
		pipeline.AddFilter(f)
		log.L.Infof("Filter %q enabled", f.Name())
	}

	return pipeline, nil
}

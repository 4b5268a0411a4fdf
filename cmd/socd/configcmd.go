// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/go-arcade/socd/internal/engine/config"
	"github.com/go-arcade/socd/pkg/conf"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration file with environment overrides applied and secrets masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		appConf, err := config.LoadConfigFile(configFile)
		if err != nil {
			return err
		}
		return conf.Dump(cmd.OutOrStdout(), appConf.Viper())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

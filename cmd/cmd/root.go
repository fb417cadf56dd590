/*
Copyright © 2025 Your Name

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
	"os"

	"contentforge/internal/config"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contentforge",
	Short: "ContentForge generates researched, edited, SEO-optimized content.",
	Long: `ContentForge is a CLI tool that turns a topic into a finished piece
of content through a sequential pipeline: planning, research, writing,
editing, and SEO optimization. Each stage builds on the previous one
and the final report tracks quality scores across all of them.

Examples:
  contentforge create "Artificial Intelligence in Healthcare"
  contentforge create "Remote Work" --tone Casual --word-count 800
  contentforge create "Kubernetes" --keywords "k8s,containers" --provider duckduckgo`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.contentforge.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if _, err := config.Load(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

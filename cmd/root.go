/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/tsbrowse/internal/iofs"
	"github.com/gnames/tsbrowse/internal/iologger"
	tsbrowse "github.com/gnames/tsbrowse/pkg"
	"github.com/gnames/tsbrowse/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command with all subcommands attached.
// Every call creates a new tree, so tests can run commands independently.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf(
			"version: %s\nbuild:   %s", tsbrowse.Version, tsbrowse.Build,
		),
		Use:   "tsbrowse",
		Short: "Browse and compare curriculum standards tagged with transferable skills",
		Long: `tsbrowse works with a static dataset of curriculum standards. Every
standard belongs to a subject, a domain and a grade band (H1, H2, H3) and
is tagged with transferable skills (TS1, TS1.1, ...).

Features:
  - Search: filter standards by subjects, grade bands, domains, skills
    and keywords, or by a shared link query.
  - Compare: put up to 3 subjects at one grade band, or up to 3 grade
    bands of one subject, side by side.
  - Indexes: build lookup indexes from subject documents.
  - Collections: keep favorite standards, export and import them.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (TSBROWSE_*)
  3. Config file (~/.config/tsbrowse/config.yaml)
  4. Built-in defaults

Examples:
  TSBROWSE_DATA_SOURCE=https://example.org/data tsbrowse search -s math
  TSBROWSE_LOG_DESTINATION=stderr tsbrowse stats`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "tsbrowse version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for tsbrowse")

	rootCmd.AddCommand(
		getBuildIndexesCmd(),
		getSearchCmd(),
		getCompareCmd(),
		getShowCmd(),
		getSkillsCmd(),
		getStatsCmd(),
		getCollectionsCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"data_source", cfg.Data.Source,
	)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("TSBROWSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Data configuration
	v.BindEnv("data.source", "TSBROWSE_DATA_SOURCE")

	// Share configuration
	v.BindEnv("share.origin", "TSBROWSE_SHARE_ORIGIN")
	v.BindEnv("share.base_path", "TSBROWSE_SHARE_BASE_PATH")

	// Log configuration
	v.BindEnv("log.level", "TSBROWSE_LOG_LEVEL")
	v.BindEnv("log.format", "TSBROWSE_LOG_FORMAT")
	v.BindEnv("log.destination", "TSBROWSE_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "TSBROWSE_JOBS_NUMBER")

	v.AutomaticEnv()
}

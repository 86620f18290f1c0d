/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */


// Package cmd holds the command tree of the templatizer CLI.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/asgardeo/templatizer/internal/ledger"
	"github.com/asgardeo/templatizer/internal/system/config"
	"github.com/asgardeo/templatizer/internal/system/database/provider"
	"github.com/asgardeo/templatizer/internal/system/log"
	"github.com/asgardeo/templatizer/internal/system/metrics"
	"github.com/asgardeo/templatizer/internal/workspace/rest"
)

// defaultConfigPath is resolved against the home directory.
const defaultConfigPath = "repository/conf/deployment.yaml"

type rootFlags struct {
	home       string
	configFile string
	scheme     string
	hostname   string
	port       int
	username   string
	password   string
	verbose    bool
}

// env is the state shared by every sub command once the root command has run.
type env struct {
	home   string
	cfg    *config.Config
	logger *zap.Logger
}

// GetRootCmd returns the root of the cobra command tree.
func GetRootCmd(args []string) *cobra.Command {
	flags := &rootFlags{}
	e := &env{}

	rootCmd := &cobra.Command{
		Use:           "templatizer",
		Short:         "Capture a dataflow workspace into templates and rebuild it from them.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init(cmd, flags)
		},
	}
	rootCmd.SetArgs(args)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.home, "home", "", "Templatizer home directory (defaults to the working directory)")
	pf.StringVar(&flags.configFile, "config", "", "Configuration file (defaults to <home>/"+defaultConfigPath+")")
	pf.StringVar(&flags.scheme, "scheme", "", "Workspace URL scheme")
	pf.StringVar(&flags.hostname, "hostname", "", "Workspace host name")
	pf.IntVar(&flags.port, "port", 0, "Workspace port")
	pf.StringVar(&flags.username, "username", "", "Workspace user")
	pf.StringVar(&flags.password, "password", "", "Workspace password")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(importCmd(e))
	rootCmd.AddCommand(exportCmd(e))
	rootCmd.AddCommand(runCmd(e))
	return rootCmd
}

func (e *env) init(cmd *cobra.Command, flags *rootFlags) error {
	if flags.verbose {
		if err := log.SetLevel("debug"); err != nil {
			return err
		}
	}
	e.logger = log.GetLogger().With(zap.String(log.LoggerKeyComponentName, "CLI"))

	home := flags.home
	if home == "" {
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current working directory: %w", err)
		}
		home = dir
	}
	e.home = home

	cfg, err := loadConfig(home, flags.configFile)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("scheme") {
		cfg.Workspace.Scheme = flags.scheme
	}
	if f.Changed("hostname") {
		cfg.Workspace.Hostname = flags.hostname
	}
	if f.Changed("port") {
		cfg.Workspace.Port = flags.port
	}
	if f.Changed("username") {
		cfg.Workspace.Username = flags.username
	}
	if f.Changed("password") {
		cfg.Workspace.Password = flags.password
	}
	e.cfg = cfg

	return config.InitializeRuntime(home, cfg)
}

// loadConfig reads the configuration file. A missing default file falls back to the built in defaults.
func loadConfig(home, configFile string) (*config.Config, error) {
	explicit := configFile != ""
	if !explicit {
		configFile = filepath.Join(home, defaultConfigPath)
	}
	cfg, err := config.LoadConfig(configFile)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return config.DefaultConfig(), nil
	}
	return nil, fmt.Errorf("failed to load configuration %s: %w", configFile, err)
}

func (e *env) client() *rest.Client {
	return rest.NewClientFromConfig(e.cfg.Workspace)
}

// newMetrics returns run metrics registered on a fresh registry.
func newMetrics() (*metrics.RunMetrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return metrics.NewRunMetrics(reg), reg
}

// writeMetrics dumps the run metrics when a textfile path is configured. Failures are only logged.
func (e *env) writeMetrics(reg *prometheus.Registry) {
	path := e.cfg.Metrics.TextfilePath
	if path == "" {
		return
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.home, path)
	}
	if err := metrics.WriteTextfile(path, reg); err != nil {
		e.logger.Warn("Failed to write metrics textfile", zap.String("path", path), zap.Error(err))
	}
}

// openLedger returns nil when no ledger data source is configured.
func (e *env) openLedger() (ledger.LedgerStoreInterface, func(), error) {
	if e.cfg.Database.Ledger.Type == "" {
		e.logger.Debug("Run ledger is disabled")
		return nil, func() {}, nil
	}
	dbProvider := provider.GetDBProvider()
	closeFn := func() {
		if err := dbProvider.Close(); err != nil {
			e.logger.Error("Failed to close the ledger database", zap.Error(err))
		}
	}
	store := ledger.NewLedgerStore(dbProvider)
	if err := store.Init(); err != nil {
		closeFn()
		return nil, func() {}, fmt.Errorf("failed to initialise the run ledger: %w", err)
	}
	return store, closeFn, nil
}

// directoryArg returns the first argument or the fallback.
func directoryArg(args []string, fallback string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return fallback
}

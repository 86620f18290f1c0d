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

// Package config provides structures and functions for loading and managing templatizer configurations.
package config

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"github.com/asgardeo/templatizer/internal/system/constants"
	"github.com/asgardeo/templatizer/internal/system/log"
)

// WorkspaceConfig holds the connection details of the target workspace.
type WorkspaceConfig struct {
	Scheme            string  `yaml:"scheme"`
	Hostname          string  `yaml:"hostname"`
	Port              int     `yaml:"port"`
	BasePath          string  `yaml:"base_path"`
	RootAlias         string  `yaml:"root_alias"`
	Username          string  `yaml:"username"`
	Password          string  `yaml:"password"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// RetryConfig holds a bounded exponential backoff policy.
type RetryConfig struct {
	MaxAttempts       int `yaml:"max_attempts"`
	InitialIntervalMs int `yaml:"initial_interval_ms"`
	MaxIntervalMs     int `yaml:"max_interval_ms"`
}

// ImportConfig holds the reconstruction settings.
type ImportConfig struct {
	Directory           string      `yaml:"directory"`
	AutoTerminate       bool        `yaml:"auto_terminate"`
	Validate            bool        `yaml:"validate"`
	RemotePortDiscovery RetryConfig `yaml:"remote_port_discovery"`
}

// ExportConfig holds the capture settings.
type ExportConfig struct {
	Directory string `yaml:"directory"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Ledger DataSource `yaml:"ledger"`
}

// MetricsConfig holds the metrics export settings.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path"`
}

// Config holds the complete configuration details of the templatizer.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Import    ImportConfig    `yaml:"import"`
	Export    ExportConfig    `yaml:"export"`
	Database  DatabaseConfig  `yaml:"database"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", zap.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset value with its default.
func (c *Config) ApplyDefaults() {
	if c.Workspace.Scheme == "" {
		c.Workspace.Scheme = "http"
	}
	if c.Workspace.Hostname == "" {
		c.Workspace.Hostname = "localhost"
	}
	if c.Workspace.Port == 0 {
		c.Workspace.Port = 8080
	}
	if c.Workspace.BasePath == "" {
		c.Workspace.BasePath = "/nifi-api"
	}
	if c.Workspace.RootAlias == "" {
		c.Workspace.RootAlias = constants.RootScopeAlias
	}
	if c.Workspace.TimeoutSeconds == 0 {
		c.Workspace.TimeoutSeconds = 30
	}
	if c.Workspace.Burst == 0 {
		c.Workspace.Burst = 1
	}

	if c.Import.Directory == "" {
		c.Import.Directory = "templates"
	}
	if c.Import.RemotePortDiscovery.MaxAttempts == 0 {
		c.Import.RemotePortDiscovery.MaxAttempts = 10
	}
	if c.Import.RemotePortDiscovery.InitialIntervalMs == 0 {
		c.Import.RemotePortDiscovery.InitialIntervalMs = 500
	}
	if c.Import.RemotePortDiscovery.MaxIntervalMs == 0 {
		c.Import.RemotePortDiscovery.MaxIntervalMs = 10000
	}

	if c.Export.Directory == "" {
		c.Export.Directory = "templates"
	}

	if c.Database.Ledger.MaxOpenConns == 0 {
		c.Database.Ledger.MaxOpenConns = 5
	}
	if c.Database.Ledger.MaxIdleConns == 0 {
		c.Database.Ledger.MaxIdleConns = 2
	}
	if c.Database.Ledger.ConnMaxLifetime == 0 {
		c.Database.Ledger.ConnMaxLifetime = 3600
	}
}

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

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testResourceDir = "../../../tests/resources"

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) getFilePath(filename string) string {
	return filepath.Join(testResourceDir, filename)
}

func (suite *ConfigTestSuite) TestLoadConfigValid() {
	config, err := LoadConfig(suite.getFilePath("deployment.yaml"))

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), config)

	assert.Equal(suite.T(), "https", config.Workspace.Scheme)
	assert.Equal(suite.T(), "nifi.example.com", config.Workspace.Hostname)
	assert.Equal(suite.T(), 8443, config.Workspace.Port)
	assert.Equal(suite.T(), "/nifi-api", config.Workspace.BasePath)
	assert.Equal(suite.T(), 60, config.Workspace.TimeoutSeconds)
	assert.Equal(suite.T(), 20.0, config.Workspace.RequestsPerSecond)

	assert.Equal(suite.T(), "flows/", config.Import.Directory)
	assert.True(suite.T(), config.Import.AutoTerminate)
	assert.True(suite.T(), config.Import.Validate)
	assert.Equal(suite.T(), 4, config.Import.RemotePortDiscovery.MaxAttempts)
	assert.Equal(suite.T(), 100, config.Import.RemotePortDiscovery.InitialIntervalMs)

	assert.Equal(suite.T(), "exported/", config.Export.Directory)

	assert.Equal(suite.T(), "sqlite", config.Database.Ledger.Type)
	assert.Equal(suite.T(), "repository/database/ledger.db", config.Database.Ledger.Path)
	assert.Equal(suite.T(), 5, config.Database.Ledger.MaxOpenConns)

	assert.Equal(suite.T(), "/var/lib/node_exporter/templatizer.prom", config.Metrics.TextfilePath)
}

func (suite *ConfigTestSuite) TestLoadConfigFileNotFound() {
	config, err := LoadConfig(suite.getFilePath("non_existent_config.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
	assert.Contains(suite.T(), err.Error(), "no such file or directory")
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	config, err := LoadConfig(suite.getFilePath("invalid_deployment.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
}

func (suite *ConfigTestSuite) TestDefaultConfig() {
	config := DefaultConfig()

	assert.Equal(suite.T(), "http", config.Workspace.Scheme)
	assert.Equal(suite.T(), "localhost", config.Workspace.Hostname)
	assert.Equal(suite.T(), 8080, config.Workspace.Port)
	assert.Equal(suite.T(), "root", config.Workspace.RootAlias)
	assert.Equal(suite.T(), 10, config.Import.RemotePortDiscovery.MaxAttempts)
	assert.Equal(suite.T(), "templates", config.Import.Directory)
	assert.Equal(suite.T(), "templates", config.Export.Directory)
	assert.False(suite.T(), config.Import.AutoTerminate)
	assert.Empty(suite.T(), config.Database.Ledger.Type)
}

func (suite *ConfigTestSuite) TestRuntimeLifecycle() {
	ResetRuntime()
	defer ResetRuntime()

	assert.Panics(suite.T(), func() { GetRuntime() })

	assert.NoError(suite.T(), InitializeRuntime("/opt/templatizer", DefaultConfig()))
	assert.Equal(suite.T(), "/opt/templatizer", GetRuntime().Home)

	other := DefaultConfig()
	other.Workspace.Hostname = "ignored"
	assert.NoError(suite.T(), InitializeRuntime("/elsewhere", other))
	assert.Equal(suite.T(), "/opt/templatizer", GetRuntime().Home)
	assert.Equal(suite.T(), "localhost", GetRuntime().Config.Workspace.Hostname)
}

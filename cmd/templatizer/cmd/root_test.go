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


package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/templatizer/internal/system/config"
	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/template/store"
)

type CLITestSuite struct {
	suite.Suite
	server *httptest.Server
	home   string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (suite *CLITestSuite) SetupTest() {
	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/nifi-api/process-groups/root":
			_, _ = w.Write([]byte(`{"id":"pg-1","component":{"id":"pg-1","name":"NiFi Flow"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/nifi-api/process-groups/pg-1/funnels":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"f-new","component":{"id":"f-new","parentGroupId":"pg-1"}}`))
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{}`))
		default:
			http.Error(w, "unexpected request", http.StatusBadRequest)
		}
	}))

	endpoint, err := url.Parse(suite.server.URL)
	require.NoError(suite.T(), err)
	suite.home = suite.T().TempDir()
	conf := "workspace:\n" +
		"  hostname: " + endpoint.Hostname() + "\n" +
		"  port: " + endpoint.Port() + "\n" +
		"database:\n" +
		"  ledger:\n" +
		"    type: sqlite\n" +
		"    path: ledger.db\n" +
		"metrics:\n" +
		"  textfile_path: metrics.prom\n"
	confDir := filepath.Join(suite.home, "repository", "conf")
	require.NoError(suite.T(), os.MkdirAll(confDir, 0o750))
	require.NoError(suite.T(), os.WriteFile(filepath.Join(confDir, "deployment.yaml"), []byte(conf), 0o600))
}

func (suite *CLITestSuite) TearDownTest() {
	suite.server.Close()
	config.ResetRuntime()
}

func (suite *CLITestSuite) execute(args ...string) (string, error) {
	config.ResetRuntime()
	var out bytes.Buffer
	cmd := GetRootCmd(append([]string{"--home", suite.home}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func (suite *CLITestSuite) TestExportWritesTemplatesAndMetrics() {
	dir := filepath.Join(suite.home, "out")

	out, err := suite.execute("export", dir)

	require.NoError(suite.T(), err, out)
	assert.Contains(suite.T(), out, "1 templates with 0 elements")
	assert.FileExists(suite.T(), filepath.Join(dir, "root.yaml"))

	prom, err := os.ReadFile(filepath.Join(suite.home, "metrics.prom"))
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), string(prom), "templatizer_templates_captured_total 1")
}

func (suite *CLITestSuite) TestImportIsRecordedAndShown() {
	dir := filepath.Join(suite.home, "templates")
	require.NoError(suite.T(), store.Write(dir, []*model.Template{{
		Name:       "root",
		Components: []model.Element{{Type: "FUNNEL", ID: "f-old", Position: "10,20"}},
	}}))

	out, err := suite.execute("import", dir)
	require.NoError(suite.T(), err, out)
	require.True(suite.T(), strings.HasPrefix(out, "run "), out)
	assert.Contains(suite.T(), out, "1 nodes and 0 connections created under pg-1")
	runID := strings.TrimSuffix(strings.Fields(out)[1], ":")

	shown, err := suite.execute("run", runID)
	require.NoError(suite.T(), err, shown)
	assert.Contains(suite.T(), shown, "run "+runID+" SUCCEEDED")
	assert.Contains(suite.T(), shown, "f-old -> f-new")
}

func (suite *CLITestSuite) TestImportReportsServiceError() {
	out, err := suite.execute("import", filepath.Join(suite.home, "missing"))

	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "TPL-60008")
	assert.NotContains(suite.T(), out, "nodes and")
}

func (suite *CLITestSuite) TestFlagsOverrideConfiguration() {
	_, err := suite.execute("--hostname", "unreachable.invalid", "--port", "1", "export",
		filepath.Join(suite.home, "out"))

	require.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "TPL-65101")
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := loadConfig(t.TempDir(), "")

	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Workspace.Hostname)
}

func TestLoadConfigRequiresExplicitFile(t *testing.T) {
	_, err := loadConfig(t.TempDir(), "/does/not/exist.yaml")

	assert.Error(t, err)
}

func TestDirectoryArg(t *testing.T) {
	assert.Equal(t, "templates", directoryArg(nil, "templates"))
	assert.Equal(t, "custom", directoryArg([]string{"custom"}, "templates"))
}

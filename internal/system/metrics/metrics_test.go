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

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRunMetrics(reg)

	m.NodesCreated.WithLabelValues("PROCESSOR").Inc()
	m.NodesCreated.WithLabelValues("PROCESSOR").Inc()
	m.ConnectionsCreated.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.NodesCreated.WithLabelValues("PROCESSOR")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConnectionsCreated))

	count, err := testutil.GatherAndCount(reg, "templatizer_nodes_created_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewRunMetricsWithoutRegistry(t *testing.T) {
	m := NewRunMetrics(nil)
	m.ConnectionsSkipped.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConnectionsSkipped))
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRunMetrics(reg)
	m.ScopesBuilt.Add(3)

	path := filepath.Join(t.TempDir(), "templatizer.prom")
	require.NoError(t, WriteTextfile(path, reg))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "templatizer_scopes_built_total 3"))
}

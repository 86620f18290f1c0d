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

// Package metrics defines the prometheus collectors recorded during capture and reconstruction runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "templatizer"

// RunMetrics holds the counters of a single capture or reconstruction run.
type RunMetrics struct {
	NodesCreated       *prometheus.CounterVec
	ConnectionsCreated prometheus.Counter
	ConnectionsSkipped prometheus.Counter
	RemotePortLookups  prometheus.Counter
	ScopesBuilt        prometheus.Counter
	TemplatesCaptured  prometheus.Counter
	ElementsCaptured   *prometheus.CounterVec
	RelationshipsMuted prometheus.Counter
}

// NewRunMetrics creates the run collectors and registers them with reg when reg is not nil.
func NewRunMetrics(reg prometheus.Registerer) *RunMetrics {
	m := &RunMetrics{
		NodesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_created_total",
			Help:      "Nodes created in the workspace, by kind.",
		}, []string{"kind"}),
		ConnectionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_created_total",
			Help:      "Connections created in the workspace.",
		}),
		ConnectionsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_skipped_total",
			Help:      "Connections skipped because a remote port never appeared.",
		}),
		RemotePortLookups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_port_lookups_total",
			Help:      "Remote group content fetches issued while resolving remote ports.",
		}),
		ScopesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scopes_built_total",
			Help:      "Scopes fully reconstructed.",
		}),
		TemplatesCaptured: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "templates_captured_total",
			Help:      "Templates produced by capture runs.",
		}),
		ElementsCaptured: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_captured_total",
			Help:      "Canvas elements captured, by kind.",
		}, []string{"kind"}),
		RelationshipsMuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relationships_auto_terminated_total",
			Help:      "Unused processor relationships marked auto-terminated.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.NodesCreated, m.ConnectionsCreated, m.ConnectionsSkipped, m.RemotePortLookups,
			m.ScopesBuilt, m.TemplatesCaptured, m.ElementsCaptured, m.RelationshipsMuted)
	}
	return m
}

// WriteTextfile writes every metric gathered from g to path in the text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

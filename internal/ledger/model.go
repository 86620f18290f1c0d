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

// Package ledger records reconstruction runs, their id mappings and their skipped connections.
package ledger

import "time"

// RunStatus is the outcome of a run.
type RunStatus string

const (
	// RunStatusSucceeded marks a run that created every node and edge it could.
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	// RunStatusFailed marks a run that stopped part way.
	RunStatusFailed RunStatus = "FAILED"
)

// Run is one import of a template directory.
type Run struct {
	ID                 string
	RootScopeID        string
	TemplateDir        string
	Status             RunStatus
	StartedAt          time.Time
	FinishedAt         time.Time
	NodesCreated       int
	ConnectionsCreated int
	ErrorCode          string
	ErrorDescription   string
}

// Mapping pairs a template id with the id the workspace assigned during a run.
type Mapping struct {
	OldID string
	NewID string
}

// SkippedEdge is a connection a run could not create.
type SkippedEdge struct {
	ScopeID     string
	SourceID    string
	TargetID    string
	PortName    string
	Description string
}

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

// Package workspace defines the contract between the templatizer engine and a live dataflow workspace.
package workspace

import "context"

// ClientInterface is the set of workspace operations the capture and reconstruction engines depend on.
type ClientInterface interface {
	// GetScope fetches a process group. The root alias is accepted and resolved to the real id.
	GetScope(ctx context.Context, scopeID string) (*NodeDescriptor, error)
	// ListNodes lists the nodes of one kind that are direct children of the scope.
	ListNodes(ctx context.Context, scopeID string, kind NodeKind) ([]NodeDescriptor, error)
	// ListConnections lists the connections owned by the scope.
	ListConnections(ctx context.Context, scopeID string) ([]ConnectionDescriptor, error)
	// CreateNode creates a node and returns it with the id the workspace actually assigned.
	CreateNode(ctx context.Context, scopeID string, spec NodeSpec) (*NodeDescriptor, error)
	// CreateConnection links two endpoints inside the scope.
	CreateConnection(ctx context.Context, scopeID string, spec ConnectionSpec) (*ConnectionDescriptor, error)
	// UpdateNode applies settings that can only be changed after creation.
	UpdateNode(ctx context.Context, id string, patch NodePatch) (*NodeDescriptor, error)
	// GetRemoteGroupContents returns the ports exposed by a remote group. Eventually consistent.
	GetRemoteGroupContents(ctx context.Context, id string) (*RemoteGroupContents, error)
}

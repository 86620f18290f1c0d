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

package workspacemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/templatizer/internal/workspace"
)

// ClientMock is a testify mock of workspace.ClientInterface.
type ClientMock struct {
	mock.Mock
}

// GetScope mocks workspace.ClientInterface.GetScope.
func (m *ClientMock) GetScope(ctx context.Context, scopeID string) (*workspace.NodeDescriptor, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspace.NodeDescriptor), args.Error(1)
}

// ListNodes mocks workspace.ClientInterface.ListNodes.
func (m *ClientMock) ListNodes(ctx context.Context, scopeID string, kind workspace.NodeKind) (
	[]workspace.NodeDescriptor, error) {
	args := m.Called(ctx, scopeID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workspace.NodeDescriptor), args.Error(1)
}

// ListConnections mocks workspace.ClientInterface.ListConnections.
func (m *ClientMock) ListConnections(ctx context.Context, scopeID string) ([]workspace.ConnectionDescriptor, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workspace.ConnectionDescriptor), args.Error(1)
}

// CreateNode mocks workspace.ClientInterface.CreateNode.
func (m *ClientMock) CreateNode(ctx context.Context, scopeID string, spec workspace.NodeSpec) (
	*workspace.NodeDescriptor, error) {
	args := m.Called(ctx, scopeID, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspace.NodeDescriptor), args.Error(1)
}

// CreateConnection mocks workspace.ClientInterface.CreateConnection.
func (m *ClientMock) CreateConnection(ctx context.Context, scopeID string, spec workspace.ConnectionSpec) (
	*workspace.ConnectionDescriptor, error) {
	args := m.Called(ctx, scopeID, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspace.ConnectionDescriptor), args.Error(1)
}

// UpdateNode mocks workspace.ClientInterface.UpdateNode.
func (m *ClientMock) UpdateNode(ctx context.Context, id string, patch workspace.NodePatch) (
	*workspace.NodeDescriptor, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspace.NodeDescriptor), args.Error(1)
}

// GetRemoteGroupContents mocks workspace.ClientInterface.GetRemoteGroupContents.
func (m *ClientMock) GetRemoteGroupContents(ctx context.Context, id string) (*workspace.RemoteGroupContents, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workspace.RemoteGroupContents), args.Error(1)
}

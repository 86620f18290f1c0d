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

// Package workspacemock provides test doubles for the workspace client.
package workspacemock

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/asgardeo/templatizer/internal/workspace"
)

// ErrNotFound is returned for unknown scopes and nodes.
var ErrNotFound = errors.New("not found")

// ErrRejected is returned for requests a real workspace would refuse.
var ErrRejected = errors.New("rejected")

// TypeInfo describes a component type known to the fake.
type TypeInfo struct {
	Relationships []string
	Descriptors   map[string]workspace.PropertyDescriptor
}

// FakeWorkspace is an in-memory workspace. It assigns its own ids, ignores requested ids for process
// groups and processors, and reveals remote group contents only after RemoteDiscoveryDelay empty polls.
type FakeWorkspace struct {
	mu sync.Mutex

	RootID               string
	RemoteDiscoveryDelay int

	nodes          map[string]*workspace.NodeDescriptor
	children       map[string][]string
	connections    map[string][]*workspace.ConnectionDescriptor
	types          map[string]TypeInfo
	remoteTargets  map[string]workspace.RemoteGroupContents
	remoteContents map[string]*workspace.RemoteGroupContents
	remotePolls    map[string]int
	failures       map[string]error
	nextID         int

	// Calls records every mutating call as "<method> <kind or id>".
	Calls []string
}

// NewFakeWorkspace returns an empty workspace with a root group.
func NewFakeWorkspace() *FakeWorkspace {
	f := &FakeWorkspace{
		RootID:         "root-group",
		nodes:          map[string]*workspace.NodeDescriptor{},
		children:       map[string][]string{},
		connections:    map[string][]*workspace.ConnectionDescriptor{},
		types:          map[string]TypeInfo{},
		remoteTargets:  map[string]workspace.RemoteGroupContents{},
		remoteContents: map[string]*workspace.RemoteGroupContents{},
		remotePolls:    map[string]int{},
		failures:       map[string]error{},
	}
	f.nodes[f.RootID] = &workspace.NodeDescriptor{ID: f.RootID, Kind: workspace.KindProcessGroup, Name: "root"}
	return f
}

// RegisterType declares the relationships and property descriptors of a component type.
func (f *FakeWorkspace) RegisterType(componentType string, info TypeInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types[componentType] = info
}

// AddRemoteTarget declares the ports a remote group pointing at targetURIs will discover.
func (f *FakeWorkspace) AddRemoteTarget(targetURIs string, contents workspace.RemoteGroupContents) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remoteTargets[targetURIs] = contents
}

// FailOn makes the named method ("CreateNode", "CreateConnection", "UpdateNode") fail with err.
func (f *FakeWorkspace) FailOn(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = err
}

// Node returns a copy of the node with the given id.
func (f *FakeWorkspace) Node(id string) (workspace.NodeDescriptor, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.nodes[id]
	if !ok {
		return workspace.NodeDescriptor{}, false
	}
	return *n, true
}

// FindNode returns the child of scope with the given kind and name.
func (f *FakeWorkspace) FindNode(scopeID string, kind workspace.NodeKind,
	name string) (workspace.NodeDescriptor, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.children[scopeID] {
		n := f.nodes[id]
		if n.Kind == kind && n.Name == name {
			return *n, true
		}
	}
	return workspace.NodeDescriptor{}, false
}

// Connections returns copies of the connections owned by a scope.
func (f *FakeWorkspace) Connections(scopeID string) []workspace.ConnectionDescriptor {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]workspace.ConnectionDescriptor, 0, len(f.connections[scopeID]))
	for _, c := range f.connections[scopeID] {
		out = append(out, *c)
	}
	return out
}

// RemotePolls returns how many times the contents of a remote group were fetched.
func (f *FakeWorkspace) RemotePolls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remotePolls[id]
}

// NodeCount returns the number of nodes, excluding the root group.
func (f *FakeWorkspace) NodeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.nodes) - 1
}

// GetScope implements workspace.ClientInterface.
func (f *FakeWorkspace) GetScope(_ context.Context, scopeID string) (*workspace.NodeDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if scopeID == "root" {
		scopeID = f.RootID
	}
	n, ok := f.nodes[scopeID]
	if !ok || n.Kind != workspace.KindProcessGroup {
		return nil, fmt.Errorf("%w: scope %s", ErrNotFound, scopeID)
	}
	c := *n
	return &c, nil
}

// ListNodes implements workspace.ClientInterface.
func (f *FakeWorkspace) ListNodes(_ context.Context, scopeID string, kind workspace.NodeKind) (
	[]workspace.NodeDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.nodes[scopeID]; !ok {
		return nil, fmt.Errorf("%w: scope %s", ErrNotFound, scopeID)
	}
	var out []workspace.NodeDescriptor
	for _, id := range f.children[scopeID] {
		if n := f.nodes[id]; n.Kind == kind {
			c := *n
			if kind == workspace.KindRemoteProcessGroup {
				c.RemoteContents = f.remoteContents[id]
			}
			out = append(out, c)
		}
	}
	return out, nil
}

// ListConnections implements workspace.ClientInterface.
func (f *FakeWorkspace) ListConnections(_ context.Context, scopeID string) ([]workspace.ConnectionDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.nodes[scopeID]; !ok {
		return nil, fmt.Errorf("%w: scope %s", ErrNotFound, scopeID)
	}
	var out []workspace.ConnectionDescriptor
	for _, c := range f.connections[scopeID] {
		out = append(out, *c)
	}
	return out, nil
}

// CreateNode implements workspace.ClientInterface.
func (f *FakeWorkspace) CreateNode(_ context.Context, scopeID string, spec workspace.NodeSpec) (
	*workspace.NodeDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "CreateNode "+string(spec.Kind))

	if err := f.failures["CreateNode"]; err != nil {
		return nil, err
	}
	parent, ok := f.nodes[scopeID]
	if !ok || parent.Kind != workspace.KindProcessGroup {
		return nil, fmt.Errorf("%w: scope %s", ErrNotFound, scopeID)
	}

	id := f.assignID(spec)
	node := &workspace.NodeDescriptor{
		ID:             id,
		ParentGroupID:  scopeID,
		Kind:           spec.Kind,
		Name:           spec.Name,
		Type:           spec.Type,
		Bundle:         spec.Bundle,
		Position:       spec.Position,
		Comments:       spec.Comments,
		Properties:     copyMap(spec.Properties),
		Style:          copyMap(spec.Style),
		AnnotationData: spec.AnnotationData,
		Label:          spec.Label,
		Width:          spec.Width,
		Height:         spec.Height,
	}
	if spec.Scheduling != nil {
		s := *spec.Scheduling
		node.Scheduling = &s
	}

	switch spec.Kind {
	case workspace.KindProcessor, workspace.KindControllerService:
		info := f.types[spec.Type]
		node.Descriptors = info.Descriptors
		for _, rel := range info.Relationships {
			node.Relationships = append(node.Relationships, workspace.Relationship{Name: rel})
		}
	case workspace.KindRemoteProcessGroup:
		node.Remote = &workspace.RemoteGroupSettings{TargetURIs: spec.TargetURIs}
		if contents, ok := f.remoteTargets[spec.TargetURIs]; ok {
			f.remoteContents[id] = f.materialise(id, contents)
		}
	}

	f.nodes[id] = node
	f.children[scopeID] = append(f.children[scopeID], id)
	c := *node
	return &c, nil
}

// CreateConnection implements workspace.ClientInterface.
func (f *FakeWorkspace) CreateConnection(_ context.Context, scopeID string, spec workspace.ConnectionSpec) (
	*workspace.ConnectionDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "CreateConnection "+spec.Source.ID+"->"+spec.Destination.ID)

	if err := f.failures["CreateConnection"]; err != nil {
		return nil, err
	}
	if _, ok := f.nodes[scopeID]; !ok {
		return nil, fmt.Errorf("%w: scope %s", ErrNotFound, scopeID)
	}
	source, err := f.endpoint(scopeID, spec.Source)
	if err != nil {
		return nil, err
	}
	destination, err := f.endpoint(scopeID, spec.Destination)
	if err != nil {
		return nil, err
	}
	if spec.Source.Kind == workspace.ConnectableProcessor && len(spec.SelectedRelationships) == 0 {
		return nil, fmt.Errorf("%w: processor source %s needs at least one relationship", ErrRejected,
			spec.Source.ID)
	}
	if spec.Source.Kind != workspace.ConnectableProcessor && len(spec.SelectedRelationships) > 0 {
		return nil, fmt.Errorf("%w: %s source %s cannot select relationships", ErrRejected, spec.Source.Kind,
			spec.Source.ID)
	}

	conn := &workspace.ConnectionDescriptor{
		ID:                    f.newID("connection"),
		ParentGroupID:         scopeID,
		Source:                source,
		Destination:           destination,
		SelectedRelationships: append([]string(nil), spec.SelectedRelationships...),
		Settings:              spec.Settings,
		Bends:                 append([]workspace.Position(nil), spec.Bends...),
	}
	f.connections[scopeID] = append(f.connections[scopeID], conn)
	c := *conn
	return &c, nil
}

// UpdateNode implements workspace.ClientInterface.
func (f *FakeWorkspace) UpdateNode(_ context.Context, id string, patch workspace.NodePatch) (
	*workspace.NodeDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "UpdateNode "+id)

	if err := f.failures["UpdateNode"]; err != nil {
		return nil, err
	}
	node, ok := f.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: node %s", ErrNotFound, id)
	}
	if patch.Comments != nil {
		node.Comments = *patch.Comments
	}
	if patch.AutoTerminated != nil {
		terminated := map[string]bool{}
		for _, name := range patch.AutoTerminated {
			terminated[name] = true
		}
		for i := range node.Relationships {
			node.Relationships[i].AutoTerminate = terminated[node.Relationships[i].Name]
		}
	}
	if patch.RemoteSettings != nil && node.Remote != nil {
		target := node.Remote.TargetURIs
		settings := *patch.RemoteSettings
		settings.TargetURIs = target
		node.Remote = &settings
	}
	if patch.RemotePortSettings != nil {
		if err := f.updateRemotePort(id, *patch.RemotePortSettings); err != nil {
			return nil, err
		}
	}
	c := *node
	return &c, nil
}

// GetRemoteGroupContents implements workspace.ClientInterface.
func (f *FakeWorkspace) GetRemoteGroupContents(_ context.Context, id string) (*workspace.RemoteGroupContents, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	node, ok := f.nodes[id]
	if !ok || node.Kind != workspace.KindRemoteProcessGroup {
		return nil, fmt.Errorf("%w: remote group %s", ErrNotFound, id)
	}
	f.remotePolls[id]++
	contents, ok := f.remoteContents[id]
	if !ok || f.remotePolls[id] <= f.RemoteDiscoveryDelay {
		return &workspace.RemoteGroupContents{}, nil
	}
	c := *contents
	c.InputPorts = append([]workspace.RemotePort(nil), contents.InputPorts...)
	c.OutputPorts = append([]workspace.RemotePort(nil), contents.OutputPorts...)
	return &c, nil
}

func (f *FakeWorkspace) assignID(spec workspace.NodeSpec) string {
	honoured := spec.Kind != workspace.KindProcessGroup && spec.Kind != workspace.KindProcessor
	if honoured && spec.RequestedID != "" {
		if _, taken := f.nodes[spec.RequestedID]; !taken {
			return spec.RequestedID
		}
	}
	return f.newID(string(spec.Kind))
}

func (f *FakeWorkspace) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%04d", prefix, f.nextID)
}

func (f *FakeWorkspace) materialise(groupID string,
	contents workspace.RemoteGroupContents) *workspace.RemoteGroupContents {
	out := &workspace.RemoteGroupContents{}
	for _, p := range contents.InputPorts {
		p.ID = f.newID("remote-in")
		p.GroupID = groupID
		out.InputPorts = append(out.InputPorts, p)
	}
	for _, p := range contents.OutputPorts {
		p.ID = f.newID("remote-out")
		p.GroupID = groupID
		out.OutputPorts = append(out.OutputPorts, p)
	}
	return out
}

func (f *FakeWorkspace) updateRemotePort(groupID string, patch workspace.RemotePortPatch) error {
	contents, ok := f.remoteContents[groupID]
	if !ok {
		return fmt.Errorf("%w: remote group %s has no contents", ErrNotFound, groupID)
	}
	ports := contents.OutputPorts
	if patch.Input {
		ports = contents.InputPorts
	}
	for i := range ports {
		if ports[i].ID == patch.PortID {
			ports[i].ConcurrentTasks = patch.ConcurrentTasks
			ports[i].UseCompression = patch.UseCompression
			ports[i].BatchCount = patch.BatchCount
			ports[i].BatchSize = patch.BatchSize
			ports[i].BatchDuration = patch.BatchDuration
			return nil
		}
	}
	return fmt.Errorf("%w: remote port %s", ErrNotFound, patch.PortID)
}

// endpoint validates a connectable against the scope the connection is created in.
func (f *FakeWorkspace) endpoint(scopeID string, c workspace.Connectable) (workspace.Connectable, error) {
	switch c.Kind {
	case workspace.ConnectableRemoteInputPort, workspace.ConnectableRemoteOutputPort:
		group, ok := f.nodes[c.GroupID]
		if !ok || group.ParentGroupID != scopeID {
			return c, fmt.Errorf("%w: remote group %s is not in scope %s", ErrRejected, c.GroupID, scopeID)
		}
		contents := f.remoteContents[c.GroupID]
		if contents == nil {
			return c, fmt.Errorf("%w: remote port %s", ErrNotFound, c.ID)
		}
		ports := contents.OutputPorts
		if c.Kind == workspace.ConnectableRemoteInputPort {
			ports = contents.InputPorts
		}
		for _, p := range ports {
			if p.ID == c.ID {
				c.Name = p.Name
				return c, nil
			}
		}
		return c, fmt.Errorf("%w: remote port %s", ErrNotFound, c.ID)
	default:
		node, ok := f.nodes[c.ID]
		if !ok {
			return c, fmt.Errorf("%w: endpoint %s", ErrNotFound, c.ID)
		}
		if string(node.Kind) != string(c.Kind) {
			return c, fmt.Errorf("%w: endpoint %s is a %s, not a %s", ErrRejected, c.ID, node.Kind, c.Kind)
		}
		if node.ParentGroupID != c.GroupID {
			return c, fmt.Errorf("%w: endpoint %s is not in group %s", ErrRejected, c.ID, c.GroupID)
		}
		if c.GroupID != scopeID {
			parent, ok := f.nodes[c.GroupID]
			isPort := c.Kind == workspace.ConnectableInputPort || c.Kind == workspace.ConnectableOutputPort
			if !ok || parent.ParentGroupID != scopeID || !isPort {
				return c, fmt.Errorf("%w: endpoint %s is not reachable from scope %s", ErrRejected, c.ID, scopeID)
			}
		}
		c.Name = node.Name
		return c, nil
	}
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

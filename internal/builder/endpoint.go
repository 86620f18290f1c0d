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

package builder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/asgardeo/templatizer/internal/system/retry"
	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/workspace"
)

type endpointRole int

const (
	sourceEnd endpointRole = iota
	targetEnd
)

var errPortPending = errors.New("remote port not yet visible")

// resolveEndpoint maps one end of an edge to the connectable created for it. Edges touching a local group
// land on a named port inside it. Edges touching a remote group land on a discovered remote port.
func (b *Builder) resolveEndpoint(ctx context.Context, frame scopeFrame, element *model.Element,
	role endpointRole, portName string) (workspace.Connectable, error) {
	kind := element.Kind()
	switch kind {
	case workspace.KindProcessGroup:
		return b.groupPortEndpoint(element, role, portName)
	case workspace.KindRemoteProcessGroup:
		return b.remotePortEndpoint(ctx, frame, element, role, portName)
	case workspace.KindLabel:
		return workspace.Connectable{}, fmt.Errorf("%w: label %s cannot be connected", ErrUnresolvedEndpoint,
			element.ID)
	case workspace.KindInputPort, workspace.KindOutputPort:
		id, ok := b.tracker.ResolveByID(element.ID)
		if !ok && element.Name != "" {
			var err error
			id, ok, err = b.tracker.ResolveByName(frame.id, element.Name, kind)
			if err != nil {
				return workspace.Connectable{}, err
			}
		}
		if !ok {
			return workspace.Connectable{}, fmt.Errorf("%w: port %s", ErrUnresolvedEndpoint, element.ID)
		}
		return workspace.Connectable{ID: id, GroupID: frame.id, Kind: workspace.ConnectableKind(kind),
			Name: element.Name}, nil
	default:
		id, ok := b.tracker.ResolveByID(element.ID)
		if !ok {
			return workspace.Connectable{}, fmt.Errorf("%w: %s %s was not created", ErrUnresolvedEndpoint,
				kind, element.ID)
		}
		return workspace.Connectable{ID: id, GroupID: frame.id, Kind: workspace.ConnectableKind(kind),
			Name: element.Name}, nil
	}
}

// groupPortEndpoint finds a port of a child group by name. Sources leave through output ports and
// targets enter through input ports.
func (b *Builder) groupPortEndpoint(element *model.Element, role endpointRole, portName string) (
	workspace.Connectable, error) {
	groupID, ok := b.tracker.ResolveByID(element.ID)
	if !ok {
		return workspace.Connectable{}, fmt.Errorf("%w: group %s was not created", ErrUnresolvedEndpoint, element.ID)
	}
	if portName == "" {
		return workspace.Connectable{}, fmt.Errorf("%w: edge into group %s does not name a port",
			ErrUnresolvedEndpoint, element.ID)
	}

	kind := workspace.KindInputPort
	if role == sourceEnd {
		kind = workspace.KindOutputPort
	}
	id, ok, err := b.tracker.ResolveByName(groupID, portName, kind)
	if err != nil {
		return workspace.Connectable{}, err
	}
	if !ok {
		return workspace.Connectable{}, fmt.Errorf("%w: group %s has no %s named %q", ErrUnresolvedEndpoint,
			element.ID, kind, portName)
	}
	return workspace.Connectable{ID: id, GroupID: groupID, Kind: workspace.ConnectableKind(kind), Name: portName}, nil
}

func (b *Builder) remotePortEndpoint(ctx context.Context, frame scopeFrame, element *model.Element,
	role endpointRole, portName string) (workspace.Connectable, error) {
	groupID, ok := b.tracker.ResolveByID(element.ID)
	if !ok {
		return workspace.Connectable{}, fmt.Errorf("%w: remote group %s was not created", ErrUnresolvedEndpoint,
			element.ID)
	}
	if portName == "" {
		return workspace.Connectable{}, fmt.Errorf("%w: edge into remote group %s does not name a port",
			ErrUnresolvedEndpoint, element.ID)
	}

	input := role == targetEnd
	port, err := b.discoverRemotePort(ctx, frame, groupID, portName, input)
	if err != nil {
		return workspace.Connectable{}, err
	}
	kind := workspace.ConnectableRemoteOutputPort
	if input {
		kind = workspace.ConnectableRemoteInputPort
	}
	return workspace.Connectable{ID: port.ID, GroupID: groupID, Kind: kind, Name: portName}, nil
}

// discoverRemotePort polls the remote group until the named port shows up or the retry budget runs out.
// Contents are cached per group and only refetched when a port is missing.
func (b *Builder) discoverRemotePort(ctx context.Context, frame scopeFrame, groupID, name string,
	input bool) (workspace.RemotePort, error) {
	if port, ok := findRemotePort(b.remoteContents[groupID], name, input); ok {
		return port, nil
	}

	var found workspace.RemotePort
	op := func() error {
		b.metrics.RemotePortLookups.Inc()
		contents, err := b.client.GetRemoteGroupContents(ctx, groupID)
		if err != nil {
			return retry.Permanent(fmt.Errorf("%w: fetching contents of remote group %s: %w", ErrRemoteCall,
				groupID, err))
		}
		b.remoteContents[groupID] = contents
		port, ok := findRemotePort(contents, name, input)
		if !ok {
			return errPortPending
		}
		found = port
		return nil
	}
	onRetry := func(attempt int, _ error, wait time.Duration) {
		frame.logger.Debug("Waiting for remote port", zap.String("group", groupID), zap.String("port", name),
			zap.Int("attempt", attempt), zap.Duration("wait", wait))
	}

	err := retry.Do(ctx, b.opts.RemotePortRetry, op, onRetry)
	switch {
	case err == nil:
		return found, nil
	case errors.Is(err, errPortPending):
		return workspace.RemotePort{}, fmt.Errorf("%w: %q in remote group %s", ErrRemotePortNotFound, name, groupID)
	default:
		return workspace.RemotePort{}, err
	}
}

func findRemotePort(contents *workspace.RemoteGroupContents, name string, input bool) (workspace.RemotePort, bool) {
	if contents == nil {
		return workspace.RemotePort{}, false
	}
	ports := contents.OutputPorts
	if input {
		ports = contents.InputPorts
	}
	for _, port := range ports {
		if port.Name == name {
			return port, true
		}
	}
	return workspace.RemotePort{}, false
}

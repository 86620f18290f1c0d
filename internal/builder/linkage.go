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
	"sort"

	"go.uber.org/zap"

	"github.com/asgardeo/templatizer/internal/system/log"
	"github.com/asgardeo/templatizer/internal/template/defaults"
	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/workspace"
)

// createLinkage creates the inbound edges of every element in the scope.
func (b *Builder) createLinkage(ctx context.Context, frame scopeFrame) error {
	for i := range frame.template.Components {
		target := &frame.template.Components[i]
		for j := range target.Inputs {
			if err := b.link(ctx, frame, target, &target.Inputs[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Builder) link(ctx context.Context, frame scopeFrame, target *model.Element,
	input *model.InputConnection) error {
	source, ok := frame.template.FindElement(input.Source)
	if !ok {
		return fmt.Errorf("%w: element %s has an input from %s which is not part of template %s",
			ErrUnresolvedEndpoint, target.ID, input.Source, frame.template.Name)
	}
	ref, err := input.ResolveSourceRef(source.Kind())
	if err != nil {
		return fmt.Errorf("%w: element %s: %w", ErrInvalidTemplate, target.ID, err)
	}
	bends, err := model.ParseBends(input.Bends)
	if err != nil {
		return fmt.Errorf("%w: element %s: %w", ErrInvalidTemplate, target.ID, err)
	}

	from, err := b.resolveEndpoint(ctx, frame, source, sourceEnd, ref.Port)
	if err == nil {
		var to workspace.Connectable
		to, err = b.resolveEndpoint(ctx, frame, target, targetEnd, input.ToPort)
		if err == nil {
			return b.connect(ctx, frame, source, ref, from, to, input, bends)
		}
	}
	if !errors.Is(err, ErrRemotePortNotFound) {
		return err
	}

	port := ref.Port
	if port == "" {
		port = input.ToPort
	}
	// Relationships of a skipped edge count as used and are never auto-terminated.
	if source.Kind() == workspace.KindProcessor {
		if sourceID, ok := b.tracker.ResolveByID(source.ID); ok {
			b.markUsed(sourceID, ref.Relationships)
		}
	}
	b.result.SkippedEdges = append(b.result.SkippedEdges, SkippedEdge{
		ScopeID:     frame.id,
		SourceID:    source.ID,
		TargetID:    target.ID,
		PortName:    port,
		Description: err.Error(),
	})
	b.metrics.ConnectionsSkipped.Inc()
	frame.logger.Warn("Skipping connection, remote port was never discovered", zap.String("source", source.ID),
		zap.String("target", target.ID), zap.String("port", port))
	return nil
}

func (b *Builder) connect(ctx context.Context, frame scopeFrame, source *model.Element, ref model.SourceRef,
	from, to workspace.Connectable, input *model.InputConnection, bends []workspace.Position) error {
	var relationships []string
	if source.Kind() == workspace.KindProcessor {
		relationships = ref.Relationships
	}

	conn, err := b.client.CreateConnection(ctx, frame.id, workspace.ConnectionSpec{
		Source:                from,
		Destination:           to,
		SelectedRelationships: relationships,
		Settings:              defaults.ApplyConnection(input.Properties),
		Bends:                 bends,
	})
	if err != nil {
		return fmt.Errorf("%w: connecting %s to %s: %w", ErrRemoteCall, from.ID, to.ID, err)
	}

	b.markUsed(from.ID, relationships)
	b.result.ConnectionsCreated++
	b.metrics.ConnectionsCreated.Inc()
	frame.logger.Debug("Created connection", zap.String(log.LoggerKeyElementID, conn.ID),
		zap.String("source", from.ID), zap.String("destination", to.ID))
	return nil
}

func (b *Builder) markUsed(sourceID string, relationships []string) {
	if len(relationships) == 0 {
		return
	}
	used := b.used[sourceID]
	if used == nil {
		used = map[string]bool{}
		b.used[sourceID] = used
	}
	for _, rel := range relationships {
		used[rel] = true
	}
}

// configureRemotePorts applies the recorded remote port settings once the ports have been discovered.
func (b *Builder) configureRemotePorts(ctx context.Context, frame scopeFrame) error {
	for i := range frame.template.Components {
		element := &frame.template.Components[i]
		if element.Kind() != workspace.KindRemoteProcessGroup || len(element.RemotePorts) == 0 {
			continue
		}
		groupID, ok := b.tracker.ResolveByID(element.ID)
		if !ok {
			return fmt.Errorf("%w: remote group %s was not created", ErrUnresolvedEndpoint, element.ID)
		}
		for _, record := range element.RemotePorts {
			port, err := b.discoverRemotePort(ctx, frame, groupID, record.Name, record.Direction == model.RemotePortInput)
			if errors.Is(err, ErrRemotePortNotFound) {
				frame.logger.Warn("Remote port settings not applied", zap.String("group", groupID),
					zap.String("port", record.Name))
				continue
			}
			if err != nil {
				return err
			}
			patch := defaults.ApplyRemotePort(record, port.ID)
			if _, err := b.client.UpdateNode(ctx, groupID, workspace.NodePatch{
				Kind:               workspace.KindRemoteProcessGroup,
				RemotePortSettings: &patch,
			}); err != nil {
				return fmt.Errorf("%w: configuring remote port %s of %s: %w", ErrRemoteCall, record.Name,
					element.ID, err)
			}
		}
	}
	return nil
}

// autoTerminate marks every declared relationship that no created or skipped edge selected.
func (b *Builder) autoTerminate(ctx context.Context, frame scopeFrame) error {
	for i := range frame.template.Components {
		element := &frame.template.Components[i]
		if element.Kind() != workspace.KindProcessor {
			continue
		}
		id, ok := b.tracker.ResolveByID(element.ID)
		if !ok {
			continue
		}
		var unused []string
		for _, rel := range b.declared[id] {
			if !b.used[id][rel] {
				unused = append(unused, rel)
			}
		}
		if len(unused) == 0 {
			continue
		}
		sort.Strings(unused)
		if _, err := b.client.UpdateNode(ctx, id, workspace.NodePatch{
			Kind:           workspace.KindProcessor,
			AutoTerminated: unused,
		}); err != nil {
			return fmt.Errorf("%w: auto-terminating %s: %w", ErrRemoteCall, element.ID, err)
		}
		b.result.AutoTerminated[id] = unused
		b.metrics.RelationshipsMuted.Add(float64(len(unused)))
	}
	return nil
}

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
	"fmt"

	"go.uber.org/zap"

	"github.com/asgardeo/templatizer/internal/rules"
	"github.com/asgardeo/templatizer/internal/system/log"
	"github.com/asgardeo/templatizer/internal/template/defaults"
	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/workspace"
)

// createGroups creates the local and remote groups of the scope. Each local group is reconstructed
// from its own template before the next sibling is created.
func (b *Builder) createGroups(ctx context.Context, frame scopeFrame) error {
	for i := range frame.template.Components {
		element := &frame.template.Components[i]
		var err error
		switch element.Kind() {
		case workspace.KindProcessGroup:
			err = b.createProcessGroup(ctx, frame, element)
		case workspace.KindRemoteProcessGroup:
			err = b.createRemoteGroup(ctx, frame, element)
		default:
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) createProcessGroup(ctx context.Context, frame scopeFrame, element *model.Element) error {
	position, err := parsePosition(element)
	if err != nil {
		return err
	}

	node, err := b.createNode(ctx, frame, element, workspace.NodeSpec{
		Kind:        workspace.KindProcessGroup,
		RequestedID: element.ID,
		Name:        element.Name,
		Position:    position,
	})
	if err != nil {
		return err
	}

	if element.Comment != "" {
		comment := element.Comment
		if _, err := b.client.UpdateNode(ctx, node.ID, workspace.NodePatch{
			Kind:     workspace.KindProcessGroup,
			Comments: &comment,
		}); err != nil {
			return fmt.Errorf("%w: commenting group %s: %w", ErrRemoteCall, element.ID, err)
		}
	}

	if element.Template == "" {
		return nil
	}
	child, ok := b.templates.Get(element.Template)
	if !ok {
		return fmt.Errorf("%w: group %s references %s", ErrMissingTemplate, element.ID, element.Template)
	}
	return b.buildScope(ctx, node.ID, child)
}

func (b *Builder) createRemoteGroup(ctx context.Context, frame scopeFrame, element *model.Element) error {
	position, err := parsePosition(element)
	if err != nil {
		return err
	}
	settings, err := defaults.ApplyRemoteGroup(element.Properties)
	if err != nil {
		return fmt.Errorf("%w: element %s: %w", ErrInvalidTemplate, element.ID, err)
	}

	node, err := b.createNode(ctx, frame, element, workspace.NodeSpec{
		Kind:        workspace.KindRemoteProcessGroup,
		RequestedID: element.ID,
		Name:        element.Name,
		Position:    position,
		Comments:    element.Comment,
		TargetURIs:  settings.TargetURIs,
	})
	if err != nil {
		return err
	}

	if settings.IsZero() {
		return nil
	}
	if _, err := b.client.UpdateNode(ctx, node.ID, workspace.NodePatch{
		Kind:           workspace.KindRemoteProcessGroup,
		RemoteSettings: &settings,
	}); err != nil {
		return fmt.Errorf("%w: configuring remote group %s: %w", ErrRemoteCall, element.ID, err)
	}
	return nil
}

// createControllers creates the controller services of the scope. Property values naming an already
// created node are rewritten to its new id.
func (b *Builder) createControllers(ctx context.Context, frame scopeFrame) error {
	for _, controller := range frame.template.Controllers {
		coord, err := frame.deps.Resolve(controller.Type)
		if err != nil {
			return fmt.Errorf("controller %s: %w", controller.ID, err)
		}

		node, err := b.client.CreateNode(ctx, frame.id, workspace.NodeSpec{
			Kind:        workspace.KindControllerService,
			RequestedID: controller.ID,
			Name:        controller.Name,
			Type:        coord.Type,
			Bundle:      coord.Bundle,
			Comments:    controller.Comment,
			Properties:  b.remapProperties(controller.Properties),
		})
		if err != nil {
			return fmt.Errorf("%w: creating controller %s: %w", ErrRemoteCall, controller.ID, err)
		}
		if err := b.record(frame, controller.ID, controller.Name, workspace.KindControllerService, node.ID); err != nil {
			return err
		}
		frame.logger.Debug("Created controller service", zap.String(log.LoggerKeyElementID, node.ID),
			zap.String("type", coord.Type))
	}
	return nil
}

// createElements creates every remaining node of the scope.
func (b *Builder) createElements(ctx context.Context, frame scopeFrame) error {
	for i := range frame.template.Components {
		element := &frame.template.Components[i]
		var err error
		switch element.Kind() {
		case workspace.KindProcessGroup, workspace.KindRemoteProcessGroup:
			continue
		case workspace.KindProcessor:
			err = b.createProcessor(ctx, frame, element)
		case workspace.KindInputPort, workspace.KindOutputPort:
			err = b.createPort(ctx, frame, element)
		case workspace.KindFunnel:
			err = b.createFunnel(ctx, frame, element)
		case workspace.KindLabel:
			err = b.createLabel(ctx, frame, element)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) createProcessor(ctx context.Context, frame scopeFrame, element *model.Element) error {
	coord, err := frame.deps.Resolve(element.KindName())
	if err != nil {
		return fmt.Errorf("element %s: %w", element.ID, err)
	}
	position, err := parsePosition(element)
	if err != nil {
		return err
	}
	scheduling, err := defaults.ApplyScheduling(element.Scheduling)
	if err != nil {
		return fmt.Errorf("%w: element %s: %w", ErrInvalidTemplate, element.ID, err)
	}
	annotation, err := rules.Encode(element.Advanced)
	if err != nil {
		return fmt.Errorf("%w: element %s: %w", ErrInvalidTemplate, element.ID, err)
	}

	node, err := b.createNode(ctx, frame, element, workspace.NodeSpec{
		Kind:           workspace.KindProcessor,
		RequestedID:    element.ID,
		Name:           element.Name,
		Type:           coord.Type,
		Bundle:         coord.Bundle,
		Position:       position,
		Comments:       element.Comment,
		Properties:     b.remapProperties(element.Properties),
		Style:          element.Styles,
		Scheduling:     scheduling,
		AnnotationData: annotation,
	})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(node.Relationships))
	for _, rel := range node.Relationships {
		names = append(names, rel.Name)
	}
	b.declared[node.ID] = names
	return nil
}

func (b *Builder) createPort(ctx context.Context, frame scopeFrame, element *model.Element) error {
	position, err := parsePosition(element)
	if err != nil {
		return err
	}
	_, err = b.createNode(ctx, frame, element, workspace.NodeSpec{
		Kind:        element.Kind(),
		RequestedID: element.ID,
		Name:        element.Name,
		Position:    position,
		Comments:    element.Comment,
	})
	return err
}

func (b *Builder) createFunnel(ctx context.Context, frame scopeFrame, element *model.Element) error {
	position, err := parsePosition(element)
	if err != nil {
		return err
	}
	_, err = b.createNode(ctx, frame, element, workspace.NodeSpec{
		Kind:        workspace.KindFunnel,
		RequestedID: element.ID,
		Position:    position,
	})
	return err
}

// createLabel creates a label. Its text is carried by the comment and its size by the styles.
func (b *Builder) createLabel(ctx context.Context, frame scopeFrame, element *model.Element) error {
	position, err := parsePosition(element)
	if err != nil {
		return err
	}
	style, width, height, err := defaults.SplitLabelStyle(element.Styles)
	if err != nil {
		return fmt.Errorf("%w: element %s: %w", ErrInvalidTemplate, element.ID, err)
	}
	_, err = b.createNode(ctx, frame, element, workspace.NodeSpec{
		Kind:        workspace.KindLabel,
		RequestedID: element.ID,
		Position:    position,
		Label:       element.Comment,
		Style:       style,
		Width:       width,
		Height:      height,
	})
	return err
}

// createNode creates one node and records its identity.
func (b *Builder) createNode(ctx context.Context, frame scopeFrame, element *model.Element,
	spec workspace.NodeSpec) (*workspace.NodeDescriptor, error) {
	node, err := b.client.CreateNode(ctx, frame.id, spec)
	if err != nil {
		return nil, fmt.Errorf("%w: creating %s %s: %w", ErrRemoteCall, spec.Kind, element.ID, err)
	}
	if err := b.record(frame, element.ID, element.Name, spec.Kind, node.ID); err != nil {
		return nil, err
	}
	frame.logger.Debug("Created node", zap.String("kind", string(spec.Kind)),
		zap.String(log.LoggerKeyElementID, node.ID), zap.String("templateId", element.ID))
	return node, nil
}

// record stores the id mapping of a created node. Ports, groups and controllers are also registered
// under their name so edges crossing a group boundary can find them.
func (b *Builder) record(frame scopeFrame, oldID, name string, kind workspace.NodeKind, newID string) error {
	if err := b.tracker.RecordIdentity(oldID, newID); err != nil {
		return err
	}
	switch kind {
	case workspace.KindInputPort, workspace.KindOutputPort, workspace.KindProcessGroup,
		workspace.KindRemoteProcessGroup, workspace.KindControllerService:
		if name != "" {
			b.tracker.RecordNamed(frame.id, name, kind, newID)
		}
	}
	b.result.NodesCreated[kind]++
	b.metrics.NodesCreated.WithLabelValues(string(kind)).Inc()
	return nil
}

// remapProperties rewrites values that name a node created earlier in the run.
func (b *Builder) remapProperties(properties map[string]string) map[string]string {
	if properties == nil {
		return nil
	}
	out := make(map[string]string, len(properties))
	for key, value := range properties {
		if newID, ok := b.tracker.ResolveByID(value); ok && value != "" {
			out[key] = newID
			continue
		}
		out[key] = value
	}
	return out
}

func parsePosition(element *model.Element) (workspace.Position, error) {
	position, err := model.ParsePosition(element.Position)
	if err != nil {
		return workspace.Position{}, fmt.Errorf("%w: element %s: %w", ErrInvalidTemplate, element.ID, err)
	}
	return position, nil
}

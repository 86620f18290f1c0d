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

package capture

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/asgardeo/templatizer/internal/dependency"
	"github.com/asgardeo/templatizer/internal/rules"
	"github.com/asgardeo/templatizer/internal/template/defaults"
	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/workspace"
)

// scopeCapture accumulates the template of one scope.
type scopeCapture struct {
	scopeID  string
	template *model.Template
	vocab    *dependency.Vocabulary
	logger   *zap.Logger
}

func (s *scopeCapture) addElement(element model.Element) {
	s.template.Components = append(s.template.Components, element)
}

func (s *scopeCapture) addController(node workspace.NodeDescriptor) {
	s.template.Controllers = append(s.template.Controllers, model.Controller{
		ID:         node.ID,
		Name:       node.Name,
		Type:       s.vocab.Canonicalize(node.Type, node.Bundle),
		Comment:    node.Comments,
		Properties: defaults.PropertiesDelta(node.Properties, node.Descriptors),
	})
}

func (s *scopeCapture) processorElement(node workspace.NodeDescriptor) model.Element {
	element := model.Element{
		Name:       node.Name,
		Type:       elideType(s.vocab.Canonicalize(node.Type, node.Bundle), node.Name),
		ID:         node.ID,
		Position:   model.FormatPosition(node.Position),
		Comment:    node.Comments,
		Properties: defaults.PropertiesDelta(node.Properties, node.Descriptors),
		Styles:     defaults.StyleDelta(node.Style),
		Scheduling: defaults.SchedulingDelta(node.Scheduling),
	}
	ruleSet, err := rules.Decode(node.AnnotationData)
	if err != nil {
		s.logger.Warn("Annotation data is not a rule set and was not captured", zap.String("processor", node.ID),
			zap.Error(err))
	}
	element.Advanced = ruleSet
	return element
}

// elideType drops the type of an element whose name already says it. Names that collide with a reserved
// kind always keep their type.
func elideType(canonical, name string) string {
	if canonical != name {
		return canonical
	}
	if _, reserved := model.ParseReservedKind(name); reserved {
		return canonical
	}
	return ""
}

func groupElement(node workspace.NodeDescriptor) model.Element {
	return model.Element{
		Name:     node.Name,
		Type:     string(model.ReservedProcessGroup),
		ID:       node.ID,
		Template: model.FileNameFor(node.ID),
		Position: model.FormatPosition(node.Position),
		Comment:  node.Comments,
	}
}

func remoteGroupElement(node workspace.NodeDescriptor) model.Element {
	element := model.Element{
		Name:       node.Name,
		Type:       string(model.ReservedRemoteProcessGroup),
		ID:         node.ID,
		Position:   model.FormatPosition(node.Position),
		Comment:    node.Comments,
		Properties: defaults.RemoteGroupDelta(node.Remote),
	}
	if node.RemoteContents == nil {
		return element
	}
	for _, port := range node.RemoteContents.InputPorts {
		if record, changed := defaults.RemotePortDelta(port, model.RemotePortInput); changed {
			element.RemotePorts = append(element.RemotePorts, record)
		}
	}
	for _, port := range node.RemoteContents.OutputPorts {
		if record, changed := defaults.RemotePortDelta(port, model.RemotePortOutput); changed {
			element.RemotePorts = append(element.RemotePorts, record)
		}
	}
	return element
}

func portElement(node workspace.NodeDescriptor) model.Element {
	kind := model.ReservedInputPort
	if node.Kind == workspace.KindOutputPort {
		kind = model.ReservedOutputPort
	}
	return model.Element{
		Name:     node.Name,
		Type:     string(kind),
		ID:       node.ID,
		Position: model.FormatPosition(node.Position),
		Comment:  node.Comments,
	}
}

func funnelElement(node workspace.NodeDescriptor) model.Element {
	return model.Element{
		Type:     string(model.ReservedFunnel),
		ID:       node.ID,
		Position: model.FormatPosition(node.Position),
	}
}

func labelElement(node workspace.NodeDescriptor) model.Element {
	return model.Element{
		Type:     string(model.ReservedLabel),
		ID:       node.ID,
		Position: model.FormatPosition(node.Position),
		Comment:  node.Label,
		Styles:   defaults.LabelStyleDelta(node.Style, node.Width, node.Height),
	}
}

// addConnection stores a connection as an input of the element it ends on. Ends on a port inside a child
// group or a remote group are attributed to the group and carry the port name.
func (s *scopeCapture) addConnection(conn workspace.ConnectionDescriptor) error {
	input := model.InputConnection{
		Properties: defaults.ConnectionDelta(conn.Settings),
		Bends:      model.FormatBends(conn.Bends),
	}

	switch {
	case conn.Source.Kind == workspace.ConnectableRemoteOutputPort,
		conn.Source.Kind == workspace.ConnectableOutputPort && conn.Source.GroupID != s.scopeID:
		input.Source = conn.Source.GroupID
		input.FromPort = conn.Source.Name
	default:
		input.Source = conn.Source.ID
		if conn.Source.Kind == workspace.ConnectableProcessor {
			input.Relationships = append([]string(nil), conn.SelectedRelationships...)
			sort.Strings(input.Relationships)
		}
	}

	targetID := conn.Destination.ID
	switch {
	case conn.Destination.Kind == workspace.ConnectableRemoteInputPort,
		conn.Destination.Kind == workspace.ConnectableInputPort && conn.Destination.GroupID != s.scopeID:
		targetID = conn.Destination.GroupID
		input.ToPort = conn.Destination.Name
	}

	target, ok := s.template.FindElement(targetID)
	if !ok {
		return fmt.Errorf("%w: connection %s ends on %s", ErrDanglingConnection, conn.ID, targetID)
	}
	target.Inputs = append(target.Inputs, input)
	return nil
}

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

// Package capture walks a live workspace and produces one template per nested scope.
package capture

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/asgardeo/templatizer/internal/dependency"
	"github.com/asgardeo/templatizer/internal/system/constants"
	"github.com/asgardeo/templatizer/internal/system/log"
	"github.com/asgardeo/templatizer/internal/system/metrics"
	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/workspace"
)

// ErrDanglingConnection is returned when a connection ends on a node that is not part of its scope.
var ErrDanglingConnection = errors.New("connection target is not part of the scope")

// ErrWorkspaceCall wraps every failure reported by the workspace during capture.
var ErrWorkspaceCall = errors.New("workspace call failed")

// Options configures an Exporter.
type Options struct {
	RootAlias string
	Logger    *zap.Logger
	Metrics   *metrics.RunMetrics
}

// Exporter captures a scope and everything nested under it.
type Exporter struct {
	client    workspace.ClientInterface
	rootAlias string
	logger    *zap.Logger
	metrics   *metrics.RunMetrics
}

// NewExporter creates an exporter reading through client.
func NewExporter(client workspace.ClientInterface, opts Options) *Exporter {
	if opts.RootAlias == "" {
		opts.RootAlias = constants.RootScopeAlias
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.NewRunMetrics(nil)
	}
	return &Exporter{
		client:    client,
		rootAlias: opts.RootAlias,
		logger:    logger.With(zap.String(log.LoggerKeyComponentName, "Exporter")),
		metrics:   m,
	}
}

// Export captures scopeID depth first. The first template describes scopeID itself and is named after the
// root alias when scopeID is the alias. Every other template is named after the id of its group.
func (e *Exporter) Export(ctx context.Context, scopeID string) ([]*model.Template, error) {
	scope, err := e.client.GetScope(ctx, scopeID)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving scope %s: %w", ErrWorkspaceCall, scopeID, err)
	}

	name := scope.ID
	if scopeID == e.rootAlias {
		name = e.rootAlias
	}

	var templates []*model.Template
	if err := e.exportScope(ctx, scope.ID, name, &templates); err != nil {
		return templates, err
	}
	e.logger.Info("Capture completed", zap.String(log.LoggerKeyScopeID, scope.ID),
		zap.Int("templates", len(templates)))
	return templates, nil
}

func (e *Exporter) exportScope(ctx context.Context, scopeID, name string, out *[]*model.Template) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := e.logger.With(zap.String(log.LoggerKeyScopeID, scopeID), zap.String(log.LoggerKeyTemplate, name))
	logger.Debug("Capturing scope")

	s := &scopeCapture{
		scopeID:  scopeID,
		template: &model.Template{Name: name},
		vocab:    dependency.NewVocabulary(),
		logger:   logger,
	}
	*out = append(*out, s.template)

	listed, err := e.listScope(ctx, scopeID)
	if err != nil {
		return err
	}

	for _, node := range listed[workspace.KindControllerService] {
		s.addController(node)
	}
	for _, node := range listed[workspace.KindProcessGroup] {
		s.addElement(groupElement(node))
	}
	for _, node := range listed[workspace.KindRemoteProcessGroup] {
		contents, err := e.client.GetRemoteGroupContents(ctx, node.ID)
		if err != nil {
			return fmt.Errorf("%w: fetching contents of remote group %s: %w", ErrWorkspaceCall, node.ID, err)
		}
		node.RemoteContents = contents
		s.addElement(remoteGroupElement(node))
	}
	for _, node := range listed[workspace.KindProcessor] {
		s.addElement(s.processorElement(node))
	}
	for _, kind := range []workspace.NodeKind{workspace.KindInputPort, workspace.KindOutputPort} {
		for _, node := range listed[kind] {
			s.addElement(portElement(node))
		}
	}
	for _, node := range listed[workspace.KindFunnel] {
		s.addElement(funnelElement(node))
	}
	for _, node := range listed[workspace.KindLabel] {
		s.addElement(labelElement(node))
	}

	connections, err := e.client.ListConnections(ctx, scopeID)
	if err != nil {
		return fmt.Errorf("%w: listing connections of %s: %w", ErrWorkspaceCall, scopeID, err)
	}
	for _, conn := range connections {
		if err := s.addConnection(conn); err != nil {
			return err
		}
	}

	s.template.Dependencies = s.vocab.Tree()
	e.metrics.TemplatesCaptured.Inc()
	for _, element := range s.template.Components {
		e.metrics.ElementsCaptured.WithLabelValues(string(element.Kind())).Inc()
	}

	for _, group := range listed[workspace.KindProcessGroup] {
		if err := e.exportScope(ctx, group.ID, group.ID, out); err != nil {
			return err
		}
	}
	return nil
}

var capturedKinds = []workspace.NodeKind{
	workspace.KindControllerService,
	workspace.KindProcessGroup,
	workspace.KindRemoteProcessGroup,
	workspace.KindProcessor,
	workspace.KindInputPort,
	workspace.KindOutputPort,
	workspace.KindFunnel,
	workspace.KindLabel,
}

func (e *Exporter) listScope(ctx context.Context, scopeID string) (
	map[workspace.NodeKind][]workspace.NodeDescriptor, error) {
	listed := make(map[workspace.NodeKind][]workspace.NodeDescriptor, len(capturedKinds))
	for _, kind := range capturedKinds {
		nodes, err := e.client.ListNodes(ctx, scopeID, kind)
		if err != nil {
			return nil, fmt.Errorf("%w: listing %s nodes of %s: %w", ErrWorkspaceCall, kind, scopeID, err)
		}
		listed[kind] = nodes
	}
	return listed, nil
}

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

// Package builder reconstructs a template set inside a live workspace.
package builder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/asgardeo/templatizer/internal/dependency"
	"github.com/asgardeo/templatizer/internal/identity"
	"github.com/asgardeo/templatizer/internal/system/constants"
	"github.com/asgardeo/templatizer/internal/system/log"
	"github.com/asgardeo/templatizer/internal/system/metrics"
	"github.com/asgardeo/templatizer/internal/system/retry"
	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/workspace"
)

// TemplateSource looks templates up by file name.
type TemplateSource interface {
	Get(fileName string) (*model.Template, bool)
}

// Options configures a reconstruction run.
type Options struct {
	// RootAlias is the nominal id of the top level scope. Defaults to "root".
	RootAlias string
	// AutoTerminate marks relationships that no created edge uses as auto-terminated.
	AutoTerminate bool
	// RemotePortRetry bounds the wait for remote group contents.
	RemotePortRetry retry.Config
	Logger          *zap.Logger
	Metrics         *metrics.RunMetrics
}

// SkippedEdge is a connection that was not created because a remote port never appeared.
type SkippedEdge struct {
	ScopeID     string
	SourceID    string
	TargetID    string
	PortName    string
	Description string
}

// Result summarises a reconstruction run. It is returned even when the run fails part way.
type Result struct {
	RootScopeID        string
	NodesCreated       map[workspace.NodeKind]int
	ConnectionsCreated int
	SkippedEdges       []SkippedEdge
	AutoTerminated     map[string][]string
	Mappings           []identity.Mapping
	Duration           time.Duration
}

// scopeFrame is the immutable state of one scope being reconstructed.
type scopeFrame struct {
	id       string
	template *model.Template
	deps     *dependency.Vocabulary
	logger   *zap.Logger
}

// Builder recreates the nodes and edges of a template set. A Builder runs one build at a time.
type Builder struct {
	client    workspace.ClientInterface
	templates TemplateSource
	opts      Options
	logger    *zap.Logger
	metrics   *metrics.RunMetrics

	tracker        *identity.Tracker
	frames         []scopeFrame
	rootID         string
	declared       map[string][]string
	used           map[string]map[string]bool
	remoteContents map[string]*workspace.RemoteGroupContents
	result         *Result
}

// NewBuilder creates a builder that reads templates from templates and writes through client.
func NewBuilder(client workspace.ClientInterface, templates TemplateSource, opts Options) *Builder {
	if opts.RootAlias == "" {
		opts.RootAlias = constants.RootScopeAlias
	}
	if opts.RemotePortRetry.MaxAttempts == 0 {
		opts.RemotePortRetry = retry.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.NewRunMetrics(nil)
	}
	return &Builder{
		client:    client,
		templates: templates,
		opts:      opts,
		logger:    logger.With(zap.String(log.LoggerKeyComponentName, "GraphBuilder")),
		metrics:   m,
	}
}

// Build reconstructs rootTemplate, and every template it references, inside scopeID. Nodes created before
// a failure are left in place.
func (b *Builder) Build(ctx context.Context, scopeID, rootTemplate string) (*Result, error) {
	start := time.Now()
	b.reset()

	tpl, ok := b.templates.Get(rootTemplate)
	if !ok {
		return b.finish(start), fmt.Errorf("%w: %s", ErrMissingTemplate, rootTemplate)
	}

	b.logger.Info("Starting reconstruction", zap.String(log.LoggerKeyScopeID, scopeID),
		zap.String(log.LoggerKeyTemplate, rootTemplate))

	err := b.buildScope(ctx, scopeID, tpl)
	result := b.finish(start)
	if err != nil {
		b.logger.Error("Reconstruction aborted", zap.Error(err), zap.Int("mappedIds", len(result.Mappings)))
		return result, err
	}

	b.logger.Info("Reconstruction completed", zap.Int("connections", result.ConnectionsCreated),
		zap.Int("skippedConnections", len(result.SkippedEdges)), zap.Duration("duration", result.Duration))
	return result, nil
}

// Tracker exposes the identity tracker of the last run.
func (b *Builder) Tracker() *identity.Tracker {
	return b.tracker
}

func (b *Builder) reset() {
	b.tracker = identity.NewTracker()
	b.frames = nil
	b.rootID = ""
	b.declared = map[string][]string{}
	b.used = map[string]map[string]bool{}
	b.remoteContents = map[string]*workspace.RemoteGroupContents{}
	b.result = &Result{
		NodesCreated:   map[workspace.NodeKind]int{},
		AutoTerminated: map[string][]string{},
	}
}

func (b *Builder) finish(start time.Time) *Result {
	b.result.RootScopeID = b.rootID
	b.result.Mappings = b.tracker.Mappings()
	b.result.Duration = time.Since(start)
	return b.result
}

// buildScope runs every phase for one scope, recursing into nested groups during phase three.
func (b *Builder) buildScope(ctx context.Context, nominalID string, tpl *model.Template) error {
	scopeID, err := b.resolveScopeID(ctx, nominalID)
	if err != nil {
		return err
	}

	deps, err := dependency.FromTree(tpl.Dependencies)
	if err != nil {
		return fmt.Errorf("%w: template %s: %w", ErrInvalidTemplate, tpl.Name, err)
	}

	b.push(scopeFrame{
		id:       scopeID,
		template: tpl,
		deps:     deps,
		logger:   b.logger.With(zap.String(log.LoggerKeyScopeID, scopeID), zap.String(log.LoggerKeyTemplate, tpl.Name)),
	})
	defer b.pop()

	frame := b.current()
	frame.logger.Debug("Entering scope", zap.Int("components", len(tpl.Components)),
		zap.Int("controllers", len(tpl.Controllers)), zap.Int("depth", len(b.frames)))

	phases := []struct {
		name string
		run  func(context.Context, scopeFrame) error
	}{
		{"groups", b.createGroups},
		{"controllers", b.createControllers},
		{"elements", b.createElements},
		{"linkage", b.createLinkage},
		{"remote ports", b.configureRemotePorts},
	}
	if b.opts.AutoTerminate {
		phases = append(phases, struct {
			name string
			run  func(context.Context, scopeFrame) error
		}{"auto-termination", b.autoTerminate})
	}

	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := phase.run(ctx, frame); err != nil {
			return fmt.Errorf("scope %s (%s), %s: %w", scopeID, tpl.Name, phase.name, err)
		}
	}

	b.metrics.ScopesBuilt.Inc()
	frame.logger.Debug("Leaving scope")
	return nil
}

// resolveScopeID replaces the root alias with the real id of the root group. It is fetched once per run.
func (b *Builder) resolveScopeID(ctx context.Context, nominalID string) (string, error) {
	if nominalID != b.opts.RootAlias {
		if b.rootID == "" {
			b.rootID = nominalID
		}
		return nominalID, nil
	}
	if b.rootID != "" {
		return b.rootID, nil
	}
	scope, err := b.client.GetScope(ctx, nominalID)
	if err != nil {
		return "", fmt.Errorf("%w: resolving scope %s: %w", ErrRemoteCall, nominalID, err)
	}
	b.rootID = scope.ID
	return scope.ID, nil
}

func (b *Builder) push(frame scopeFrame) {
	b.frames = append(b.frames, frame)
}

func (b *Builder) pop() {
	b.frames = b.frames[:len(b.frames)-1]
}

func (b *Builder) current() scopeFrame {
	return b.frames[len(b.frames)-1]
}

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

// Package importer loads a template directory and reconstructs it inside the workspace.
package importer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asgardeo/templatizer/internal/builder"
	"github.com/asgardeo/templatizer/internal/dependency"
	"github.com/asgardeo/templatizer/internal/identity"
	"github.com/asgardeo/templatizer/internal/importer/constants"
	"github.com/asgardeo/templatizer/internal/ledger"
	sysconstants "github.com/asgardeo/templatizer/internal/system/constants"
	"github.com/asgardeo/templatizer/internal/system/error/serviceerror"
	"github.com/asgardeo/templatizer/internal/system/log"
	"github.com/asgardeo/templatizer/internal/system/metrics"
	"github.com/asgardeo/templatizer/internal/system/retry"
	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/template/store"
	"github.com/asgardeo/templatizer/internal/template/validate"
	"github.com/asgardeo/templatizer/internal/workspace"
)

// ImportServiceInterface reconstructs a template directory.
type ImportServiceInterface interface {
	Run(ctx context.Context, directory string) (*ImportSummary, *serviceerror.ServiceError)
}

// Options configures an ImportService.
type Options struct {
	RootAlias string
	// RootTemplate is the file describing the root scope. Defaults to "<RootAlias>.yaml".
	RootTemplate    string
	AutoTerminate   bool
	Validate        bool
	RemotePortRetry retry.Config
	// Ledger records every run. Nil disables recording.
	Ledger  ledger.LedgerStoreInterface
	Logger  *zap.Logger
	Metrics *metrics.RunMetrics
}

// ImportSummary describes a finished import. It is returned for failed runs too.
type ImportSummary struct {
	RunID              string
	RootScopeID        string
	NodesCreated       int
	ConnectionsCreated int
	AutoTerminated     int
	SkippedEdges       []builder.SkippedEdge
	Duration           time.Duration
}

// ImportService is the default implementation of ImportServiceInterface.
type ImportService struct {
	client workspace.ClientInterface
	opts   Options
	logger *zap.Logger
}

// NewImportService creates an import service writing through client.
func NewImportService(client workspace.ClientInterface, opts Options) ImportServiceInterface {
	if opts.RootAlias == "" {
		opts.RootAlias = sysconstants.RootScopeAlias
	}
	if opts.RootTemplate == "" {
		opts.RootTemplate = model.FileNameFor(opts.RootAlias)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	return &ImportService{
		client: client,
		opts:   opts,
		logger: logger.With(zap.String(log.LoggerKeyComponentName, "ImportService")),
	}
}

// Run loads directory, optionally validates it, rebuilds it and records the run.
func (s *ImportService) Run(ctx context.Context, directory string) (*ImportSummary, *serviceerror.ServiceError) {
	set, err := store.Load(directory)
	if err != nil {
		s.logger.Error("Failed to load templates", zap.String("directory", directory), zap.Error(err))
		return nil, serviceerror.CustomServiceError(constants.ErrorTemplateLoadFailed, err.Error())
	}

	if s.opts.Validate {
		if err := validate.Validate(set, s.opts.RootTemplate); err != nil {
			s.logger.Error("Template validation failed", zap.Error(err))
			return nil, serviceerror.CustomServiceError(constants.ErrorValidationFailed, err.Error())
		}
	}

	runID := uuid.NewString()
	logger := s.logger.With(zap.String(log.LoggerKeyRunID, runID))
	started := time.Now()

	b := builder.NewBuilder(s.client, set, builder.Options{
		RootAlias:       s.opts.RootAlias,
		AutoTerminate:   s.opts.AutoTerminate,
		RemotePortRetry: s.opts.RemotePortRetry,
		Logger:          logger,
		Metrics:         s.opts.Metrics,
	})
	result, buildErr := b.Build(ctx, s.opts.RootAlias, s.opts.RootTemplate)

	summary := summarise(runID, result)
	var svcErr *serviceerror.ServiceError
	if buildErr != nil {
		svcErr = mapBuildError(buildErr)
	}
	for _, edge := range summary.SkippedEdges {
		logger.Warn(constants.ErrorRemotePortNotDiscovered.String(), zap.String("source", edge.SourceID),
			zap.String("target", edge.TargetID), zap.String("port", edge.PortName))
	}

	s.record(logger, runID, directory, started, result, svcErr)
	return summary, svcErr
}

func summarise(runID string, result *builder.Result) *ImportSummary {
	summary := &ImportSummary{
		RunID:              runID,
		RootScopeID:        result.RootScopeID,
		ConnectionsCreated: result.ConnectionsCreated,
		SkippedEdges:       result.SkippedEdges,
		Duration:           result.Duration,
	}
	for _, n := range result.NodesCreated {
		summary.NodesCreated += n
	}
	for _, rels := range result.AutoTerminated {
		summary.AutoTerminated += len(rels)
	}
	return summary
}

// record stores the run in the ledger. A ledger failure is logged and does not fail the import.
func (s *ImportService) record(logger *zap.Logger, runID, directory string, started time.Time,
	result *builder.Result, svcErr *serviceerror.ServiceError) {
	if s.opts.Ledger == nil {
		return
	}

	run := ledger.Run{
		ID:                 runID,
		RootScopeID:        result.RootScopeID,
		TemplateDir:        directory,
		Status:             ledger.RunStatusSucceeded,
		StartedAt:          started,
		FinishedAt:         started.Add(result.Duration),
		ConnectionsCreated: result.ConnectionsCreated,
	}
	for _, n := range result.NodesCreated {
		run.NodesCreated += n
	}
	if svcErr != nil {
		run.Status = ledger.RunStatusFailed
		run.ErrorCode = svcErr.Code
		run.ErrorDescription = svcErr.ErrorDescription
	}

	mappings := make([]ledger.Mapping, 0, len(result.Mappings))
	for _, m := range result.Mappings {
		mappings = append(mappings, ledger.Mapping{OldID: m.OldID, NewID: m.NewID})
	}
	skipped := make([]ledger.SkippedEdge, 0, len(result.SkippedEdges))
	for _, e := range result.SkippedEdges {
		skipped = append(skipped, ledger.SkippedEdge(e))
	}

	if err := s.opts.Ledger.RecordRun(run, mappings, skipped); err != nil {
		logger.Error("Failed to record run in the ledger", zap.Error(err))
	}
}

// mapBuildError turns a reconstruction error into its catalogue entry. The original error text is kept as
// the description.
func mapBuildError(err error) *serviceerror.ServiceError {
	var base serviceerror.ServiceError
	switch {
	case errors.Is(err, dependency.ErrUnknownDependency), errors.Is(err, dependency.ErrAmbiguousDependency):
		base = constants.ErrorUnknownDependency
	case errors.Is(err, identity.ErrDuplicateNamedIdentity):
		base = constants.ErrorDuplicateNamedIdentity
	case errors.Is(err, identity.ErrConflictingIdentity):
		base = constants.ErrorConflictingIdentity
	case errors.Is(err, builder.ErrMissingTemplate):
		base = constants.ErrorMissingTemplate
	case errors.Is(err, builder.ErrUnresolvedEndpoint):
		base = constants.ErrorUnresolvedEndpoint
	case errors.Is(err, builder.ErrInvalidTemplate):
		base = constants.ErrorInvalidTemplateValue
	case errors.Is(err, builder.ErrRemoteCall):
		base = constants.ErrorRemoteCallFailed
	default:
		base = constants.ErrorImportInterrupted
	}
	return serviceerror.CustomServiceError(base, err.Error())
}

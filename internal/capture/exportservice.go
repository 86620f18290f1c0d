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
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/asgardeo/templatizer/internal/capture/constants"
	"github.com/asgardeo/templatizer/internal/system/error/serviceerror"
	"github.com/asgardeo/templatizer/internal/system/log"
	"github.com/asgardeo/templatizer/internal/template/store"
	"github.com/asgardeo/templatizer/internal/workspace"
)

// ExportServiceInterface captures the workspace into a template directory.
type ExportServiceInterface interface {
	Run(ctx context.Context, directory string) (*ExportSummary, *serviceerror.ServiceError)
}

// ExportSummary describes a finished export.
type ExportSummary struct {
	Directory string
	Templates []string
	Elements  int
}

// ExportService is the default implementation of ExportServiceInterface.
type ExportService struct {
	exporter  *Exporter
	rootAlias string
	logger    *zap.Logger
}

// NewExportService creates an export service reading through client.
func NewExportService(client workspace.ClientInterface, opts Options) ExportServiceInterface {
	exporter := NewExporter(client, opts)
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	return &ExportService{
		exporter:  exporter,
		rootAlias: exporter.rootAlias,
		logger:    logger.With(zap.String(log.LoggerKeyComponentName, "ExportService")),
	}
}

// Run captures the root scope and writes one file per template into directory.
func (s *ExportService) Run(ctx context.Context, directory string) (*ExportSummary, *serviceerror.ServiceError) {
	if directory == "" {
		return nil, &constants.ErrorInvalidExportDirectory
	}

	templates, err := s.exporter.Export(ctx, s.rootAlias)
	if err != nil {
		s.logger.Error("Failed to capture workspace", zap.Error(err))
		if errors.Is(err, ErrDanglingConnection) {
			return nil, serviceerror.CustomServiceError(constants.ErrorDanglingConnection, err.Error())
		}
		return nil, serviceerror.CustomServiceError(constants.ErrorCaptureFailed, err.Error())
	}

	if err := store.Write(directory, templates); err != nil {
		s.logger.Error("Failed to write templates", zap.Error(err), zap.String("directory", directory))
		return nil, serviceerror.CustomServiceError(constants.ErrorTemplateWriteFailed, err.Error())
	}

	summary := &ExportSummary{Directory: directory}
	for _, tpl := range templates {
		summary.Templates = append(summary.Templates, tpl.FileName())
		summary.Elements += len(tpl.Components)
	}
	s.logger.Info("Export completed", zap.String("directory", directory), zap.Int("templates", len(templates)))
	return summary, nil
}

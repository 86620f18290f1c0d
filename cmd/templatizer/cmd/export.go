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


package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asgardeo/templatizer/internal/capture"
)

func exportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "export [directory]",
		Short: "Capture the workspace into a directory of templates.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runMetrics, reg := newMetrics()
			defer e.writeMetrics(reg)

			svc := capture.NewExportService(e.client(), capture.Options{
				RootAlias: e.cfg.Workspace.RootAlias,
				Metrics:   runMetrics,
			})
			summary, svcErr := svc.Run(cmd.Context(), directoryArg(args, e.cfg.Export.Directory))
			if svcErr != nil {
				return errors.New(svcErr.String())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d templates with %d elements written to %s\n", len(summary.Templates),
				summary.Elements, summary.Directory)
			return nil
		},
	}
}

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
	"time"

	"github.com/spf13/cobra"

	"github.com/asgardeo/templatizer/internal/importer"
	"github.com/asgardeo/templatizer/internal/importer/constants"
	"github.com/asgardeo/templatizer/internal/system/retry"
)

func importCmd(e *env) *cobra.Command {
	var (
		autoTerminate bool
		validate      bool
		rootTemplate  string
	)

	cmd := &cobra.Command{
		Use:   "import [directory]",
		Short: "Rebuild the templates of a directory inside the workspace.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := e.cfg
			if cmd.Flags().Changed("auto-terminate") {
				cfg.Import.AutoTerminate = autoTerminate
			}
			if cmd.Flags().Changed("validate") {
				cfg.Import.Validate = validate
			}
			directory := directoryArg(args, cfg.Import.Directory)

			ledgerStore, closeLedger, err := e.openLedger()
			if err != nil {
				return err
			}
			defer closeLedger()

			runMetrics, reg := newMetrics()
			defer e.writeMetrics(reg)

			discovery := cfg.Import.RemotePortDiscovery
			svc := importer.NewImportService(e.client(), importer.Options{
				RootAlias:     cfg.Workspace.RootAlias,
				RootTemplate:  rootTemplate,
				AutoTerminate: cfg.Import.AutoTerminate,
				Validate:      cfg.Import.Validate,
				RemotePortRetry: retry.Config{
					MaxAttempts:     discovery.MaxAttempts,
					InitialInterval: time.Duration(discovery.InitialIntervalMs) * time.Millisecond,
					MaxInterval:     time.Duration(discovery.MaxIntervalMs) * time.Millisecond,
				},
				Ledger:  ledgerStore,
				Metrics: runMetrics,
			})

			summary, svcErr := svc.Run(cmd.Context(), directory)
			out := cmd.OutOrStdout()
			if summary != nil {
				fmt.Fprintf(out, "run %s: %d nodes and %d connections created under %s in %s\n", summary.RunID,
					summary.NodesCreated, summary.ConnectionsCreated, summary.RootScopeID,
					summary.Duration.Round(time.Millisecond))
				if summary.AutoTerminated > 0 {
					fmt.Fprintf(out, "%d relationships auto-terminated\n", summary.AutoTerminated)
				}
				for _, edge := range summary.SkippedEdges {
					fmt.Fprintf(out, "%s: skipped %s -> %s (port %s)\n", constants.ErrorRemotePortNotDiscovered.Code,
						edge.SourceID, edge.TargetID, edge.PortName)
				}
			}
			if svcErr != nil {
				return errors.New(svcErr.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&autoTerminate, "auto-terminate", false,
		"Auto-terminate processor relationships that no connection uses")
	cmd.Flags().BoolVar(&validate, "validate", false, "Validate the whole template set before touching the workspace")
	cmd.Flags().StringVar(&rootTemplate, "root-template", "",
		"Template file describing the root scope (defaults to <root alias>.yaml)")
	return cmd
}

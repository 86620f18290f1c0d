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
)

func runCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "run <run-id>",
		Short: "Show a recorded import run with its id mappings and skipped connections.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeLedger, err := e.openLedger()
			if err != nil {
				return err
			}
			defer closeLedger()
			if store == nil {
				return errors.New("the run ledger is not configured")
			}

			run, err := store.GetRun(args[0])
			if err != nil {
				return err
			}
			mappings, err := store.ListMappings(run.ID)
			if err != nil {
				return err
			}
			skipped, err := store.ListSkippedEdges(run.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s %s\n", run.ID, run.Status)
			fmt.Fprintf(out, "  directory:   %s\n", run.TemplateDir)
			fmt.Fprintf(out, "  root scope:  %s\n", run.RootScopeID)
			fmt.Fprintf(out, "  started:     %s\n", run.StartedAt.Format(time.RFC3339))
			fmt.Fprintf(out, "  finished:    %s\n", run.FinishedAt.Format(time.RFC3339))
			fmt.Fprintf(out, "  nodes:       %d\n", run.NodesCreated)
			fmt.Fprintf(out, "  connections: %d\n", run.ConnectionsCreated)
			if run.ErrorCode != "" {
				fmt.Fprintf(out, "  error:       %s %s\n", run.ErrorCode, run.ErrorDescription)
			}
			for _, m := range mappings {
				fmt.Fprintf(out, "  %s -> %s\n", m.OldID, m.NewID)
			}
			for _, s := range skipped {
				fmt.Fprintf(out, "  skipped %s -> %s (port %s): %s\n", s.SourceID, s.TargetID, s.PortName, s.Description)
			}
			return nil
		},
	}
}

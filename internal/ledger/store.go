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

package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/asgardeo/templatizer/internal/system/database/model"
	"github.com/asgardeo/templatizer/internal/system/database/provider"
	"github.com/asgardeo/templatizer/internal/system/log"
)

const loggerComponentName = "LedgerStore"

// LedgerStoreInterface persists reconstruction runs.
type LedgerStoreInterface interface {
	Init() error
	RecordRun(run Run, mappings []Mapping, skipped []SkippedEdge) error
	GetRun(runID string) (*Run, error)
	ListMappings(runID string) ([]Mapping, error)
	ListSkippedEdges(runID string) ([]SkippedEdge, error)
}

// LedgerStore is the SQL implementation of LedgerStoreInterface.
type LedgerStore struct {
	DBProvider provider.DBProviderInterface
}

// NewLedgerStore creates a ledger store on top of the given provider.
func NewLedgerStore(dbProvider provider.DBProviderInterface) LedgerStoreInterface {
	return &LedgerStore{DBProvider: dbProvider}
}

// Init creates the ledger tables when they do not exist yet.
func (s *LedgerStore) Init() error {
	logger := log.GetLogger().With(zap.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.DBProvider.GetDBClient(provider.LedgerDBName)
	if err != nil {
		logger.Error("Failed to get database client", zap.Error(err))
		return err
	}
	for _, query := range []model.DBQuery{QueryCreateRunTable, QueryCreateMappingTable, QueryCreateSkippedEdgeTable} {
		if _, err := dbClient.Execute(query); err != nil {
			return fmt.Errorf("failed to initialise ledger table (%s): %w", query.GetID(), err)
		}
	}
	return nil
}

// RecordRun stores a run together with its mappings and skipped edges in one transaction.
func (s *LedgerStore) RecordRun(run Run, mappings []Mapping, skipped []SkippedEdge) error {
	logger := log.GetLogger().With(zap.String(log.LoggerKeyComponentName, loggerComponentName),
		zap.String(log.LoggerKeyRunID, run.ID))

	dbClient, err := s.DBProvider.GetDBClient(provider.LedgerDBName)
	if err != nil {
		logger.Error("Failed to get database client", zap.Error(err))
		return err
	}

	tx, err := dbClient.BeginTx()
	if err != nil {
		logger.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	rollback := func(cause error) error {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			logger.Error("Failed to rollback transaction", zap.Error(rollbackErr))
			return errors.Join(cause, fmt.Errorf("failed to rollback transaction: %w", rollbackErr))
		}
		return cause
	}

	if _, err := tx.Execute(QueryInsertRun, run.ID, run.RootScopeID, run.TemplateDir, string(run.Status),
		formatTime(run.StartedAt), formatTime(run.FinishedAt), run.NodesCreated, run.ConnectionsCreated,
		run.ErrorCode, run.ErrorDescription); err != nil {
		logger.Error("Failed to insert run", zap.Error(err))
		return rollback(fmt.Errorf("failed to insert run: %w", err))
	}
	for i, m := range mappings {
		if _, err := tx.Execute(QueryInsertMapping, run.ID, i, m.OldID, m.NewID); err != nil {
			logger.Error("Failed to insert id mapping", zap.Error(err))
			return rollback(fmt.Errorf("failed to insert id mapping %s: %w", m.OldID, err))
		}
	}
	for i, e := range skipped {
		if _, err := tx.Execute(QueryInsertSkippedEdge, run.ID, i, e.ScopeID, e.SourceID, e.TargetID, e.PortName,
			e.Description); err != nil {
			logger.Error("Failed to insert skipped edge", zap.Error(err))
			return rollback(fmt.Errorf("failed to insert skipped edge: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	logger.Debug("Run recorded", zap.Int("mappings", len(mappings)), zap.Int("skipped", len(skipped)))
	return nil
}

// GetRun returns the run with the given id.
func (s *LedgerStore) GetRun(runID string) (*Run, error) {
	results, err := s.query(QueryGetRun, runID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrRunNotFound
	}
	row := results[0]

	run := &Run{
		ID:               asString(row["run_id"]),
		RootScopeID:      asString(row["root_scope_id"]),
		TemplateDir:      asString(row["template_dir"]),
		Status:           RunStatus(asString(row["status"])),
		ErrorCode:        asString(row["error_code"]),
		ErrorDescription: asString(row["error_description"]),
	}
	if run.StartedAt, err = parseTime(row["started_at"]); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(row["finished_at"]); err != nil {
		return nil, err
	}
	if run.NodesCreated, err = asInt(row["nodes_created"]); err != nil {
		return nil, err
	}
	if run.ConnectionsCreated, err = asInt(row["connections_created"]); err != nil {
		return nil, err
	}
	return run, nil
}

// ListMappings returns the id mappings of a run in the order they were made.
func (s *LedgerStore) ListMappings(runID string) ([]Mapping, error) {
	results, err := s.query(QueryListMappings, runID)
	if err != nil {
		return nil, err
	}
	mappings := make([]Mapping, 0, len(results))
	for _, row := range results {
		mappings = append(mappings, Mapping{OldID: asString(row["old_id"]), NewID: asString(row["new_id"])})
	}
	return mappings, nil
}

// ListSkippedEdges returns the connections a run skipped.
func (s *LedgerStore) ListSkippedEdges(runID string) ([]SkippedEdge, error) {
	results, err := s.query(QueryListSkippedEdges, runID)
	if err != nil {
		return nil, err
	}
	edges := make([]SkippedEdge, 0, len(results))
	for _, row := range results {
		edges = append(edges, SkippedEdge{
			ScopeID:     asString(row["scope_id"]),
			SourceID:    asString(row["source_id"]),
			TargetID:    asString(row["target_id"]),
			PortName:    asString(row["port_name"]),
			Description: asString(row["description"]),
		})
	}
	return edges, nil
}

func (s *LedgerStore) query(query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
	dbClient, err := s.DBProvider.GetDBClient(provider.LedgerDBName)
	if err != nil {
		return nil, err
	}
	results, err := dbClient.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query %s: %w", query.GetID(), err)
	}
	return results, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(v interface{}) (time.Time, error) {
	s := asString(v)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse ledger timestamp %q: %w", s, err)
	}
	return t, nil
}

// asString reads a text column. NULL reads as empty.
func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt(v interface{}) (int, error) {
	switch value := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return int(value), nil
	case int:
		return value, nil
	case []byte:
		return strconv.Atoi(string(value))
	case string:
		return strconv.Atoi(value)
	default:
		return 0, fmt.Errorf("unexpected integer column type %T", v)
	}
}

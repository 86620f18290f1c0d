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


package ledgermock

import (
	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/templatizer/internal/ledger"
)

// LedgerStoreMock is a testify mock of ledger.LedgerStoreInterface.
type LedgerStoreMock struct {
	mock.Mock
}

// Init mocks ledger.LedgerStoreInterface.Init.
func (m *LedgerStoreMock) Init() error {
	return m.Called().Error(0)
}

// RecordRun mocks ledger.LedgerStoreInterface.RecordRun.
func (m *LedgerStoreMock) RecordRun(run ledger.Run, mappings []ledger.Mapping, skipped []ledger.SkippedEdge) error {
	return m.Called(run, mappings, skipped).Error(0)
}

// GetRun mocks ledger.LedgerStoreInterface.GetRun.
func (m *LedgerStoreMock) GetRun(runID string) (*ledger.Run, error) {
	args := m.Called(runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Run), args.Error(1)
}

// ListMappings mocks ledger.LedgerStoreInterface.ListMappings.
func (m *LedgerStoreMock) ListMappings(runID string) ([]ledger.Mapping, error) {
	args := m.Called(runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Mapping), args.Error(1)
}

// ListSkippedEdges mocks ledger.LedgerStoreInterface.ListSkippedEdges.
func (m *LedgerStoreMock) ListSkippedEdges(runID string) ([]ledger.SkippedEdge, error) {
	args := m.Called(runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.SkippedEdge), args.Error(1)
}

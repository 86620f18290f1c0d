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

package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/templatizer/internal/workspace"
)

type TrackerTestSuite struct {
	suite.Suite
	tracker *Tracker
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

func (suite *TrackerTestSuite) SetupTest() {
	suite.tracker = NewTracker()
}

func (suite *TrackerTestSuite) TestRecordAndResolveByID() {
	assert.NoError(suite.T(), suite.tracker.RecordIdentity("old-1", "new-1"))

	id, ok := suite.tracker.ResolveByID("old-1")
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "new-1", id)

	_, ok = suite.tracker.ResolveByID("old-2")
	assert.False(suite.T(), ok)
}

func (suite *TrackerTestSuite) TestRecordIdentitySamePairIsNoop() {
	assert.NoError(suite.T(), suite.tracker.RecordIdentity("old-1", "new-1"))
	assert.NoError(suite.T(), suite.tracker.RecordIdentity("old-1", "new-1"))
	assert.Equal(suite.T(), 1, suite.tracker.Len())
}

func (suite *TrackerTestSuite) TestRecordIdentityConflictKeepsFirst() {
	assert.NoError(suite.T(), suite.tracker.RecordIdentity("old-1", "new-1"))

	err := suite.tracker.RecordIdentity("old-1", "new-2")
	assert.ErrorIs(suite.T(), err, ErrConflictingIdentity)

	id, _ := suite.tracker.ResolveByID("old-1")
	assert.Equal(suite.T(), "new-1", id)
}

func (suite *TrackerTestSuite) TestResolveByName() {
	suite.tracker.RecordNamed("scope-1", "in1", workspace.KindInputPort, "port-1")

	id, ok, err := suite.tracker.ResolveByName("scope-1", "in1", workspace.KindInputPort)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "port-1", id)

	_, ok, err = suite.tracker.ResolveByName("scope-1", "in1", workspace.KindOutputPort)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)

	_, ok, err = suite.tracker.ResolveByName("scope-2", "in1", workspace.KindInputPort)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *TrackerTestSuite) TestResolveByNameRejectsDuplicates() {
	suite.tracker.RecordNamed("scope-1", "in1", workspace.KindInputPort, "port-1")
	suite.tracker.RecordNamed("scope-1", "in1", workspace.KindInputPort, "port-2")

	_, ok, err := suite.tracker.ResolveByName("scope-1", "in1", workspace.KindInputPort)
	assert.False(suite.T(), ok)
	assert.ErrorIs(suite.T(), err, ErrDuplicateNamedIdentity)
	assert.Contains(suite.T(), err.Error(), "port-1")
	assert.Contains(suite.T(), err.Error(), "port-2")
}

func (suite *TrackerTestSuite) TestRecordNamedSameIDIsNoop() {
	suite.tracker.RecordNamed("scope-1", "out1", workspace.KindOutputPort, "port-1")
	suite.tracker.RecordNamed("scope-1", "out1", workspace.KindOutputPort, "port-1")

	id, ok, err := suite.tracker.ResolveByName("scope-1", "out1", workspace.KindOutputPort)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "port-1", id)
}

func (suite *TrackerTestSuite) TestMappingsKeepInsertionOrder() {
	_ = suite.tracker.RecordIdentity("b", "2")
	_ = suite.tracker.RecordIdentity("a", "1")
	_ = suite.tracker.RecordIdentity("c", "3")

	assert.Equal(suite.T(), []Mapping{{"b", "2"}, {"a", "1"}, {"c", "3"}}, suite.tracker.Mappings())
}

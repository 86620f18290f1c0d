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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/templatizer/internal/workspace"
)

type ModelTestSuite struct {
	suite.Suite
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelTestSuite))
}

func (suite *ModelTestSuite) TestParseReservedKindIgnoresCase() {
	kind, ok := ParseReservedKind("input_port")
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), ReservedInputPort, kind)

	kind, ok = ParseReservedKind("Remote_Process_Group")
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), ReservedRemoteProcessGroup, kind)

	_, ok = ParseReservedKind("LogAttribute")
	assert.False(suite.T(), ok)
}

func (suite *ModelTestSuite) TestElementKind() {
	cases := []struct {
		element  Element
		expected workspace.NodeKind
	}{
		{Element{Name: "in", Type: "INPUT_PORT"}, workspace.KindInputPort},
		{Element{Name: "out", Type: "output_port"}, workspace.KindOutputPort},
		{Element{Name: "g1", Type: "PROCESS_GROUP"}, workspace.KindProcessGroup},
		{Element{Name: "remote", Type: "REMOTE_PROCESS_GROUP"}, workspace.KindRemoteProcessGroup},
		{Element{Type: "FUNNEL"}, workspace.KindFunnel},
		{Element{Type: "LABEL"}, workspace.KindLabel},
		{Element{Name: "Log", Type: "LogAttribute"}, workspace.KindProcessor},
		{Element{Name: "LogAttribute"}, workspace.KindProcessor},
		{Element{Name: "Foo#1"}, workspace.KindProcessor},
	}
	for _, c := range cases {
		assert.Equal(suite.T(), c.expected, c.element.Kind(), c.element.KindName())
	}
}

func (suite *ModelTestSuite) TestKindNameFallsBackToName() {
	e := Element{Name: "UpdateAttribute"}
	assert.Equal(suite.T(), "UpdateAttribute", e.KindName())

	e.Type = "UpdateAttribute#1"
	assert.Equal(suite.T(), "UpdateAttribute#1", e.KindName())
}

func (suite *ModelTestSuite) TestReservedKindFor() {
	tag, ok := ReservedKindFor(workspace.KindFunnel)
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), ReservedFunnel, tag)

	_, ok = ReservedKindFor(workspace.KindProcessor)
	assert.False(suite.T(), ok)
}

func (suite *ModelTestSuite) TestFindElement() {
	tpl := &Template{Name: "root", Components: []Element{{ID: "a"}, {ID: "b", Name: "B"}}}

	e, ok := tpl.FindElement("b")
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "B", e.Name)

	_, ok = tpl.FindElement("c")
	assert.False(suite.T(), ok)
	assert.Equal(suite.T(), "root.yaml", tpl.FileName())
}

func (suite *ModelTestSuite) TestResolveSourceRefProcessor() {
	c := InputConnection{Source: "p1", Relationships: []string{"success", "failure"}}
	ref, err := c.ResolveSourceRef(workspace.KindProcessor)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), SourceRefRelationships, ref.Kind)
	assert.Equal(suite.T(), []string{"success", "failure"}, ref.Relationships)

	legacy := InputConnection{Source: "p1", From: []string{"success"}}
	ref, err = legacy.ResolveSourceRef(workspace.KindProcessor)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"success"}, ref.Relationships)

	wrong := InputConnection{Source: "p1", FromPort: "out"}
	_, err = wrong.ResolveSourceRef(workspace.KindProcessor)
	assert.ErrorIs(suite.T(), err, ErrInvalidSourceRef)
}

func (suite *ModelTestSuite) TestResolveSourceRefGroup() {
	c := InputConnection{Source: "g1", FromPort: "out1"}
	ref, err := c.ResolveSourceRef(workspace.KindProcessGroup)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), NamedPort("out1"), ref)

	legacy := InputConnection{Source: "rpg", From: []string{"remote-out"}}
	ref, err = legacy.ResolveSourceRef(workspace.KindRemoteProcessGroup)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), NamedPort("remote-out"), ref)

	ambiguous := InputConnection{Source: "g1", From: []string{"a", "b"}}
	_, err = ambiguous.ResolveSourceRef(workspace.KindProcessGroup)
	assert.ErrorIs(suite.T(), err, ErrInvalidSourceRef)

	rels := InputConnection{Source: "g1", Relationships: []string{"success"}}
	_, err = rels.ResolveSourceRef(workspace.KindProcessGroup)
	assert.ErrorIs(suite.T(), err, ErrInvalidSourceRef)
}

func (suite *ModelTestSuite) TestResolveSourceRefPortHasNoSelection() {
	c := InputConnection{Source: "in1"}
	ref, err := c.ResolveSourceRef(workspace.KindInputPort)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), SourceRefRelationships, ref.Kind)
	assert.Empty(suite.T(), ref.Relationships)
}

func (suite *ModelTestSuite) TestPositionRoundTrip() {
	assert.Equal(suite.T(), "12,-40", FormatPosition(workspace.Position{X: 12.9, Y: -40.2}))

	p, err := ParsePosition("100, 250")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), workspace.Position{X: 100, Y: 250}, p)

	p, err = ParsePosition("")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), workspace.Position{}, p)

	_, err = ParsePosition("1;2")
	assert.ErrorIs(suite.T(), err, ErrInvalidPosition)
	_, err = ParsePosition("a,2")
	assert.ErrorIs(suite.T(), err, ErrInvalidPosition)
}

func (suite *ModelTestSuite) TestBends() {
	points, err := ParseBends([]string{"1,2", "3,4"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), []workspace.Position{{X: 1, Y: 2}, {X: 3, Y: 4}}, points)
	assert.Equal(suite.T(), []string{"1,2", "3,4"}, FormatBends(points))

	points, err = ParseBends(nil)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), points)
	assert.Nil(suite.T(), FormatBends(nil))

	_, err = ParseBends([]string{"1"})
	assert.Error(suite.T(), err)
}

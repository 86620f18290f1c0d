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

package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/templatizer/internal/template/model"
)

const rootTemplate = `name: root
dependencies:
  org.apache.nifi:
    nifi-standard-nar:
      1.23.2:
        LogAttribute: org.apache.nifi.processors.standard.LogAttribute
components:
  - name: g1
    type: PROCESS_GROUP
    id: g1-id
    template: g1.yaml
    position: 10,20
  - name: LogAttribute
    id: log-id
    position: 300,20
    properties:
      Log Level: warn
    inputs:
      - source: g1-id
        fromPort: out1
`

type StoreTestSuite struct {
	suite.Suite
	dir string
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (suite *StoreTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *StoreTestSuite) writeFile(name, content string) {
	require.NoError(suite.T(), os.WriteFile(filepath.Join(suite.dir, name), []byte(content), 0o600))
}

func (suite *StoreTestSuite) TestLoad() {
	suite.writeFile("root.yaml", rootTemplate)
	suite.writeFile("g1.yaml", "components:\n  - name: out1\n    type: OUTPUT_PORT\n    id: out1-id\n")
	suite.writeFile("README.md", "not a template")
	require.NoError(suite.T(), os.Mkdir(filepath.Join(suite.dir, "nested.yaml"), 0o750))

	set, err := Load(suite.dir)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{"g1.yaml", "root.yaml"}, set.FileNames())

	root, ok := set.Get("root.yaml")
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), "root", root.Name)
	require.Len(suite.T(), root.Components, 2)
	assert.Equal(suite.T(), "g1.yaml", root.Components[0].Template)
	assert.Equal(suite.T(), "out1", root.Components[1].Inputs[0].FromPort)
	assert.Equal(suite.T(), "org.apache.nifi.processors.standard.LogAttribute",
		root.Dependencies["org.apache.nifi"]["nifi-standard-nar"]["1.23.2"]["LogAttribute"])

	g1, _ := set.Get("g1.yaml")
	assert.Equal(suite.T(), "g1", g1.Name)
}

func (suite *StoreTestSuite) TestLoadRejectsUnknownFields() {
	suite.writeFile("root.yaml", "name: root\ncomponnets: []\n")

	_, err := Load(suite.dir)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "root.yaml")
}

func (suite *StoreTestSuite) TestLoadEmptyDirectory() {
	_, err := Load(suite.dir)
	assert.ErrorIs(suite.T(), err, ErrNoTemplates)
}

func (suite *StoreTestSuite) TestLoadMissingDirectory() {
	_, err := Load(filepath.Join(suite.dir, "missing"))
	assert.Error(suite.T(), err)
}

func (suite *StoreTestSuite) TestWriteThenLoad() {
	threshold := int64(20)
	templates := []*model.Template{
		{
			Name: "root",
			Components: []model.Element{
				{Name: "g1", Type: "PROCESS_GROUP", ID: "g1-id", Template: "child.yaml", Position: "0,0"},
				{Type: "FUNNEL", ID: "f-id", Inputs: []model.InputConnection{{
					Source:     "g1-id",
					FromPort:   "out",
					Properties: &model.ConnectionProperties{BackPressureObjectThreshold: &threshold},
					Bends:      []string{"5,5"},
				}}},
			},
		},
		{Name: "child", Components: []model.Element{{Name: "out", Type: "OUTPUT_PORT", ID: "out-id"}}},
	}

	target := filepath.Join(suite.dir, "export")
	require.NoError(suite.T(), Write(target, templates))

	set, err := Load(target)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), templates[0], set["root.yaml"])
	assert.Equal(suite.T(), templates[1], set["child.yaml"])
}

func (suite *StoreTestSuite) TestMarshalSpacesSections() {
	tpl, err := Unmarshal([]byte(rootTemplate))
	require.NoError(suite.T(), err)

	content, err := Marshal(tpl)
	require.NoError(suite.T(), err)
	text := string(content)

	assert.True(suite.T(), strings.HasPrefix(text, "name: root\n\ndependencies:\n"))
	assert.Contains(suite.T(), text, "\n\ncomponents:\n  - name: g1\n")
	assert.Contains(suite.T(), text, "\n\n  - name: LogAttribute\n")

	again, err := Unmarshal(content)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), tpl, again)
}

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

package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/template/store"
)

var deps = model.DependencyTree{
	"org.apache.nifi": {
		"nifi-standard-nar": {"1.23.2": {"LogAttribute": "org.apache.nifi.processors.standard.LogAttribute"}},
	},
}

func validSet() store.TemplateSet {
	return store.TemplateSet{
		"root.yaml": {
			Name:         "root",
			Dependencies: deps,
			Components: []model.Element{
				{Name: "g1", Type: "PROCESS_GROUP", ID: "g1", Template: "g1.yaml", Position: "0,0"},
				{Name: "LogAttribute", ID: "log", Inputs: []model.InputConnection{{Source: "g1", FromPort: "out1"}}},
				{Type: "FUNNEL", ID: "funnel", Inputs: []model.InputConnection{
					{Source: "log", Relationships: []string{"success"}, Bends: []string{"10,20"}},
				}},
			},
		},
		"g1.yaml": {
			Name: "g1",
			Components: []model.Element{
				{Name: "in1", Type: "INPUT_PORT", ID: "in1"},
				{Name: "out1", Type: "OUTPUT_PORT", ID: "out1", Inputs: []model.InputConnection{{Source: "in1"}}},
			},
		},
	}
}

func TestValidSetPasses(t *testing.T) {
	assert.NoError(t, Validate(validSet(), "root.yaml"))
}

func TestMissingRoot(t *testing.T) {
	err := Validate(validSet(), "main.yaml")
	assert.True(t, errors.Is(err, ErrInvalidTemplate))
}

func TestDuplicateSiblingPortNames(t *testing.T) {
	set := validSet()
	g1 := set["g1.yaml"]
	g1.Components = append(g1.Components, model.Element{Name: "out1", Type: "OUTPUT_PORT", ID: "out1-copy"})

	err := Validate(set, "root.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `are both named "out1"`)
}

func TestSameNameDifferentKindIsAllowed(t *testing.T) {
	set := validSet()
	g1 := set["g1.yaml"]
	g1.Components[0].Name = "out1"
	set["root.yaml"].Components[0].Inputs = []model.InputConnection{
		{Source: "log", Relationships: []string{"failure"}, ToPort: "out1"},
	}

	assert.NoError(t, Validate(set, "root.yaml"))
}

func TestEveryProblemIsReported(t *testing.T) {
	set := validSet()
	root := set["root.yaml"]
	root.Components = append(root.Components,
		model.Element{Name: "FetchFile", ID: "fetch", Position: "left"},
		model.Element{Name: "g2", Type: "PROCESS_GROUP", ID: "g2", Template: "missing.yaml"},
		model.Element{Name: "LogAttribute", ID: "log2", Inputs: []model.InputConnection{{Source: "ghost"}}},
		model.Element{Name: "LogAttribute", ID: "log3", Inputs: []model.InputConnection{{Source: "log"}}},
	)
	set["g1.yaml"].Components[0].ID = "log"

	err := Validate(set, "root.yaml")

	problems := multierr.Errors(err)
	assert.Len(t, problems, 7)
	for _, p := range problems {
		assert.True(t, errors.Is(p, ErrInvalidTemplate))
	}
	assert.Contains(t, err.Error(), `unknown dependency: "FetchFile"`)
	assert.Contains(t, err.Error(), "invalid position")
	assert.Contains(t, err.Error(), "missing template missing.yaml")
	assert.Contains(t, err.Error(), "unknown element ghost")
	assert.Contains(t, err.Error(), "selects no relationship")
	assert.Contains(t, err.Error(), "id log is also used in")
	assert.Contains(t, err.Error(), "unknown element in1")
}

func TestGroupPortMustExist(t *testing.T) {
	set := validSet()
	set["root.yaml"].Components[1].Inputs[0].FromPort = "out2"

	err := Validate(set, "root.yaml")

	assert.Contains(t, err.Error(), `group g1 has no output port "out2"`)
}

func TestGroupTargetNeedsPort(t *testing.T) {
	set := validSet()
	root := set["root.yaml"]
	root.Components[0].Inputs = []model.InputConnection{{Source: "log", Relationships: []string{"failure"}}}

	err := Validate(set, "root.yaml")

	assert.Contains(t, err.Error(), "does not name a port")
}

func TestTemplateReusedByTwoGroups(t *testing.T) {
	set := validSet()
	root := set["root.yaml"]
	root.Components = append(root.Components,
		model.Element{Name: "g1-copy", Type: "PROCESS_GROUP", ID: "g1-copy", Template: "g1.yaml"})

	err := Validate(set, "root.yaml")

	assert.Contains(t, err.Error(), "is referenced by group")
}

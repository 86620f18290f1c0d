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

package dependency

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/workspace"
)

var (
	bundleA = workspace.Bundle{Group: "org.example", Artifact: "example-nar", Version: "1.0.0"}
	bundleB = workspace.Bundle{Group: "org.example2", Artifact: "example2-nar", Version: "2.1.0"}
)

type VocabularyTestSuite struct {
	suite.Suite
}

func TestVocabularySuite(t *testing.T) {
	suite.Run(t, new(VocabularyTestSuite))
}

func (suite *VocabularyTestSuite) TestCollisionGetsSuffixAndResubmitIsIdempotent() {
	v := NewVocabulary()

	assert.Equal(suite.T(), "Foo", v.Canonicalize("org.example.Foo", bundleA))
	assert.Equal(suite.T(), "Foo#1", v.Canonicalize("org.example2.Foo", bundleB))
	assert.Equal(suite.T(), "Foo", v.Canonicalize("org.example.Foo", bundleA))
	assert.Equal(suite.T(), "Foo#1", v.Canonicalize("org.example2.Foo", bundleB))
	assert.Equal(suite.T(), 2, v.Len())
}

func (suite *VocabularyTestSuite) TestSameTypeDifferentBundleVersionIsDistinct() {
	v := NewVocabulary()
	newer := bundleA
	newer.Version = "1.1.0"

	assert.Equal(suite.T(), "Foo", v.Canonicalize("org.example.Foo", bundleA))
	assert.Equal(suite.T(), "Foo#1", v.Canonicalize("org.example.Foo", newer))
	assert.Equal(suite.T(), "Foo#2", v.Canonicalize("com.other.Foo", bundleB))
}

func (suite *VocabularyTestSuite) TestTypeWithoutPackage() {
	v := NewVocabulary()
	assert.Equal(suite.T(), "Bare", v.Canonicalize("Bare", bundleA))
}

func (suite *VocabularyTestSuite) TestResolve() {
	v := NewVocabulary()
	v.Canonicalize("org.example.Foo", bundleA)

	coord, err := v.Resolve("Foo")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), Coordinate{Type: "org.example.Foo", Bundle: bundleA}, coord)

	_, err = v.Resolve("Bar")
	assert.ErrorIs(suite.T(), err, ErrUnknownDependency)
	assert.Contains(suite.T(), err.Error(), "Bar")
}

func (suite *VocabularyTestSuite) TestTreeRoundTrip() {
	v := NewVocabulary()
	v.Canonicalize("org.example.Foo", bundleA)
	v.Canonicalize("org.example2.Foo", bundleB)
	v.Canonicalize("org.example.DBCPConnectionPool", bundleA)

	tree := v.Tree()
	assert.Equal(suite.T(), "org.example.Foo", tree["org.example"]["example-nar"]["1.0.0"]["Foo"])
	assert.Equal(suite.T(), "org.example2.Foo", tree["org.example2"]["example2-nar"]["2.1.0"]["Foo#1"])

	rebuilt, err := FromTree(tree)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), v.Names(), rebuilt.Names())
	for _, name := range v.Names() {
		want, _ := v.Resolve(name)
		got, err := rebuilt.Resolve(name)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), want, got)
	}
}

func (suite *VocabularyTestSuite) TestEmptyTree() {
	assert.Nil(suite.T(), NewVocabulary().Tree())

	v, err := FromTree(nil)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, v.Len())
}

func (suite *VocabularyTestSuite) TestFromTreeRejectsAmbiguousName() {
	tree := model.DependencyTree{
		"org.example":  {"example-nar": {"1.0.0": {"Foo": "org.example.Foo"}}},
		"org.example2": {"example2-nar": {"2.1.0": {"Foo": "org.example2.Foo"}}},
	}
	_, err := FromTree(tree)
	assert.ErrorIs(suite.T(), err, ErrAmbiguousDependency)
}

func (suite *VocabularyTestSuite) TestFromTreeRejectsDoubleNamedCoordinate() {
	tree := model.DependencyTree{
		"org.example": {"example-nar": {"1.0.0": {"Foo": "org.example.Foo", "Foo#1": "org.example.Foo"}}},
	}
	_, err := FromTree(tree)
	assert.ErrorIs(suite.T(), err, ErrAmbiguousDependency)
}

// Random submission sequences keep names and coordinates in one-to-one correspondence.
func (suite *VocabularyTestSuite) TestUniquenessUnderRandomSubmissions() {
	rng := rand.New(rand.NewSource(7))
	packages := []string{"org.a", "org.b", "com.c"}
	simple := []string{"Foo", "Bar", "Foo#1"}
	bundles := []workspace.Bundle{bundleA, bundleB}

	v := NewVocabulary()
	names := map[Coordinate]string{}
	for i := 0; i < 500; i++ {
		coord := Coordinate{
			Type:   fmt.Sprintf("%s.%s", packages[rng.Intn(len(packages))], simple[rng.Intn(len(simple))]),
			Bundle: bundles[rng.Intn(len(bundles))],
		}
		name := v.Canonicalize(coord.Type, coord.Bundle)
		if previous, ok := names[coord]; ok {
			assert.Equal(suite.T(), previous, name)
		}
		names[coord] = name

		resolved, err := v.Resolve(name)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), coord, resolved)
	}

	seen := map[string]bool{}
	for _, name := range names {
		assert.False(suite.T(), seen[name], name)
		seen[name] = true
	}
	assert.Equal(suite.T(), len(names), v.Len())
}

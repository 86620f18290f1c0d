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

// Package dependency assigns short collision free names to extension types and resolves them back.
package dependency

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/workspace"
)

var (
	// ErrUnknownDependency is returned when a canonical name is not part of the vocabulary.
	ErrUnknownDependency = errors.New("unknown dependency")
	// ErrAmbiguousDependency is returned when a dependency tree binds one name to two coordinates.
	ErrAmbiguousDependency = errors.New("ambiguous dependency")
)

const suffixSeparator = "#"

// Coordinate is the fully qualified type of an extension and the bundle that ships it.
type Coordinate struct {
	Type   string
	Bundle workspace.Bundle
}

// Vocabulary is the dependency vocabulary of one template. Each canonical name maps to exactly one
// coordinate and each coordinate has exactly one canonical name.
type Vocabulary struct {
	byName  map[string]Coordinate
	byCoord map[Coordinate]string
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		byName:  make(map[string]Coordinate),
		byCoord: make(map[Coordinate]string),
	}
}

// Canonicalize returns the canonical name of the given type. The candidate is the last segment of the
// type; when it is taken by another coordinate, suffixes #1, #2, ... are tried until a free name or the
// name already bound to this coordinate is found.
func (v *Vocabulary) Canonicalize(fullyQualifiedType string, bundle workspace.Bundle) string {
	coord := Coordinate{Type: fullyQualifiedType, Bundle: bundle}
	if name, ok := v.byCoord[coord]; ok {
		return name
	}

	base := simpleName(fullyQualifiedType)
	name := base
	for i := 1; ; i++ {
		bound, taken := v.byName[name]
		if !taken {
			break
		}
		if bound == coord {
			return name
		}
		name = base + suffixSeparator + strconv.Itoa(i)
	}

	v.bind(name, coord)
	return name
}

// Resolve returns the coordinate bound to a canonical name.
func (v *Vocabulary) Resolve(name string) (Coordinate, error) {
	coord, ok := v.byName[name]
	if !ok {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrUnknownDependency, name)
	}
	return coord, nil
}

// Names returns every canonical name in sorted order.
func (v *Vocabulary) Names() []string {
	names := make([]string, 0, len(v.byName))
	for name := range v.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bound names.
func (v *Vocabulary) Len() int {
	return len(v.byName)
}

// Tree lays the vocabulary out for storage.
func (v *Vocabulary) Tree() model.DependencyTree {
	if len(v.byName) == 0 {
		return nil
	}
	tree := model.DependencyTree{}
	for name, coord := range v.byName {
		artifacts, ok := tree[coord.Bundle.Group]
		if !ok {
			artifacts = map[string]map[string]map[string]string{}
			tree[coord.Bundle.Group] = artifacts
		}
		versions, ok := artifacts[coord.Bundle.Artifact]
		if !ok {
			versions = map[string]map[string]string{}
			artifacts[coord.Bundle.Artifact] = versions
		}
		types, ok := versions[coord.Bundle.Version]
		if !ok {
			types = map[string]string{}
			versions[coord.Bundle.Version] = types
		}
		types[name] = coord.Type
	}
	return tree
}

// FromTree builds the reverse lookup of a stored vocabulary. A name bound under two coordinates, or a
// coordinate bound under two names, is rejected.
func FromTree(tree model.DependencyTree) (*Vocabulary, error) {
	v := NewVocabulary()
	for group, artifacts := range tree {
		for artifact, versions := range artifacts {
			for version, types := range versions {
				for name, fqType := range types {
					coord := Coordinate{
						Type:   fqType,
						Bundle: workspace.Bundle{Group: group, Artifact: artifact, Version: version},
					}
					if existing, ok := v.byName[name]; ok && existing != coord {
						return nil, fmt.Errorf("%w: %q is bound to %s and %s", ErrAmbiguousDependency, name,
							existing, coord)
					}
					if existing, ok := v.byCoord[coord]; ok && existing != name {
						return nil, fmt.Errorf("%w: %s is named %q and %q", ErrAmbiguousDependency, coord,
							existing, name)
					}
					v.bind(name, coord)
				}
			}
		}
	}
	return v, nil
}

// String renders the coordinate as group:artifact:version:type.
func (c Coordinate) String() string {
	return c.Bundle.Group + ":" + c.Bundle.Artifact + ":" + c.Bundle.Version + ":" + c.Type
}

func (v *Vocabulary) bind(name string, coord Coordinate) {
	v.byName[name] = coord
	v.byCoord[coord] = name
}

func simpleName(fullyQualifiedType string) string {
	if i := strings.LastIndex(fullyQualifiedType, "."); i >= 0 {
		return fullyQualifiedType[i+1:]
	}
	return fullyQualifiedType
}

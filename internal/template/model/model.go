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

// Package model defines the serializable template representation of one workspace scope.
package model

import (
	"strings"

	"github.com/asgardeo/templatizer/internal/workspace"
)

// DependencyTree is a dependency vocabulary laid out as group → artifact → version → canonical name → type.
type DependencyTree map[string]map[string]map[string]map[string]string

// Template is the portable description of one scope.
type Template struct {
	Name         string         `yaml:"name"`
	Dependencies DependencyTree `yaml:"dependencies,omitempty"`
	Controllers  []Controller   `yaml:"controllers,omitempty"`
	Components   []Element      `yaml:"components,omitempty"`
}

// FileName returns the storage file name of the template.
func (t *Template) FileName() string {
	return FileNameFor(t.Name)
}

// FindElement returns the element with the given template-local id.
func (t *Template) FindElement(id string) (*Element, bool) {
	for i := range t.Components {
		if t.Components[i].ID == id {
			return &t.Components[i], true
		}
	}
	return nil, false
}

// Controller describes a controller service owned by a scope.
type Controller struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name"`
	Type       string            `yaml:"type"`
	Comment    string            `yaml:"comment,omitempty"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

// Element describes one canvas node. Only values that differ from the platform defaults are kept.
type Element struct {
	Name        string            `yaml:"name,omitempty"`
	Type        string            `yaml:"type,omitempty"`
	ID          string            `yaml:"id"`
	Template    string            `yaml:"template,omitempty"`
	Position    string            `yaml:"position,omitempty"`
	Comment     string            `yaml:"comment,omitempty"`
	Properties  map[string]string `yaml:"properties,omitempty"`
	Styles      map[string]string `yaml:"styles,omitempty"`
	Scheduling  map[string]string `yaml:"scheduling,omitempty"`
	RemotePorts []RemotePort      `yaml:"remotePorts,omitempty"`
	Advanced    *RuleSet          `yaml:"advanced,omitempty"`
	Inputs      []InputConnection `yaml:"inputs,omitempty"`
}

// KindName returns the declared type, falling back to the name when the type was elided.
func (e *Element) KindName() string {
	if e.Type != "" {
		return e.Type
	}
	return e.Name
}

// Kind returns the structural kind of the element. Any type that is not a reserved kind is a processor.
func (e *Element) Kind() workspace.NodeKind {
	reserved, ok := ParseReservedKind(e.KindName())
	if !ok {
		return workspace.KindProcessor
	}
	switch reserved {
	case ReservedInputPort:
		return workspace.KindInputPort
	case ReservedOutputPort:
		return workspace.KindOutputPort
	case ReservedProcessGroup:
		return workspace.KindProcessGroup
	case ReservedRemoteProcessGroup:
		return workspace.KindRemoteProcessGroup
	case ReservedFunnel:
		return workspace.KindFunnel
	case ReservedLabel:
		return workspace.KindLabel
	default:
		return workspace.KindProcessor
	}
}

// ReservedKind is a type tag that names a structural node kind rather than a dependency.
type ReservedKind string

const (
	ReservedInputPort          ReservedKind = "INPUT_PORT"
	ReservedOutputPort         ReservedKind = "OUTPUT_PORT"
	ReservedProcessGroup       ReservedKind = "PROCESS_GROUP"
	ReservedRemoteProcessGroup ReservedKind = "REMOTE_PROCESS_GROUP"
	ReservedFunnel             ReservedKind = "FUNNEL"
	ReservedLabel              ReservedKind = "LABEL"
)

var reservedKinds = []ReservedKind{
	ReservedInputPort,
	ReservedOutputPort,
	ReservedProcessGroup,
	ReservedRemoteProcessGroup,
	ReservedFunnel,
	ReservedLabel,
}

// ParseReservedKind matches a type tag against the reserved kinds, ignoring case.
func ParseReservedKind(tag string) (ReservedKind, bool) {
	for _, kind := range reservedKinds {
		if strings.EqualFold(tag, string(kind)) {
			return kind, true
		}
	}
	return "", false
}

// ReservedKindFor returns the reserved type tag of a node kind, if it has one.
func ReservedKindFor(kind workspace.NodeKind) (ReservedKind, bool) {
	switch kind {
	case workspace.KindInputPort:
		return ReservedInputPort, true
	case workspace.KindOutputPort:
		return ReservedOutputPort, true
	case workspace.KindProcessGroup:
		return ReservedProcessGroup, true
	case workspace.KindRemoteProcessGroup:
		return ReservedRemoteProcessGroup, true
	case workspace.KindFunnel:
		return ReservedFunnel, true
	case workspace.KindLabel:
		return ReservedLabel, true
	}
	return "", false
}

// RemotePort records the non-default settings of a port inside a remote group.
type RemotePort struct {
	Name            string `yaml:"name"`
	Direction       string `yaml:"direction"`
	ConcurrentTasks int    `yaml:"concurrentTasks,omitempty"`
	UseCompression  bool   `yaml:"useCompression,omitempty"`
	BatchCount      *int   `yaml:"batchCount,omitempty"`
	BatchSize       string `yaml:"batchSize,omitempty"`
	BatchDuration   string `yaml:"batchDuration,omitempty"`
}

const (
	// RemotePortInput marks a port that receives data sent to the remote workspace.
	RemotePortInput = "input"
	// RemotePortOutput marks a port that emits data pulled from the remote workspace.
	RemotePortOutput = "output"
)

// RuleSet is the structured form of the conditional rules attached to some processors.
type RuleSet struct {
	FlowFilePolicy string `yaml:"flowFilePolicy,omitempty"`
	Rules          []Rule `yaml:"rules,omitempty"`
}

// Rule is a named set of conditions and the attribute updates applied when they all hold.
type Rule struct {
	Name       string            `yaml:"name"`
	Conditions []string          `yaml:"conditions,omitempty"`
	Actions    map[string]string `yaml:"actions,omitempty"`
}

// FileNameFor returns the storage file name of the template with the given name.
func FileNameFor(name string) string {
	return name + ".yaml"
}

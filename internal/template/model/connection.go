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
	"errors"
	"fmt"

	"github.com/asgardeo/templatizer/internal/workspace"
)

// ErrInvalidSourceRef is returned when an inbound connection does not name its source endpoint in a way
// that fits the kind of the source element.
var ErrInvalidSourceRef = errors.New("invalid connection source reference")

// InputConnection describes one inbound edge of an element.
type InputConnection struct {
	Source        string                `yaml:"source"`
	Relationships []string              `yaml:"relationships,omitempty"`
	FromPort      string                `yaml:"fromPort,omitempty"`
	From          []string              `yaml:"from,omitempty"`
	ToPort        string                `yaml:"toPort,omitempty"`
	Properties    *ConnectionProperties `yaml:"properties,omitempty"`
	Bends         []string              `yaml:"bends,omitempty"`
}

// ConnectionProperties holds the non-default queue settings of a connection.
type ConnectionProperties struct {
	Name                          string   `yaml:"name,omitempty"`
	BackPressureObjectThreshold   *int64   `yaml:"backPressureObjectThreshold,omitempty"`
	BackPressureDataSizeThreshold string   `yaml:"backPressureDataSizeThreshold,omitempty"`
	LoadBalanceStrategy           string   `yaml:"loadBalanceStrategy,omitempty"`
	LoadBalancePartitionAttribute string   `yaml:"loadBalancePartitionAttribute,omitempty"`
	LoadBalanceCompression        string   `yaml:"loadBalanceCompression,omitempty"`
	FlowFileExpiration            string   `yaml:"flowFileExpiration,omitempty"`
	Prioritizers                  []string `yaml:"prioritizers,omitempty"`
	ZIndex                        *int64   `yaml:"zIndex,omitempty"`
	LabelIndex                    *int     `yaml:"labelIndex,omitempty"`
}

// SourceRefKind discriminates the variants of SourceRef.
type SourceRefKind int

const (
	// SourceRefRelationships selects relationships of a processor source.
	SourceRefRelationships SourceRefKind = iota
	// SourceRefNamedPort names an output port inside a group or remote group source.
	SourceRefNamedPort
)

// SourceRef says which part of the source element an edge leaves from.
type SourceRef struct {
	Kind          SourceRefKind
	Relationships []string
	Port          string
}

// Relationships builds a relationship selection.
func Relationships(names ...string) SourceRef {
	return SourceRef{Kind: SourceRefRelationships, Relationships: names}
}

// NamedPort builds a port reference.
func NamedPort(name string) SourceRef {
	return SourceRef{Kind: SourceRefNamedPort, Port: name}
}

// ResolveSourceRef interprets the connection's source fields according to the kind of its source element.
// The legacy from list is accepted when the explicit fields are empty.
func (c *InputConnection) ResolveSourceRef(sourceKind workspace.NodeKind) (SourceRef, error) {
	switch sourceKind {
	case workspace.KindProcessGroup, workspace.KindRemoteProcessGroup:
		if len(c.Relationships) > 0 {
			return SourceRef{}, fmt.Errorf("%w: source %s is a %s and cannot select relationships",
				ErrInvalidSourceRef, c.Source, sourceKind)
		}
		if c.FromPort != "" {
			return NamedPort(c.FromPort), nil
		}
		if len(c.From) == 1 {
			return NamedPort(c.From[0]), nil
		}
		return SourceRef{}, fmt.Errorf("%w: source %s is a %s and needs exactly one port name",
			ErrInvalidSourceRef, c.Source, sourceKind)
	case workspace.KindProcessor:
		if c.FromPort != "" {
			return SourceRef{}, fmt.Errorf("%w: source %s is a processor and has no ports",
				ErrInvalidSourceRef, c.Source)
		}
		if len(c.Relationships) > 0 {
			return Relationships(c.Relationships...), nil
		}
		return Relationships(c.From...), nil
	default:
		return Relationships(), nil
	}
}

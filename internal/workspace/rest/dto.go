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


package rest

import "github.com/asgardeo/templatizer/internal/workspace"

type revisionDTO struct {
	ClientID string `json:"clientId,omitempty"`
	Version  int64  `json:"version"`
}

type positionDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type relationshipDTO struct {
	Name          string `json:"name"`
	AutoTerminate bool   `json:"autoTerminate"`
}

type propertyDescriptorDTO struct {
	Name                        string  `json:"name"`
	DefaultValue                *string `json:"defaultValue,omitempty"`
	IdentifiesControllerService string  `json:"identifiesControllerService,omitempty"`
}

type processorConfigDTO struct {
	Properties                       map[string]*string               `json:"properties,omitempty"`
	Descriptors                      map[string]propertyDescriptorDTO `json:"descriptors,omitempty"`
	SchedulingPeriod                 string                           `json:"schedulingPeriod,omitempty"`
	SchedulingStrategy               string                           `json:"schedulingStrategy,omitempty"`
	ExecutionNode                    string                           `json:"executionNode,omitempty"`
	PenaltyDuration                  string                           `json:"penaltyDuration,omitempty"`
	YieldDuration                    string                           `json:"yieldDuration,omitempty"`
	BulletinLevel                    string                           `json:"bulletinLevel,omitempty"`
	RunDurationMillis                *int64                           `json:"runDurationMillis,omitempty"`
	ConcurrentlySchedulableTaskCount *int                             `json:"concurrentlySchedulableTaskCount,omitempty"`
	Comments                         *string                          `json:"comments,omitempty"`
	AnnotationData                   string                           `json:"annotationData,omitempty"`
	AutoTerminatedRelationships      []string                         `json:"autoTerminatedRelationships,omitempty"`
}

type batchSettingsDTO struct {
	Count    *int   `json:"count,omitempty"`
	Size     string `json:"size,omitempty"`
	Duration string `json:"duration,omitempty"`
}

type remotePortDTO struct {
	ID                               string            `json:"id,omitempty"`
	GroupID                          string            `json:"groupId,omitempty"`
	Name                             string            `json:"name,omitempty"`
	Comments                         string            `json:"comments,omitempty"`
	ConcurrentlySchedulableTaskCount int               `json:"concurrentlySchedulableTaskCount,omitempty"`
	UseCompression                   bool              `json:"useCompression"`
	BatchSettings                    *batchSettingsDTO `json:"batchSettings,omitempty"`
}

type remoteContentsDTO struct {
	InputPorts  []remotePortDTO `json:"inputPorts"`
	OutputPorts []remotePortDTO `json:"outputPorts"`
}

// componentDTO is the union of the component shapes of every node kind. Only the fields of the
// node's kind are set.
type componentDTO struct {
	ID            string            `json:"id,omitempty"`
	ParentGroupID string            `json:"parentGroupId,omitempty"`
	Name          string            `json:"name,omitempty"`
	Type          string            `json:"type,omitempty"`
	Bundle        *workspace.Bundle `json:"bundle,omitempty"`
	Position      *positionDTO      `json:"position,omitempty"`
	Comments      *string           `json:"comments,omitempty"`
	Style         map[string]string `json:"style,omitempty"`

	// processor
	Config        *processorConfigDTO `json:"config,omitempty"`
	Relationships []relationshipDTO   `json:"relationships,omitempty"`

	// controller service
	Properties     map[string]*string               `json:"properties,omitempty"`
	Descriptors    map[string]propertyDescriptorDTO `json:"descriptors,omitempty"`
	AnnotationData string                           `json:"annotationData,omitempty"`

	// label
	Label  string  `json:"label,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// remote process group
	TargetURIs            string             `json:"targetUris,omitempty"`
	CommunicationsTimeout string             `json:"communicationsTimeout,omitempty"`
	YieldDuration         string             `json:"yieldDuration,omitempty"`
	TransportProtocol     string             `json:"transportProtocol,omitempty"`
	LocalNetworkInterface string             `json:"localNetworkInterface,omitempty"`
	ProxyHost             string             `json:"proxyHost,omitempty"`
	ProxyPort             *int               `json:"proxyPort,omitempty"`
	ProxyUser             string             `json:"proxyUser,omitempty"`
	ProxyPassword         string             `json:"proxyPassword,omitempty"`
	Contents              *remoteContentsDTO `json:"contents,omitempty"`
}

type entityDTO struct {
	Revision  *revisionDTO  `json:"revision,omitempty"`
	ID        string        `json:"id,omitempty"`
	Component *componentDTO `json:"component,omitempty"`
}

type remotePortEntityDTO struct {
	Revision               *revisionDTO   `json:"revision,omitempty"`
	RemoteProcessGroupPort *remotePortDTO `json:"remoteProcessGroupPort"`
}

type connectableDTO struct {
	ID      string `json:"id"`
	GroupID string `json:"groupId"`
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
}

type connectionDTO struct {
	ID                            string         `json:"id,omitempty"`
	ParentGroupID                 string         `json:"parentGroupId,omitempty"`
	Name                          string         `json:"name,omitempty"`
	Source                        connectableDTO `json:"source"`
	Destination                   connectableDTO `json:"destination"`
	SelectedRelationships         []string       `json:"selectedRelationships,omitempty"`
	BackPressureObjectThreshold   int64          `json:"backPressureObjectThreshold,omitempty"`
	BackPressureDataSizeThreshold string         `json:"backPressureDataSizeThreshold,omitempty"`
	LoadBalanceStrategy           string         `json:"loadBalanceStrategy,omitempty"`
	LoadBalancePartitionAttribute string         `json:"loadBalancePartitionAttribute,omitempty"`
	LoadBalanceCompression        string         `json:"loadBalanceCompression,omitempty"`
	FlowFileExpiration            string         `json:"flowFileExpiration,omitempty"`
	Prioritizers                  []string       `json:"prioritizers,omitempty"`
	Bends                         []positionDTO  `json:"bends,omitempty"`
	LabelIndex                    int            `json:"labelIndex,omitempty"`
	ZIndex                        int64          `json:"zIndex,omitempty"`
}

type connectionEntityDTO struct {
	Revision  *revisionDTO   `json:"revision,omitempty"`
	ID        string         `json:"id,omitempty"`
	Component *connectionDTO `json:"component,omitempty"`
}

// listDTO decodes every collection response. Exactly one of the slices is populated per request.
type listDTO struct {
	Processors          []entityDTO           `json:"processors"`
	InputPorts          []entityDTO           `json:"inputPorts"`
	OutputPorts         []entityDTO           `json:"outputPorts"`
	ProcessGroups       []entityDTO           `json:"processGroups"`
	RemoteProcessGroups []entityDTO           `json:"remoteProcessGroups"`
	Funnels             []entityDTO           `json:"funnels"`
	Labels              []entityDTO           `json:"labels"`
	ControllerServices  []entityDTO           `json:"controllerServices"`
	Connections         []connectionEntityDTO `json:"connections"`
}

func (l *listDTO) nodes(kind workspace.NodeKind) []entityDTO {
	switch kind {
	case workspace.KindProcessor:
		return l.Processors
	case workspace.KindInputPort:
		return l.InputPorts
	case workspace.KindOutputPort:
		return l.OutputPorts
	case workspace.KindProcessGroup:
		return l.ProcessGroups
	case workspace.KindRemoteProcessGroup:
		return l.RemoteProcessGroups
	case workspace.KindFunnel:
		return l.Funnels
	case workspace.KindLabel:
		return l.Labels
	case workspace.KindControllerService:
		return l.ControllerServices
	default:
		return nil
	}
}

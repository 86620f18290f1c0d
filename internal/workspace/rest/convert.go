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

var collectionSegments = map[workspace.NodeKind]string{
	workspace.KindProcessor:          "processors",
	workspace.KindInputPort:          "input-ports",
	workspace.KindOutputPort:         "output-ports",
	workspace.KindProcessGroup:       "process-groups",
	workspace.KindRemoteProcessGroup: "remote-process-groups",
	workspace.KindFunnel:             "funnels",
	workspace.KindLabel:              "labels",
	workspace.KindControllerService:  "controller-services",
}

func toNode(kind workspace.NodeKind, entity entityDTO) workspace.NodeDescriptor {
	node := workspace.NodeDescriptor{ID: entity.ID, Kind: kind}
	c := entity.Component
	if c == nil {
		return node
	}
	if c.ID != "" {
		node.ID = c.ID
	}
	node.ParentGroupID = c.ParentGroupID
	node.Name = c.Name
	node.Type = c.Type
	if c.Bundle != nil {
		node.Bundle = *c.Bundle
	}
	if c.Position != nil {
		node.Position = workspace.Position{X: c.Position.X, Y: c.Position.Y}
	}
	if c.Comments != nil {
		node.Comments = *c.Comments
	}
	node.Style = c.Style

	switch kind {
	case workspace.KindProcessor:
		if cfg := c.Config; cfg != nil {
			node.Properties = toProperties(cfg.Properties)
			node.Descriptors = toDescriptors(cfg.Descriptors)
			node.AnnotationData = cfg.AnnotationData
			if cfg.Comments != nil {
				node.Comments = *cfg.Comments
			}
			node.Scheduling = toScheduling(cfg)
		}
		for _, rel := range c.Relationships {
			node.Relationships = append(node.Relationships, workspace.Relationship{
				Name:          rel.Name,
				AutoTerminate: rel.AutoTerminate,
			})
		}
	case workspace.KindControllerService:
		node.Properties = toProperties(c.Properties)
		node.Descriptors = toDescriptors(c.Descriptors)
		node.AnnotationData = c.AnnotationData
	case workspace.KindLabel:
		node.Label = c.Label
		node.Width = c.Width
		node.Height = c.Height
	case workspace.KindRemoteProcessGroup:
		node.Remote = &workspace.RemoteGroupSettings{
			TargetURIs:            c.TargetURIs,
			ProxyHost:             c.ProxyHost,
			ProxyPort:             c.ProxyPort,
			ProxyUser:             c.ProxyUser,
			ProxyPassword:         c.ProxyPassword,
			LocalNetworkInterface: c.LocalNetworkInterface,
			TransportProtocol:     c.TransportProtocol,
			CommunicationsTimeout: c.CommunicationsTimeout,
			YieldDuration:         c.YieldDuration,
		}
		if c.Contents != nil {
			node.RemoteContents = toRemoteContents(c.Contents)
		}
	}
	return node
}

// toProperties drops unset values. The workspace reports them as null.
func toProperties(in map[string]*string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

func toDescriptors(in map[string]propertyDescriptorDTO) map[string]workspace.PropertyDescriptor {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]workspace.PropertyDescriptor, len(in))
	for k, d := range in {
		pd := workspace.PropertyDescriptor{Name: d.Name, IdentifiesControllerService: d.IdentifiesControllerService}
		if d.DefaultValue != nil {
			pd.DefaultValue = *d.DefaultValue
		}
		out[k] = pd
	}
	return out
}

func toScheduling(cfg *processorConfigDTO) *workspace.Scheduling {
	s := &workspace.Scheduling{
		Period:          cfg.SchedulingPeriod,
		Strategy:        cfg.SchedulingStrategy,
		PenaltyDuration: cfg.PenaltyDuration,
		YieldDuration:   cfg.YieldDuration,
		ExecutionNode:   cfg.ExecutionNode,
		BulletinLevel:   cfg.BulletinLevel,
	}
	if cfg.ConcurrentlySchedulableTaskCount != nil {
		s.ConcurrentTasks = *cfg.ConcurrentlySchedulableTaskCount
	}
	if cfg.RunDurationMillis != nil {
		s.RunDurationMillis = *cfg.RunDurationMillis
	}
	return s
}

func toRemoteContents(in *remoteContentsDTO) *workspace.RemoteGroupContents {
	out := &workspace.RemoteGroupContents{}
	for _, p := range in.InputPorts {
		out.InputPorts = append(out.InputPorts, toRemotePort(p))
	}
	for _, p := range in.OutputPorts {
		out.OutputPorts = append(out.OutputPorts, toRemotePort(p))
	}
	return out
}

func toRemotePort(p remotePortDTO) workspace.RemotePort {
	port := workspace.RemotePort{
		ID:              p.ID,
		GroupID:         p.GroupID,
		Name:            p.Name,
		Comments:        p.Comments,
		ConcurrentTasks: p.ConcurrentlySchedulableTaskCount,
		UseCompression:  p.UseCompression,
	}
	if b := p.BatchSettings; b != nil {
		port.BatchCount = b.Count
		port.BatchSize = b.Size
		port.BatchDuration = b.Duration
	}
	return port
}

func fromProperties(in map[string]string) map[string]*string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]*string, len(in))
	for k, v := range in {
		out[k] = &v
	}
	return out
}

// fromSpec builds the creation payload. The requested id is not sent: the workspace assigns ids itself.
func fromSpec(spec workspace.NodeSpec) *componentDTO {
	c := &componentDTO{}
	position := &positionDTO{X: spec.Position.X, Y: spec.Position.Y}
	var comments *string
	if spec.Comments != "" {
		comments = &spec.Comments
	}

	switch spec.Kind {
	case workspace.KindProcessor:
		bundle := spec.Bundle
		c.Name = spec.Name
		c.Type = spec.Type
		c.Bundle = &bundle
		c.Position = position
		c.Style = spec.Style
		c.Config = &processorConfigDTO{
			Properties:     fromProperties(spec.Properties),
			Comments:       comments,
			AnnotationData: spec.AnnotationData,
		}
		if s := spec.Scheduling; s != nil {
			tasks := s.ConcurrentTasks
			runDuration := s.RunDurationMillis
			c.Config.SchedulingPeriod = s.Period
			c.Config.SchedulingStrategy = s.Strategy
			c.Config.ConcurrentlySchedulableTaskCount = &tasks
			c.Config.PenaltyDuration = s.PenaltyDuration
			c.Config.YieldDuration = s.YieldDuration
			c.Config.RunDurationMillis = &runDuration
			c.Config.ExecutionNode = s.ExecutionNode
			c.Config.BulletinLevel = s.BulletinLevel
		}
	case workspace.KindControllerService:
		bundle := spec.Bundle
		c.Name = spec.Name
		c.Type = spec.Type
		c.Bundle = &bundle
		c.Comments = comments
		c.Properties = fromProperties(spec.Properties)
		c.AnnotationData = spec.AnnotationData
	case workspace.KindLabel:
		c.Label = spec.Label
		c.Position = position
		c.Width = spec.Width
		c.Height = spec.Height
		c.Style = spec.Style
	case workspace.KindFunnel:
		c.Position = position
	case workspace.KindRemoteProcessGroup:
		c.TargetURIs = spec.TargetURIs
		c.Position = position
		c.Comments = comments
	default:
		c.Name = spec.Name
		c.Position = position
		c.Comments = comments
	}
	return c
}

// fromPatch builds the update payload for id. Remote port settings are sent separately.
func fromPatch(id string, patch workspace.NodePatch) *componentDTO {
	c := &componentDTO{ID: id}
	if patch.Kind == workspace.KindProcessor {
		if patch.Comments != nil || patch.AutoTerminated != nil {
			c.Config = &processorConfigDTO{
				Comments:                    patch.Comments,
				AutoTerminatedRelationships: patch.AutoTerminated,
			}
		}
	} else {
		c.Comments = patch.Comments
	}
	if s := patch.RemoteSettings; s != nil {
		c.ProxyHost = s.ProxyHost
		c.ProxyPort = s.ProxyPort
		c.ProxyUser = s.ProxyUser
		c.ProxyPassword = s.ProxyPassword
		c.LocalNetworkInterface = s.LocalNetworkInterface
		c.TransportProtocol = s.TransportProtocol
		c.CommunicationsTimeout = s.CommunicationsTimeout
		c.YieldDuration = s.YieldDuration
	}
	return c
}

func fromRemotePortPatch(groupID string, patch workspace.RemotePortPatch) *remotePortDTO {
	port := &remotePortDTO{
		ID:                               patch.PortID,
		GroupID:                          groupID,
		ConcurrentlySchedulableTaskCount: patch.ConcurrentTasks,
		UseCompression:                   patch.UseCompression,
	}
	if patch.BatchCount != nil || patch.BatchSize != "" || patch.BatchDuration != "" {
		port.BatchSettings = &batchSettingsDTO{
			Count:    patch.BatchCount,
			Size:     patch.BatchSize,
			Duration: patch.BatchDuration,
		}
	}
	return port
}

func toConnectable(c connectableDTO) workspace.Connectable {
	return workspace.Connectable{ID: c.ID, GroupID: c.GroupID, Kind: workspace.ConnectableKind(c.Type), Name: c.Name}
}

func fromConnectable(c workspace.Connectable) connectableDTO {
	return connectableDTO{ID: c.ID, GroupID: c.GroupID, Type: string(c.Kind)}
}

func toConnection(entity connectionEntityDTO) workspace.ConnectionDescriptor {
	conn := workspace.ConnectionDescriptor{ID: entity.ID}
	c := entity.Component
	if c == nil {
		return conn
	}
	if c.ID != "" {
		conn.ID = c.ID
	}
	conn.ParentGroupID = c.ParentGroupID
	conn.Source = toConnectable(c.Source)
	conn.Destination = toConnectable(c.Destination)
	conn.SelectedRelationships = c.SelectedRelationships
	conn.Settings = workspace.ConnectionSettings{
		Name:                          c.Name,
		BackPressureObjectThreshold:   c.BackPressureObjectThreshold,
		BackPressureDataSizeThreshold: c.BackPressureDataSizeThreshold,
		LoadBalanceStrategy:           c.LoadBalanceStrategy,
		LoadBalancePartitionAttribute: c.LoadBalancePartitionAttribute,
		LoadBalanceCompression:        c.LoadBalanceCompression,
		FlowFileExpiration:            c.FlowFileExpiration,
		Prioritizers:                  c.Prioritizers,
		ZIndex:                        c.ZIndex,
		LabelIndex:                    c.LabelIndex,
	}
	for _, b := range c.Bends {
		conn.Bends = append(conn.Bends, workspace.Position{X: b.X, Y: b.Y})
	}
	return conn
}

func fromConnectionSpec(spec workspace.ConnectionSpec) *connectionDTO {
	s := spec.Settings
	c := &connectionDTO{
		Name:                          s.Name,
		Source:                        fromConnectable(spec.Source),
		Destination:                   fromConnectable(spec.Destination),
		SelectedRelationships:         spec.SelectedRelationships,
		BackPressureObjectThreshold:   s.BackPressureObjectThreshold,
		BackPressureDataSizeThreshold: s.BackPressureDataSizeThreshold,
		LoadBalanceStrategy:           s.LoadBalanceStrategy,
		LoadBalancePartitionAttribute: s.LoadBalancePartitionAttribute,
		LoadBalanceCompression:        s.LoadBalanceCompression,
		FlowFileExpiration:            s.FlowFileExpiration,
		Prioritizers:                  s.Prioritizers,
		LabelIndex:                    s.LabelIndex,
		ZIndex:                        s.ZIndex,
	}
	for _, b := range spec.Bends {
		c.Bends = append(c.Bends, positionDTO{X: b.X, Y: b.Y})
	}
	return c
}

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

// Package defaults holds the platform default values and converts between full workspace settings and the
// sparse, non-default form kept in templates. Both directions share the same tables.
package defaults

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/workspace"
)

// ErrInvalidValue is returned when a template value cannot be converted into a workspace setting.
var ErrInvalidValue = errors.New("invalid template value")

// Scheduling keys.
const (
	KeyRunSchedule        = "runSchedule"
	KeySchedulingStrategy = "schedulingStrategy"
	KeyConcurrentTasks    = "concurrentTasks"
	KeyPenaltyDuration    = "penaltyDuration"
	KeyYieldDuration      = "yieldDuration"
	KeyRunDuration        = "runDuration"
	KeyExecution          = "execution"
	KeyBulletinLevel      = "bulletinLevel"
)

// Remote group keys.
const (
	KeyTargetURIs    = "targetUris"
	KeyProxyHost     = "proxyHost"
	KeyProxyPort     = "proxyPort"
	KeyProxyUser     = "proxyUser"
	KeyProxyPassword = "proxyPassword"
	KeyNetwork       = "network"
	KeyProtocol      = "protocol"
	KeyTimeout       = "timeout"
)

// Style keys.
const (
	StyleFontSize        = "font-size"
	StyleBackgroundColor = "background-color"
	StyleWidth           = "width"
	StyleHeight          = "height"
)

// DefaultScheduling is the scheduling a processor gets when nothing is configured.
var DefaultScheduling = workspace.Scheduling{
	Period:            "0 sec",
	Strategy:          "TIMER_DRIVEN",
	ConcurrentTasks:   1,
	PenaltyDuration:   "30 sec",
	YieldDuration:     "1 sec",
	RunDurationMillis: 0,
	ExecutionNode:     "ALL",
	BulletinLevel:     "WARN",
}

// DefaultStyles holds the default canvas styles.
var DefaultStyles = map[string]string{
	StyleFontSize:        "12px",
	StyleBackgroundColor: "#fff7d7",
}

// DefaultConnection is the queue configuration of a connection with no explicit settings.
var DefaultConnection = workspace.ConnectionSettings{
	BackPressureObjectThreshold:   10000,
	BackPressureDataSizeThreshold: "1 GB",
	LoadBalanceStrategy:           "DO_NOT_LOAD_BALANCE",
	LoadBalanceCompression:        "DO_NOT_COMPRESS",
	FlowFileExpiration:            "0 sec",
	ZIndex:                        0,
	LabelIndex:                    1,
}

// Remote group defaults.
const (
	DefaultTransportProtocol     = "RAW"
	DefaultCommunicationsTimeout = "30 sec"
	DefaultRemoteYieldDuration   = "10 sec"
	DefaultRemoteConcurrentTasks = 1
)

// SchedulingDelta returns the scheduling values that differ from the defaults.
func SchedulingDelta(s *workspace.Scheduling) map[string]string {
	if s == nil {
		return nil
	}
	d := DefaultScheduling
	delta := map[string]string{}
	putIfChanged(delta, KeyRunSchedule, s.Period, d.Period)
	putIfChanged(delta, KeySchedulingStrategy, s.Strategy, d.Strategy)
	putIfChanged(delta, KeyConcurrentTasks, strconv.Itoa(s.ConcurrentTasks), strconv.Itoa(d.ConcurrentTasks))
	putIfChanged(delta, KeyPenaltyDuration, s.PenaltyDuration, d.PenaltyDuration)
	putIfChanged(delta, KeyYieldDuration, s.YieldDuration, d.YieldDuration)
	putIfChanged(delta, KeyRunDuration, strconv.FormatInt(s.RunDurationMillis, 10),
		strconv.FormatInt(d.RunDurationMillis, 10))
	putIfChanged(delta, KeyExecution, s.ExecutionNode, d.ExecutionNode)
	putIfChanged(delta, KeyBulletinLevel, s.BulletinLevel, d.BulletinLevel)
	return emptyToNil(delta)
}

// ApplyScheduling overlays a sparse scheduling map on the defaults.
func ApplyScheduling(values map[string]string) (*workspace.Scheduling, error) {
	s := DefaultScheduling
	for _, key := range sortedKeys(values) {
		value := values[key]
		switch key {
		case KeyRunSchedule:
			s.Period = value
		case KeySchedulingStrategy:
			s.Strategy = value
		case KeyConcurrentTasks:
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%w: scheduling %s=%q", ErrInvalidValue, key, value)
			}
			s.ConcurrentTasks = n
		case KeyPenaltyDuration:
			s.PenaltyDuration = value
		case KeyYieldDuration:
			s.YieldDuration = value
		case KeyRunDuration:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: scheduling %s=%q", ErrInvalidValue, key, value)
			}
			s.RunDurationMillis = n
		case KeyExecution:
			s.ExecutionNode = value
		case KeyBulletinLevel:
			s.BulletinLevel = value
		default:
			return nil, fmt.Errorf("%w: unknown scheduling key %q", ErrInvalidValue, key)
		}
	}
	return &s, nil
}

// StyleDelta returns the styles that differ from the defaults.
func StyleDelta(style map[string]string) map[string]string {
	delta := map[string]string{}
	for key, value := range style {
		if def, ok := DefaultStyles[key]; ok && def == value {
			continue
		}
		delta[key] = value
	}
	return emptyToNil(delta)
}

// LabelStyleDelta returns the non-default styles of a label with its size folded in.
func LabelStyleDelta(style map[string]string, width, height float64) map[string]string {
	delta := StyleDelta(style)
	if delta == nil {
		delta = map[string]string{}
	}
	delta[StyleWidth] = strconv.FormatFloat(width, 'f', -1, 64)
	delta[StyleHeight] = strconv.FormatFloat(height, 'f', -1, 64)
	return delta
}

// SplitLabelStyle separates the size of a label from its other styles.
func SplitLabelStyle(styles map[string]string) (map[string]string, float64, float64, error) {
	rest := map[string]string{}
	var width, height float64
	for key, value := range styles {
		switch key {
		case StyleWidth, StyleHeight:
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, 0, 0, fmt.Errorf("%w: style %s=%q", ErrInvalidValue, key, value)
			}
			if key == StyleWidth {
				width = n
			} else {
				height = n
			}
		default:
			rest[key] = value
		}
	}
	return emptyToNil(rest), width, height, nil
}

// PropertiesDelta returns the configured properties that differ from their descriptor defaults.
// A property cleared despite having a default is kept with an empty value.
func PropertiesDelta(properties map[string]string,
	descriptors map[string]workspace.PropertyDescriptor) map[string]string {
	delta := map[string]string{}
	for key, value := range properties {
		if descriptor, ok := descriptors[key]; ok && descriptor.DefaultValue == value {
			continue
		}
		if value == "" {
			if descriptor, ok := descriptors[key]; !ok || descriptor.DefaultValue == "" {
				continue
			}
		}
		delta[key] = value
	}
	return emptyToNil(delta)
}

// ConnectionDelta returns the connection settings that differ from the defaults, or nil.
func ConnectionDelta(s workspace.ConnectionSettings) *model.ConnectionProperties {
	d := DefaultConnection
	p := &model.ConnectionProperties{}
	changed := false

	if s.Name != "" {
		p.Name, changed = s.Name, true
	}
	if s.BackPressureObjectThreshold != d.BackPressureObjectThreshold {
		n := s.BackPressureObjectThreshold
		p.BackPressureObjectThreshold, changed = &n, true
	}
	if s.BackPressureDataSizeThreshold != d.BackPressureDataSizeThreshold {
		p.BackPressureDataSizeThreshold, changed = s.BackPressureDataSizeThreshold, true
	}
	if s.LoadBalanceStrategy != d.LoadBalanceStrategy {
		p.LoadBalanceStrategy, changed = s.LoadBalanceStrategy, true
	}
	if s.LoadBalancePartitionAttribute != "" {
		p.LoadBalancePartitionAttribute, changed = s.LoadBalancePartitionAttribute, true
	}
	if s.LoadBalanceCompression != d.LoadBalanceCompression {
		p.LoadBalanceCompression, changed = s.LoadBalanceCompression, true
	}
	if s.FlowFileExpiration != d.FlowFileExpiration {
		p.FlowFileExpiration, changed = s.FlowFileExpiration, true
	}
	if len(s.Prioritizers) > 0 {
		p.Prioritizers, changed = append([]string(nil), s.Prioritizers...), true
	}
	if s.ZIndex != d.ZIndex {
		n := s.ZIndex
		p.ZIndex, changed = &n, true
	}
	if s.LabelIndex != d.LabelIndex {
		n := s.LabelIndex
		p.LabelIndex, changed = &n, true
	}

	if !changed {
		return nil
	}
	return p
}

// ApplyConnection overlays sparse connection properties on the defaults.
func ApplyConnection(p *model.ConnectionProperties) workspace.ConnectionSettings {
	s := DefaultConnection
	if p == nil {
		return s
	}
	s.Name = p.Name
	if p.BackPressureObjectThreshold != nil {
		s.BackPressureObjectThreshold = *p.BackPressureObjectThreshold
	}
	if p.BackPressureDataSizeThreshold != "" {
		s.BackPressureDataSizeThreshold = p.BackPressureDataSizeThreshold
	}
	if p.LoadBalanceStrategy != "" {
		s.LoadBalanceStrategy = p.LoadBalanceStrategy
	}
	s.LoadBalancePartitionAttribute = p.LoadBalancePartitionAttribute
	if p.LoadBalanceCompression != "" {
		s.LoadBalanceCompression = p.LoadBalanceCompression
	}
	if p.FlowFileExpiration != "" {
		s.FlowFileExpiration = p.FlowFileExpiration
	}
	s.Prioritizers = append([]string(nil), p.Prioritizers...)
	if p.ZIndex != nil {
		s.ZIndex = *p.ZIndex
	}
	if p.LabelIndex != nil {
		s.LabelIndex = *p.LabelIndex
	}
	return s
}

// RemoteGroupDelta returns the remote group settings worth keeping. The target URIs are always kept.
func RemoteGroupDelta(s *workspace.RemoteGroupSettings) map[string]string {
	if s == nil {
		return nil
	}
	delta := map[string]string{KeyTargetURIs: s.TargetURIs}
	putIfChanged(delta, KeyProxyHost, s.ProxyHost, "")
	if s.ProxyPort != nil {
		delta[KeyProxyPort] = strconv.Itoa(*s.ProxyPort)
	}
	putIfChanged(delta, KeyProxyUser, s.ProxyUser, "")
	putIfChanged(delta, KeyProxyPassword, s.ProxyPassword, "")
	putIfChanged(delta, KeyNetwork, s.LocalNetworkInterface, "")
	putIfSet(delta, KeyProtocol, s.TransportProtocol, DefaultTransportProtocol)
	putIfSet(delta, KeyTimeout, s.CommunicationsTimeout, DefaultCommunicationsTimeout)
	putIfSet(delta, KeyYieldDuration, s.YieldDuration, DefaultRemoteYieldDuration)
	return delta
}

// ApplyRemoteGroup converts remote group properties into settings. Absent values stay empty so the
// workspace keeps its own defaults.
func ApplyRemoteGroup(values map[string]string) (workspace.RemoteGroupSettings, error) {
	var s workspace.RemoteGroupSettings
	for _, key := range sortedKeys(values) {
		value := values[key]
		switch key {
		case KeyTargetURIs:
			s.TargetURIs = value
		case KeyProxyHost:
			s.ProxyHost = value
		case KeyProxyPort:
			n, err := strconv.Atoi(value)
			if err != nil {
				return s, fmt.Errorf("%w: remote group %s=%q", ErrInvalidValue, key, value)
			}
			s.ProxyPort = &n
		case KeyProxyUser:
			s.ProxyUser = value
		case KeyProxyPassword:
			s.ProxyPassword = value
		case KeyNetwork:
			s.LocalNetworkInterface = value
		case KeyProtocol:
			s.TransportProtocol = value
		case KeyTimeout:
			s.CommunicationsTimeout = value
		case KeyYieldDuration:
			s.YieldDuration = value
		default:
			return s, fmt.Errorf("%w: unknown remote group key %q", ErrInvalidValue, key)
		}
	}
	return s, nil
}

// RemotePortDelta returns the template record of a remote port, or false when every setting is a default.
func RemotePortDelta(port workspace.RemotePort, direction string) (model.RemotePort, bool) {
	record := model.RemotePort{Name: port.Name, Direction: direction}
	changed := false
	if port.ConcurrentTasks != DefaultRemoteConcurrentTasks && port.ConcurrentTasks != 0 {
		record.ConcurrentTasks, changed = port.ConcurrentTasks, true
	}
	if port.UseCompression {
		record.UseCompression, changed = true, true
	}
	if port.BatchCount != nil {
		n := *port.BatchCount
		record.BatchCount, changed = &n, true
	}
	if port.BatchSize != "" {
		record.BatchSize, changed = port.BatchSize, true
	}
	if port.BatchDuration != "" {
		record.BatchDuration, changed = port.BatchDuration, true
	}
	return record, changed
}

// ApplyRemotePort converts a remote port record into a patch for the discovered port.
func ApplyRemotePort(record model.RemotePort, portID string) workspace.RemotePortPatch {
	patch := workspace.RemotePortPatch{
		PortID:          portID,
		Input:           record.Direction == model.RemotePortInput,
		ConcurrentTasks: DefaultRemoteConcurrentTasks,
		UseCompression:  record.UseCompression,
		BatchSize:       record.BatchSize,
		BatchDuration:   record.BatchDuration,
	}
	if record.ConcurrentTasks > 0 {
		patch.ConcurrentTasks = record.ConcurrentTasks
	}
	if record.BatchCount != nil {
		n := *record.BatchCount
		patch.BatchCount = &n
	}
	return patch
}

func putIfChanged(m map[string]string, key, value, def string) {
	if value != def {
		m[key] = value
	}
}

func putIfSet(m map[string]string, key, value, def string) {
	if value != "" && value != def {
		m[key] = value
	}
}

func emptyToNil(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	return m
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

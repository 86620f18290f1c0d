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

package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/templatizer/internal/template/model"
	"github.com/asgardeo/templatizer/internal/workspace"
)

type DefaultsTestSuite struct {
	suite.Suite
}

func TestDefaultsSuite(t *testing.T) {
	suite.Run(t, new(DefaultsTestSuite))
}

func (suite *DefaultsTestSuite) TestSchedulingDeltaKeepsOnlyChanges() {
	s := DefaultScheduling
	assert.Nil(suite.T(), SchedulingDelta(&s))
	assert.Nil(suite.T(), SchedulingDelta(nil))

	s.Period = "5 min"
	s.ConcurrentTasks = 4
	s.Strategy = "CRON_DRIVEN"
	delta := SchedulingDelta(&s)
	assert.Equal(suite.T(), map[string]string{
		KeyRunSchedule:        "5 min",
		KeyConcurrentTasks:    "4",
		KeySchedulingStrategy: "CRON_DRIVEN",
	}, delta)
}

func (suite *DefaultsTestSuite) TestApplyScheduling() {
	s, err := ApplyScheduling(map[string]string{KeyConcurrentTasks: "3", KeyRunDuration: "25"})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, s.ConcurrentTasks)
	assert.Equal(suite.T(), int64(25), s.RunDurationMillis)
	assert.Equal(suite.T(), "30 sec", s.PenaltyDuration)
	assert.Equal(suite.T(), "TIMER_DRIVEN", s.Strategy)

	_, err = ApplyScheduling(map[string]string{KeyConcurrentTasks: "many"})
	assert.ErrorIs(suite.T(), err, ErrInvalidValue)

	_, err = ApplyScheduling(map[string]string{"priority": "1"})
	assert.ErrorIs(suite.T(), err, ErrInvalidValue)
}

func (suite *DefaultsTestSuite) TestSchedulingRoundTrip() {
	original := map[string]string{KeyYieldDuration: "2 sec", KeyBulletinLevel: "ERROR", KeyExecution: "PRIMARY"}
	s, err := ApplyScheduling(original)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), original, SchedulingDelta(s))
}

func (suite *DefaultsTestSuite) TestStyles() {
	assert.Nil(suite.T(), StyleDelta(map[string]string{StyleFontSize: "12px", StyleBackgroundColor: "#fff7d7"}))
	assert.Equal(suite.T(), map[string]string{StyleFontSize: "18px"},
		StyleDelta(map[string]string{StyleFontSize: "18px", StyleBackgroundColor: "#fff7d7"}))

	label := LabelStyleDelta(map[string]string{StyleBackgroundColor: "#ffffff"}, 150, 40.5)
	assert.Equal(suite.T(), map[string]string{StyleBackgroundColor: "#ffffff", StyleWidth: "150",
		StyleHeight: "40.5"}, label)

	rest, w, h, err := SplitLabelStyle(label)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), map[string]string{StyleBackgroundColor: "#ffffff"}, rest)
	assert.Equal(suite.T(), 150.0, w)
	assert.Equal(suite.T(), 40.5, h)

	_, _, _, err = SplitLabelStyle(map[string]string{StyleWidth: "wide"})
	assert.ErrorIs(suite.T(), err, ErrInvalidValue)
}

func (suite *DefaultsTestSuite) TestPropertiesDelta() {
	descriptors := map[string]workspace.PropertyDescriptor{
		"Log Level":     {Name: "Log Level", DefaultValue: "info"},
		"Log Payload":   {Name: "Log Payload", DefaultValue: "false"},
		"Attributes":    {Name: "Attributes"},
		"Character Set": {Name: "Character Set", DefaultValue: "UTF-8"},
	}
	properties := map[string]string{
		"Log Level":     "info",
		"Log Payload":   "true",
		"Attributes":    "",
		"Character Set": "",
		"Dynamic":       "${now()}",
	}

	assert.Equal(suite.T(), map[string]string{
		"Log Payload":   "true",
		"Character Set": "",
		"Dynamic":       "${now()}",
	}, PropertiesDelta(properties, descriptors))
	assert.Nil(suite.T(), PropertiesDelta(map[string]string{"Log Level": "info"}, descriptors))
}

func (suite *DefaultsTestSuite) TestConnectionDelta() {
	assert.Nil(suite.T(), ConnectionDelta(DefaultConnection))

	s := DefaultConnection
	s.Name = "retry"
	s.BackPressureObjectThreshold = 500
	s.Prioritizers = []string{"org.apache.nifi.prioritizer.FirstInFirstOutPrioritizer"}
	s.LabelIndex = 0

	p := ConnectionDelta(s)
	require.NotNil(suite.T(), p)
	assert.Equal(suite.T(), "retry", p.Name)
	assert.Equal(suite.T(), int64(500), *p.BackPressureObjectThreshold)
	assert.Equal(suite.T(), 0, *p.LabelIndex)
	assert.Empty(suite.T(), p.LoadBalanceStrategy)
	assert.Nil(suite.T(), p.ZIndex)

	assert.Equal(suite.T(), s, ApplyConnection(p))
}

func (suite *DefaultsTestSuite) TestApplyConnectionNil() {
	assert.Equal(suite.T(), DefaultConnection, ApplyConnection(nil))
}

func (suite *DefaultsTestSuite) TestRemoteGroup() {
	port := 3128
	s := &workspace.RemoteGroupSettings{
		TargetURIs:            "https://remote:8443/nifi",
		ProxyHost:             "proxy",
		ProxyPort:             &port,
		TransportProtocol:     "HTTP",
		CommunicationsTimeout: "30 sec",
		YieldDuration:         "",
	}
	delta := RemoteGroupDelta(s)
	assert.Equal(suite.T(), map[string]string{
		KeyTargetURIs: "https://remote:8443/nifi",
		KeyProxyHost:  "proxy",
		KeyProxyPort:  "3128",
		KeyProtocol:   "HTTP",
	}, delta)

	applied, err := ApplyRemoteGroup(delta)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "proxy", applied.ProxyHost)
	assert.Equal(suite.T(), 3128, *applied.ProxyPort)
	assert.False(suite.T(), applied.IsZero())

	onlyTarget, err := ApplyRemoteGroup(map[string]string{KeyTargetURIs: "http://x"})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), onlyTarget.IsZero())

	_, err = ApplyRemoteGroup(map[string]string{KeyProxyPort: "eighty"})
	assert.ErrorIs(suite.T(), err, ErrInvalidValue)
}

func (suite *DefaultsTestSuite) TestRemotePort() {
	_, changed := RemotePortDelta(workspace.RemotePort{Name: "in", ConcurrentTasks: 1}, model.RemotePortInput)
	assert.False(suite.T(), changed)

	count := 5
	record, changed := RemotePortDelta(workspace.RemotePort{Name: "in", ConcurrentTasks: 2, UseCompression: true,
		BatchCount: &count}, model.RemotePortInput)
	assert.True(suite.T(), changed)
	assert.Equal(suite.T(), 2, record.ConcurrentTasks)

	patch := ApplyRemotePort(record, "port-1")
	assert.Equal(suite.T(), "port-1", patch.PortID)
	assert.True(suite.T(), patch.Input)
	assert.True(suite.T(), patch.UseCompression)
	assert.Equal(suite.T(), 5, *patch.BatchCount)

	patch = ApplyRemotePort(model.RemotePort{Name: "out", Direction: model.RemotePortOutput}, "port-2")
	assert.False(suite.T(), patch.Input)
	assert.Equal(suite.T(), DefaultRemoteConcurrentTasks, patch.ConcurrentTasks)
}

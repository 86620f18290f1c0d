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

package workspace

// NodeKind identifies the structural kind of a workspace node.
type NodeKind string

const (
	KindProcessor          NodeKind = "PROCESSOR"
	KindInputPort          NodeKind = "INPUT_PORT"
	KindOutputPort         NodeKind = "OUTPUT_PORT"
	KindProcessGroup       NodeKind = "PROCESS_GROUP"
	KindRemoteProcessGroup NodeKind = "REMOTE_PROCESS_GROUP"
	KindFunnel             NodeKind = "FUNNEL"
	KindLabel              NodeKind = "LABEL"
	KindControllerService  NodeKind = "CONTROLLER_SERVICE"
)

// ConnectableKind identifies the kind of a connection endpoint.
type ConnectableKind string

const (
	ConnectableProcessor        ConnectableKind = "PROCESSOR"
	ConnectableInputPort        ConnectableKind = "INPUT_PORT"
	ConnectableOutputPort       ConnectableKind = "OUTPUT_PORT"
	ConnectableRemoteInputPort  ConnectableKind = "REMOTE_INPUT_PORT"
	ConnectableRemoteOutputPort ConnectableKind = "REMOTE_OUTPUT_PORT"
	ConnectableFunnel           ConnectableKind = "FUNNEL"
)

// Bundle holds the coordinates of the extension bundle that provides a component type.
type Bundle struct {
	Group    string `json:"group"`
	Artifact string `json:"artifact"`
	Version  string `json:"version"`
}

// Position is a canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PropertyDescriptor describes one configurable property of a component type.
type PropertyDescriptor struct {
	Name         string
	DefaultValue string
	// IdentifiesControllerService is the controller service interface a property references, if any.
	IdentifiesControllerService string
}

// Relationship is a named output route declared by a processor.
type Relationship struct {
	Name          string
	AutoTerminate bool
}

// Scheduling holds the scheduling settings of a processor.
type Scheduling struct {
	Period            string
	Strategy          string
	ConcurrentTasks   int
	PenaltyDuration   string
	YieldDuration     string
	RunDurationMillis int64
	ExecutionNode     string
	BulletinLevel     string
}

// RemoteGroupSettings holds the transport settings of a remote process group.
type RemoteGroupSettings struct {
	TargetURIs            string
	ProxyHost             string
	ProxyPort             *int
	ProxyUser             string
	ProxyPassword         string
	LocalNetworkInterface string
	TransportProtocol     string
	CommunicationsTimeout string
	YieldDuration         string
}

// IsZero reports whether no setting beyond the target URIs is present.
func (s RemoteGroupSettings) IsZero() bool {
	return s.ProxyHost == "" && s.ProxyPort == nil && s.ProxyUser == "" && s.ProxyPassword == "" &&
		s.LocalNetworkInterface == "" && s.TransportProtocol == "" && s.CommunicationsTimeout == "" &&
		s.YieldDuration == ""
}

// RemotePort is a port exposed by the workspace a remote group points at.
type RemotePort struct {
	ID              string
	GroupID         string
	Name            string
	Comments        string
	ConcurrentTasks int
	UseCompression  bool
	BatchCount      *int
	BatchSize       string
	BatchDuration   string
}

// RemoteGroupContents lists the ports discovered inside a remote group.
type RemoteGroupContents struct {
	InputPorts  []RemotePort
	OutputPorts []RemotePort
}

// NodeDescriptor is the workspace view of one node.
type NodeDescriptor struct {
	ID             string
	ParentGroupID  string
	Kind           NodeKind
	Name           string
	Type           string
	Bundle         Bundle
	Position       Position
	Comments       string
	Properties     map[string]string
	Descriptors    map[string]PropertyDescriptor
	Style          map[string]string
	Scheduling     *Scheduling
	AnnotationData string
	Relationships  []Relationship
	Label          string
	Width          float64
	Height         float64
	Remote         *RemoteGroupSettings
	RemoteContents *RemoteGroupContents
}

// NodeSpec describes a node to create. Only the fields relevant to Kind are read.
type NodeSpec struct {
	Kind NodeKind
	// RequestedID is a hint. The workspace may ignore it and always reports the id it used.
	RequestedID    string
	Name           string
	Type           string
	Bundle         Bundle
	Position       Position
	Comments       string
	Properties     map[string]string
	Style          map[string]string
	Scheduling     *Scheduling
	AnnotationData string
	Label          string
	Width          float64
	Height         float64
	TargetURIs     string
}

// RemotePortPatch changes the settings of one remote port.
type RemotePortPatch struct {
	PortID          string
	Input           bool
	ConcurrentTasks int
	UseCompression  bool
	BatchCount      *int
	BatchSize       string
	BatchDuration   string
}

// NodePatch carries the settings applied after creation. Nil fields are left untouched.
type NodePatch struct {
	Kind               NodeKind
	Comments           *string
	AutoTerminated     []string
	RemoteSettings     *RemoteGroupSettings
	RemotePortSettings *RemotePortPatch
}

// Connectable is one end of a connection.
type Connectable struct {
	ID      string
	GroupID string
	Kind    ConnectableKind
	Name    string
}

// ConnectionSettings holds the queue settings of a connection.
type ConnectionSettings struct {
	Name                          string
	BackPressureObjectThreshold   int64
	BackPressureDataSizeThreshold string
	LoadBalanceStrategy           string
	LoadBalancePartitionAttribute string
	LoadBalanceCompression        string
	FlowFileExpiration            string
	Prioritizers                  []string
	ZIndex                        int64
	LabelIndex                    int
}

// ConnectionSpec describes a connection to create.
type ConnectionSpec struct {
	Source                Connectable
	Destination           Connectable
	SelectedRelationships []string
	Settings              ConnectionSettings
	Bends                 []Position
}

// ConnectionDescriptor is the workspace view of one connection.
type ConnectionDescriptor struct {
	ID                    string
	ParentGroupID         string
	Source                Connectable
	Destination           Connectable
	SelectedRelationships []string
	Settings              ConnectionSettings
	Bends                 []Position
}

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

package builder

import "errors"

var (
	// ErrMissingTemplate is returned when a group element references a template that was not loaded.
	ErrMissingTemplate = errors.New("missing sub-template")
	// ErrInvalidTemplate is returned when an element carries a value that cannot be applied.
	ErrInvalidTemplate = errors.New("invalid template")
	// ErrUnresolvedEndpoint is returned when a connection endpoint cannot be mapped to a created node.
	ErrUnresolvedEndpoint = errors.New("unresolved connection endpoint")
	// ErrRemotePortNotFound is returned when a remote port does not appear within the retry budget.
	// Edges depending on it are skipped rather than failing the run.
	ErrRemotePortNotFound = errors.New("remote port not found")
	// ErrRemoteCall wraps every failure reported by the workspace.
	ErrRemoteCall = errors.New("workspace call failed")
)

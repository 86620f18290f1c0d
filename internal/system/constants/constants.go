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

// Package constants defines process wide constants shared by the system packages.
package constants

const (
	// LogLevelEnvironmentVariable is the environment variable that holds the log level.
	LogLevelEnvironmentVariable = "TEMPLATIZER_LOG_LEVEL"
	// DefaultLogLevel is used when the log level environment variable is not set.
	DefaultLogLevel = "info"
	// HomeEnvironmentVariable is the environment variable pointing to the templatizer home directory.
	HomeEnvironmentVariable = "TEMPLATIZER_HOME"
	// DefaultConfigFile is the deployment configuration path relative to the home directory.
	DefaultConfigFile = "repository/conf/deployment.yaml"
	// RootScopeAlias is the nominal identifier of the top level scope of a workspace.
	RootScopeAlias = "root"
	// TemplateFileExtension is the extension of every persisted template file.
	TemplateFileExtension = ".yaml"
)

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

// Package constants defines the error catalogue of the import direction.
package constants

import "github.com/asgardeo/templatizer/internal/system/error/serviceerror"

// Client error structs

var ErrorUnknownDependency = serviceerror.ServiceError{
	Code:             "TPL-60001",
	Type:             serviceerror.ClientErrorType,
	Error:            "Unknown dependency",
	ErrorDescription: "A template references a type that is not in its dependency vocabulary",
}

var ErrorDuplicateNamedIdentity = serviceerror.ServiceError{
	Code:             "TPL-60002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Duplicate name",
	ErrorDescription: "Two siblings of the same kind share a name that a connection refers to",
}

var ErrorConflictingIdentity = serviceerror.ServiceError{
	Code:             "TPL-60003",
	Type:             serviceerror.ClientErrorType,
	Error:            "Conflicting identity",
	ErrorDescription: "A template id was mapped to two different workspace ids",
}

var ErrorUnresolvedEndpoint = serviceerror.ServiceError{
	Code:             "TPL-60004",
	Type:             serviceerror.ClientErrorType,
	Error:            "Unresolved connection endpoint",
	ErrorDescription: "A connection endpoint could not be mapped to a created node",
}

var ErrorMissingTemplate = serviceerror.ServiceError{
	Code:             "TPL-60005",
	Type:             serviceerror.ClientErrorType,
	Error:            "Missing template",
	ErrorDescription: "A group references a template that is not in the directory",
}

var ErrorInvalidTemplateValue = serviceerror.ServiceError{
	Code:             "TPL-60006",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid template value",
	ErrorDescription: "A template value could not be applied",
}

var ErrorValidationFailed = serviceerror.ServiceError{
	Code:             "TPL-60007",
	Type:             serviceerror.ClientErrorType,
	Error:            "Template validation failed",
	ErrorDescription: "The template set is structurally invalid",
}

var ErrorTemplateLoadFailed = serviceerror.ServiceError{
	Code:             "TPL-60008",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Templates could not be loaded from the directory",
}

// Server error structs

var ErrorRemoteCallFailed = serviceerror.ServiceError{
	Code:             "TPL-65001",
	Type:             serviceerror.ServerErrorType,
	Error:            "Workspace call failed",
	ErrorDescription: "The workspace rejected or failed a request",
}

var ErrorRemotePortNotDiscovered = serviceerror.ServiceError{
	Code:             "TPL-65002",
	Type:             serviceerror.ServerErrorType,
	Error:            "Remote port not discovered",
	ErrorDescription: "A remote port did not appear in time and its connection was skipped",
}

var ErrorImportInterrupted = serviceerror.ServiceError{
	Code:             "TPL-65003",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "The import stopped before it completed",
}

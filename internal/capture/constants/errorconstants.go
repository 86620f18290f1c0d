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

// Package constants defines the error catalogue of the capture direction.
package constants

import "github.com/asgardeo/templatizer/internal/system/error/serviceerror"

// Client error structs

var ErrorInvalidExportDirectory = serviceerror.ServiceError{
	Code:             "TPL-60101",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "An export directory is required",
}

// Server error structs

var ErrorCaptureFailed = serviceerror.ServiceError{
	Code:             "TPL-65101",
	Type:             serviceerror.ServerErrorType,
	Error:            "Capture failed",
	ErrorDescription: "The workspace could not be read",
}

var ErrorDanglingConnection = serviceerror.ServiceError{
	Code:             "TPL-65102",
	Type:             serviceerror.ServerErrorType,
	Error:            "Capture failed",
	ErrorDescription: "A connection ends on a node outside its scope",
}

var ErrorTemplateWriteFailed = serviceerror.ServiceError{
	Code:             "TPL-65103",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Templates could not be written",
}

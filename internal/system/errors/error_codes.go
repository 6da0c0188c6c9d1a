/*
 * Copyright (c) 2025-2026, OpenHRMS Project.
 *
 * OpenHRMS licenses this file to you under the Apache License,
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

package errors

const errorPrefix = "EPE-"

var (
	// Validation error codes

	INVALID_PHONE_NUMBER = ErrorMessage{
		Code:    errorPrefix + "10001",
		Message: "Please enter a valid phone number",
	}

	FILE_TOO_LARGE = ErrorMessage{
		Code:    errorPrefix + "10002",
		Message: "File size cannot exceed 10MB",
	}

	IMAGE_TOO_LARGE = ErrorMessage{
		Code:    errorPrefix + "10003",
		Message: "Image size should be less than 5MB",
	}

	NOT_AN_IMAGE = ErrorMessage{
		Code:    errorPrefix + "10004",
		Message: "Please select an image file",
	}

	UNKNOWN_FIELD_PATH = ErrorMessage{
		Code:    errorPrefix + "10005",
		Message: "Unknown profile field path",
	}

	IMMUTABLE_FIELD = ErrorMessage{
		Code:    errorPrefix + "10006",
		Message: "Field is not editable",
	}

	EMPLOYEE_ID_UNKNOWN = ErrorMessage{
		Code:    errorPrefix + "10007",
		Message: "Employee ID not found",
	}

	INVALID_CATEGORY = ErrorMessage{
		Code:    errorPrefix + "10008",
		Message: "Unknown document category",
	}

	// Backend client error codes

	EMPLOYEE_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Employee not found",
	}

	BAD_MULTIPART_PAYLOAD = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Invalid multipart payload",
	}

	DOCUMENT_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Document not found",
	}

	DUPLICATE_DOCUMENT = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "A document already exists for this category",
	}

	// Backend server error codes

	PROFILE_STORAGE_FAILED = ErrorMessage{
		Code:    errorPrefix + "12001",
		Message: "Error while accessing profile storage",
	}

	DOCUMENT_STORAGE_FAILED = ErrorMessage{
		Code:    errorPrefix + "12002",
		Message: "Error while accessing document storage",
	}

	FILE_STORAGE_FAILED = ErrorMessage{
		Code:    errorPrefix + "12003",
		Message: "Error while writing uploaded file",
	}

	// Transport error codes

	FETCH_PROFILE_FAILED = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Failed to load profile data.",
	}

	UPDATE_PROFILE_FAILED = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Failed to save profile changes.",
	}

	LIST_DOCUMENTS_FAILED = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Failed to fetch documents",
	}

	CREATE_DOCUMENT_FAILED = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Document upload failed!",
	}

	UPDATE_DOCUMENT_FAILED = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Document upload failed!",
	}

	DELETE_DOCUMENT_FAILED = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Delete failed!",
	}

	// Remote rejection codes

	PROFILE_REJECTED = ErrorMessage{
		Code:    errorPrefix + "16001",
		Message: "Profile request rejected by server",
	}

	DOCUMENT_REJECTED = ErrorMessage{
		Code:    errorPrefix + "16002",
		Message: "Document request rejected by server",
	}
)

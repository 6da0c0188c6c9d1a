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

import "fmt"

type ErrorMessage struct {
	Code        string `json:"error_code"`
	Message     string `json:"error_message"`
	Description string `json:"error_description"`
}

// ValidationError is a local, pre-network failure (bad input, oversized
// file, immutable field). It never results in a remote call.
type ValidationError struct {
	ErrorMessage
}

// TransportError means the remote call itself could not complete.
type TransportError struct {
	ErrorMessage
	Err error
}

// RemoteRejection means the server answered with a non-success status.
// Body carries the response body verbatim for diagnostic display.
type RemoteRejection struct {
	ErrorMessage
	StatusCode int
	Body       string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Description)
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *RemoteRejection) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("[%s] %s: status %d", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("[%s] %s: status %d: %s", e.Code, e.Message, e.StatusCode, e.Body)
}

// DiagnosticText returns the user-facing error text: the verbatim server
// body when one is available, otherwise the message of the error code.
func (e *RemoteRejection) DiagnosticText() string {
	if e.Body != "" {
		return e.Body
	}
	return e.Message
}

func NewValidationError(msg ErrorMessage, description string) *ValidationError {
	if description != "" {
		msg.Description = description
	}
	return &ValidationError{ErrorMessage: msg}
}

func NewTransportError(msg ErrorMessage, cause error) *TransportError {
	return &TransportError{
		ErrorMessage: msg,
		Err:          cause,
	}
}

func NewRemoteRejection(msg ErrorMessage, statusCode int, body string) *RemoteRejection {
	return &RemoteRejection{
		ErrorMessage: msg,
		StatusCode:   statusCode,
		Body:         body,
	}
}

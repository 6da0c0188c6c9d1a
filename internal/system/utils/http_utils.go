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

package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	engineErrors "github.com/openhrms/employee-profile-engine/internal/system/errors"
	"github.com/openhrms/employee-profile-engine/internal/system/log"
)

// HandleError sends an HTTP error response based on the provided error.
func HandleError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var clientError *engineErrors.ClientError
	if errors.As(err, &clientError) {
		statusCode := clientError.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadRequest
		}
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(clientError.ErrorMessage)
		return
	}

	logger := log.GetLogger()
	logger.Error("Request failed", log.Error(err))
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "Internal server error",
	})
}

// WriteJSONResponse writes a JSON body with the given status code.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

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

package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	documentModel "github.com/openhrms/employee-profile-engine/internal/document/model"
	profileModel "github.com/openhrms/employee-profile-engine/internal/profile/model"
	errors2 "github.com/openhrms/employee-profile-engine/internal/system/errors"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"123456", true},
		{"+14155552671", true},
		{"+1 415 555 2671", true},
		{"123456789012345", true},
		{"12345", false},
		{"1234567890123456", false},
		{"12a-345", false},
		{"+", false},
		{"", false},
		{"+1-415-555-2671", false},
	}

	for _, tc := range tests {
		t.Run(tc.phone, func(t *testing.T) {
			if got := ValidatePhone(tc.phone); got != tc.valid {
				t.Errorf("ValidatePhone(%q) = %v, want %v", tc.phone, got, tc.valid)
			}
		})
	}
}

func TestValidateSaveAllowsEmptyPhone(t *testing.T) {
	record := profileModel.ProfileRecord{Email: "jane@acme.test"}
	assert.NoError(t, ValidateSave(record))
}

func TestValidateSaveRejectsBadPhone(t *testing.T) {
	record := profileModel.ProfileRecord{Email: "jane@acme.test", Phone: "12a-345"}

	err := ValidateSave(record)

	var validationErr *errors2.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, errors2.INVALID_PHONE_NUMBER.Code, validationErr.Code)
}

func TestValidateSaveRequiresEmail(t *testing.T) {
	assert.Error(t, ValidateSave(profileModel.ProfileRecord{}))
}

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name     string
		file     documentModel.File
		wantCode string
	}{
		{
			name: "validPNG",
			file: documentModel.File{Name: "a.png", ContentType: "image/png", Data: []byte("png")},
		},
		{
			name:     "notAnImage",
			file:     documentModel.File{Name: "a.pdf", ContentType: "application/pdf", Data: []byte("pdf")},
			wantCode: errors2.NOT_AN_IMAGE.Code,
		},
		{
			name:     "oversized",
			file:     documentModel.File{Name: "a.png", ContentType: "image/png", Data: []byte(strings.Repeat("x", MaxImageSize+1))},
			wantCode: errors2.IMAGE_TOO_LARGE.Code,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateImage(tc.file)
			if tc.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *errors2.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.wantCode, validationErr.Code)
		})
	}
}

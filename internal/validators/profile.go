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

// Package validators holds the local, pre-network checks. Nothing here
// ever issues a remote call; failures surface as ValidationError.
package validators

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	documentModel "github.com/openhrms/employee-profile-engine/internal/document/model"
	profileModel "github.com/openhrms/employee-profile-engine/internal/profile/model"
	errors2 "github.com/openhrms/employee-profile-engine/internal/system/errors"
)

// MaxImageSize bounds a staged profile picture.
const MaxImageSize = 5 << 20

// phonePattern: optional leading +, then 6 to 15 digits, checked after
// stripping whitespace.
var phonePattern = regexp.MustCompile(`^[\+]?[0-9]{6,15}$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

type profileSaveInput struct {
	Email string `validate:"required,email"`
	Phone string `validate:"omitempty,hrmsphone"`
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("hrmsphone", func(fl validator.FieldLevel) bool {
			stripped := strings.ReplaceAll(fl.Field().String(), " ", "")
			return phonePattern.MatchString(stripped)
		})
	})
	return validate
}

// ValidateSave runs the save preconditions over the edited record. An
// absent phone passes; a present one must match the phone pattern.
func ValidateSave(record profileModel.ProfileRecord) error {
	input := profileSaveInput{
		Email: record.Email,
		Phone: strings.TrimSpace(record.Phone),
	}
	if err := getValidator().Struct(input); err != nil {
		for _, fieldError := range err.(validator.ValidationErrors) {
			if fieldError.Field() == "Phone" {
				return errors2.NewValidationError(errors2.INVALID_PHONE_NUMBER,
					fmt.Sprintf("phone %q does not match the expected format", record.Phone))
			}
		}
		return errors2.NewValidationError(errors2.IMMUTABLE_FIELD,
			"profile record has no valid email identity")
	}
	return nil
}

// ValidatePhone checks a single phone value the same way ValidateSave does.
func ValidatePhone(phone string) bool {
	stripped := strings.ReplaceAll(phone, " ", "")
	return phonePattern.MatchString(stripped)
}

// ValidateImage checks a staged profile picture: image content type and
// at most MaxImageSize bytes.
func ValidateImage(file documentModel.File) error {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return errors2.NewValidationError(errors2.NOT_AN_IMAGE,
			fmt.Sprintf("%s has content type %q", file.Name, file.ContentType))
	}
	if file.Size() > MaxImageSize {
		return errors2.NewValidationError(errors2.IMAGE_TOO_LARGE,
			fmt.Sprintf("%s is %d bytes; the limit is %d", file.Name, file.Size(), MaxImageSize))
	}
	return nil
}

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

// Package store holds the canonical profile snapshot operations. Every
// operation is pure: the input record is never mutated, updates return a
// fresh copy. Nested structures get dedicated per-path updaters instead
// of generic map merges so a partial update can never clobber sibling
// fields.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/openhrms/employee-profile-engine/internal/profile/model"
	errors2 "github.com/openhrms/employee-profile-engine/internal/system/errors"
	"github.com/openhrms/employee-profile-engine/internal/system/log"
)

// Load maps the wire representation into the canonical ProfileRecord,
// substituting empty-value defaults for every absent or malformed
// optional field. Load never fails.
func Load(resp model.EmployeeResponse, email string) model.ProfileRecord {
	record := model.ProfileRecord{
		Email:            resp.Email,
		Name:             resp.DisplayName(),
		Picture:          resp.ProfilePicture,
		Role:             resp.Role,
		Phone:            resp.Phone,
		Department:       resp.Department,
		CurrentAddress:   resp.CurrentAddress,
		PermanentAddress: resp.PermanentAddress,
		DOB:              resp.DOB,
		Gender:           resp.Gender,
		Nationality:      resp.Nationality,
		MaritalStatus:    resp.MaritalStatus,
		Education:        []model.EducationEntry{},
		Skills:           []string{},
		Languages:        []string{},
	}
	if record.Email == "" {
		record.Email = email
	}

	decodeOptional(resp.EmergencyContact, "emergencyContact", &record.EmergencyContact)
	decodeOptional(resp.Employment, "employmentDetails", &record.Employment)

	var education []model.EducationEntry
	if decodeOptional(resp.Education, "education", &education) && education != nil {
		record.Education = education
	}
	var skills []string
	if decodeOptional(resp.Skills, "skills", &skills) && skills != nil {
		record.Skills = skills
	}
	var languages []string
	if decodeOptional(resp.Languages, "languages", &languages) && languages != nil {
		record.Languages = languages
	}

	return record
}

// decodeOptional unmarshals a raw optional block into dst. Absent or
// malformed blocks leave dst at its default and report false.
func decodeOptional(raw json.RawMessage, name string, dst interface{}) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.GetLogger().Warn(fmt.Sprintf("Ignoring malformed %s block in server record", name),
			log.Error(err))
		return false
	}
	return true
}

// SetField returns a copy of the record with the field at path replaced.
// Paths use the wire names ("phone", "emergencyContact.name",
// "employmentDetails.designation"). Unknown paths and immutable fields
// return the record unchanged together with a validation error.
func SetField(record model.ProfileRecord, path string, value string) (model.ProfileRecord, error) {
	switch path {
	case "email":
		return record, errors2.NewValidationError(errors2.IMMUTABLE_FIELD,
			"email is the profile identity and cannot be edited")
	case "name":
		record.Name = value
	case "picture":
		record.Picture = value
	case "role":
		record.Role = value
	case "phone":
		record.Phone = value
	case "department":
		record.Department = value
	case "currentAddress":
		record.CurrentAddress = value
	case "permanentAddress":
		record.PermanentAddress = value
	case "dob":
		record.DOB = value
	case "gender":
		record.Gender = value
	case "nationality":
		record.Nationality = value
	case "maritalStatus":
		record.MaritalStatus = value
	case "emergencyContact.name":
		record.EmergencyContact = withContactName(record.EmergencyContact, value)
	case "emergencyContact.relationship":
		record.EmergencyContact = withContactRelationship(record.EmergencyContact, value)
	case "emergencyContact.phone":
		record.EmergencyContact = withContactPhone(record.EmergencyContact, value)
	case "employmentDetails.employeeId":
		if record.Employment.EmployeeID != "" {
			return record, errors2.NewValidationError(errors2.IMMUTABLE_FIELD,
				"employeeId is server-assigned and cannot be edited")
		}
		record.Employment = withEmployeeID(record.Employment, value)
	case "employmentDetails.dateOfJoining":
		record.Employment = withJoinDate(record.Employment, value)
	case "employmentDetails.workLocation":
		record.Employment = withWorkLocation(record.Employment, value)
	case "employmentDetails.employmentType":
		record.Employment = withEmploymentType(record.Employment, value)
	case "employmentDetails.designation":
		record.Employment = withDesignation(record.Employment, value)
	case "employmentDetails.salary":
		record.Employment = withSalary(record.Employment, value)
	case "employmentDetails.reportingManager":
		record.Employment = withReportingManager(record.Employment, value)
	case "employmentDetails.team":
		record.Employment = withTeam(record.Employment, value)
	default:
		return record, errors2.NewValidationError(errors2.UNKNOWN_FIELD_PATH,
			fmt.Sprintf("no editable field at path %q", path))
	}
	return clone(record), nil
}

// AddSkill appends the skill unless an identical entry already exists.
func AddSkill(record model.ProfileRecord, skill string) model.ProfileRecord {
	if skill == "" || contains(record.Skills, skill) {
		return record
	}
	record = clone(record)
	record.Skills = append(record.Skills, skill)
	return record
}

// AddLanguage appends the language unless an identical entry already exists.
func AddLanguage(record model.ProfileRecord, language string) model.ProfileRecord {
	if language == "" || contains(record.Languages, language) {
		return record
	}
	record = clone(record)
	record.Languages = append(record.Languages, language)
	return record
}

// AddEducation appends the entry when degree, institution and year are
// all present. Grade is optional. Incomplete entries are dropped.
func AddEducation(record model.ProfileRecord, entry model.EducationEntry) model.ProfileRecord {
	if entry.Degree == "" || entry.Institution == "" || entry.Year == "" {
		return record
	}
	record = clone(record)
	record.Education = append(record.Education, entry)
	return record
}

// RemoveSkill removes the skill at index; out-of-bounds is a no-op.
func RemoveSkill(record model.ProfileRecord, index int) model.ProfileRecord {
	if index < 0 || index >= len(record.Skills) {
		return record
	}
	record = clone(record)
	record.Skills = append(record.Skills[:index], record.Skills[index+1:]...)
	return record
}

// RemoveLanguage removes the language at index; out-of-bounds is a no-op.
func RemoveLanguage(record model.ProfileRecord, index int) model.ProfileRecord {
	if index < 0 || index >= len(record.Languages) {
		return record
	}
	record = clone(record)
	record.Languages = append(record.Languages[:index], record.Languages[index+1:]...)
	return record
}

// RemoveEducation removes the entry at index; out-of-bounds is a no-op.
func RemoveEducation(record model.ProfileRecord, index int) model.ProfileRecord {
	if index < 0 || index >= len(record.Education) {
		return record
	}
	record = clone(record)
	record.Education = append(record.Education[:index], record.Education[index+1:]...)
	return record
}

// clone deep-copies the slices so callers holding the previous record
// never observe later edits.
func clone(record model.ProfileRecord) model.ProfileRecord {
	record.Education = append([]model.EducationEntry{}, record.Education...)
	record.Skills = append([]string{}, record.Skills...)
	record.Languages = append([]string{}, record.Languages...)
	return record
}

func contains(items []string, item string) bool {
	for _, existing := range items {
		if existing == item {
			return true
		}
	}
	return false
}

func withContactName(c model.EmergencyContact, v string) model.EmergencyContact {
	c.Name = v
	return c
}

func withContactRelationship(c model.EmergencyContact, v string) model.EmergencyContact {
	c.Relationship = v
	return c
}

func withContactPhone(c model.EmergencyContact, v string) model.EmergencyContact {
	c.Phone = v
	return c
}

func withEmployeeID(e model.EmploymentDetails, v string) model.EmploymentDetails {
	e.EmployeeID = v
	return e
}

func withJoinDate(e model.EmploymentDetails, v string) model.EmploymentDetails {
	e.JoinDate = v
	return e
}

func withWorkLocation(e model.EmploymentDetails, v string) model.EmploymentDetails {
	e.WorkLocation = v
	return e
}

func withEmploymentType(e model.EmploymentDetails, v string) model.EmploymentDetails {
	e.EmploymentType = v
	return e
}

func withDesignation(e model.EmploymentDetails, v string) model.EmploymentDetails {
	e.Designation = v
	return e
}

func withSalary(e model.EmploymentDetails, v string) model.EmploymentDetails {
	e.Salary = v
	return e
}

func withReportingManager(e model.EmploymentDetails, v string) model.EmploymentDetails {
	e.ReportingManager = v
	return e
}

func withTeam(e model.EmploymentDetails, v string) model.EmploymentDetails {
	e.Team = v
	return e
}

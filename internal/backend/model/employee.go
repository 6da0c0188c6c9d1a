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

// Package model holds the storage and wire shapes of the reference
// backend. Wire field names match what the engine's gateway sends and
// expects ("fullname", "profile_picture", "type", "file_url").
package model

import (
	profileModel "github.com/openhrms/employee-profile-engine/internal/profile/model"
)

// Employee is the backend-side profile record. EmployeeID is assigned
// by the backend on first insert and never changes.
type Employee struct {
	EmployeeID       int64                          `json:"employee_id" bson:"employee_id"`
	Email            string                         `json:"email" bson:"email"`
	Fullname         string                         `json:"fullname" bson:"fullname"`
	ProfilePicture   string                         `json:"profile_picture" bson:"profile_picture"`
	Role             string                         `json:"role" bson:"role"`
	Phone            string                         `json:"phone" bson:"phone"`
	Department       string                         `json:"department" bson:"department"`
	CurrentAddress   string                         `json:"currentAddress" bson:"current_address"`
	PermanentAddress string                         `json:"permanentAddress" bson:"permanent_address"`
	DOB              string                         `json:"dob" bson:"dob"`
	Gender           string                         `json:"gender" bson:"gender"`
	Nationality      string                         `json:"nationality" bson:"nationality"`
	MaritalStatus    string                         `json:"maritalStatus" bson:"marital_status"`
	EmergencyContact profileModel.EmergencyContact  `json:"emergencyContact" bson:"emergency_contact"`
	Employment       profileModel.EmploymentDetails `json:"employmentDetails" bson:"employment_details"`
	Education        []profileModel.EducationEntry  `json:"education" bson:"education"`
	Skills           []string                       `json:"skills" bson:"skills"`
	Languages        []string                       `json:"languages" bson:"languages"`
}

// Document is one stored document row. At most one row exists per
// (EmployeeID, Category); the document store enforces it.
type Document struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employee_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Category   string `json:"type"`
	FileURL    string `json:"file_url"`
}

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

package model

import "encoding/json"

// EmergencyContact is the person to reach when the employee cannot be.
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// EmploymentDetails carries the employer-side attributes of a profile.
// EmployeeID is assigned by the server and read-only once set.
type EmploymentDetails struct {
	EmployeeID       string `json:"employeeId"`
	JoinDate         string `json:"dateOfJoining"`
	WorkLocation     string `json:"workLocation"`
	EmploymentType   string `json:"employmentType"`
	Designation      string `json:"designation"`
	Salary           string `json:"salary,omitempty"`
	ReportingManager string `json:"reportingManager,omitempty"`
	Team             string `json:"team,omitempty"`
}

// EducationEntry is one row of the ordered education history.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Grade       string `json:"grade,omitempty"`
}

// ProfileRecord is the canonical in-memory snapshot of an employee
// profile. Email is the stable identity and never changes after load.
type ProfileRecord struct {
	Email            string            `json:"email"`
	Name             string            `json:"name"`
	Picture          string            `json:"picture"`
	Role             string            `json:"role"`
	Phone            string            `json:"phone"`
	Department       string            `json:"department"`
	CurrentAddress   string            `json:"currentAddress"`
	PermanentAddress string            `json:"permanentAddress"`
	DOB              string            `json:"dob"`
	Gender           string            `json:"gender"`
	Nationality      string            `json:"nationality"`
	MaritalStatus    string            `json:"maritalStatus"`
	EmergencyContact EmergencyContact  `json:"emergencyContact"`
	Employment       EmploymentDetails `json:"employmentDetails"`
	Education        []EducationEntry  `json:"education"`
	Skills           []string          `json:"skills"`
	Languages        []string          `json:"languages"`
}

// EmployeeResponse is the wire shape the HRMS backend returns for a
// profile fetch or update. Field names follow the backend ("fullname",
// "profile_picture"); nested blocks stay raw so a malformed optional
// block degrades to defaults instead of failing the whole decode.
type EmployeeResponse struct {
	Fullname         string          `json:"fullname"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	ProfilePicture   string          `json:"profile_picture"`
	Role             string          `json:"role"`
	Phone            string          `json:"phone"`
	Department       string          `json:"department"`
	CurrentAddress   string          `json:"currentAddress"`
	PermanentAddress string          `json:"permanentAddress"`
	DOB              string          `json:"dob"`
	Gender           string          `json:"gender"`
	Nationality      string          `json:"nationality"`
	MaritalStatus    string          `json:"maritalStatus"`
	EmergencyContact json.RawMessage `json:"emergencyContact,omitempty"`
	Employment       json.RawMessage `json:"employmentDetails,omitempty"`
	Education        json.RawMessage `json:"education,omitempty"`
	Skills           json.RawMessage `json:"skills,omitempty"`
	Languages        json.RawMessage `json:"languages,omitempty"`
	EmployeeID       int64           `json:"employee_id,omitempty"`
}

// DisplayName resolves the full-name/display-name alias.
func (r EmployeeResponse) DisplayName() string {
	if r.Fullname != "" {
		return r.Fullname
	}
	return r.Name
}

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

// Package service carries the reference backend's business logic:
// profile merge-on-update and document lifecycle over the stores.
package service

import (
	"context"
	"net/http"

	profileModel "github.com/openhrms/employee-profile-engine/internal/profile/model"

	"github.com/openhrms/employee-profile-engine/internal/backend/model"
	"github.com/openhrms/employee-profile-engine/internal/backend/store"
	"github.com/openhrms/employee-profile-engine/internal/system/errors"
)

// EmployeeRepository is the profile storage the service needs.
type EmployeeRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	Upsert(ctx context.Context, employee model.Employee) (model.Employee, error)
}

// DocumentRepository is the document storage the service needs.
type DocumentRepository interface {
	List(ctx context.Context, employeeID int64, category string) ([]model.Document, error)
	Create(ctx context.Context, doc model.Document) (model.Document, error)
	Update(ctx context.Context, doc model.Document) (model.Document, error)
	Delete(ctx context.Context, documentID int64) error
}

// EmployeeUpdate is one parsed profile update. Nested blocks are
// pointers so an absent block leaves the stored value untouched.
type EmployeeUpdate struct {
	Fullname         string
	Phone            string
	Department       string
	CurrentAddress   string
	PermanentAddress string
	DOB              string
	Gender           string
	Nationality      string
	MaritalStatus    string
	EmergencyContact *profileModel.EmergencyContact
	Employment       *profileModel.EmploymentDetails
	Education        *[]profileModel.EducationEntry
	Skills           *[]string
	Languages        *[]string
	PictureName      string
	PictureData      []byte
}

// BackendService wires the stores together behind the HTTP surface.
type BackendService struct {
	employees EmployeeRepository
	documents DocumentRepository
	files     *store.FileStore
}

func NewBackendService(employees EmployeeRepository, documents DocumentRepository, files *store.FileStore) *BackendService {
	return &BackendService{
		employees: employees,
		documents: documents,
		files:     files,
	}
}

// GetEmployee looks a profile up by email.
func (s *BackendService) GetEmployee(ctx context.Context, email string) (model.Employee, error) {
	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		return model.Employee{}, err
	}
	if employee == nil {
		return model.Employee{}, errors.NewClientError(errors.EMPLOYEE_NOT_FOUND, http.StatusNotFound)
	}
	return *employee, nil
}

// UpdateEmployee merges an update into the stored profile and persists
// it. Scalars overwrite; nested blocks apply only when the request
// carried them. A first update for an unknown email creates the record
// and assigns its employee id.
func (s *BackendService) UpdateEmployee(ctx context.Context, email string, update EmployeeUpdate) (model.Employee, error) {
	existing, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		return model.Employee{}, err
	}

	employee := model.Employee{Email: email}
	if existing != nil {
		employee = *existing
	}

	employee.Fullname = update.Fullname
	employee.Phone = update.Phone
	employee.Department = update.Department
	employee.CurrentAddress = update.CurrentAddress
	employee.PermanentAddress = update.PermanentAddress
	employee.DOB = update.DOB
	employee.Gender = update.Gender
	employee.Nationality = update.Nationality
	employee.MaritalStatus = update.MaritalStatus

	if update.EmergencyContact != nil {
		employee.EmergencyContact = *update.EmergencyContact
	}
	if update.Employment != nil {
		employment := *update.Employment
		// The employee number is owned by this side; a client cannot
		// rewrite it once assigned.
		if employee.Employment.EmployeeID != "" {
			employment.EmployeeID = employee.Employment.EmployeeID
		}
		employee.Employment = employment
	}
	if update.Education != nil {
		employee.Education = *update.Education
	}
	if update.Skills != nil {
		employee.Skills = *update.Skills
	}
	if update.Languages != nil {
		employee.Languages = *update.Languages
	}

	if len(update.PictureData) > 0 {
		url, err := s.files.Save(update.PictureName, update.PictureData)
		if err != nil {
			return model.Employee{}, err
		}
		employee.ProfilePicture = url
	}

	return s.employees.Upsert(ctx, employee)
}

// ListDocuments returns an employee's documents, optionally narrowed to
// one category, ordered by id.
func (s *BackendService) ListDocuments(ctx context.Context, employeeID int64, category string) ([]model.Document, error) {
	return s.documents.List(ctx, employeeID, category)
}

// CreateDocument stores the uploaded file and inserts its record.
func (s *BackendService) CreateDocument(ctx context.Context, doc model.Document, fileName string, data []byte) (model.Document, error) {
	url, err := s.files.Save(fileName, data)
	if err != nil {
		return model.Document{}, err
	}
	doc.FileURL = url
	return s.documents.Create(ctx, doc)
}

// UpdateDocument replaces the stored file and record of an existing
// document.
func (s *BackendService) UpdateDocument(ctx context.Context, doc model.Document, fileName string, data []byte) (model.Document, error) {
	url, err := s.files.Save(fileName, data)
	if err != nil {
		return model.Document{}, err
	}
	doc.FileURL = url
	return s.documents.Update(ctx, doc)
}

// DeleteDocument removes a document record by id.
func (s *BackendService) DeleteDocument(ctx context.Context, documentID int64) error {
	return s.documents.Delete(ctx, documentID)
}

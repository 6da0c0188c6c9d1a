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

// Package handler exposes the reference backend over HTTP: the profile
// endpoints under /api/accounts/employees/ and the document endpoints
// the engine's gateway talks to.
package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/openhrms/employee-profile-engine/internal/backend/model"
	"github.com/openhrms/employee-profile-engine/internal/backend/service"
	documentModel "github.com/openhrms/employee-profile-engine/internal/document/model"
	profileModel "github.com/openhrms/employee-profile-engine/internal/profile/model"
	"github.com/openhrms/employee-profile-engine/internal/system/errors"
	"github.com/openhrms/employee-profile-engine/internal/system/log"
	"github.com/openhrms/employee-profile-engine/internal/system/utils"
)

const maxMultipartMemory = 32 << 20

// EmployeeHandler handles the profile and document HTTP operations.
type EmployeeHandler struct {
	service  *service.BackendService
	validate *validator.Validate
}

func NewEmployeeHandler(svc *service.BackendService) *EmployeeHandler {
	return &EmployeeHandler{
		service:  svc,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the backend surface on the multiplexer.
func (h *EmployeeHandler) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("GET %s/accounts/employees/{email}/{$}", apiBasePath), h.GetEmployee)
	mux.HandleFunc(fmt.Sprintf("PUT %s/accounts/employees/{email}/{$}", apiBasePath), h.UpdateEmployee)
	mux.HandleFunc(fmt.Sprintf("GET %s/list_documents/{$}", apiBasePath), h.ListDocuments)
	mux.HandleFunc(fmt.Sprintf("POST %s/create_document/{$}", apiBasePath), h.CreateDocument)
	mux.HandleFunc(fmt.Sprintf("PUT %s/update_document/{id}/{$}", apiBasePath), h.UpdateDocument)
	mux.HandleFunc(fmt.Sprintf("DELETE %s/delete_document/{id}/{$}", apiBasePath), h.DeleteDocument)
}

// GetEmployee handles GET /api/accounts/employees/{email}/
func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	employee, err := h.service.GetEmployee(r.Context(), email)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, employee)
}

type profileForm struct {
	Email string `validate:"required,email"`
}

// UpdateEmployee handles PUT /api/accounts/employees/{email}/
func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	if err := h.validate.Struct(profileForm{Email: email}); err != nil {
		utils.HandleError(w, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_MULTIPART_PAYLOAD.Code,
			Message:     errors.BAD_MULTIPART_PAYLOAD.Message,
			Description: fmt.Sprintf("%q is not a valid email address", email),
		}, http.StatusBadRequest))
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.HandleError(w, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_MULTIPART_PAYLOAD.Code,
			Message:     errors.BAD_MULTIPART_PAYLOAD.Message,
			Description: "Request body is not a valid multipart form.",
		}, http.StatusBadRequest))
		return
	}

	update := service.EmployeeUpdate{
		Fullname:         r.FormValue("fullname"),
		Phone:            r.FormValue("phone"),
		Department:       r.FormValue("department"),
		CurrentAddress:   r.FormValue("currentAddress"),
		PermanentAddress: r.FormValue("permanentAddress"),
		DOB:              r.FormValue("dob"),
		Gender:           r.FormValue("gender"),
		Nationality:      r.FormValue("nationality"),
		MaritalStatus:    r.FormValue("maritalStatus"),
	}

	var contact profileModel.EmergencyContact
	if ok, err := decodeFormBlock(r, "emergencyContact", &contact); err != nil {
		utils.HandleError(w, err)
		return
	} else if ok {
		update.EmergencyContact = &contact
	}

	var employment profileModel.EmploymentDetails
	if ok, err := decodeFormBlock(r, "employmentDetails", &employment); err != nil {
		utils.HandleError(w, err)
		return
	} else if ok {
		update.Employment = &employment
	}

	var education []profileModel.EducationEntry
	if ok, err := decodeFormBlock(r, "education", &education); err != nil {
		utils.HandleError(w, err)
		return
	} else if ok {
		update.Education = &education
	}

	var skills []string
	if ok, err := decodeFormBlock(r, "skills", &skills); err != nil {
		utils.HandleError(w, err)
		return
	} else if ok {
		update.Skills = &skills
	}

	var languages []string
	if ok, err := decodeFormBlock(r, "languages", &languages); err != nil {
		utils.HandleError(w, err)
		return
	} else if ok {
		update.Languages = &languages
	}

	if name, data, err := readFormFile(r, "profile_picture"); err != nil {
		utils.HandleError(w, err)
		return
	} else if data != nil {
		update.PictureName = name
		update.PictureData = data
	}

	employee, err := h.service.UpdateEmployee(r.Context(), email, update)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Info("Employee profile updated",
		log.String("email", email), log.Int64("employeeId", employee.EmployeeID))
	utils.WriteJSONResponse(w, http.StatusOK, employee)
}

// ListDocuments handles GET /api/list_documents/?employee_id=&type=
func (h *EmployeeHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(r.URL.Query().Get("employee_id"), 10, 64)
	if err != nil || employeeID <= 0 {
		utils.HandleError(w, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_MULTIPART_PAYLOAD.Code,
			Message:     errors.BAD_MULTIPART_PAYLOAD.Message,
			Description: "Query parameter employee_id must be a positive integer.",
		}, http.StatusBadRequest))
		return
	}

	category := r.URL.Query().Get("type")
	if category != "" && !documentModel.Category(category).Valid() {
		utils.HandleError(w, invalidCategoryError())
		return
	}

	documents, err := h.service.ListDocuments(r.Context(), employeeID, category)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, documents)
}

type documentForm struct {
	EmployeeID int64  `validate:"required,gt=0"`
	Category   string `validate:"required"`
}

// CreateDocument handles POST /api/create_document/
func (h *EmployeeHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	doc, fileName, data, err := h.parseDocumentForm(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	created, err := h.service.CreateDocument(r.Context(), doc, fileName, data)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Info("Document created",
		log.Int64("employeeId", created.EmployeeID), log.String("category", created.Category))
	utils.WriteJSONResponse(w, http.StatusCreated, created)
}

// UpdateDocument handles PUT /api/update_document/{id}/
func (h *EmployeeHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	documentID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.HandleError(w, errors.NewClientError(errors.DOCUMENT_NOT_FOUND, http.StatusNotFound))
		return
	}

	doc, fileName, data, err := h.parseDocumentForm(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	doc.ID = documentID

	updated, err := h.service.UpdateDocument(r.Context(), doc, fileName, data)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Info("Document updated", log.Int64("documentId", documentID))
	utils.WriteJSONResponse(w, http.StatusOK, updated)
}

// DeleteDocument handles DELETE /api/delete_document/{id}/
func (h *EmployeeHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.HandleError(w, errors.NewClientError(errors.DOCUMENT_NOT_FOUND, http.StatusNotFound))
		return
	}

	if err := h.service.DeleteDocument(r.Context(), documentID); err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Info("Document deleted", log.Int64("documentId", documentID))
	w.WriteHeader(http.StatusNoContent)
}

// parseDocumentForm reads the multipart document payload shared by the
// create and update endpoints.
func (h *EmployeeHandler) parseDocumentForm(r *http.Request) (model.Document, string, []byte, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return model.Document{}, "", nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_MULTIPART_PAYLOAD.Code,
			Message:     errors.BAD_MULTIPART_PAYLOAD.Message,
			Description: "Request body is not a valid multipart form.",
		}, http.StatusBadRequest)
	}

	employeeID, _ := strconv.ParseInt(r.FormValue("employee_id"), 10, 64)
	doc := model.Document{
		EmployeeID: employeeID,
		Title:      r.FormValue("title"),
		Status:     r.FormValue("status"),
		Category:   r.FormValue("type"),
	}

	form := documentForm{EmployeeID: doc.EmployeeID, Category: doc.Category}
	if err := h.validate.Struct(form); err != nil {
		return model.Document{}, "", nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_MULTIPART_PAYLOAD.Code,
			Message:     errors.BAD_MULTIPART_PAYLOAD.Message,
			Description: "Form fields employee_id and type are required.",
		}, http.StatusBadRequest)
	}
	if !documentModel.Category(doc.Category).Valid() {
		return model.Document{}, "", nil, invalidCategoryError()
	}

	fileName, data, err := readFormFile(r, "file_url")
	if err != nil {
		return model.Document{}, "", nil, err
	}
	if data == nil {
		return model.Document{}, "", nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_MULTIPART_PAYLOAD.Code,
			Message:     errors.BAD_MULTIPART_PAYLOAD.Message,
			Description: "A file part named file_url is required.",
		}, http.StatusBadRequest)
	}
	return doc, fileName, data, nil
}

// invalidCategoryError names the closed category set so callers see
// which values the type field accepts.
func invalidCategoryError() error {
	names := make([]string, 0, len(documentModel.Categories()))
	for _, category := range documentModel.Categories() {
		names = append(names, string(category))
	}
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.INVALID_CATEGORY.Code,
		Message:     errors.INVALID_CATEGORY.Message,
		Description: fmt.Sprintf("Field type must be one of: %s.", strings.Join(names, ", ")),
	}, http.StatusBadRequest)
}

// decodeFormBlock unmarshals an optional JSON-encoded form value.
func decodeFormBlock(r *http.Request, field string, dst interface{}) (bool, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_MULTIPART_PAYLOAD.Code,
			Message:     errors.BAD_MULTIPART_PAYLOAD.Message,
			Description: utils.HandleDecodeError(err, field),
		}, http.StatusBadRequest)
	}
	return true, nil
}

// readFormFile reads an optional file part fully into memory.
func readFormFile(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_MULTIPART_PAYLOAD.Code,
			Message:     errors.BAD_MULTIPART_PAYLOAD.Message,
			Description: fmt.Sprintf("File part %s could not be read.", field),
		}, http.StatusBadRequest)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, errors.NewServerError(errors.FILE_STORAGE_FAILED, err)
	}
	return header.Filename, data, nil
}

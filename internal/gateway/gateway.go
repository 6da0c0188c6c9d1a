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

// Package gateway is the only component that talks to the HRMS backend.
// It is stateless: one function per remote operation, no retries, no
// business-logic validation. Failures map onto the engine error
// taxonomy: TransportError when the call never completed, RemoteRejection
// with the verbatim body when the server answered non-2xx.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	documentModel "github.com/openhrms/employee-profile-engine/internal/document/model"
	profileModel "github.com/openhrms/employee-profile-engine/internal/profile/model"
	"github.com/openhrms/employee-profile-engine/internal/system/config"
	errors2 "github.com/openhrms/employee-profile-engine/internal/system/errors"
	"github.com/openhrms/employee-profile-engine/internal/system/log"
)

const defaultTimeout = 30 * time.Second

// employeeIDPattern extracts the numeric employee id from the final
// response URL of a profile fetch, e.g. /api/accounts/employees/42/.
var employeeIDPattern = regexp.MustCompile(`employees/(\d+)`)

type Client struct {
	BaseURL string
	http    *resty.Client
}

// NewClient creates a gateway client for the configured HRMS backend.
func NewClient(cfg config.RemoteConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	log.GetLogger().Info("Creating sync gateway with base URL: " + baseURL)

	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.New().String())
		return nil
	})

	return &Client{
		BaseURL: baseURL,
		http:    httpClient,
	}
}

// FetchProfile retrieves the profile payload for an email identity and
// derives the numeric employee id from the final response URL or the
// embedded employee_id field. Document operations are unavailable until
// the returned id is known (0 means unknown).
func (c *Client) FetchProfile(ctx context.Context, email string) (profileModel.EmployeeResponse, int64, error) {
	var payload profileModel.EmployeeResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get("/api/accounts/employees/" + url.PathEscape(email) + "/")
	if err != nil {
		return payload, 0, errors2.NewTransportError(errors2.FETCH_PROFILE_FAILED, err)
	}
	if resp.IsError() {
		return payload, 0, errors2.NewRemoteRejection(errors2.PROFILE_REJECTED,
			resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return payload, 0, errors2.NewTransportError(errors2.FETCH_PROFILE_FAILED, err)
	}

	employeeID := payload.EmployeeID
	if employeeID == 0 {
		if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
			if match := employeeIDPattern.FindStringSubmatch(raw.Request.URL.String()); match != nil {
				employeeID, _ = strconv.ParseInt(match[1], 10, 64)
			}
		}
	}

	return payload, employeeID, nil
}

// ListDocuments fetches the document records for an employee, optionally
// filtered to a single category.
func (c *Client) ListDocuments(ctx context.Context, employeeID int64, category documentModel.Category) ([]documentModel.DocumentRef, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("employee_id", strconv.FormatInt(employeeID, 10))
	if category != "" {
		req.SetQueryParam("type", string(category))
	}

	resp, err := req.Get("/api/list_documents/")
	if err != nil {
		return nil, errors2.NewTransportError(errors2.LIST_DOCUMENTS_FAILED, err)
	}
	if resp.IsError() {
		return nil, errors2.NewRemoteRejection(errors2.DOCUMENT_REJECTED,
			resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	var docs []documentModel.DocumentRef
	if err := json.Unmarshal(resp.Body(), &docs); err != nil {
		return nil, errors2.NewTransportError(errors2.LIST_DOCUMENTS_FAILED, err)
	}
	return docs, nil
}

// CreateDocument uploads a new document record for (employeeID, category).
func (c *Client) CreateDocument(ctx context.Context, employeeID int64, category documentModel.Category, file documentModel.File) (documentModel.DocumentRef, error) {
	return c.sendDocument(ctx, "POST", "/api/create_document/", employeeID, category, file,
		errors2.CREATE_DOCUMENT_FAILED)
}

// UpdateDocument replaces the file behind an existing document record.
func (c *Client) UpdateDocument(ctx context.Context, documentID int64, employeeID int64, category documentModel.Category, file documentModel.File) (documentModel.DocumentRef, error) {
	path := fmt.Sprintf("/api/update_document/%d/", documentID)
	return c.sendDocument(ctx, "PUT", path, employeeID, category, file,
		errors2.UPDATE_DOCUMENT_FAILED)
}

// DeleteDocument removes a document record by id.
func (c *Client) DeleteDocument(ctx context.Context, documentID int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/delete_document/%d/", documentID))
	if err != nil {
		return errors2.NewTransportError(errors2.DELETE_DOCUMENT_FAILED, err)
	}
	if resp.IsError() {
		return errors2.NewRemoteRejection(errors2.DOCUMENT_REJECTED,
			resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}
	return nil
}

func (c *Client) sendDocument(ctx context.Context, method, path string, employeeID int64, category documentModel.Category, file documentModel.File, failure errors2.ErrorMessage) (documentModel.DocumentRef, error) {
	var ref documentModel.DocumentRef

	req := c.http.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"employee_id": strconv.FormatInt(employeeID, 10),
			"title":       fmt.Sprintf("%s Document", category),
			"status":      "Submitted",
			"type":        string(category),
		}).
		SetFileReader("file_url", file.Name, bytes.NewReader(file.Data))

	var resp *resty.Response
	var err error
	if method == "POST" {
		resp, err = req.Post(path)
	} else {
		resp, err = req.Put(path)
	}
	if err != nil {
		return ref, errors2.NewTransportError(failure, err)
	}
	if resp.IsError() {
		return ref, errors2.NewRemoteRejection(errors2.DOCUMENT_REJECTED,
			resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	if err := json.Unmarshal(resp.Body(), &ref); err != nil {
		return ref, errors2.NewTransportError(failure, err)
	}
	return ref, nil
}

// UpdateProfile sends the edited record as a multipart payload. Scalar
// fields serialize as plain parts; nested structures and collections go
// as JSON-encoded blocks only when present, so an absent block never
// overwrites server-side data with defaults. A staged picture rides
// along as the binary profile_picture part.
func (c *Client) UpdateProfile(ctx context.Context, record profileModel.ProfileRecord, picture *documentModel.File) (profileModel.EmployeeResponse, error) {
	var payload profileModel.EmployeeResponse

	req := c.http.R().
		SetContext(ctx).
		SetMultipartFormData(map[string]string{
			"email":            record.Email,
			"fullname":         record.Name,
			"phone":            record.Phone,
			"department":       record.Department,
			"currentAddress":   record.CurrentAddress,
			"permanentAddress": record.PermanentAddress,
			"dob":              record.DOB,
			"gender":           record.Gender,
			"nationality":      record.Nationality,
			"maritalStatus":    record.MaritalStatus,
		})

	if record.EmergencyContact != (profileModel.EmergencyContact{}) {
		appendJSONPart(req, "emergencyContact", record.EmergencyContact)
	}
	if record.Employment != (profileModel.EmploymentDetails{}) {
		appendJSONPart(req, "employmentDetails", record.Employment)
	}
	if len(record.Education) > 0 {
		appendJSONPart(req, "education", record.Education)
	}
	if len(record.Skills) > 0 {
		appendJSONPart(req, "skills", record.Skills)
	}
	if len(record.Languages) > 0 {
		appendJSONPart(req, "languages", record.Languages)
	}
	if picture != nil {
		req.SetFileReader("profile_picture", picture.Name, bytes.NewReader(picture.Data))
	}

	resp, err := req.Put("/api/accounts/employees/" + url.PathEscape(record.Email) + "/")
	if err != nil {
		return payload, errors2.NewTransportError(errors2.UPDATE_PROFILE_FAILED, err)
	}
	if resp.IsError() {
		return payload, errors2.NewRemoteRejection(errors2.PROFILE_REJECTED,
			resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return payload, errors2.NewTransportError(errors2.UPDATE_PROFILE_FAILED, err)
	}
	return payload, nil
}

func appendJSONPart(req *resty.Request, field string, value interface{}) {
	encoded, err := json.Marshal(value)
	if err != nil {
		log.GetLogger().Warn("Skipping unencodable form block: "+field, log.Error(err))
		return
	}
	req.SetMultipartFormData(map[string]string{field: string(encoded)})
}

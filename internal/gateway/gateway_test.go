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

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	documentModel "github.com/openhrms/employee-profile-engine/internal/document/model"
	profileModel "github.com/openhrms/employee-profile-engine/internal/profile/model"
	"github.com/openhrms/employee-profile-engine/internal/system/config"
	errors2 "github.com/openhrms/employee-profile-engine/internal/system/errors"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.RemoteConfig{BaseURL: serverURL, TimeoutSeconds: 5})
}

func TestFetchProfileDerivesEmployeeIDFromURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/accounts/employees/jane@acme.test/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/accounts/employees/42/", http.StatusFound)
	})
	mux.HandleFunc("GET /api/accounts/employees/42/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"email":    "jane@acme.test",
			"fullname": "Jane Doe",
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL)
	payload, employeeID, err := client.FetchProfile(context.Background(), "jane@acme.test")

	assert.NoError(t, err)
	assert.Equal(t, int64(42), employeeID)
	assert.Equal(t, "Jane Doe", payload.DisplayName())
}

func TestFetchProfilePrefersEmbeddedEmployeeID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"email":       "jane@acme.test",
			"employee_id": 7,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, employeeID, err := client.FetchProfile(context.Background(), "jane@acme.test")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), employeeID)
}

func TestFetchProfileSurfacesRejectionBodyVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, _, err := client.FetchProfile(context.Background(), "ghost@acme.test")

	var rejection *errors2.RemoteRejection
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusNotFound, rejection.StatusCode)
	assert.Equal(t, `{"detail":"Not found."}`, rejection.DiagnosticText())
}

func TestFetchProfileTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	_, _, err := client.FetchProfile(context.Background(), "jane@acme.test")

	var transportErr *errors2.TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.Equal(t, errors2.FETCH_PROFILE_FAILED.Code, transportErr.Code)
}

func TestListDocumentsSendsQueryParameters(t *testing.T) {
	var gotEmployeeID, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmployeeID = r.URL.Query().Get("employee_id")
		gotType = r.URL.Query().Get("type")
		_, _ = w.Write([]byte(`[{"id":3,"type":"resume","file_url":"/uploads/a.pdf","employee_id":7}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	docs, err := client.ListDocuments(context.Background(), 7, documentModel.CategoryResume)

	assert.NoError(t, err)
	assert.Equal(t, "7", gotEmployeeID)
	assert.Equal(t, "resume", gotType)
	assert.Len(t, docs, 1)
	assert.Equal(t, int64(3), docs[0].ID)
}

func TestCreateDocumentSendsMultipartForm(t *testing.T) {
	var gotFields map[string]string
	var gotFileName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		gotFields = map[string]string{
			"employee_id": r.FormValue("employee_id"),
			"title":       r.FormValue("title"),
			"status":      r.FormValue("status"),
			"type":        r.FormValue("type"),
		}
		if _, header, err := r.FormFile("file_url"); err == nil {
			gotFileName = header.Filename
		}
		_ = json.NewEncoder(w).Encode(documentModel.DocumentRef{
			ID: 5, Category: documentModel.CategoryResume, EmployeeID: 7, FileURL: "/uploads/x.pdf",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	file := documentModel.File{Name: "resume.pdf", ContentType: "application/pdf", Data: []byte("pdf")}
	ref, err := client.CreateDocument(context.Background(), 7, documentModel.CategoryResume, file)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), ref.ID)
	assert.Equal(t, "7", gotFields["employee_id"])
	assert.Equal(t, "resume Document", gotFields["title"])
	assert.Equal(t, "Submitted", gotFields["status"])
	assert.Equal(t, "resume", gotFields["type"])
	assert.Equal(t, "resume.pdf", gotFileName)
}

func TestUpdateProfileOmitsEmptyBlocks(t *testing.T) {
	var form map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		form = r.MultipartForm.Value
		_ = json.NewEncoder(w).Encode(map[string]string{"email": r.FormValue("email")})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	record := profileModel.ProfileRecord{
		Email:  "jane@acme.test",
		Name:   "Jane Doe",
		Phone:  "+14155552671",
		Skills: []string{"Go"},
	}
	_, err := client.UpdateProfile(context.Background(), record, nil)

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", form["fullname"][0])
	assert.Contains(t, form, "skills")
	assert.NotContains(t, form, "languages")
	assert.NotContains(t, form, "education")
	assert.NotContains(t, form, "emergencyContact")
	assert.NotContains(t, form, "employmentDetails")
}

func TestUpdateProfileEncodesNestedBlocks(t *testing.T) {
	var contactJSON, skillsJSON string
	var pictureName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		contactJSON = r.FormValue("emergencyContact")
		skillsJSON = r.FormValue("skills")
		if _, header, err := r.FormFile("profile_picture"); err == nil {
			pictureName = header.Filename
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"email": "jane@acme.test"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	record := profileModel.ProfileRecord{
		Email:            "jane@acme.test",
		EmergencyContact: profileModel.EmergencyContact{Name: "John", Relationship: "spouse", Phone: "987654"},
		Skills:           []string{"Go", "SQL"},
	}
	picture := &documentModel.File{Name: "avatar.png", ContentType: "image/png", Data: []byte("png")}
	_, err := client.UpdateProfile(context.Background(), record, picture)

	assert.NoError(t, err)

	var contact profileModel.EmergencyContact
	assert.NoError(t, json.Unmarshal([]byte(contactJSON), &contact))
	assert.Equal(t, record.EmergencyContact, contact)

	var skills []string
	assert.NoError(t, json.Unmarshal([]byte(skillsJSON), &skills))
	assert.Equal(t, []string{"Go", "SQL"}, skills)
	assert.Equal(t, "avatar.png", pictureName)
}

func TestDeleteDocumentRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("document is locked"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.DeleteDocument(context.Background(), 9)

	var rejection *errors2.RemoteRejection
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusConflict, rejection.StatusCode)
	assert.Equal(t, "document is locked", rejection.Body)
}

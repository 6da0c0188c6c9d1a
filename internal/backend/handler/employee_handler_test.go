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

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openhrms/employee-profile-engine/internal/backend/service"
	"github.com/openhrms/employee-profile-engine/internal/backend/store"
	"github.com/openhrms/employee-profile-engine/internal/document/index"
	documentModel "github.com/openhrms/employee-profile-engine/internal/document/model"
	"github.com/openhrms/employee-profile-engine/internal/gateway"
	"github.com/openhrms/employee-profile-engine/internal/identity"
	profileModel "github.com/openhrms/employee-profile-engine/internal/profile/model"
	"github.com/openhrms/employee-profile-engine/internal/session"
	"github.com/openhrms/employee-profile-engine/internal/system/config"
	errors2 "github.com/openhrms/employee-profile-engine/internal/system/errors"
)

// newTestBackend wires the handler over the in-memory stores and a
// temp upload directory, the same shape devserver runs with.
func newTestBackend(t *testing.T) *httptest.Server {
	t.Helper()

	files, err := store.NewFileStore(config.UploadConfig{
		Dir:       t.TempDir(),
		URLPrefix: "/uploads",
	})
	if err != nil {
		t.Fatalf("file store: %v", err)
	}

	svc := service.NewBackendService(store.NewMemoryEmployeeStore(), store.NewMemoryDocumentStore(), files)

	mux := http.NewServeMux()
	NewEmployeeHandler(svc).RegisterRoutes(mux, "/api")
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newEngineClient(serverURL string) *gateway.Client {
	return gateway.NewClient(config.RemoteConfig{BaseURL: serverURL, TimeoutSeconds: 5})
}

func TestGetUnknownEmployeeReturns404(t *testing.T) {
	server := newTestBackend(t)
	client := newEngineClient(server.URL)

	_, _, err := client.FetchProfile(context.Background(), "ghost@acme.test")

	var rejection *errors2.RemoteRejection
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusNotFound, rejection.StatusCode)
}

func TestProfileUpdateRoundTrip(t *testing.T) {
	server := newTestBackend(t)
	client := newEngineClient(server.URL)
	ctx := context.Background()

	record := profileModel.ProfileRecord{
		Email:      "jane@acme.test",
		Name:       "Jane Doe",
		Phone:      "+14155552671",
		Department: "Platform",
		EmergencyContact: profileModel.EmergencyContact{
			Name: "John", Relationship: "spouse", Phone: "987654",
		},
		Skills: []string{"Go", "SQL"},
	}

	saved, err := client.UpdateProfile(ctx, record, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", saved.DisplayName())
	assert.NotZero(t, saved.EmployeeID)

	fetched, employeeID, err := client.FetchProfile(ctx, "jane@acme.test")
	assert.NoError(t, err)
	assert.Equal(t, saved.EmployeeID, employeeID)
	assert.Equal(t, "Jane Doe", fetched.DisplayName())
	assert.Equal(t, "Platform", fetched.Department)
}

func TestProfileUpdatePreservesAbsentBlocks(t *testing.T) {
	server := newTestBackend(t)
	client := newEngineClient(server.URL)
	ctx := context.Background()

	first := profileModel.ProfileRecord{
		Email:  "jane@acme.test",
		Name:   "Jane Doe",
		Skills: []string{"Go"},
	}
	_, err := client.UpdateProfile(ctx, first, nil)
	assert.NoError(t, err)

	// The second update carries no skills block, so the stored skills
	// must survive.
	second := profileModel.ProfileRecord{
		Email: "jane@acme.test",
		Name:  "Jane D",
	}
	saved, err := client.UpdateProfile(ctx, second, nil)
	assert.NoError(t, err)

	var skills []string
	assert.NoError(t, json.Unmarshal(saved.Skills, &skills))
	assert.Equal(t, []string{"Go"}, skills)
}

func TestProfilePictureUploadServesURL(t *testing.T) {
	server := newTestBackend(t)
	client := newEngineClient(server.URL)
	ctx := context.Background()

	record := profileModel.ProfileRecord{Email: "jane@acme.test", Name: "Jane Doe"}
	picture := &documentModel.File{Name: "avatar.png", ContentType: "image/png", Data: []byte("png-bytes")}

	saved, err := client.UpdateProfile(ctx, record, picture)
	assert.NoError(t, err)
	assert.Contains(t, saved.ProfilePicture, "/uploads/")
	assert.Contains(t, saved.ProfilePicture, ".png")
}

func TestDocumentLifecycleThroughEngine(t *testing.T) {
	server := newTestBackend(t)
	client := newEngineClient(server.URL)
	ctx := context.Background()

	saved, err := client.UpdateProfile(ctx, profileModel.ProfileRecord{
		Email: "jane@acme.test", Name: "Jane Doe",
	}, nil)
	assert.NoError(t, err)
	employeeID := saved.EmployeeID

	idx := index.NewIndex(client)
	idx.Reset(employeeID)

	file := documentModel.File{Name: "resume.pdf", ContentType: "application/pdf", Data: []byte("pdf")}
	created, err := idx.Upsert(ctx, employeeID, documentModel.CategoryResume, file)
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)

	// A second upsert replaces the record instead of adding one.
	replacement := documentModel.File{Name: "resume-v2.pdf", ContentType: "application/pdf", Data: []byte("pdf2")}
	updated, err := idx.Upsert(ctx, employeeID, documentModel.CategoryResume, replacement)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	mapping, err := idx.FetchAll(ctx, employeeID)
	assert.NoError(t, err)
	assert.Len(t, mapping, 1)

	assert.NoError(t, idx.Remove(ctx, employeeID, documentModel.CategoryResume))

	mapping, err = idx.FetchAll(ctx, employeeID)
	assert.NoError(t, err)
	assert.Empty(t, mapping)
}

func TestConcurrentSaveAndDocumentUpload(t *testing.T) {
	server := newTestBackend(t)
	client := newEngineClient(server.URL)
	ctx := context.Background()

	controller := session.NewController(client, identity.NewStore(), config.SessionConfig{})
	controller.Mount("jane@acme.test")
	seeded, err := client.UpdateProfile(ctx, profileModel.ProfileRecord{Email: "jane@acme.test", Name: "Jane"}, nil)
	assert.NoError(t, err)
	assert.NoError(t, controller.Refresh(ctx))
	employeeID := seeded.EmployeeID

	idx := index.NewIndex(client)
	idx.Reset(employeeID)

	controller.BeginEdit()
	assert.NoError(t, controller.SetField("department", "Platform"))

	// The save transaction and a document operation are independent;
	// either ordering must succeed.
	var wg sync.WaitGroup
	var saveErr, docErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		saveErr = controller.Save(ctx)
	}()
	go func() {
		defer wg.Done()
		file := documentModel.File{Name: "resume.pdf", ContentType: "application/pdf", Data: []byte("pdf")}
		_, docErr = idx.Upsert(ctx, employeeID, documentModel.CategoryResume, file)
	}()
	wg.Wait()

	assert.NoError(t, saveErr)
	assert.NoError(t, docErr)
	assert.Equal(t, "Platform", controller.Record().Department)
	_, ok := idx.Get(documentModel.CategoryResume)
	assert.True(t, ok)
}

func TestCreateDocumentRejectsUnknownCategory(t *testing.T) {
	server := newTestBackend(t)
	client := newEngineClient(server.URL)

	file := documentModel.File{Name: "p.pdf", ContentType: "application/pdf", Data: []byte("pdf")}
	_, err := client.CreateDocument(context.Background(), 7, documentModel.Category("passport"), file)

	var rejection *errors2.RemoteRejection
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusBadRequest, rejection.StatusCode)
	assert.Contains(t, rejection.DiagnosticText(), "tenth, twelfth, degree")
}

func TestUpdateDocumentCategoryConflict(t *testing.T) {
	server := newTestBackend(t)
	client := newEngineClient(server.URL)
	ctx := context.Background()

	file := documentModel.File{Name: "p.pdf", ContentType: "application/pdf", Data: []byte("pdf")}
	resume, err := client.CreateDocument(ctx, 7, documentModel.CategoryResume, file)
	assert.NoError(t, err)
	_, err = client.CreateDocument(ctx, 7, documentModel.CategoryIDProof, file)
	assert.NoError(t, err)

	_, err = client.UpdateDocument(ctx, resume.ID, 7, documentModel.CategoryIDProof, file)

	var rejection *errors2.RemoteRejection
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusConflict, rejection.StatusCode)
	assert.Contains(t, rejection.DiagnosticText(), errors2.DUPLICATE_DOCUMENT.Code)
}

func TestProfileUpdateRejectsMalformedBlock(t *testing.T) {
	server := newTestBackend(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	assert.NoError(t, form.WriteField("skills", "{not json"))
	assert.NoError(t, form.Close())

	req, err := http.NewRequest(http.MethodPut,
		server.URL+"/api/accounts/employees/jane@acme.test/", &body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := server.Client().Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(payload), "Malformed JSON in the skills payload.")
}

func TestDeleteUnknownDocumentReturns404(t *testing.T) {
	server := newTestBackend(t)
	client := newEngineClient(server.URL)

	err := client.DeleteDocument(context.Background(), 99)

	var rejection *errors2.RemoteRejection
	assert.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusNotFound, rejection.StatusCode)
}

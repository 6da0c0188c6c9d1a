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

package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/openhrms/employee-profile-engine/internal/backend/model"
	"github.com/openhrms/employee-profile-engine/internal/system/config"
	"github.com/openhrms/employee-profile-engine/internal/system/errors"
)

// Postgres enforces the one-document-per-category invariant at the
// storage layer. Concurrent creates for the same (employee_id, category)
// collapse into one row by the unique constraint.
const documentSchema = `
CREATE TABLE IF NOT EXISTS employee_documents (
	id          BIGSERIAL PRIMARY KEY,
	employee_id BIGINT NOT NULL,
	category    TEXT   NOT NULL,
	title       TEXT   NOT NULL,
	status      TEXT   NOT NULL,
	file_url    TEXT   NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT employee_documents_employee_category_key UNIQUE (employee_id, category)
)`

// DocumentStore keeps document records in PostgreSQL.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore opens a connection pool against the configured
// Postgres instance and ensures the schema exists.
func NewDocumentStore(ctx context.Context, cfg config.DataSourceConfig) (*DocumentStore, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Hostname, cfg.Port, cfg.Name, cfg.Username, cfg.Password, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.NewServerError(errors.DOCUMENT_STORAGE_FAILED, err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.NewServerError(errors.DOCUMENT_STORAGE_FAILED, err)
	}
	if _, err := db.ExecContext(ctx, documentSchema); err != nil {
		return nil, errors.NewServerError(errors.DOCUMENT_STORAGE_FAILED, err)
	}
	return &DocumentStore{db: db}, nil
}

// NewDocumentStoreFromDB wraps an existing connection, for tests that
// manage their own database lifecycle.
func NewDocumentStoreFromDB(ctx context.Context, db *sql.DB) (*DocumentStore, error) {
	if _, err := db.ExecContext(ctx, documentSchema); err != nil {
		return nil, errors.NewServerError(errors.DOCUMENT_STORAGE_FAILED, err)
	}
	return &DocumentStore{db: db}, nil
}

// Close releases the connection pool.
func (s *DocumentStore) Close() error {
	return s.db.Close()
}

// List returns the documents of an employee ordered by id. An empty
// category matches every category.
func (s *DocumentStore) List(ctx context.Context, employeeID int64, category string) ([]model.Document, error) {
	query := `SELECT id, employee_id, category, title, status, file_url
		FROM employee_documents WHERE employee_id = $1`
	args := []interface{}{employeeID}
	if category != "" {
		query += ` AND category = $2`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewServerError(errors.DOCUMENT_STORAGE_FAILED, err)
	}
	defer rows.Close()

	documents := []model.Document{}
	for rows.Next() {
		var doc model.Document
		if err := rows.Scan(&doc.ID, &doc.EmployeeID, &doc.Category, &doc.Title,
			&doc.Status, &doc.FileURL); err != nil {
			return nil, errors.NewServerError(errors.DOCUMENT_STORAGE_FAILED, err)
		}
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewServerError(errors.DOCUMENT_STORAGE_FAILED, err)
	}
	return documents, nil
}

// Create inserts a document. When a row already exists for the same
// (employee_id, category) the insert folds into an update of that row,
// so a racing duplicate create cannot produce two live documents.
func (s *DocumentStore) Create(ctx context.Context, doc model.Document) (model.Document, error) {
	query := `INSERT INTO employee_documents (employee_id, category, title, status, file_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT employee_documents_employee_category_key
		DO UPDATE SET title = EXCLUDED.title, status = EXCLUDED.status,
			file_url = EXCLUDED.file_url, updated_at = now()
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		doc.EmployeeID, doc.Category, doc.Title, doc.Status, doc.FileURL).Scan(&doc.ID)
	if err != nil {
		return model.Document{}, errors.NewServerError(errors.DOCUMENT_STORAGE_FAILED, err)
	}
	return doc, nil
}

// Update replaces the stored fields of an existing document by id.
// Moving a document onto a category the employee already holds violates
// the unique constraint and surfaces as a duplicate, not a silent merge.
func (s *DocumentStore) Update(ctx context.Context, doc model.Document) (model.Document, error) {
	query := `UPDATE employee_documents
		SET category = $2, title = $3, status = $4, file_url = $5, updated_at = now()
		WHERE id = $1
		RETURNING employee_id`

	err := s.db.QueryRowContext(ctx, query,
		doc.ID, doc.Category, doc.Title, doc.Status, doc.FileURL).Scan(&doc.EmployeeID)
	if err == sql.ErrNoRows {
		return model.Document{}, errors.NewClientError(errors.DOCUMENT_NOT_FOUND, http.StatusNotFound)
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return model.Document{}, errors.NewClientError(errors.DUPLICATE_DOCUMENT, http.StatusConflict)
	}
	if err != nil {
		return model.Document{}, errors.NewServerError(errors.DOCUMENT_STORAGE_FAILED, err)
	}
	return doc, nil
}

// Delete removes a document by id.
func (s *DocumentStore) Delete(ctx context.Context, documentID int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM employee_documents WHERE id = $1`, documentID)
	if err != nil {
		return errors.NewServerError(errors.DOCUMENT_STORAGE_FAILED, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewServerError(errors.DOCUMENT_STORAGE_FAILED, err)
	}
	if affected == 0 {
		return errors.NewClientError(errors.DOCUMENT_NOT_FOUND, http.StatusNotFound)
	}
	return nil
}

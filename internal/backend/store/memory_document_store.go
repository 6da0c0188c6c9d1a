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
	"net/http"
	"sort"
	"sync"

	"github.com/openhrms/employee-profile-engine/internal/backend/model"
	"github.com/openhrms/employee-profile-engine/internal/system/errors"
)

// MemoryDocumentStore is the fallback document store used when no
// Postgres datasource is configured. It mirrors the SQL store's
// semantics, including the one-row-per-(employee_id, category) rule.
type MemoryDocumentStore struct {
	mu        sync.Mutex
	documents map[int64]model.Document
	nextID    int64
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		documents: make(map[int64]model.Document),
	}
}

func (s *MemoryDocumentStore) List(_ context.Context, employeeID int64, category string) ([]model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := []model.Document{}
	for _, doc := range s.documents {
		if doc.EmployeeID != employeeID {
			continue
		}
		if category != "" && doc.Category != category {
			continue
		}
		matches = append(matches, doc)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (s *MemoryDocumentStore) Create(_ context.Context, doc model.Document) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.documents {
		if existing.EmployeeID == doc.EmployeeID && existing.Category == doc.Category {
			doc.ID = id
			s.documents[id] = doc
			return doc, nil
		}
	}

	s.nextID++
	doc.ID = s.nextID
	s.documents[doc.ID] = doc
	return doc, nil
}

func (s *MemoryDocumentStore) Update(_ context.Context, doc model.Document) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.documents[doc.ID]
	if !ok {
		return model.Document{}, errors.NewClientError(errors.DOCUMENT_NOT_FOUND, http.StatusNotFound)
	}
	doc.EmployeeID = existing.EmployeeID
	for id, other := range s.documents {
		if id != doc.ID && other.EmployeeID == doc.EmployeeID && other.Category == doc.Category {
			return model.Document{}, errors.NewClientError(errors.DUPLICATE_DOCUMENT, http.StatusConflict)
		}
	}
	s.documents[doc.ID] = doc
	return doc, nil
}

func (s *MemoryDocumentStore) Delete(_ context.Context, documentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[documentID]; !ok {
		return errors.NewClientError(errors.DOCUMENT_NOT_FOUND, http.StatusNotFound)
	}
	delete(s.documents, documentID)
	return nil
}

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

// Package index maintains the category-keyed view of an employee's
// remote documents. Entries are derived from the remote collection and
// invalidated whenever the tracked employee identity changes. The remote
// store addresses records by id only, so upsert and remove always
// resolve the concrete id by querying (employeeID, category) first.
package index

import (
	"context"
	"fmt"
	"sync"

	"github.com/openhrms/employee-profile-engine/internal/document/model"
	errors2 "github.com/openhrms/employee-profile-engine/internal/system/errors"
	"github.com/openhrms/employee-profile-engine/internal/system/log"
)

// DocumentGateway is the remote surface the index needs. Implemented by
// the sync gateway client; mocked in tests.
type DocumentGateway interface {
	ListDocuments(ctx context.Context, employeeID int64, category model.Category) ([]model.DocumentRef, error)
	CreateDocument(ctx context.Context, employeeID int64, category model.Category, file model.File) (model.DocumentRef, error)
	UpdateDocument(ctx context.Context, documentID int64, employeeID int64, category model.Category, file model.File) (model.DocumentRef, error)
	DeleteDocument(ctx context.Context, documentID int64) error
}

type Index struct {
	gateway DocumentGateway

	mu         sync.RWMutex
	employeeID int64
	refs       map[model.Category]model.DocumentRef
}

// NewIndex creates an empty index bound to a document gateway.
func NewIndex(gateway DocumentGateway) *Index {
	return &Index{
		gateway: gateway,
		refs:    make(map[model.Category]model.DocumentRef),
	}
}

// Reset clears the cached mapping and re-binds the index to a new
// employee identity. Called when the tracked identity changes.
func (i *Index) Reset(employeeID int64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.employeeID = employeeID
	i.refs = make(map[model.Category]model.DocumentRef)
}

// FetchAll retrieves every document for the employee and folds the
// response into the category map. When two records claim the same
// category the last one observed wins and the condition is logged as an
// invariant violation. A response for an employee the index no longer
// tracks is discarded instead of overwriting newer state.
func (i *Index) FetchAll(ctx context.Context, employeeID int64) (map[model.Category]model.DocumentRef, error) {
	if employeeID == 0 {
		return nil, errors2.NewValidationError(errors2.EMPLOYEE_ID_UNKNOWN,
			"document operations require a known employee id")
	}

	docs, err := i.gateway.ListDocuments(ctx, employeeID, "")
	if err != nil {
		return nil, err
	}

	mapping := make(map[model.Category]model.DocumentRef, len(docs))
	for _, doc := range docs {
		if existing, dup := mapping[doc.Category]; dup {
			log.GetLogger().Warn("Duplicate live document for category; keeping last observed",
				log.String("category", string(doc.Category)),
				log.Int64("employeeID", employeeID),
				log.Int64("replacedID", existing.ID),
				log.Int64("keptID", doc.ID))
		}
		mapping[doc.Category] = doc
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.employeeID != 0 && i.employeeID != employeeID {
		log.GetLogger().Warn("Discarding stale document fetch",
			log.Int64("fetchedFor", employeeID),
			log.Int64("tracking", i.employeeID))
		return mapping, nil
	}
	i.employeeID = employeeID
	i.refs = mapping
	return mapping, nil
}

// Upsert uploads a file to a category, replacing the existing remote
// record when one exists. The existence check is mandatory: creating
// unconditionally would leave two live records for the category.
func (i *Index) Upsert(ctx context.Context, employeeID int64, category model.Category, file model.File) (model.DocumentRef, error) {
	var ref model.DocumentRef
	if employeeID == 0 {
		return ref, errors2.NewValidationError(errors2.EMPLOYEE_ID_UNKNOWN,
			"document operations require a known employee id")
	}
	if !category.Valid() {
		return ref, errors2.NewValidationError(errors2.INVALID_CATEGORY,
			fmt.Sprintf("category %q is not part of the fixed set", category))
	}
	if file.Size() > model.MaxFileSize {
		return ref, errors2.NewValidationError(errors2.FILE_TOO_LARGE,
			fmt.Sprintf("%s is %d bytes; the limit is %d", file.Name, file.Size(), model.MaxFileSize))
	}

	existing, err := i.gateway.ListDocuments(ctx, employeeID, category)
	if err != nil {
		return ref, err
	}

	if len(existing) > 0 && existing[0].ID != 0 {
		ref, err = i.gateway.UpdateDocument(ctx, existing[0].ID, employeeID, category, file)
	} else {
		ref, err = i.gateway.CreateDocument(ctx, employeeID, category, file)
	}
	if err != nil {
		return model.DocumentRef{}, err
	}

	i.mu.Lock()
	if i.employeeID == 0 || i.employeeID == employeeID {
		i.refs[category] = ref
	}
	i.mu.Unlock()
	return ref, nil
}

// Remove deletes the live document for a category. The concrete record
// id is resolved by query first; no matching record means nothing to do.
func (i *Index) Remove(ctx context.Context, employeeID int64, category model.Category) error {
	if employeeID == 0 {
		return errors2.NewValidationError(errors2.EMPLOYEE_ID_UNKNOWN,
			"document operations require a known employee id")
	}

	existing, err := i.gateway.ListDocuments(ctx, employeeID, category)
	if err != nil {
		return err
	}
	if len(existing) == 0 || existing[0].ID == 0 {
		return nil
	}

	if err := i.gateway.DeleteDocument(ctx, existing[0].ID); err != nil {
		return err
	}

	i.mu.Lock()
	if i.employeeID == 0 || i.employeeID == employeeID {
		delete(i.refs, category)
	}
	i.mu.Unlock()
	return nil
}

// Get returns the cached reference for a category.
func (i *Index) Get(category model.Category) (model.DocumentRef, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	ref, ok := i.refs[category]
	return ref, ok
}

// Snapshot copies the current category mapping.
func (i *Index) Snapshot() map[model.Category]model.DocumentRef {
	i.mu.RLock()
	defer i.mu.RUnlock()
	snapshot := make(map[model.Category]model.DocumentRef, len(i.refs))
	for category, ref := range i.refs {
		snapshot[category] = ref
	}
	return snapshot
}

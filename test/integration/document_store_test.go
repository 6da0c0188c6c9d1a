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

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openhrms/employee-profile-engine/internal/backend/model"
	errors2 "github.com/openhrms/employee-profile-engine/internal/system/errors"
)

func TestCreateTwiceKeepsOneRowPerCategory(t *testing.T) {
	ctx := context.Background()

	first, err := documentStore.Create(ctx, model.Document{
		EmployeeID: 100, Category: "resume", Title: "resume Document",
		Status: "Submitted", FileURL: "/uploads/a.pdf",
	})
	assert.NoError(t, err)

	second, err := documentStore.Create(ctx, model.Document{
		EmployeeID: 100, Category: "resume", Title: "resume Document",
		Status: "Submitted", FileURL: "/uploads/b.pdf",
	})
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	docs, err := documentStore.List(ctx, 100, "resume")
	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "/uploads/b.pdf", docs[0].FileURL)
}

func TestConcurrentCreatesCollapseIntoOneRow(t *testing.T) {
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := documentStore.Create(ctx, model.Document{
				EmployeeID: 200, Category: "idProof", Title: "idProof Document",
				Status: "Submitted", FileURL: fmt.Sprintf("/uploads/id-%d.pdf", n),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	docs, err := documentStore.List(ctx, 200, "idProof")
	assert.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestCategoriesAreIndependent(t *testing.T) {
	ctx := context.Background()

	_, err := documentStore.Create(ctx, model.Document{
		EmployeeID: 300, Category: "tenth", Title: "tenth Document",
		Status: "Submitted", FileURL: "/uploads/tenth.pdf",
	})
	assert.NoError(t, err)
	_, err = documentStore.Create(ctx, model.Document{
		EmployeeID: 300, Category: "twelfth", Title: "twelfth Document",
		Status: "Submitted", FileURL: "/uploads/twelfth.pdf",
	})
	assert.NoError(t, err)

	docs, err := documentStore.List(ctx, 300, "")
	assert.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestUpdateAndDeleteByID(t *testing.T) {
	ctx := context.Background()

	created, err := documentStore.Create(ctx, model.Document{
		EmployeeID: 400, Category: "awards", Title: "awards Document",
		Status: "Submitted", FileURL: "/uploads/awards.pdf",
	})
	assert.NoError(t, err)

	updated, err := documentStore.Update(ctx, model.Document{
		ID: created.ID, Category: "awards", Title: "awards Document",
		Status: "Approved", FileURL: "/uploads/awards-v2.pdf",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(400), updated.EmployeeID)
	assert.Equal(t, "awards", updated.Category)

	assert.NoError(t, documentStore.Delete(ctx, created.ID))

	docs, err := documentStore.List(ctx, 400, "awards")
	assert.NoError(t, err)
	assert.Empty(t, docs)

	var clientErr *errors2.ClientError
	err = documentStore.Delete(ctx, created.ID)
	assert.ErrorAs(t, err, &clientErr)
	assert.Equal(t, errors2.DOCUMENT_NOT_FOUND.Code, clientErr.Code)
}

func TestUpdateOntoHeldCategoryIsRejected(t *testing.T) {
	ctx := context.Background()

	resume, err := documentStore.Create(ctx, model.Document{
		EmployeeID: 500, Category: "resume", Title: "resume Document",
		Status: "Submitted", FileURL: "/uploads/resume.pdf",
	})
	assert.NoError(t, err)
	_, err = documentStore.Create(ctx, model.Document{
		EmployeeID: 500, Category: "idProof", Title: "idProof Document",
		Status: "Submitted", FileURL: "/uploads/id.pdf",
	})
	assert.NoError(t, err)

	_, err = documentStore.Update(ctx, model.Document{
		ID: resume.ID, Category: "idProof", Title: "idProof Document",
		Status: "Submitted", FileURL: "/uploads/id-v2.pdf",
	})

	var clientErr *errors2.ClientError
	assert.ErrorAs(t, err, &clientErr)
	assert.Equal(t, errors2.DUPLICATE_DOCUMENT.Code, clientErr.Code)

	docs, err := documentStore.List(ctx, 500, "resume")
	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "/uploads/resume.pdf", docs[0].FileURL)

	moved, err := documentStore.Update(ctx, model.Document{
		ID: resume.ID, Category: "degree", Title: "degree Document",
		Status: "Submitted", FileURL: "/uploads/degree.pdf",
	})
	assert.NoError(t, err)
	assert.Equal(t, "degree", moved.Category)
}

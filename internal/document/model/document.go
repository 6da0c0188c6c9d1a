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

// Category is one of the fixed document kinds a profile can attach.
type Category string

const (
	CategoryTenth        Category = "tenth"
	CategoryTwelfth      Category = "twelfth"
	CategoryDegree       Category = "degree"
	CategoryAwards       Category = "awards"
	CategoryResume       Category = "resume"
	CategoryIDProof      Category = "idProof"
	CategoryAddressProof Category = "addressProof"
)

// MaxFileSize is the upper bound for a document upload, checked locally
// before any network call.
const MaxFileSize = 10 << 20

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryTenth,
		CategoryTwelfth,
		CategoryDegree,
		CategoryAwards,
		CategoryResume,
		CategoryIDProof,
		CategoryAddressProof,
	}
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// DocumentRef points at the live remote document for one category.
// ID is absent until the first upload created the remote record.
type DocumentRef struct {
	ID         int64    `json:"id,omitempty"`
	Category   Category `json:"type"`
	FileURL    string   `json:"file_url"`
	EmployeeID int64    `json:"employee_id"`
}

// File is a locally-selected binary staged for upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the staged payload size in bytes.
func (f File) Size() int64 {
	return int64(len(f.Data))
}

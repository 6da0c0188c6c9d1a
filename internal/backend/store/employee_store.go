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
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openhrms/employee-profile-engine/internal/backend/model"
	"github.com/openhrms/employee-profile-engine/internal/system/errors"
)

const (
	employeeCollection = "employees"
	counterCollection  = "counters"
	employeeCounterKey = "employee_id"

	mongoOpTimeout = 5 * time.Second
)

// EmployeeStore persists employee profiles keyed by email. A missing
// employee is reported as (nil, nil), not as an error.
type EmployeeStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	Upsert(ctx context.Context, employee model.Employee) (model.Employee, error)
}

// MongoEmployeeStore keeps employee profiles in MongoDB.
type MongoEmployeeStore struct {
	employees *mongo.Collection
	counters  *mongo.Collection
}

// NewMongoEmployeeStore connects to MongoDB and returns a store over
// the employees collection.
func NewMongoEmployeeStore(ctx context.Context, uri, database string) (*MongoEmployeeStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.NewServerError(errors.PROFILE_STORAGE_FAILED, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.NewServerError(errors.PROFILE_STORAGE_FAILED, err)
	}

	db := client.Database(database)
	return &MongoEmployeeStore{
		employees: db.Collection(employeeCollection),
		counters:  db.Collection(counterCollection),
	}, nil
}

func (s *MongoEmployeeStore) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	var employee model.Employee
	err := s.employees.FindOne(ctx, bson.M{"email": email}).Decode(&employee)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, errors.NewServerError(errors.PROFILE_STORAGE_FAILED, err)
	}
	return &employee, nil
}

func (s *MongoEmployeeStore) Upsert(ctx context.Context, employee model.Employee) (model.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoOpTimeout)
	defer cancel()

	if employee.EmployeeID == 0 {
		id, err := s.nextEmployeeID(ctx)
		if err != nil {
			return model.Employee{}, err
		}
		employee.EmployeeID = id
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.employees.ReplaceOne(ctx, bson.M{"email": employee.Email}, employee, opts)
	if err != nil {
		return model.Employee{}, errors.NewServerError(errors.PROFILE_STORAGE_FAILED, err)
	}
	return employee, nil
}

// nextEmployeeID atomically increments the employee id sequence.
func (s *MongoEmployeeStore) nextEmployeeID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Sequence int64 `bson:"sequence"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": employeeCounterKey},
		bson.M{"$inc": bson.M{"sequence": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, errors.NewServerError(errors.PROFILE_STORAGE_FAILED, err)
	}
	return counter.Sequence, nil
}

// MemoryEmployeeStore is the fallback store used when no MongoDB URI is
// configured. Suitable for tests and the smoke tool only.
type MemoryEmployeeStore struct {
	mu        sync.RWMutex
	employees map[string]model.Employee
	nextID    int64
}

func NewMemoryEmployeeStore() *MemoryEmployeeStore {
	return &MemoryEmployeeStore{
		employees: make(map[string]model.Employee),
	}
}

func (s *MemoryEmployeeStore) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employee, ok := s.employees[email]
	if !ok {
		return nil, nil
	}
	return &employee, nil
}

func (s *MemoryEmployeeStore) Upsert(_ context.Context, employee model.Employee) (model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.employees[employee.Email]; ok && existing.EmployeeID != 0 {
		employee.EmployeeID = existing.EmployeeID
	}
	if employee.EmployeeID == 0 {
		s.nextID++
		employee.EmployeeID = s.nextID
	}
	s.employees[employee.Email] = employee
	return employee, nil
}

// Emails lists the stored identities in stable order.
func (s *MemoryEmployeeStore) Emails() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emails := make([]string, 0, len(s.employees))
	for email := range s.employees {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}

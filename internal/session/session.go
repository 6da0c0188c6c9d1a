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

// Package session implements the edit session controller: the
// Viewing/Editing/Saving state machine that mediates between locally
// edited profile state and the remote source of truth.
package session

import (
	"context"
	"sync"
	"time"

	documentModel "github.com/openhrms/employee-profile-engine/internal/document/model"
	"github.com/openhrms/employee-profile-engine/internal/identity"
	"github.com/openhrms/employee-profile-engine/internal/profile/model"
	"github.com/openhrms/employee-profile-engine/internal/profile/store"
	"github.com/openhrms/employee-profile-engine/internal/system/config"
	"github.com/openhrms/employee-profile-engine/internal/system/errors"
	"github.com/openhrms/employee-profile-engine/internal/system/log"
	"github.com/openhrms/employee-profile-engine/internal/validators"
)

// State is the lifecycle phase of an edit session.
type State int

const (
	Viewing State = iota
	Editing
	Saving
)

func (s State) String() string {
	switch s {
	case Editing:
		return "Editing"
	case Saving:
		return "Saving"
	default:
		return "Viewing"
	}
}

// MessageKind classifies the single status message surfaced to the
// consumer.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageSuccess
	MessageError
)

// StatusMessage is the one transient message an edit session carries.
type StatusMessage struct {
	Kind MessageKind
	Text string
}

const (
	defaultStatusClear = 5 * time.Second

	savedMessage = "Profile updated successfully!"
)

// ProfileGateway is the slice of the sync gateway the controller needs.
type ProfileGateway interface {
	FetchProfile(ctx context.Context, email string) (model.EmployeeResponse, int64, error)
	UpdateProfile(ctx context.Context, record model.ProfileRecord, picture *documentModel.File) (model.EmployeeResponse, error)
}

// Controller owns one employee's edit session. All exported methods are
// safe for concurrent use; at most one save transaction is in flight at
// a time and later save requests are ignored while it runs.
type Controller struct {
	gateway  ProfileGateway
	identity *identity.Store

	statusClear time.Duration

	mu         sync.Mutex
	email      string
	state      State
	record     model.ProfileRecord // last confirmed canonical snapshot
	draft      model.ProfileRecord // working copy while editing
	employeeID int64
	generation uint64
	saving     bool
	staged     *documentModel.File
	status     StatusMessage
	statusSeq  uint64
}

// NewController creates a controller bound to a gateway and the
// persisted identity cache.
func NewController(gateway ProfileGateway, idStore *identity.Store, cfg config.SessionConfig) *Controller {
	clearAfter := defaultStatusClear
	if cfg.StatusClearSeconds > 0 {
		clearAfter = time.Duration(cfg.StatusClearSeconds) * time.Second
	}
	return &Controller{
		gateway:     gateway,
		identity:    idStore,
		statusClear: clearAfter,
	}
}

// Mount binds the session to an identity and seeds the snapshot from
// the persisted identity cache when one is present, so the consumer has
// data to show before the first remote fetch settles.
func (c *Controller) Mount(email string) model.ProfileRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.email = email
	c.state = Viewing
	c.generation++
	if cached, ok := c.identity.Load(); ok && cached.Email == email {
		c.record = cached
	} else {
		c.record = model.ProfileRecord{Email: email}
	}
	return c.record
}

// Refresh fetches the canonical profile from the backend. A result is
// committed only when the session still tracks the same identity and no
// newer mount or refresh has started since the call went out.
func (c *Controller) Refresh(ctx context.Context) error {
	logger := log.GetLogger()

	c.mu.Lock()
	email := c.email
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	resp, employeeID, err := c.gateway.FetchProfile(ctx, email)
	if err != nil {
		logger.Error("Profile fetch failed", log.String("email", email), log.Error(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen || c.email != email {
		logger.Debug("Discarding stale profile fetch", log.String("email", email))
		return nil
	}
	c.record = store.Load(resp, email)
	c.employeeID = employeeID
	if c.state == Viewing {
		c.draft = c.record
	}
	return nil
}

// BeginEdit moves a viewing session into editing with a fresh working
// copy of the snapshot. No-op unless the session is Viewing.
func (c *Controller) BeginEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Viewing {
		return
	}
	c.state = Editing
	c.draft = c.record
}

// SetField applies one field edit to the working copy.
func (c *Controller) SetField(path, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Editing {
		return errors.NewValidationError(errors.IMMUTABLE_FIELD, "Session is not in editing state")
	}
	updated, err := store.SetField(c.draft, path, value)
	if err != nil {
		return err
	}
	c.draft = updated
	return nil
}

// AddSkill adds a skill to the working copy; duplicates are ignored.
func (c *Controller) AddSkill(skill string) {
	c.mutateDraft(func(r model.ProfileRecord) model.ProfileRecord {
		return store.AddSkill(r, skill)
	})
}

// AddLanguage adds a language to the working copy; duplicates are
// ignored.
func (c *Controller) AddLanguage(language string) {
	c.mutateDraft(func(r model.ProfileRecord) model.ProfileRecord {
		return store.AddLanguage(r, language)
	})
}

// AddEducation appends an education row when its required fields are
// filled.
func (c *Controller) AddEducation(entry model.EducationEntry) {
	c.mutateDraft(func(r model.ProfileRecord) model.ProfileRecord {
		return store.AddEducation(r, entry)
	})
}

// RemoveSkill drops the skill at index from the working copy.
func (c *Controller) RemoveSkill(index int) {
	c.mutateDraft(func(r model.ProfileRecord) model.ProfileRecord {
		return store.RemoveSkill(r, index)
	})
}

// RemoveLanguage drops the language at index from the working copy.
func (c *Controller) RemoveLanguage(index int) {
	c.mutateDraft(func(r model.ProfileRecord) model.ProfileRecord {
		return store.RemoveLanguage(r, index)
	})
}

// RemoveEducation drops the education row at index from the working
// copy.
func (c *Controller) RemoveEducation(index int) {
	c.mutateDraft(func(r model.ProfileRecord) model.ProfileRecord {
		return store.RemoveEducation(r, index)
	})
}

func (c *Controller) mutateDraft(fn func(model.ProfileRecord) model.ProfileRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Editing {
		return
	}
	c.draft = fn(c.draft)
}

// StagePicture holds a locally-selected profile image to ride the next
// save. Only image content types up to 5MB are accepted.
func (c *Controller) StagePicture(name, contentType string, data []byte) error {
	file := documentModel.File{Name: name, ContentType: contentType, Data: data}
	if err := validators.ValidateImage(file); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Editing {
		return errors.NewValidationError(errors.IMMUTABLE_FIELD, "Session is not in editing state")
	}
	c.staged = &file
	return nil
}

// Save runs the single save transaction: local validation, then one
// update call. A save requested while another is in flight is ignored.
// On success the response becomes the canonical snapshot and the
// identity cache is refreshed; on failure the edits stay in place.
func (c *Controller) Save(ctx context.Context) error {
	logger := log.GetLogger()

	c.mu.Lock()
	if c.saving {
		logger.Debug("Ignoring save request while a save is in flight",
			log.String("email", c.email))
		c.mu.Unlock()
		return nil
	}
	if c.state != Editing {
		c.mu.Unlock()
		return nil
	}

	draft := c.draft
	staged := c.staged
	email := c.email

	if err := validators.ValidateSave(draft); err != nil {
		c.setStatusLocked(MessageError, statusText(err))
		c.mu.Unlock()
		return err
	}

	c.saving = true
	c.state = Saving
	c.mu.Unlock()

	resp, err := c.gateway.UpdateProfile(ctx, draft, staged)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.saving = false

	if err != nil {
		logger.Error("Profile save failed", log.String("email", email), log.Error(err))
		c.state = Editing
		c.setStatusLocked(MessageError, statusText(err))
		return err
	}

	c.record = store.Load(resp, email)
	if resp.EmployeeID != 0 {
		c.employeeID = resp.EmployeeID
	}
	c.draft = c.record
	c.staged = nil
	c.identity.Save(c.record)
	c.state = Viewing
	c.setStatusLocked(MessageSuccess, savedMessage)
	logger.Info("Profile saved", log.String("email", email))
	return nil
}

// Cancel abandons the working copy: the snapshot is reloaded from the
// persisted identity cache, the staged image and status are cleared and
// the session returns to Viewing.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Saving {
		return
	}
	if cached, ok := c.identity.Load(); ok && cached.Email == c.email {
		c.record = cached
	}
	c.draft = c.record
	c.staged = nil
	c.state = Viewing
	c.clearStatusLocked()
}

// State reports the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Record returns the last confirmed canonical snapshot.
func (c *Controller) Record() model.ProfileRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}

// Draft returns the working copy; outside Editing it mirrors the
// snapshot.
func (c *Controller) Draft() model.ProfileRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Viewing {
		return c.record
	}
	return c.draft
}

// EmployeeID reports the numeric backend id, or zero while unknown.
// Document operations stay unavailable until it is known.
func (c *Controller) EmployeeID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.employeeID
}

// Status returns the current transient status message.
func (c *Controller) Status() StatusMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// setStatusLocked installs the message and schedules its auto-clear.
// The sequence counter keeps a timer from wiping a newer message.
func (c *Controller) setStatusLocked(kind MessageKind, text string) {
	c.statusSeq++
	seq := c.statusSeq
	c.status = StatusMessage{Kind: kind, Text: text}

	time.AfterFunc(c.statusClear, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.statusSeq == seq {
			c.status = StatusMessage{}
		}
	})
}

func (c *Controller) clearStatusLocked() {
	c.statusSeq++
	c.status = StatusMessage{}
}

// statusText picks the consumer-facing text for a failed save.
// Rejections surface the backend body verbatim when it has one.
func statusText(err error) string {
	switch e := err.(type) {
	case *errors.RemoteRejection:
		return e.DiagnosticText()
	case *errors.ValidationError:
		return e.Message
	case *errors.TransportError:
		return e.Message
	default:
		return errors.UPDATE_PROFILE_FAILED.Message
	}
}

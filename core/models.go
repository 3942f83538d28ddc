// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// Record is a single product review normalized from an uploaded file.
// Identifier stays empty until an allocator assigns one.
type Record struct {
	Identifier  string
	ProductName string
	Price       float64
	Comment     string
	Rating      float64
}

// AssignIdentifier attaches an allocated identifier to the record.
// Identifiers are immutable once assigned.
func (r *Record) AssignIdentifier(id string) error {
	if id == "" {
		return ErrEmptyIdentifier
	}
	if r.Identifier != "" && r.Identifier != id {
		return fmt.Errorf("%w: %s", ErrIdentifierAssigned, r.Identifier)
	}
	r.Identifier = id
	return nil
}

// EventKind classifies a storage-change notification.
type EventKind int

const (
	// EventOther is any notification that is not an object creation.
	EventOther EventKind = iota
	// EventCreated signals that a new object was written.
	EventCreated
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	default:
		return "other"
	}
}

// Notification names one object that changed in the object store.
type Notification struct {
	Container string
	Key       string
	Kind      EventKind
}

/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
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

// Package identity tracks the ids the workspace assigns while a template set is reconstructed.
package identity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/asgardeo/templatizer/internal/workspace"
)

var (
	// ErrConflictingIdentity is returned when a template id is remapped to a second, different id.
	ErrConflictingIdentity = errors.New("conflicting identity")
	// ErrDuplicateNamedIdentity is returned when more than one node shares a scope, name and kind.
	ErrDuplicateNamedIdentity = errors.New("duplicate named identity")
)

// NamedKey identifies a node by the human name it has inside a scope.
type NamedKey struct {
	Scope string
	Name  string
	Kind  workspace.NodeKind
}

// Mapping is one template id to workspace id entry.
type Mapping struct {
	OldID string
	NewID string
}

// Tracker records template id and named lookups for one reconstruction run. Entries are never removed.
// It is not safe for concurrent use.
type Tracker struct {
	ids   map[string]string
	order []string
	named map[NamedKey][]string
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		ids:   make(map[string]string),
		named: make(map[NamedKey][]string),
	}
}

// RecordIdentity maps a template id to the id the workspace assigned. Recording the same pair twice is a
// no-op. Remapping an id to a different value is rejected and the first mapping is kept, since later
// edges may already have been resolved against it.
func (t *Tracker) RecordIdentity(oldID, newID string) error {
	if existing, ok := t.ids[oldID]; ok {
		if existing == newID {
			return nil
		}
		return fmt.Errorf("%w: %s is already mapped to %s, refusing %s", ErrConflictingIdentity, oldID,
			existing, newID)
	}
	t.ids[oldID] = newID
	t.order = append(t.order, oldID)
	return nil
}

// RecordNamed registers a node under its name inside a scope. Recording the same id twice is a no-op.
func (t *Tracker) RecordNamed(scope, name string, kind workspace.NodeKind, newID string) {
	key := NamedKey{Scope: scope, Name: name, Kind: kind}
	for _, id := range t.named[key] {
		if id == newID {
			return
		}
	}
	t.named[key] = append(t.named[key], newID)
}

// ResolveByID returns the workspace id recorded for a template id.
func (t *Tracker) ResolveByID(oldID string) (string, bool) {
	id, ok := t.ids[oldID]
	return id, ok
}

// ResolveByName returns the workspace id registered under the name. More than one match is an error,
// never silently disambiguated.
func (t *Tracker) ResolveByName(scope, name string, kind workspace.NodeKind) (string, bool, error) {
	ids := t.named[NamedKey{Scope: scope, Name: name, Kind: kind}]
	switch len(ids) {
	case 0:
		return "", false, nil
	case 1:
		return ids[0], true, nil
	default:
		sorted := append([]string(nil), ids...)
		sort.Strings(sorted)
		return "", false, fmt.Errorf("%w: %d %s nodes named %q in scope %s: %v", ErrDuplicateNamedIdentity,
			len(ids), kind, name, scope, sorted)
	}
}

// Mappings returns every template id mapping in the order it was recorded.
func (t *Tracker) Mappings() []Mapping {
	mappings := make([]Mapping, 0, len(t.order))
	for _, oldID := range t.order {
		mappings = append(mappings, Mapping{OldID: oldID, NewID: t.ids[oldID]})
	}
	return mappings
}

// Len returns the number of template id mappings.
func (t *Tracker) Len() int {
	return len(t.ids)
}

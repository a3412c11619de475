// Copyright 2026 Dossier Labs
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

// Package source defines where indexable records come from.
package source

import (
	"context"

	"github.com/dossierlab/dossier/core"
)

// RecordSource provides the person and event rows to be indexed. Events
// arrive with their participant names already aggregated, so callers never
// see the underlying join table.
type RecordSource interface {
	// Persons returns every person row.
	Persons(ctx context.Context) ([]*core.PersonRecord, error)

	// Events returns every event row with participant names joined into
	// PersonsInvolved.
	Events(ctx context.Context) ([]*core.EventRecord, error)

	// Close releases the underlying connection.
	Close() error
}

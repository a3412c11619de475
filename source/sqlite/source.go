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

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dossierlab/dossier/core"
	"github.com/dossierlab/dossier/source"
)

// Source reads Person and Event rows from a SQLite database.
type Source struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

var _ source.RecordSource = (*Source)(nil)

// Open opens (or creates) the SQLite database at the given path and ensures
// the schema exists. Parent directories are created as needed.
func Open(path string) (*Source, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Source{
		db:     db,
		path:   path,
		logger: slog.Default().With("component", "sqlite-source"),
	}

	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Source) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Source) Path() string {
	return s.path
}

func (s *Source) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS Person (
			Id        INTEGER PRIMARY KEY AUTOINCREMENT,
			Name      TEXT NOT NULL,
			SSN       TEXT,
			BioData   TEXT,
			Education TEXT,
			Work      TEXT
		);
		CREATE TABLE IF NOT EXISTS Event (
			Id          INTEGER PRIMARY KEY AUTOINCREMENT,
			Subject     TEXT NOT NULL,
			Date        TEXT,
			Source      TEXT,
			Latitude    REAL,
			Longitude   REAL,
			Address     TEXT,
			Description TEXT
		);
		CREATE TABLE IF NOT EXISTS EventPerson (
			EventId  INTEGER NOT NULL REFERENCES Event(Id),
			PersonId INTEGER NOT NULL REFERENCES Person(Id),
			PRIMARY KEY (EventId, PersonId)
		);
	`)
	return err
}

// Persons returns every Person row ordered by ID. NULL columns scan to empty
// strings.
func (s *Source) Persons(ctx context.Context) ([]*core.PersonRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT Id, Name, SSN, BioData, Education, Work FROM Person ORDER BY Id`)
	if err != nil {
		return nil, fmt.Errorf("querying persons: %w", err)
	}
	defer rows.Close()

	var records []*core.PersonRecord
	for rows.Next() {
		var (
			rec                        core.PersonRecord
			ssn, bio, education, work sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &ssn, &bio, &education, &work); err != nil {
			return nil, fmt.Errorf("scanning person row: %w", err)
		}
		rec.SSN = ssn.String
		rec.Bio = bio.String
		rec.Education = education.String
		rec.Work = work.String
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating persons: %w", err)
	}

	s.logger.Debug("loaded person rows", "count", len(records))
	return records, nil
}

// Events returns every Event row ordered by ID, with participant names
// aggregated into PersonsInvolved. Events without participants get an empty
// string.
func (s *Source) Events(ctx context.Context) ([]*core.EventRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.Id, e.Subject, e.Date, e.Source, e.Latitude, e.Longitude,
		       e.Address, e.Description, group_concat(p.Name, ', ') AS PersonsInvolved
		FROM Event e
		LEFT JOIN EventPerson ep ON e.Id = ep.EventId
		LEFT JOIN Person p ON ep.PersonId = p.Id
		GROUP BY e.Id, e.Subject, e.Date, e.Source, e.Latitude, e.Longitude,
		         e.Address, e.Description
		ORDER BY e.Id`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var records []*core.EventRecord
	for rows.Next() {
		var (
			rec                                           core.EventRecord
			date, src, address, description, participants sql.NullString
			latitude, longitude                           sql.NullFloat64
		)
		err := rows.Scan(&rec.ID, &rec.Subject, &date, &src, &latitude,
			&longitude, &address, &description, &participants)
		if err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		rec.Date = date.String
		rec.Source = src.String
		rec.Latitude = formatCoordinate(latitude)
		rec.Longitude = formatCoordinate(longitude)
		rec.Address = address.String
		rec.Description = description.String
		rec.PersonsInvolved = participants.String
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	s.logger.Debug("loaded event rows", "count", len(records))
	return records, nil
}

func formatCoordinate(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

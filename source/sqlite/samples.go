package sqlite

import (
	"context"
	"fmt"
)

type samplePerson struct {
	name, ssn, bio, education, work string
}

type sampleEvent struct {
	subject, date, source  string
	latitude, longitude    float64
	address, description   string
	participants           []string
}

// A small demo dataset covering the query shapes the assistant is asked
// about: named participants, professions, places and date ranges.
var (
	samplePersons = []samplePerson{
		{"John Smith", "123-45-6789", "Environmental policy advisor with a focus on urban planning.", "MSc Environmental Science, Georgetown University", "Senior Advisor, Department of Energy"},
		{"Sarah Chen", "987-65-4321", "Practicing physician and public health researcher.", "MD, Johns Hopkins University", "Doctor, Mercy General Hospital"},
		{"Michael Brown", "456-78-9012", "Investigative journalist covering climate and energy.", "BA Journalism, Columbia University", "Staff Writer, The Capital Times"},
		{"Emily Davis", "321-54-9876", "Cardiologist involved in community health outreach.", "MD, Stanford University", "Doctor, Riverside Medical Center"},
		{"Robert Wilson", "654-32-1987", "Logistics coordinator for large public gatherings.", "BSc Management, Penn State", "Operations Manager, CapEvents LLC"},
	}

	sampleEvents = []sampleEvent{
		{
			subject: "Climate Change Summit", date: "2023-03-15", source: "National Press Office",
			latitude: 38.9072, longitude: -77.0369,
			address:     "1200 Constitution Ave NW, Washington DC",
			description: "Two-day summit on climate change mitigation policy with panels on urban resilience and public health impacts.",
			participants: []string{"John Smith", "Sarah Chen", "Emily Davis"},
		},
		{
			subject: "Public Health Symposium", date: "2023-05-20", source: "Mercy General Hospital",
			latitude: 42.3601, longitude: -71.0589,
			address:     "415 Summer St, Boston MA",
			description: "Regional symposium on preventive care and hospital readiness.",
			participants: []string{"Sarah Chen"},
		},
		{
			subject: "Energy Technology Expo", date: "2023-02-10", source: "CapEvents LLC",
			latitude: 38.9047, longitude: -77.0163,
			address:     "801 Mount Vernon Pl NW, Washington DC",
			description: "Exhibition of grid storage and renewable generation technology.",
			participants: []string{"John Smith", "Robert Wilson"},
		},
		{
			subject: "Winter Charity Gala", date: "2022-11-05", source: "The Capital Times",
			latitude: 40.7128, longitude: -74.0060,
			address:     "350 5th Ave, New York NY",
			description: "Annual fundraising gala for local food programs.",
			participants: []string{"Michael Brown"},
		},
	}
)

// SeedSampleData loads the built-in demo dataset. It refuses to run against
// a database that already has person rows, so re-running the seed command is
// harmless.
func (s *Source) SeedSampleData(ctx context.Context) error {
	var existing int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Person`).Scan(&existing); err != nil {
		return fmt.Errorf("checking existing rows: %w", err)
	}
	if existing > 0 {
		s.logger.Info("sample data already present, skipping seed", "persons", existing)
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	personIDs := make(map[string]int64, len(samplePersons))
	for _, p := range samplePersons {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO Person (Name, SSN, BioData, Education, Work) VALUES (?, ?, ?, ?, ?)`,
			p.name, p.ssn, p.bio, p.education, p.work)
		if err != nil {
			return fmt.Errorf("inserting person %q: %w", p.name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading person id: %w", err)
		}
		personIDs[p.name] = id
	}

	for _, e := range sampleEvents {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO Event (Subject, Date, Source, Latitude, Longitude, Address, Description)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.subject, e.date, e.source, e.latitude, e.longitude, e.address, e.description)
		if err != nil {
			return fmt.Errorf("inserting event %q: %w", e.subject, err)
		}
		eventID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading event id: %w", err)
		}
		for _, name := range e.participants {
			personID, ok := personIDs[name]
			if !ok {
				return fmt.Errorf("event %q references unknown person %q", e.subject, name)
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO EventPerson (EventId, PersonId) VALUES (?, ?)`, eventID, personID)
			if err != nil {
				return fmt.Errorf("linking event %q to %q: %w", e.subject, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	s.logger.Info("seeded sample data",
		"persons", len(samplePersons), "events", len(sampleEvents))
	return nil
}

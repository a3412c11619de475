package core

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizePerson converts a Person row into its canonical document.
// Field order is fixed and part of the contract: the serialization is what
// the embedding model sees, so it must be stable across runs. The SSN is
// masked before inclusion.
func NormalizePerson(rec PersonRecord) *Document {
	text := fmt.Sprintf(
		"Person:\nId: %d\nName: %s\nSSN: %s\nBio: %s\nEducation: %s\nWork: %s",
		rec.ID, rec.Name, MaskSSN(rec.SSN), rec.Bio, rec.Education, rec.Work)

	return &Document{
		ID:   DocumentID(KindPerson, rec.ID),
		Text: text,
		Metadata: map[string]string{
			MetaTable: string(KindPerson),
			MetaRowID: strconv.FormatInt(rec.ID, 10),
		},
	}
}

// NormalizeEvent converts an Event row into its canonical document.
// PersonsInvolved must already be aggregated by the caller.
func NormalizeEvent(rec EventRecord) *Document {
	text := fmt.Sprintf(
		"Event:\nId: %d\nSubject: %s\nDate: %s\nSource: %s\nLatitude: %s\nLongitude: %s\nAddress: %s\nDescription: %s\nPersons Involved: %s",
		rec.ID, rec.Subject, rec.Date, rec.Source, rec.Latitude,
		rec.Longitude, rec.Address, rec.Description, rec.PersonsInvolved)

	return &Document{
		ID:   DocumentID(KindEvent, rec.ID),
		Text: text,
		Metadata: map[string]string{
			MetaTable: string(KindEvent),
			MetaRowID: strconv.FormatInt(rec.ID, 10),
		},
	}
}

// FlattenText collapses carriage returns and newlines into single spaces and
// trims surrounding whitespace. Every text handed to an embedding call goes
// through this first; stored document text keeps its newlines.
func FlattenText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

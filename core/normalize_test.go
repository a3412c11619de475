package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePerson(t *testing.T) {
	doc := NormalizePerson(PersonRecord{
		ID:        12,
		Name:      "John Smith",
		SSN:       "123-45-6789",
		Bio:       "Lives in Washington DC.",
		Education: "BSc",
		Work:      "Doctor",
	})
	require.NoError(t, ValidateDocument(doc))

	assert.Equal(t, "Person:12", doc.ID)
	assert.Equal(t, "Person", doc.Metadata[MetaTable])
	assert.Equal(t, "12", doc.Metadata[MetaRowID])

	want := "Person:\n" +
		"Id: 12\n" +
		"Name: John Smith\n" +
		"SSN: XXX-XX-6789\n" +
		"Bio: Lives in Washington DC.\n" +
		"Education: BSc\n" +
		"Work: Doctor"
	assert.Equal(t, want, doc.Text)
}

func TestNormalizePerson_MasksSSN(t *testing.T) {
	doc := NormalizePerson(PersonRecord{ID: 1, Name: "Jane", SSN: "987-65-4321"})

	assert.NotContains(t, doc.Text, "987-65-4321")
	assert.NotContains(t, doc.Text, "987")
	assert.Contains(t, doc.Text, "XXX-XX-4321")
}

func TestNormalizePerson_MissingFieldsStayEmpty(t *testing.T) {
	doc := NormalizePerson(PersonRecord{ID: 3})

	assert.Equal(t, "Person:3", doc.ID)
	assert.Contains(t, doc.Text, "Name: \n")
	assert.Contains(t, doc.Text, "SSN: \n")
}

func TestNormalizeEvent(t *testing.T) {
	doc := NormalizeEvent(EventRecord{
		ID:              7,
		Subject:         "Climate Summit",
		Date:            "2023-02-10",
		Source:          "Daily Ledger",
		Latitude:        "38.9072",
		Longitude:       "-77.0369",
		Address:         "400 Main St, Washington DC",
		Description:     "Annual summit on climate change.",
		PersonsInvolved: "John Smith, Jane Doe",
	})
	require.NoError(t, ValidateDocument(doc))

	assert.Equal(t, "Event:7", doc.ID)
	assert.Equal(t, "Event", doc.Metadata[MetaTable])
	assert.Equal(t, "7", doc.Metadata[MetaRowID])

	want := "Event:\n" +
		"Id: 7\n" +
		"Subject: Climate Summit\n" +
		"Date: 2023-02-10\n" +
		"Source: Daily Ledger\n" +
		"Latitude: 38.9072\n" +
		"Longitude: -77.0369\n" +
		"Address: 400 Main St, Washington DC\n" +
		"Description: Annual summit on climate change.\n" +
		"Persons Involved: John Smith, Jane Doe"
	assert.Equal(t, want, doc.Text)
}

func TestNormalize_Deterministic(t *testing.T) {
	rec := EventRecord{ID: 9, Subject: "Flood", PersonsInvolved: "A, B"}

	first := NormalizeEvent(rec)
	second := NormalizeEvent(rec)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Metadata, second.Metadata)
}

func TestFlattenText(t *testing.T) {
	in := "Person:\r\nId: 1\nName: Jane\n"

	assert.Equal(t, "Person:  Id: 1 Name: Jane", FlattenText(in))
}

func TestValidateDocument(t *testing.T) {
	assert.ErrorIs(t, ValidateDocument(nil), ErrInvalidDocument)
	assert.ErrorIs(t, ValidateDocument(&Document{Text: "x"}), ErrEmptyDocumentID)
	assert.ErrorIs(t, ValidateDocument(&Document{ID: "x"}), ErrEmptyDocumentText)
	assert.NoError(t, ValidateDocument(&Document{ID: "Person:1", Text: "x"}))
}

package valueobjects

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ConceptID is a value object representing a unique concept identifier.
// Callers may supply their own ids (concept slugs); generated ids are UUIDs.
type ConceptID struct {
	value string
}

// NewConceptID creates a new random ConceptID
func NewConceptID() ConceptID {
	return ConceptID{value: uuid.New().String()}
}

// NewConceptIDFromString creates a ConceptID from an existing string
func NewConceptIDFromString(id string) (ConceptID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ConceptID{}, errors.New("concept ID cannot be empty")
	}
	return ConceptID{value: id}, nil
}

// String returns the string representation of the ConceptID
func (id ConceptID) String() string {
	return id.value
}

// Equals checks if two ConceptIDs are equal
func (id ConceptID) Equals(other ConceptID) bool {
	return id.value == other.value
}

// IsZero checks if the ConceptID is the zero value
func (id ConceptID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id ConceptID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ConceptID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("ConceptID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}

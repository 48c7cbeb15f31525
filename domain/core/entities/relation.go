package entities

import "fmt"

// RelationType defines the type of relationship between two concepts.
// The set is closed: diversity scoring divides by the enum's cardinality,
// so arbitrary relation strings are rejected at the boundary.
type RelationType string

const (
	RelationMetaphorFor     RelationType = "METAPHOR_FOR"
	RelationContrastsWith   RelationType = "CONTRASTS_WITH"
	RelationRemindsOf       RelationType = "REMINDS_OF"
	RelationSynthesizedFrom RelationType = "SYNTHESIZED_FROM"
	RelationContains        RelationType = "CONTAINS"
	RelationSpecializes     RelationType = "SPECIALIZES"
	RelationTransformsInto  RelationType = "TRANSFORMS_INTO"
	RelationCauses          RelationType = "CAUSES"
)

// NumRelationTypes is the cardinality of the relation enum
const NumRelationTypes = 8

// AllRelationTypes returns every relation type in declaration order
func AllRelationTypes() []RelationType {
	return []RelationType{
		RelationMetaphorFor,
		RelationContrastsWith,
		RelationRemindsOf,
		RelationSynthesizedFrom,
		RelationContains,
		RelationSpecializes,
		RelationTransformsInto,
		RelationCauses,
	}
}

// IsValid checks whether the relation type is a member of the closed enum
func (t RelationType) IsValid() bool {
	switch t {
	case RelationMetaphorFor, RelationContrastsWith, RelationRemindsOf,
		RelationSynthesizedFrom, RelationContains, RelationSpecializes,
		RelationTransformsInto, RelationCauses:
		return true
	}
	return false
}

// String returns the string representation
func (t RelationType) String() string {
	return string(t)
}

// ParseRelationType parses a relation type from its string form
func ParseRelationType(s string) (RelationType, error) {
	t := RelationType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown relation type %q", s)
	}
	return t, nil
}

package types

import "time"

// Domain names produced by the classifier. The set is extensible through
// the rule file; these are the built-in classification outcomes.
const (
	DomainSafety        = "Safety"
	DomainElectrical    = "Electrical"
	DomainEMC           = "EMC"
	DomainEnvironmental = "Environmental"
	DomainMechanical    = "Mechanical"
	DomainThermal       = "Thermal"
	DomainHighVoltage   = "High_Voltage"
	DomainChemical      = "Chemical"
	DomainUnknown       = "Unknown"
)

// Sentinel standard values. Exactly one standard row with
// full_code = SentinelFullCode exists; it absorbs capability edges whose
// original standard text could not be parsed.
const (
	SentinelBody     = "GENERIC"
	SentinelCode     = "UNSPECIFIED"
	SentinelFullCode = "UNSPECIFIED"
)

// Lab is a testing laboratory. LabName is the natural key, unique
// case-insensitively. Labs are never deleted by the pipeline; DeletedAt is
// set only by external administration and soft-deleted labs are excluded
// from every query.
type Lab struct {
	LabID     string     `json:"lab_id"`
	LabName   string     `json:"lab_name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Test is a test performed by one or more labs. TestName is the natural
// key, unique case-insensitively. FamilyID is reserved for future grouping
// and stays null for now.
type Test struct {
	TestID   string  `json:"test_id"`
	TestName string  `json:"test_name"`
	FamilyID *string `json:"family_id,omitempty"`
}

// Standard is a testing standard. FullCode is the durable identity key
// (the original raw string, unique case-insensitively) and is never
// mutated once set. Body, Code, and Year are derived from FullCode and may
// be repaired in place on later sightings.
type Standard struct {
	StandardID string  `json:"standard_id"`
	Body       string  `json:"standard_body"`
	Code       string  `json:"standard_code"`
	Year       *string `json:"year,omitempty"`
	FullCode   string  `json:"full_code"`
}

// Domain is a broad testing category. DomainName is the natural key,
// unique case-insensitively.
type Domain struct {
	DomainID   string `json:"domain_id"`
	DomainName string `json:"domain_name"`
}

// Capability is one edge of the capability graph: lab L performs test T
// against standard S, with the classifier's inferred domain as an edge
// attribute. (LabID, TestID, StandardID) is the uniqueness key; DomainID
// is not part of it, so the first-seen classification for a given
// (lab, test, standard) wins. DisciplineID and FamilyID are reserved for
// future refinement and stay null.
type Capability struct {
	LabID        string  `json:"lab_id"`
	DomainID     string  `json:"domain_id"`
	DisciplineID *string `json:"discipline_id,omitempty"`
	FamilyID     *string `json:"family_id,omitempty"`
	TestID       string  `json:"test_id"`
	StandardID   string  `json:"standard_id"`
}

package types

// DefaultSearchLimit caps result sets when the caller does not specify a
// limit.
const DefaultSearchLimit = 50

// Filter selects capability edges for search and recommend. TestName and
// Standard are case-insensitive substring matches on the test name and
// standard code; Domain is an exact domain-name match. At least one of the
// three must be set.
type Filter struct {
	TestName string `json:"test_name,omitempty"`
	Standard string `json:"standard,omitempty"`
	Domain   string `json:"domain,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// Empty reports whether no filter field is set.
func (f Filter) Empty() bool {
	return f.TestName == "" && f.Standard == "" && f.Domain == ""
}

// SearchResult is one distinct (lab, test, standard, domain) tuple
// satisfying a search filter.
type SearchResult struct {
	LabID        string `json:"lab_id"`
	LabName      string `json:"lab_name"`
	TestName     string `json:"test_name"`
	StandardCode string `json:"standard_code"`
	FullCode     string `json:"full_code"`
	StandardBody string `json:"standard_body"`
	DomainName   string `json:"domain_name"`
}

// Recommendation is one ranked lab returned by Recommend. The distinct
// counts feed the relevance score:
//
//	relevance = 10*MatchingTests + 5*MatchingStandards + 1*MatchingDomains
//
// TotalMatches is the lab's raw matching edge count; it gates inclusion
// (labs with zero matches are omitted) but is not part of the sort key.
type Recommendation struct {
	LabID             string   `json:"lab_id"`
	LabName           string   `json:"lab_name"`
	MatchingTests     int      `json:"matching_tests"`
	MatchingStandards int      `json:"matching_standards"`
	MatchingDomains   int      `json:"matching_domains"`
	TotalMatches      int      `json:"total_matches"`
	RelevanceScore    int      `json:"relevance_score"`
	SampleTests       []string `json:"sample_tests"`
	SampleStandards   []string `json:"sample_standards"`
}

// CapabilityDetail is one capability row of a lab detail view.
type CapabilityDetail struct {
	TestName     string `json:"test_name"`
	StandardCode string `json:"standard_code"`
	FullCode     string `json:"full_code"`
	StandardBody string `json:"standard_body"`
	DomainName   string `json:"domain_name"`
}

// DomainCount is a per-domain capability tally.
type DomainCount struct {
	DomainName      string `json:"domain_name"`
	CapabilityCount int    `json:"capability_count"`
}

// LabDetails is the full detail view of one lab.
type LabDetails struct {
	Lab               Lab                `json:"lab"`
	Capabilities      []CapabilityDetail `json:"capabilities"`
	DomainSummary     []DomainCount      `json:"domain_summary"`
	TotalCapabilities int                `json:"total_capabilities"`
}

// DomainInfo is one row of the domain listing: a domain with its total
// capability count and the number of labs carrying it.
type DomainInfo struct {
	DomainID          string `json:"domain_id"`
	DomainName        string `json:"domain_name"`
	TotalCapabilities int    `json:"total_capabilities"`
	LabCount          int    `json:"lab_count"`
}

// TestMatch is one row of a test search: a distinct test with the number
// of active labs that perform it.
type TestMatch struct {
	TestID   string `json:"test_id"`
	TestName string `json:"test_name"`
	LabCount int    `json:"lab_count"`
}

// StandardMatch is one row of a standard search.
type StandardMatch struct {
	StandardID   string `json:"standard_id"`
	StandardCode string `json:"standard_code"`
	FullCode     string `json:"full_code"`
	StandardBody string `json:"standard_body"`
	LabCount     int    `json:"lab_count"`
}

// CleanupResult reports what the integrity pass repaired.
type CleanupResult struct {
	ConflictingEdgesDeleted int `json:"conflicting_edges_deleted"`
	DuplicateEdgesDeleted   int `json:"duplicate_edges_deleted"`
	EdgesReassigned         int `json:"edges_reassigned"`
	StandardsDeleted        int `json:"standards_deleted"`
}

// DuplicateEdge describes a (lab, test, standard) combination occurring
// more than once, found by the read-only validation pass.
type DuplicateEdge struct {
	LabName      string `json:"lab_name"`
	TestName     string `json:"test_name"`
	StandardCode string `json:"standard_code"`
	Count        int    `json:"count"`
}

// ValidationReport is the outcome of the read-only validation pass. All
// counts are expected to be zero after a complete pipeline run; nonzero
// values are reported as warnings, never as errors.
type ValidationReport struct {
	NullCodeStandards int             `json:"null_code_standards"`
	NullCodeEdges     int             `json:"null_code_edges"`
	DuplicateEdges    []DuplicateEdge `json:"duplicate_edges"`
}

// Clean reports whether every validation check passed.
func (r ValidationReport) Clean() bool {
	return r.NullCodeStandards == 0 && r.NullCodeEdges == 0 && len(r.DuplicateEdges) == 0
}

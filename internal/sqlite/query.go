package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// sampleLimit bounds the sample test and standard lists on a
// recommendation.
const sampleLimit = 5

// filterConditions builds the WHERE fragment shared by the search and
// recommend queries. Soft-deleted labs are excluded unconditionally; test
// and standard filters are case-insensitive substring matches, domain is
// an exact match.
func filterConditions(f types.Filter) (string, []any) {
	conds := []string{"l.deleted_at IS NULL"}
	var args []any
	if f.TestName != "" {
		conds = append(conds, "t.test_name LIKE ?")
		args = append(args, "%"+f.TestName+"%")
	}
	if f.Standard != "" {
		conds = append(conds, "st.standard_code LIKE ?")
		args = append(args, "%"+f.Standard+"%")
	}
	if f.Domain != "" {
		conds = append(conds, "d.domain_name = ?")
		args = append(args, f.Domain)
	}
	return strings.Join(conds, " AND "), args
}

func effectiveLimit(limit int) int {
	if limit <= 0 {
		return types.DefaultSearchLimit
	}
	return limit
}

// Search returns the distinct (lab, test, standard, domain) tuples
// matching the filter, ordered by lab name then test name. At least one
// filter is required; a missing filter is a client error, distinct from
// an empty result set.
func (s *Store) Search(ctx context.Context, f types.Filter) ([]types.SearchResult, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}
	if f.Empty() {
		return nil, types.ErrMissingFilter
	}

	where, args := filterConditions(f)
	query := fmt.Sprintf(
		`SELECT DISTINCT l.lab_id, l.lab_name, t.test_name,
		        st.standard_code, st.full_code, st.standard_body, d.domain_name
		 FROM labs l
		 JOIN lab_capabilities lc ON lc.lab_id = l.lab_id
		 JOIN tests t ON t.test_id = lc.test_id
		 JOIN standards st ON st.standard_id = lc.standard_id
		 JOIN domains d ON d.domain_id = lc.domain_id
		 WHERE %s
		 ORDER BY l.lab_name, t.test_name
		 LIMIT ?`, where)
	args = append(args, effectiveLimit(f.Limit))

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching capabilities: %w", err)
	}
	defer rows.Close()

	var results []types.SearchResult
	for rows.Next() {
		var (
			r          types.SearchResult
			code, body sql.NullString
		)
		if err := rows.Scan(&r.LabID, &r.LabName, &r.TestName, &code, &r.FullCode, &body, &r.DomainName); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		r.StandardCode = code.String
		r.StandardBody = body.String
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}
	return results, nil
}

// Recommend returns labs ranked by relevance against the filter:
// 10 points per distinct matching test, 5 per distinct matching standard,
// 1 per distinct matching domain, tie-broken by matching tests then
// matching standards. Only labs with at least one matching edge appear.
func (s *Store) Recommend(ctx context.Context, f types.Filter) ([]types.Recommendation, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}
	if f.Empty() {
		return nil, types.ErrMissingFilter
	}

	where, args := filterConditions(f)
	query := fmt.Sprintf(
		`WITH lab_scores AS (
		     SELECT l.lab_id, l.lab_name,
		            COUNT(DISTINCT lc.test_id) AS matching_tests,
		            COUNT(DISTINCT lc.standard_id) AS matching_standards,
		            COUNT(DISTINCT lc.domain_id) AS matching_domains,
		            COUNT(*) AS total_matches
		     FROM labs l
		     JOIN lab_capabilities lc ON lc.lab_id = l.lab_id
		     JOIN tests t ON t.test_id = lc.test_id
		     JOIN standards st ON st.standard_id = lc.standard_id
		     JOIN domains d ON d.domain_id = lc.domain_id
		     WHERE %s
		     GROUP BY l.lab_id, l.lab_name
		 )
		 SELECT lab_id, lab_name, matching_tests, matching_standards,
		        matching_domains, total_matches,
		        (matching_tests * 10 + matching_standards * 5 + matching_domains) AS relevance_score
		 FROM lab_scores
		 WHERE total_matches > 0
		 ORDER BY relevance_score DESC, matching_tests DESC, matching_standards DESC
		 LIMIT ?`, where)
	args = append(args, effectiveLimit(f.Limit))

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("scoring labs: %w", err)
	}
	defer rows.Close()

	var recs []types.Recommendation
	for rows.Next() {
		var r types.Recommendation
		if err := rows.Scan(&r.LabID, &r.LabName, &r.MatchingTests, &r.MatchingStandards,
			&r.MatchingDomains, &r.TotalMatches, &r.RelevanceScore); err != nil {
			return nil, fmt.Errorf("scanning recommendation: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recommendations: %w", err)
	}

	for i := range recs {
		if err := s.fillSamples(ctx, &recs[i], f); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// fillSamples attaches up to sampleLimit distinct matching test names and
// standard codes to a recommendation.
func (s *Store) fillSamples(ctx context.Context, rec *types.Recommendation, f types.Filter) error {
	where, args := filterConditions(f)

	tests, err := s.sampleColumn(ctx, fmt.Sprintf(
		`SELECT DISTINCT t.test_name
		 FROM labs l
		 JOIN lab_capabilities lc ON lc.lab_id = l.lab_id
		 JOIN tests t ON t.test_id = lc.test_id
		 JOIN standards st ON st.standard_id = lc.standard_id
		 JOIN domains d ON d.domain_id = lc.domain_id
		 WHERE %s AND l.lab_id = ?
		 ORDER BY t.test_name
		 LIMIT ?`, where), append(append([]any{}, args...), rec.LabID, sampleLimit))
	if err != nil {
		return fmt.Errorf("sampling tests for lab %s: %w", rec.LabID, err)
	}
	rec.SampleTests = tests

	standards, err := s.sampleColumn(ctx, fmt.Sprintf(
		`SELECT DISTINCT st.standard_code
		 FROM labs l
		 JOIN lab_capabilities lc ON lc.lab_id = l.lab_id
		 JOIN tests t ON t.test_id = lc.test_id
		 JOIN standards st ON st.standard_id = lc.standard_id
		 JOIN domains d ON d.domain_id = lc.domain_id
		 WHERE %s AND st.standard_code IS NOT NULL AND l.lab_id = ?
		 ORDER BY st.standard_code
		 LIMIT ?`, where), append(append([]any{}, args...), rec.LabID, sampleLimit))
	if err != nil {
		return fmt.Errorf("sampling standards for lab %s: %w", rec.LabID, err)
	}
	rec.SampleStandards = standards
	return nil
}

func (s *Store) sampleColumn(ctx context.Context, query string, args []any) ([]string, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// LabDetails returns one lab with its full capability list and per-domain
// summary. Returns ErrNotFound for unknown or soft-deleted labs.
func (s *Store) LabDetails(ctx context.Context, labID string) (*types.LabDetails, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}
	lab, err := s.Labs.Get(ctx, labID)
	if err != nil {
		return nil, err
	}
	details := &types.LabDetails{Lab: *lab}

	rows, err := s.q.QueryContext(ctx,
		`SELECT t.test_name, st.standard_code, st.full_code, st.standard_body, d.domain_name
		 FROM lab_capabilities lc
		 JOIN tests t ON t.test_id = lc.test_id
		 JOIN standards st ON st.standard_id = lc.standard_id
		 JOIN domains d ON d.domain_id = lc.domain_id
		 WHERE lc.lab_id = ?
		 ORDER BY d.domain_name, t.test_name`, labID)
	if err != nil {
		return nil, fmt.Errorf("listing capabilities for lab %s: %w", labID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c          types.CapabilityDetail
			code, body sql.NullString
		)
		if err := rows.Scan(&c.TestName, &code, &c.FullCode, &body, &c.DomainName); err != nil {
			return nil, fmt.Errorf("scanning capability: %w", err)
		}
		c.StandardCode = code.String
		c.StandardBody = body.String
		details.Capabilities = append(details.Capabilities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating capabilities: %w", err)
	}
	details.TotalCapabilities = len(details.Capabilities)

	sumRows, err := s.q.QueryContext(ctx,
		`SELECT d.domain_name, COUNT(*) AS n
		 FROM lab_capabilities lc
		 JOIN domains d ON d.domain_id = lc.domain_id
		 WHERE lc.lab_id = ?
		 GROUP BY d.domain_id, d.domain_name
		 ORDER BY n DESC`, labID)
	if err != nil {
		return nil, fmt.Errorf("summarizing domains for lab %s: %w", labID, err)
	}
	defer sumRows.Close()

	for sumRows.Next() {
		var dc types.DomainCount
		if err := sumRows.Scan(&dc.DomainName, &dc.CapabilityCount); err != nil {
			return nil, fmt.Errorf("scanning domain summary: %w", err)
		}
		details.DomainSummary = append(details.DomainSummary, dc)
	}
	if err := sumRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating domain summary: %w", err)
	}
	return details, nil
}

// ListDomains returns every domain with its capability and lab counts,
// busiest first.
func (s *Store) ListDomains(ctx context.Context) ([]types.DomainInfo, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}
	rows, err := s.q.QueryContext(ctx,
		`SELECT d.domain_id, d.domain_name,
		        COUNT(lc.domain_id) AS total_capabilities,
		        COUNT(DISTINCT lc.lab_id) AS lab_count
		 FROM domains d
		 LEFT JOIN lab_capabilities lc ON lc.domain_id = d.domain_id
		 GROUP BY d.domain_id, d.domain_name
		 ORDER BY total_capabilities DESC, d.domain_name`)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}
	defer rows.Close()

	var infos []types.DomainInfo
	for rows.Next() {
		var info types.DomainInfo
		if err := rows.Scan(&info.DomainID, &info.DomainName, &info.TotalCapabilities, &info.LabCount); err != nil {
			return nil, fmt.Errorf("scanning domain: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating domains: %w", err)
	}
	return infos, nil
}

// SearchTests returns the distinct tests whose name contains q, with the
// number of active labs performing each, most widely offered first.
func (s *Store) SearchTests(ctx context.Context, q string, limit int) ([]types.TestMatch, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}
	if strings.TrimSpace(q) == "" {
		return nil, types.ErrMissingFilter
	}
	rows, err := s.q.QueryContext(ctx,
		`SELECT t.test_id, t.test_name, COUNT(DISTINCT lc.lab_id) AS lab_count
		 FROM tests t
		 JOIN lab_capabilities lc ON lc.test_id = t.test_id
		 JOIN labs l ON l.lab_id = lc.lab_id
		 WHERE t.test_name LIKE ? AND l.deleted_at IS NULL
		 GROUP BY t.test_id, t.test_name
		 ORDER BY lab_count DESC, t.test_name
		 LIMIT ?`, "%"+q+"%", effectiveLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("searching tests: %w", err)
	}
	defer rows.Close()

	var matches []types.TestMatch
	for rows.Next() {
		var m types.TestMatch
		if err := rows.Scan(&m.TestID, &m.TestName, &m.LabCount); err != nil {
			return nil, fmt.Errorf("scanning test match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating test matches: %w", err)
	}
	return matches, nil
}

// SearchStandards returns the distinct standards whose code contains q,
// with the number of active labs covering each.
func (s *Store) SearchStandards(ctx context.Context, q string, limit int) ([]types.StandardMatch, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}
	if strings.TrimSpace(q) == "" {
		return nil, types.ErrMissingFilter
	}
	rows, err := s.q.QueryContext(ctx,
		`SELECT st.standard_id, st.standard_code, st.full_code, st.standard_body,
		        COUNT(DISTINCT lc.lab_id) AS lab_count
		 FROM standards st
		 JOIN lab_capabilities lc ON lc.standard_id = st.standard_id
		 JOIN labs l ON l.lab_id = lc.lab_id
		 WHERE st.standard_code LIKE ? AND l.deleted_at IS NULL
		 GROUP BY st.standard_id, st.standard_code, st.full_code, st.standard_body
		 ORDER BY lab_count DESC, st.standard_code
		 LIMIT ?`, "%"+q+"%", effectiveLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("searching standards: %w", err)
	}
	defer rows.Close()

	var matches []types.StandardMatch
	for rows.Next() {
		var (
			m          types.StandardMatch
			code, body sql.NullString
		)
		if err := rows.Scan(&m.StandardID, &code, &m.FullCode, &body, &m.LabCount); err != nil {
			return nil, fmt.Errorf("scanning standard match: %w", err)
		}
		m.StandardCode = code.String
		m.StandardBody = body.String
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating standard matches: %w", err)
	}
	return matches, nil
}

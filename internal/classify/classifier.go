// Package classify assigns testing domains to (test, standard) pairs.
//
// Classification is a deterministic cascade of tiers, each a pure function
// of the inputs and the static rule set:
//
//  1. curated standard-family lookup (confidence 0.85-0.9)
//  2. rule-file scoring over standard patterns and keywords (threshold 0.1)
//  3. broad keyword fallback gated on a standards-body prefix (0.5-0.7)
//  4. keyword-only last resort (0.4-0.5)
//  5. Unknown at confidence 0, only for empty input
//
// The cascade guarantees every non-empty pair gets some classification;
// the confidence tells downstream consumers how much to trust it.
package classify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// ruleScoreThreshold is the minimum accumulated rule score that tier 2
// accepts. Kept deliberately low so the fallback tiers see only pairs with
// no rule evidence at all.
const ruleScoreThreshold = 0.1

// defaultRuleConfidence applies when a rule file entry omits confidence.
const defaultRuleConfidence = 0.85

// standardBaseRe extracts the leading "body number" base of a standard
// string, e.g. "iec 60335" from "iec 60335-1:2010".
var standardBaseRe = regexp.MustCompile(`([a-z]+)\s*(\d+)`)

// Indicator patterns add a score bonus for terms that strongly signal a
// domain even when no rule matched.
var (
	safetyIndicatorRe        = regexp.MustCompile(`\b(creepage|clearance|marking|terminals|wiring|connections|leakage|earthing)\b`)
	electricalIndicatorRe    = regexp.MustCompile(`\b(voltage|current|resistance|insulation|dielectric|power)\b`)
	environmentalIndicatorRe = regexp.MustCompile(`\b(temperature|humidity|ip\d+|damp|heat|cold|water)\b`)
	mechanicalIndicatorRe    = regexp.MustCompile(`\b(dimension|thickness|diameter|length|mass|tensile|elongation)\b`)
)

// Classifier classifies (test, standard) pairs against an immutable rule
// set. Construct with New; the zero value is not usable.
type Classifier struct {
	rules types.RuleSet

	// keywordRe caches word-boundary matchers for every keyword known at
	// construction. Classify never mutates it.
	keywordRe map[string]*regexp.Regexp

	// mapKeys holds the curated standard map keys in sorted order so
	// substring scans are deterministic.
	mapKeys []string
}

// New creates a Classifier from the given rule set. The rule set is
// treated as immutable after construction.
func New(rules types.RuleSet) *Classifier {
	c := &Classifier{
		rules:     rules,
		keywordRe: make(map[string]*regexp.Regexp),
	}
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			c.cacheKeyword(kw)
		}
	}
	for _, kws := range domainKeywords {
		for _, kw := range kws {
			c.cacheKeyword(kw)
		}
	}
	c.mapKeys = make([]string, 0, len(standardDomainMap))
	for k := range standardDomainMap {
		c.mapKeys = append(c.mapKeys, k)
	}
	sort.Strings(c.mapKeys)
	return c
}

func (c *Classifier) cacheKeyword(kw string) {
	kw = strings.ToLower(strings.TrimSpace(kw))
	if kw == "" {
		return
	}
	if _, ok := c.keywordRe[kw]; !ok {
		c.keywordRe[kw] = wordPattern(kw)
	}
}

func wordPattern(kw string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
}

// wordMatch reports whether kw occurs as a whole word in text.
func (c *Classifier) wordMatch(text, kw string) bool {
	kw = strings.ToLower(strings.TrimSpace(kw))
	if kw == "" {
		return false
	}
	re, ok := c.keywordRe[kw]
	if !ok {
		re = wordPattern(kw)
	}
	return re.MatchString(text)
}

// Classify returns the domain and confidence for a (test, standard) pair.
// Only a fully empty input yields Unknown at confidence 0; everything else
// resolves to a domain through the cascade.
func (c *Classifier) Classify(testName, standard string) types.Classification {
	test := strings.ToLower(strings.TrimSpace(testName))
	std := strings.ToLower(strings.TrimSpace(standard))
	if test == "" || std == "" {
		return types.Classification{Domain: types.DomainUnknown, Confidence: 0}
	}
	combined := test + " " + std

	if cl, ok := c.classifyByStandard(std); ok {
		return cl
	}
	if cl, ok := c.scoreRules(std, combined); ok {
		return cl
	}
	if hasStandardBody(std) {
		return c.bodyFallback(std, combined)
	}
	return lastResort(combined)
}

// classifyByStandard is tier 1: exact standard-family lookup. A base match
// ("iec 60335" extracted from the front of the string) scores 0.9; a
// substring hit anywhere in the string scores 0.85.
func (c *Classifier) classifyByStandard(std string) (types.Classification, bool) {
	if m := standardBaseRe.FindStringSubmatch(std); m != nil {
		base := m[1] + " " + m[2]
		if domain, ok := standardDomainMap[base]; ok {
			return types.Classification{Domain: domain, Confidence: 0.9}, true
		}
	}
	for _, key := range c.mapKeys {
		if strings.Contains(std, key) {
			return types.Classification{Domain: standardDomainMap[key], Confidence: 0.85}, true
		}
	}
	return types.Classification{}, false
}

// scoreRules is tier 2: accumulate a score per rule-file domain from
// standard-pattern containment, rule keywords, and the extended built-in
// keyword list, multiply by the rule's confidence, add the indicator
// bonuses, and keep the best domain if it clears the threshold.
func (c *Classifier) scoreRules(std, combined string) (types.Classification, bool) {
	scores := make(map[string]float64)

	for domain, rule := range c.rules {
		score := 0.0
		conf := rule.Confidence
		if conf == 0 {
			conf = defaultRuleConfidence
		}

		for _, pattern := range rule.Standards {
			p := strings.ToLower(strings.TrimSpace(pattern))
			if p == "" {
				continue
			}
			if strings.Contains(std, p) || strings.Contains(p, std) {
				score += 0.6
				break
			}
			if m := standardBaseRe.FindStringSubmatch(p); m != nil {
				if strings.Contains(std, m[1]+" "+m[2]) {
					score += 0.5
					break
				}
			}
		}

		for _, kw := range rule.Keywords {
			if c.wordMatch(combined, kw) {
				score += 0.3
				break
			}
		}

		for _, kw := range domainKeywords[domain] {
			if c.wordMatch(combined, kw) {
				score += 0.25
				break
			}
		}

		if score > 0 {
			scores[domain] = score * conf
		}
	}

	if safetyIndicatorRe.MatchString(combined) {
		scores[types.DomainSafety] += 0.4
	}
	if electricalIndicatorRe.MatchString(combined) {
		scores[types.DomainElectrical] += 0.3
	}
	if environmentalIndicatorRe.MatchString(combined) {
		scores[types.DomainEnvironmental] += 0.3
	}
	if mechanicalIndicatorRe.MatchString(combined) {
		scores[types.DomainMechanical] += 0.3
	}

	best, bestScore := "", 0.0
	for domain, score := range scores {
		if score > bestScore || (score == bestScore && (best == "" || domain < best)) {
			best, bestScore = domain, score
		}
	}
	if best != "" && bestScore >= ruleScoreThreshold {
		return types.Classification{Domain: best, Confidence: min(bestScore, 1.0)}, true
	}
	return types.Classification{}, false
}

// hasStandardBody reports whether the standard string carries a
// recognizable standards-body token.
func hasStandardBody(std string) bool {
	for _, body := range standardBodies {
		if strings.Contains(std, body) {
			return true
		}
	}
	return false
}

// bodyFallback is tier 3: the standard carries a body prefix but no rule
// matched. A broad keyword pass classifies at 0.7; failing that, common
// numbering families default to Safety or Electrical at 0.6, and
// everything else to Safety at 0.5, historically the most common category.
func (c *Classifier) bodyFallback(std, combined string) types.Classification {
	for _, group := range fallbackGroups {
		for _, kw := range group.keywords {
			if strings.Contains(combined, kw) {
				return types.Classification{Domain: group.domain, Confidence: 0.7}
			}
		}
	}

	if strings.Contains(std, "iec 6") || strings.Contains(std, "is 1") || strings.Contains(std, "is 6") {
		return types.Classification{Domain: types.DomainSafety, Confidence: 0.6}
	}
	head := std
	if len(head) > 10 {
		head = head[:10]
	}
	if strings.Contains(head, "iec 6") || strings.Contains(head, "is 3") {
		return types.Classification{Domain: types.DomainElectrical, Confidence: 0.6}
	}
	return types.Classification{Domain: types.DomainSafety, Confidence: 0.5}
}

// lastResort is tier 4: no recognizable standards body. A smaller keyword
// pass classifies at 0.5; with both inputs non-empty but no keyword hit,
// Safety at 0.4 is the final answer.
func lastResort(combined string) types.Classification {
	for _, group := range lastResortGroups {
		for _, kw := range group.keywords {
			if strings.Contains(combined, kw) {
				return types.Classification{Domain: group.domain, Confidence: 0.5}
			}
		}
	}
	return types.Classification{Domain: types.DomainSafety, Confidence: 0.4}
}

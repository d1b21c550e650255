package types

// Rule defines the classification evidence for one domain: standard
// patterns matched against the standard string, keywords matched against
// the combined test and standard text, and the confidence multiplier
// applied to the accumulated score.
type Rule struct {
	Standards  []string `yaml:"standards"`
	Keywords   []string `yaml:"keywords"`
	Confidence float64  `yaml:"confidence"`
}

// RuleSet maps domain name to its classification rule. It is loaded once
// at classifier construction and treated as immutable afterwards.
type RuleSet map[string]Rule

// Classification is the outcome of classifying a (test, standard) pair.
// Confidence is in [0, 1]; Unknown with confidence 0 occurs only when
// either input is empty.
type Classification struct {
	Domain     string  `json:"domain"`
	Confidence float64 `json:"confidence"`
}

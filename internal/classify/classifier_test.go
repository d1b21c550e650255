package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

func TestClassifyCuratedStandards(t *testing.T) {
	c := New(DefaultRules())

	tests := []struct {
		name       string
		test       string
		standard   string
		domain     string
		confidence float64
	}{
		{
			name:       "environmental family by base match",
			test:       "Damp heat (steady state)",
			standard:   "IEC 60068-2-78",
			domain:     types.DomainEnvironmental,
			confidence: 0.9,
		},
		{
			name:       "household appliance safety",
			test:       "Stability and mechanical hazards",
			standard:   "IEC 60335-1",
			domain:     types.DomainSafety,
			confidence: 0.9,
		},
		{
			name:       "EMC by CISPR substring",
			test:       "Conducted emission",
			standard:   "CISPR 14-1",
			domain:     types.DomainEMC,
			confidence: 0.85,
		},
		{
			name:       "ingress protection",
			test:       "IP rating verification",
			standard:   "IEC 60529",
			domain:     types.DomainEnvironmental,
			confidence: 0.9,
		},
		{
			name:       "substring hit behind leading text",
			test:       "Enclosure protection",
			standard:   "Amendment 1 IEC 60529",
			domain:     types.DomainEnvironmental,
			confidence: 0.85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := c.Classify(tt.test, tt.standard)
			assert.Equal(t, tt.domain, cl.Domain)
			assert.InDelta(t, tt.confidence, cl.Confidence, 0.001)
		})
	}
}

func TestClassifyRuleScoring(t *testing.T) {
	c := New(DefaultRules())

	t.Run("rule standards and keywords combine", func(t *testing.T) {
		cl := c.Classify("Tensile strength", "ISO 6892-1")
		assert.Equal(t, types.DomainMechanical, cl.Domain)
		assert.Greater(t, cl.Confidence, 0.5)
		assert.LessOrEqual(t, cl.Confidence, 1.0)
	})

	t.Run("custom rule set wins for its domain", func(t *testing.T) {
		rules := types.RuleSet{
			"Acoustics": {
				Standards:  []string{"ISO 3744"},
				Keywords:   []string{"sound pressure", "noise"},
				Confidence: 0.9,
			},
		}
		cl := New(rules).Classify("Noise measurement", "ISO 3744:2010")
		assert.Equal(t, "Acoustics", cl.Domain)
		assert.Greater(t, cl.Confidence, 0.1)
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		first := c.Classify("Surge immunity", "IEC 61000-4-5")
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, c.Classify("Surge immunity", "IEC 61000-4-5"))
		}
	})
}

func TestClassifyFallbacks(t *testing.T) {
	// An empty rule set exposes the fallback tiers directly.
	c := New(types.RuleSet{})

	t.Run("body prefix with broad keyword", func(t *testing.T) {
		cl := c.Classify("Flame retardance", "EN 50575")
		assert.Equal(t, types.DomainSafety, cl.Domain)
		assert.InDelta(t, 0.7, cl.Confidence, 0.001)
	})

	t.Run("IEC 6xxxx numbering defaults to safety", func(t *testing.T) {
		cl := c.Classify("Routine check", "IEC 60999")
		assert.Equal(t, types.DomainSafety, cl.Domain)
		assert.InDelta(t, 0.6, cl.Confidence, 0.001)
	})

	t.Run("body prefix with no signal at all", func(t *testing.T) {
		cl := c.Classify("Panel gauging", "BS 9999")
		assert.Equal(t, types.DomainSafety, cl.Domain)
		assert.InDelta(t, 0.5, cl.Confidence, 0.001)
	})

	t.Run("indicator bonus fires before the fallbacks", func(t *testing.T) {
		// "tensile" is an indicator term, so scoring resolves this even
		// with no rules loaded and the keyword tiers never run.
		cl := c.Classify("Tensile check", "in-house method 7")
		assert.Equal(t, types.DomainMechanical, cl.Domain)
		assert.InDelta(t, 0.3, cl.Confidence, 0.001)
	})

	t.Run("no body, keyword hit", func(t *testing.T) {
		cl := c.Classify("Mechanical robustness check", "in-house method 7")
		assert.Equal(t, types.DomainMechanical, cl.Domain)
		assert.InDelta(t, 0.5, cl.Confidence, 0.001)
	})

	t.Run("no body, no keyword", func(t *testing.T) {
		cl := c.Classify("General review", "method 42")
		assert.Equal(t, types.DomainSafety, cl.Domain)
		assert.InDelta(t, 0.4, cl.Confidence, 0.001)
	})
}

func TestClassifyEmptyInput(t *testing.T) {
	c := New(DefaultRules())

	for _, tt := range []struct{ test, standard string }{
		{"", ""},
		{"Leakage current", ""},
		{"", "IEC 60335-1"},
		{"   ", "   "},
	} {
		cl := c.Classify(tt.test, tt.standard)
		assert.Equal(t, types.DomainUnknown, cl.Domain)
		assert.Zero(t, cl.Confidence)
	}
}

// Every non-empty pair must resolve to a real domain with a confidence in
// (0, 1]; Unknown is reserved for empty input.
func TestClassifyTotality(t *testing.T) {
	c := New(DefaultRules())

	testNames := []string{
		"Dielectric strength", "Damp heat", "Radiated emission",
		"Tensile strength", "Visual inspection", "zzz unheard of zzz",
	}
	standards := []string{
		"IEC 60335-1", "IEC 61000-4-2", "ISO 6892", "IS 694",
		"company procedure 9", "???",
	}

	for _, name := range testNames {
		for _, std := range standards {
			cl := c.Classify(name, std)
			require.NotEmpty(t, cl.Domain, "pair (%q, %q)", name, std)
			require.NotEqual(t, types.DomainUnknown, cl.Domain, "pair (%q, %q)", name, std)
			require.Greater(t, cl.Confidence, 0.0, "pair (%q, %q)", name, std)
			require.LessOrEqual(t, cl.Confidence, 1.0, "pair (%q, %q)", name, std)
		}
	}
}

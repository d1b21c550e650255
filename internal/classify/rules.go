package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// LoadRules reads a YAML rule file mapping domain name to its
// classification rule. An empty path or a missing file yields the built-in
// default rules so the classifier always starts; a malformed file is an
// error.
func LoadRules(path string) (types.RuleSet, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRules(), nil
		}
		return nil, fmt.Errorf("reading rule file: %w", err)
	}

	var rules types.RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rule file %s: %w", path, err)
	}
	return rules, nil
}

// DefaultRules returns the built-in rule set. Rule-file entries for the
// same domains override these wholesale when a rule file is supplied.
func DefaultRules() types.RuleSet {
	return types.RuleSet{
		types.DomainSafety: {
			Standards:  []string{"IEC 60335", "IEC 62368", "IEC 60601", "IEC 60598", "IEC 60950", "IS 13252", "IS 616"},
			Keywords:   []string{"safety", "leakage current", "earthing", "fire hazard", "glow wire", "creepage"},
			Confidence: 0.9,
		},
		types.DomainElectrical: {
			Standards:  []string{"IEC 60947", "IEC 62271", "IS 302"},
			Keywords:   []string{"voltage", "current", "insulation resistance", "dielectric", "power input"},
			Confidence: 0.85,
		},
		types.DomainEMC: {
			Standards:  []string{"IEC 61000", "CISPR 11", "CISPR 14", "CISPR 32", "IS 14700"},
			Keywords:   []string{"emc", "emission", "immunity", "esd", "surge", "radiated", "conducted"},
			Confidence: 0.9,
		},
		types.DomainEnvironmental: {
			Standards:  []string{"IEC 60068", "IEC 60529"},
			Keywords:   []string{"damp heat", "dry heat", "salt mist", "ip rating", "ingress protection", "humidity"},
			Confidence: 0.85,
		},
		types.DomainMechanical: {
			Standards:  []string{"ISO 6892"},
			Keywords:   []string{"tensile", "elongation", "compression", "bend test", "endurance", "dimension"},
			Confidence: 0.8,
		},
		types.DomainThermal: {
			Keywords:   []string{"temperature rise", "thermal ageing", "thermal cycling", "heat resistance"},
			Confidence: 0.8,
		},
		types.DomainHighVoltage: {
			Standards:  []string{"IEC 60060", "IEC 60137"},
			Keywords:   []string{"impulse", "lightning", "partial discharge", "power frequency withstand"},
			Confidence: 0.85,
		},
		types.DomainChemical: {
			Standards:  []string{"IEC 62321"},
			Keywords:   []string{"rohs", "cadmium", "hexavalent", "phthalate", "halogen content"},
			Confidence: 0.85,
		},
	}
}

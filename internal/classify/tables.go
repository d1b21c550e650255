package classify

import "github.com/mesh-intelligence/labgraph/pkg/types"

// standardDomainMap is the curated standard-family to domain table, keyed
// by the lower-cased "body number" base of the standard string. It is the
// highest-confidence tier of the cascade.
var standardDomainMap = map[string]string{
	// Safety
	"iec 60335": types.DomainSafety, // household appliances
	"iec 62368": types.DomainSafety, // audio/video equipment
	"iec 60601": types.DomainSafety, // medical equipment
	"iec 60598": types.DomainSafety, // luminaires
	"iec 60950": types.DomainSafety, // IT equipment
	"iec 60065": types.DomainSafety, // audio/video equipment
	"iec 61010": types.DomainSafety, // measurement equipment
	"iec 62133": types.DomainSafety, // batteries
	"iec 61215": types.DomainSafety, // PV modules
	"iec 62040": types.DomainSafety, // UPS
	"iec 62109": types.DomainSafety, // power converters
	"iso 80601": types.DomainSafety, // medical equipment
	"iso 8124":  types.DomainSafety, // toys
	"is 13252":  types.DomainSafety, // IT equipment
	"is 10322":  types.DomainSafety, // luminaires
	"is 616":    types.DomainSafety, // household appliances
	"is 9873":   types.DomainSafety, // audio/video equipment
	"is 16444":  types.DomainSafety, // medical equipment
	"is 7098":   types.DomainSafety, // measurement equipment
	"is 16102":  types.DomainSafety, // batteries
	"is 13450":  types.DomainSafety, // UPS
	"is 16046":  types.DomainSafety, // power converters
	"is 15298":  types.DomainSafety, // PV modules
	"is 8811":   types.DomainSafety, // household appliances
	"is 1554":   types.DomainSafety, // cables
	"is 15885":  types.DomainSafety, // medical equipment
	"is 302":    types.DomainSafety, // electrical safety

	// Electrical
	"iec 60947": types.DomainElectrical, // low-voltage switchgear
	"iec 62271": types.DomainElectrical, // high-voltage switchgear

	// EMC
	"iec 61000": types.DomainEMC,
	"cispr":     types.DomainEMC,
	"is 14700":  types.DomainEMC,

	// High voltage
	"iec 60060": types.DomainHighVoltage,
	"iec 60137": types.DomainHighVoltage, // bushings
	"iec 60168": types.DomainHighVoltage, // outdoor bushings

	// Chemical
	"iec 62321": types.DomainChemical, // RoHS

	// Environmental
	"iec 60068": types.DomainEnvironmental, // environmental testing
	"iec 60529": types.DomainEnvironmental, // IP protection
}

// domainKeywords is the extended per-domain keyword list consulted by the
// rule-scoring tier in addition to the rule file's own keywords.
var domainKeywords = map[string][]string{
	types.DomainSafety: {
		"safety", "leakage", "earthing", "fire", "flame", "glow", "wire",
		"touch", "creepage", "clearance", "marking", "terminals", "wiring",
		"connections", "parts", "supply",
	},
	types.DomainElectrical: {
		"voltage", "current", "resistance", "insulation", "dielectric",
		"power", "electric", "electrical", "conductor", "cable", "wire",
	},
	types.DomainEMC: {
		"emc", "emi", "emission", "immunity", "esd", "surge", "conducted",
		"radiated", "electromagnetic", "disturbance",
	},
	types.DomainEnvironmental: {
		"temperature", "humidity", "salt", "spray", "ip", "protection",
		"damp", "heat", "cold", "water", "moisture", "environmental",
	},
	types.DomainHighVoltage: {
		"high voltage", "hv", "impulse", "lightning", "partial discharge",
		"pd test", "breakdown", "withstand",
	},
	types.DomainMechanical: {
		"mechanical", "endurance", "operation", "tensile", "compression",
		"bend", "flexibility", "elongation", "dimension", "thickness",
		"diameter", "length", "mass",
	},
	types.DomainThermal: {
		"thermal", "temperature", "heat", "cold", "rise", "ageing",
		"aging", "cycle",
	},
	types.DomainChemical: {
		"rohs", "cadmium", "lead", "mercury", "hazardous", "chemical",
		"halogen", "content",
	},
}

// standardBodies are the recognizable standards-body prefixes. Their
// presence in the standard string gates the broad-keyword fallback tier.
var standardBodies = []string{
	"iec", "is ", "iso", "en ", "bs ", "ansi", "astm", "ul", "csa",
}

// fallbackGroups drive the broad keyword fallback tiers. Evaluated in
// order; the first group with a keyword contained in the combined text
// wins.
var fallbackGroups = []struct {
	domain   string
	keywords []string
}{
	{types.DomainSafety, []string{"safety", "leakage", "earthing", "fire", "flame", "glow", "touch", "creepage", "clearance"}},
	{types.DomainElectrical, []string{"voltage", "current", "power", "electrical", "insulation", "dielectric", "resistance"}},
	{types.DomainEMC, []string{"emc", "emi", "emission", "immunity", "esd", "conducted", "radiated"}},
	{types.DomainEnvironmental, []string{"temperature", "humidity", "ip", "damp", "heat", "cold", "water", "moisture", "environmental"}},
	{types.DomainMechanical, []string{"mechanical", "tensile", "elongation", "compression", "bend", "flexibility", "dimension", "thickness"}},
	{types.DomainThermal, []string{"thermal", "heat", "ageing", "aging", "rise"}},
	{types.DomainHighVoltage, []string{"high voltage", "hv", "impulse", "lightning", "partial discharge"}},
	{types.DomainChemical, []string{"rohs", "cadmium", "lead", "mercury", "chemical", "halogen"}},
}

// lastResortGroups is the smaller keyword pass used when the standard
// string carries no recognizable standards-body prefix.
var lastResortGroups = []struct {
	domain   string
	keywords []string
}{
	{types.DomainSafety, []string{"safety", "leakage", "earthing", "fire", "flame"}},
	{types.DomainElectrical, []string{"voltage", "current", "power", "electrical"}},
	{types.DomainEMC, []string{"emc", "emi", "emission"}},
	{types.DomainEnvironmental, []string{"temperature", "humidity", "environmental"}},
	{types.DomainMechanical, []string{"mechanical", "tensile", "elongation"}},
}

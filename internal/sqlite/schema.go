package sqlite

// Schema DDL. Natural keys (lab_name, test_name, domain_name, full_code)
// are unique with NOCASE collation; the store's find-or-create resolution
// and the cleanup pass both lean on these constraints. lab_capabilities is
// keyed on (lab_id, test_id, standard_id) only — domain_id is an edge
// attribute, not part of the identity.
const (
	createLabs = `CREATE TABLE IF NOT EXISTS labs (
    lab_id TEXT PRIMARY KEY,
    lab_name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    deleted_at TEXT
);`

	createTests = `CREATE TABLE IF NOT EXISTS tests (
    test_id TEXT PRIMARY KEY,
    test_name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    family_id TEXT
);`

	createStandards = `CREATE TABLE IF NOT EXISTS standards (
    standard_id TEXT PRIMARY KEY,
    standard_body TEXT,
    standard_code TEXT,
    year TEXT,
    full_code TEXT NOT NULL UNIQUE COLLATE NOCASE
);`

	createDomains = `CREATE TABLE IF NOT EXISTS domains (
    domain_id TEXT PRIMARY KEY,
    domain_name TEXT NOT NULL UNIQUE COLLATE NOCASE
);`

	createCapabilities = `CREATE TABLE IF NOT EXISTS lab_capabilities (
    lab_id TEXT NOT NULL,
    domain_id TEXT NOT NULL,
    discipline_id TEXT,
    family_id TEXT,
    test_id TEXT NOT NULL,
    standard_id TEXT NOT NULL,
    UNIQUE (lab_id, test_id, standard_id),
    FOREIGN KEY (lab_id) REFERENCES labs(lab_id),
    FOREIGN KEY (domain_id) REFERENCES domains(domain_id),
    FOREIGN KEY (test_id) REFERENCES tests(test_id),
    FOREIGN KEY (standard_id) REFERENCES standards(standard_id)
);`

	createCapabilityIndexes = `CREATE INDEX IF NOT EXISTS idx_capabilities_test ON lab_capabilities(test_id);
CREATE INDEX IF NOT EXISTS idx_capabilities_standard ON lab_capabilities(standard_id);
CREATE INDEX IF NOT EXISTS idx_capabilities_domain ON lab_capabilities(domain_id);`
)

// schemaDDL lists the statements executed at open, in dependency order.
var schemaDDL = []string{
	createLabs,
	createTests,
	createStandards,
	createDomains,
	createCapabilities,
	createCapabilityIndexes,
}

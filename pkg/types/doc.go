// Package types defines the entity types, configuration, query contracts,
// and standard errors shared by the labgraph ingestion pipeline and its
// query surface.
//
// The capability graph is a set of (lab, test, standard, domain) facts.
// Labs, tests, standards, and domains are surrogate-keyed entities created
// lazily during ingestion; capabilities are the edges joining them.
package types

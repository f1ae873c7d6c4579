// Package ssn provides vocabulary terms for the W3C/OGC SOSA, SSN and SSN-EXT
// observation ontologies.
//
// The package holds only data: namespace IRIs, class and property IRIs, the
// prefix table used by Turtle output, and the JSON-LD context used to compact
// exported documents.
//
// # Semstreams Integration
//
// Relationship and literal predicates are registered with the semstreams
// vocabulary registry in init(), using three-level dotted names mapped to the
// standard IRIs:
//
//	sosa.platform.hosts        → http://www.w3.org/ns/sosa/hosts
//	sosa.observation.result    → http://www.w3.org/ns/sosa/hasSimpleResult
//	ssn.collection.has_member  → http://www.w3.org/ns/ssn/ext/hasMember
//
// Import the package to register predicates:
//
//	import _ "github.com/c360studio/sosagraph/vocabulary/ssn"
//
// # JSON-LD
//
// Context returns a fresh copy of the compaction context. Terms whose values are
// node references carry "@type": "@id"; temporal terms carry an xsd datatype.
package ssn

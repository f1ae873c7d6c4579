package ssn

import "github.com/c360studio/semstreams/vocabulary"

// Namespace IRIs.
const (
	RDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS    = "http://www.w3.org/2000/01/rdf-schema#"
	OWL     = "http://www.w3.org/2002/07/owl#"
	XSD     = "http://www.w3.org/2001/XMLSchema#"
	SOSA    = "http://www.w3.org/ns/sosa/"
	SSN     = "http://www.w3.org/ns/ssn/"
	SSNExt  = "http://www.w3.org/ns/ssn/ext/"
	Time    = "http://www.w3.org/2006/time#"
	QUDT    = "http://qudt.org/1.1/schema/qudt#"
	PROV    = "http://www.w3.org/ns/prov#"
	DCTerms = "http://purl.org/dc/terms/"
	GSP     = "http://www.opengis.net/ont/geosparql#"

	// Sampling is the SOSA sampling extension namespace.
	Sampling = "http://www.w3.org/ns/sosa/sampling/"

	// Examples is the namespace used by the SSN-EXT specification examples.
	Examples = "http://example.org/ssn-ext-examples#"
)

// Core RDF/RDFS properties.
const (
	RDFType = RDF + "type"

	RDFSLabel   = vocabulary.RdfsLabel
	RDFSComment = vocabulary.RdfsComment
)

// XSD datatypes used for literal values.
const (
	XSDString   = XSD + "string"
	XSDBoolean  = XSD + "boolean"
	XSDInteger  = XSD + "integer"
	XSDDouble   = XSD + "double"
	XSDDecimal  = XSD + "decimal"
	XSDDate     = XSD + "date"
	XSDDateTime = XSD + "dateTime"
	XSDDuration = XSD + "duration"
)

// Class IRIs.
const (
	// ClassPlatform hosts sensors, actuators and samplers.
	ClassPlatform = SOSA + "Platform"

	// ClassSensor is a device or agent that responds to a stimulus.
	ClassSensor = SOSA + "Sensor"

	// ClassActuator is a device used by an actuation to change the world.
	ClassActuator = SOSA + "Actuator"

	// ClassSampler is a device used by a sampling to produce a sample.
	ClassSampler = SOSA + "Sampler"

	ClassProcedure          = SOSA + "Procedure"
	ClassObservation        = SOSA + "Observation"
	ClassObservableProperty = SOSA + "ObservableProperty"
	ClassActuableProperty   = SOSA + "ActuableProperty"
	ClassFeatureOfInterest  = SOSA + "FeatureOfInterest"
	ClassSampling           = SOSA + "Sampling"
	ClassActuation          = SOSA + "Actuation"
	ClassSample             = SOSA + "Sample"

	// ClassObservationCollection groups observations sharing common properties.
	ClassObservationCollection = SSNExt + "ObservationCollection"
)

// Property IRIs.
const (
	PropHosts      = SOSA + "hosts"
	PropIsHostedBy = SOSA + "isHostedBy"

	PropObserves         = vocabulary.SosaObserves
	PropObservedProperty = SOSA + "observedProperty"
	PropMadeBySensor     = SOSA + "madeBySensor"
	PropMadeObservation  = SOSA + "madeObservation"
	PropResultTime       = SOSA + "resultTime"
	PropPhenomenonTime   = SOSA + "phenomenonTime"
	PropHasSimpleResult  = vocabulary.SosaHasSimpleResult
	PropHasResult        = SOSA + "hasResult"
	PropUsedProcedure    = SOSA + "usedProcedure"

	PropHasFeatureOfInterest  = SOSA + "hasFeatureOfInterest"
	PropIsFeatureOfInterestOf = SOSA + "isFeatureOfInterestOf"
	PropIsSampleOf            = SOSA + "isSampleOf"

	PropMadeSampling   = SOSA + "madeSampling"
	PropMadeBySampler  = SOSA + "madeBySampler"
	PropMadeActuation  = SOSA + "madeActuation"
	PropMadeByActuator = SOSA + "madeByActuator"
	PropActsOnProperty = SOSA + "actsOnProperty"

	// PropImplements links a system to the procedure it implements.
	PropImplements = SSN + "implements"

	PropHasMember                    = SSNExt + "hasMember"
	PropIsMemberOf                   = SSNExt + "isMemberOf"
	PropHasUltimateFeatureOfInterest = SSNExt + "hasUltimateFeatureOfInterest"
)

// Prefixes maps Turtle prefix names to namespace IRIs.
func Prefixes() map[string]string {
	return map[string]string{
		"rdf":     RDF,
		"rdfs":    RDFS,
		"owl":     OWL,
		"xsd":     XSD,
		"sosa":    SOSA,
		"ssn":     SSN,
		"ssn-ext": SSNExt,
		"time":    Time,
		"qudt":    QUDT,
		"prov":    PROV,
		"dcterms": DCTerms,
	}
}

var classes = map[string]bool{
	ClassPlatform:              true,
	ClassSensor:                true,
	ClassActuator:              true,
	ClassSampler:               true,
	ClassProcedure:             true,
	ClassObservation:           true,
	ClassObservableProperty:    true,
	ClassActuableProperty:      true,
	ClassFeatureOfInterest:     true,
	ClassSampling:              true,
	ClassActuation:             true,
	ClassSample:                true,
	ClassObservationCollection: true,
}

// IsClass reports whether iri is one of the SOSA/SSN classes above.
func IsClass(iri string) bool {
	return classes[iri]
}

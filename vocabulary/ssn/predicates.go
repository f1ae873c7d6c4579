package ssn

import "github.com/c360studio/semstreams/vocabulary"

// Hosting predicates.
const (
	// PlatformHosts links a platform to a hosted sensor, actuator or sampler.
	// Domain: platform entity, Range: sensor/actuator/sampler entity
	PlatformHosts = "sosa.platform.hosts"

	// PlatformHostedBy is the inverse of PlatformHosts.
	PlatformHostedBy = "sosa.platform.hosted_by"
)

// Sensor and observation predicates.
const (
	// SensorObserves links a sensor to an observable property.
	SensorObserves = "sosa.sensor.observes"

	// ObservationMadeBySensor links an observation to the sensor that made it.
	ObservationMadeBySensor = "sosa.observation.made_by_sensor"

	// ObservationResultTime is the instant the result became available (xsd:dateTime).
	ObservationResultTime = "sosa.observation.result_time"

	// ObservationResult is the simple literal result of an observation.
	ObservationResult = "sosa.observation.result"

	// ObservationFeature links an observation to its feature of interest.
	ObservationFeature = "sosa.observation.feature_of_interest"

	// ObservationProperty links an observation to the observed property.
	ObservationProperty = "sosa.observation.observed_property"

	// ObservationProcedure links an observation to the procedure used.
	ObservationProcedure = "sosa.observation.used_procedure"
)

// Collection predicates.
const (
	// CollectionHasMember links an observation collection to a member observation.
	CollectionHasMember = "ssn.collection.has_member"

	// CollectionUltimateFeature links a collection to its ultimate feature of interest.
	CollectionUltimateFeature = "ssn.collection.ultimate_feature_of_interest"
)

// Sampling and actuation predicates.
const (
	SamplerMadeSampling     = "sosa.sampler.made_sampling"
	SamplingMadeBySampler   = "sosa.sampling.made_by_sampler"
	ActuatorMadeActuation   = "sosa.actuator.made_actuation"
	ActuationMadeByActuator = "sosa.actuation.made_by_actuator"
	ActuatorActsOnProperty  = "sosa.actuator.acts_on_property"

	// SystemImplements links a sensor, actuator or sampler to a procedure.
	SystemImplements = "ssn.system.implements"
)

// Descriptive predicates.
const (
	NodeLabel   = "sosa.node.label"
	NodeComment = "sosa.node.comment"
	NodeType    = "sosa.node.type"
)

// registration pairs a dotted predicate with its standard IRI and metadata.
type registration struct {
	name     string
	iri      string
	dataType string
	desc     string
}

var registrations = []registration{
	{PlatformHosts, PropHosts, "entity_id", "Links a platform to a hosted sensor, actuator or sampler"},
	{PlatformHostedBy, PropIsHostedBy, "entity_id", "Links a hosted system back to its platform"},
	{SensorObserves, PropObserves, "entity_id", "Links a sensor to the property it observes"},
	{ObservationMadeBySensor, PropMadeBySensor, "entity_id", "Sensor that made the observation"},
	{ObservationResultTime, PropResultTime, "datetime", "Instant the observation result became available"},
	{ObservationResult, PropHasSimpleResult, "any", "Simple literal result of an observation"},
	{ObservationFeature, PropHasFeatureOfInterest, "entity_id", "Feature of interest of an observation"},
	{ObservationProperty, PropObservedProperty, "entity_id", "Property observed by an observation"},
	{ObservationProcedure, PropUsedProcedure, "entity_id", "Procedure used by an observation"},
	{CollectionHasMember, PropHasMember, "entity_id", "Member observation of a collection"},
	{CollectionUltimateFeature, PropHasUltimateFeatureOfInterest, "entity_id", "Ultimate feature of interest shared by a collection"},
	{SamplerMadeSampling, PropMadeSampling, "entity_id", "Sampling made by a sampler"},
	{SamplingMadeBySampler, PropMadeBySampler, "entity_id", "Sampler that made a sampling"},
	{ActuatorMadeActuation, PropMadeActuation, "entity_id", "Actuation made by an actuator"},
	{ActuationMadeByActuator, PropMadeByActuator, "entity_id", "Actuator that made an actuation"},
	{ActuatorActsOnProperty, PropActsOnProperty, "entity_id", "Actuable property an actuator acts on"},
	{SystemImplements, PropImplements, "entity_id", "Procedure implemented by a system"},
	{NodeLabel, RDFSLabel, "string", "Human-readable label"},
	{NodeComment, RDFSComment, "string", "Free-text comment"},
	{NodeType, RDFType, "entity_id", "Ontology class of the node"},
}

// predicateByIRI is the reverse of the registrations table.
var predicateByIRI = func() map[string]string {
	m := make(map[string]string, len(registrations))
	for _, r := range registrations {
		m[r.iri] = r.name
	}
	return m
}()

// PredicateForIRI returns the dotted predicate registered for a property IRI.
func PredicateForIRI(iri string) (string, bool) {
	name, ok := predicateByIRI[iri]
	return name, ok
}

// PredicateIRI returns the standard IRI for a dotted predicate, or the input
// unchanged when the predicate is not registered.
func PredicateIRI(predicate string) string {
	if meta := vocabulary.GetPredicateMetadata(predicate); meta != nil && meta.StandardIRI != "" {
		return meta.StandardIRI
	}
	return predicate
}

func init() {
	for _, r := range registrations {
		vocabulary.Register(r.name,
			vocabulary.WithDescription(r.desc),
			vocabulary.WithDataType(r.dataType),
			vocabulary.WithIRI(r.iri))
	}
}

package ssn

// idTerm returns a term definition whose values are node references.
func idTerm(iri string) map[string]any {
	return map[string]any{"@id": iri, "@type": "@id"}
}

// typedTerm returns a term definition whose values carry a fixed datatype.
func typedTerm(iri, datatype string) map[string]any {
	return map[string]any{"@id": iri, "@type": datatype}
}

// Context returns the JSON-LD context used to compact exported graphs.
// It combines the SOSA, SSN-EXT, OWL-Time and QUDT community contexts with the
// terms produced by this module. A new map is built on every call so callers
// may extend it.
func Context() map[string]any {
	return map[string]any{
		"rdf":              RDF,
		"owl":              OWL,
		"ssn-ext-examples": Examples,
		"xsd":              XSD,
		"dcterms":          DCTerms,
		"rdfs":             RDFS,
		"time":             Time,
		"ssn":              SSN,
		"ssn-ext":          SSNExt,
		"sosa":             SOSA,
		"qudt":             QUDT,
		"prov":             PROV,
		"gsp":              GSP,
		"sampling":         Sampling,

		"hasUltimateFeatureOfInterest": idTerm(PropHasUltimateFeatureOfInterest),
		"usedProcedure":                idTerm(PropUsedProcedure),
		"phenomenonTime":               idTerm(PropPhenomenonTime),
		"observedProperty":             idTerm(PropObservedProperty),
		"madeBySensor":                 idTerm(PropMadeBySensor),
		"hasFeatureOfInterest":         idTerm(PropHasFeatureOfInterest),
		"hasMember":                    idTerm(PropHasMember),
		"isMemberOf":                   idTerm(PropIsMemberOf),
		"inXSDDateTime":                typedTerm(Time+"inXSDDateTime", XSDDateTime),
		"hasBeginning":                 idTerm(Time + "hasBeginning"),
		"hasEnd":                       idTerm(Time + "hasEnd"),
		"isSampleOf":                   idTerm(PropIsSampleOf),
		"isFeatureOfInterestOf":        idTerm(PropIsFeatureOfInterestOf),
		"hasResult":                    idTerm(PropHasResult),
		"imports":                      idTerm(OWL + "imports"),
		"comment":                      map[string]any{"@id": RDFSComment},
		"label":                        map[string]any{"@id": RDFSLabel},
		"creator":                      idTerm(DCTerms + "creator"),
		"created":                      typedTerm(DCTerms+"created", XSDDate),
		"resultTime":                   typedTerm(PropResultTime, XSDDateTime),
		"hasSimpleResult":              map[string]any{"@id": PropHasSimpleResult},
		"hasGeometry":                  idTerm(GSP + "hasGeometry"),
		"relatedSample":                idTerm(Sampling + "relatedSample"),
		"quantityValue":                "http://qudt.org/schema/qudt#quantityValue",
		"numericValue":                 "http://qudt.org/schema/qudt#numericValue",
		"unit":                         "http://qudt.org/schema/qudt#unit",

		"hosts":          idTerm(PropHosts),
		"isHostedBy":     idTerm(PropIsHostedBy),
		"observes":       idTerm(PropObserves),
		"implements":     idTerm(PropImplements),
		"actsOnProperty": idTerm(PropActsOnProperty),
		"madeSampling":   idTerm(PropMadeSampling),
		"madeBySampler":  idTerm(PropMadeBySampler),
		"madeActuation":  idTerm(PropMadeActuation),
		"madeByActuator": idTerm(PropMadeByActuator),

		"ObservationCollection": "ssn-ext:ObservationCollection",
		"Observation":           "sosa:Observation",
		"Sample":                "sosa:Sample",
		"Platform":              "sosa:Platform",
		"Sensor":                "sosa:Sensor",
		"Actuator":              "sosa:Actuator",
		"Sampler":               "sosa:Sampler",
		"Sampling":              "sosa:Sampling",
		"Actuation":             "sosa:Actuation",
		"Procedure":             "sosa:Procedure",
		"ObservableProperty":    "sosa:ObservableProperty",
		"ActuableProperty":      "sosa:ActuableProperty",
		"FeatureOfInterest":     "sosa:FeatureOfInterest",
	}
}

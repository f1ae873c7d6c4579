// Package sosa builds a SOSA/SSN description of a sensor network as a graph.
//
// Entities are created through a Session. Every constructor asserts the
// entity's type, label and comment triples in one batch, and every
// relationship operation updates the in-memory membership lists and the
// shared store together:
//
//	s := sosa.NewSession()
//	p, _ := s.NewPlatform("Platform1", "P1")
//	speed, _ := s.NewObservableProperty("", "air speed")
//	sensor, _ := s.NewSensor("S1", speed)
//	_ = p.AddSensor(sensor)
//	ttl, _ := s.Serialize(export.FormatTurtle)
//
// A Session is not safe for concurrent mutation.
package sosa

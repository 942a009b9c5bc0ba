// Package core contains the lending domain model:
// the Book state machine, the Patron aggregate with its placing-on-hold
// policy chain, and the domain event vocabulary that connects them.
//
// Both aggregates are immutable values. Command methods on Patron produce
// events (never mutate state), Book transition methods return the next
// variant, and TransformPatron is the single function that converts an
// applied event into the next Patron state. Cross-aggregate consistency is
// achieved outside this package, by choreography over the published events.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer. Nothing in here performs IO.
package core

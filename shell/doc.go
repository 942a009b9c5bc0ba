// Package shell contains the infrastructure-facing contracts and plumbing
// around the lending domain: repository and publisher interfaces, the
// in-process event bus that drives the choreography between the Patron and
// Book aggregates, serialization of domain events to storable journal events,
// and the daily scheduler trigger.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'application/infrastructure' layer. All IO implementations live
// in sub-packages (postgresrepo, httpapi, config).
package shell

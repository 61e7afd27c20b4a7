// Package notebooks implements the notebook/note domain module of notekit.
//
// Layering:
// - domain: entities, domain events with their payload codecs, sentinel errors
// - application: commands/queries/workers using explicit ports
// - ports: stable boundaries for persistence, id issuing, event publishing, time
// - adapters: memory, sqlite, postgres stores; identifier issuer; bus publisher
//
// Boundary notes:
// - domain and application never import an adapter; wiring happens in
//   module.go and the bootstrap composition root.
// - Stores are the authority on id uniqueness; the issuer's free-check is an
//   optimization, never a guarantee.
// - Events announce committed state; publishing is not a precondition of any
//   mutation.
package notebooks

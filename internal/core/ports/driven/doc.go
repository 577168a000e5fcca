// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the remote page source, the markdown
// converter's block source, object storage, the translation backend and
// the persisted stores. Services depend on these interfaces so adapters
// can be substituted with fakes in tests.
package driven

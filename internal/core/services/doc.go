// Package services implements the core pipeline logic: the sync
// orchestrator and the cache-aware translation service. Services depend
// only on the driven ports, so every collaborator can be replaced with
// a fake in tests.
package services

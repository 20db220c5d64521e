// Package metrics exposes Prometheus collectors for the catalog manager.
//
// Collectors live on a private registry created by New, so tests can build as
// many instances as they need. Request metrics are labelled by route pattern
// rather than raw path. Drift and commit counters are fed by the variants
// feature and the drift command.
package metrics

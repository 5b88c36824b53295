// Package metrics computes figures over a sampled adsorption curve and
// exposes solver statistics as Prometheus collectors.
package metrics

// Package metrics records provisioning step outcomes as Prometheus metrics.
//
// The recorder uses a dedicated registry so a unit test or an embedding
// program never collides with the global one. When --metrics-listen (or the
// metricsAddr config field) is set, the recorder serves /metrics for the
// duration of the run:
//
//	devstack provision --metrics-listen localhost:9464
//	curl -s localhost:9464/metrics | grep devstack_step
package metrics

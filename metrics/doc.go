/*
Package metrics defines the prometheus counters for the service.

Counters are registered on an explicit registry so tests can use a
private one:

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.IncVotesSubmitted()

The registry is served at GET /metrics.
*/
package metrics

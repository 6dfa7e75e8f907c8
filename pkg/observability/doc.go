/*
Package observability turns engine events into Prometheus metrics and structured logs.

Both are exposed as domain.Hooks so they can be merged and handed to the engine:

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	hooks := metrics.Hooks().Merge(observability.LogHooks(logger))
*/
package observability

/*
Package observability provides Prometheus instrumentation for chart payloads.

Metrics count emitted payloads per renderer, failures per stage (serialize, check,
display) and the size of generated scripts. Register them on a dedicated registry in
tests and on the default registry when serving /metrics.
*/
package observability

/*
Package display defines the sink a payload is handed to and the sinks shipped with
latticenb.

A Sink causes the host environment to execute a script against the current output
location. Writer emits Jupyter display_data bundles (or bare scripts) for a kernel to
forward, HTML renders a standalone preview page, Memory records payloads, and
Instrument wraps any of them with Prometheus metrics.
*/
package display

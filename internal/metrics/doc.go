// Package metrics provides build observability for docbabel.
//
// Components receive a Recorder through injection and default to
// NoopRecorder, so metrics collection needs no nil checks at call sites.
// PrometheusRecorder backs the Recorder with client_golang collectors; the
// CLI registers it when `build --metrics-file` is given and writes the
// registry to a node-exporter textfile once the build finishes.
package metrics

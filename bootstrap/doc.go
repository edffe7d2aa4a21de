// Package bootstrap orchestrates service startup: it resolves secrets,
// installs the logging pipeline, provisions resources, builds the HTTP
// service, and hands the result to the host through an opaque handle.
//
// The sequence is a linear state machine. Each phase either advances the
// state or fails the whole bootstrap with a coded error; the first failure
// is terminal. Pipeline installation and the provision-and-build phase run
// inside supervised tasks, so a panic anywhere inside them surfaces as a
// TaskPanicked error instead of crashing the host process.
//
// Hosts obtain a handle from CreateService, call Boot with their resource
// factory, and then Bind the returned service. Ownership of the service
// transfers to the host; bootstrap keeps no reference after Boot returns.
package bootstrap

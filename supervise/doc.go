// Package supervise executes units of asynchronous work on runtime-managed
// goroutines and converts any abnormal termination into a structured error.
//
// A caller never receives a raw propagated panic from a supervised task:
// panics become TaskPanicked errors carrying the panic's diagnostic message
// (or a call-site fallback when the panic value carries none), and normal
// error returns become TaskFailed. The bootstrap sequence wraps every
// asynchronous step (pipeline installation, provisioning, bind) with the
// same conversion rule; only the fallback text differs per call site.
package supervise

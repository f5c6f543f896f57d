// Package executor defines the boundary between action planning and the
// external actuator that drives a marketplace UI.
//
// The core hands an Action across this boundary and gets back a Result; it
// never learns how the action was clicked. The bundled CommandExecutor
// bridges to an external automation program over stdin/stdout, and WithRetry
// wraps any executor call in a backoff policy without the core ever sleeping
// on its own.
package executor

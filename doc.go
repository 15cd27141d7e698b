// Package rethread provides cooperative cancellation primitives for
// goroutines blocked on a waitable resource: a condition variable, a
// timed sleep, or a polled file descriptor.
//
// The core of the package is the handshake between a Token, which a
// producer cancels, and a Guard, which a waiter uses to register a
// Handler for the duration of a blocking call. The handshake is
// race-free under arbitrary goroutine interleavings: a Guard either
// observes its Token as already cancelled (and never touches the
// Handler), or it registers the Handler and is guaranteed that the
// Handler's Cancel and Reset methods run at most once each, in that
// order, strictly between the Guard's construction and the return of
// its Close method.
//
// Cancellation adapters for specific blocking primitives live in
// rethread/wait (condition variables, sleeps, poll) and the owning
// worker lives in rethread/worker.
package rethread

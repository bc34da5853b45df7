// Package physics provides concrete dynamical systems with analytic
// Jacobians for the periodic-orbit search. Every system implements
// dynamo.System; most also implement dynamo.Configurable for parameter
// overrides.
package physics

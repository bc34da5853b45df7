// Package dynamo defines the state-space vocabulary shared by the orbit
// search: the [State] vector type and the [System] interface exposing a
// vector field and its Jacobian. Concrete systems live in internal/physics.
package dynamo

// Package viz renders the orbit search in the terminal.
//
// The package implements a live monitor using the Bubble Tea framework:
//
//   - [Model]: live view of the running search, fed by optimizer snapshots
//   - [Canvas]: Braille-based pixel canvas for the orbit phase portrait
//
// The left pane shows the current candidate orbit projected onto two state
// dimensions; the right pane shows the residual history and descent
// statistics.
package viz

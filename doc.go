/*
Package statewalk models a GUI application as a graph of discrete states
connected by transitions, and automates navigation between them: it computes
paths through the graph, executes the action sequences realizing each
transition, and resolves search regions for UI elements whose on-screen
location is only known relative to another element.

The Engine is the high-level entry point. It wires the joint table, path
finder, transition executor and the search-region dependency system, and
delegates the pixel-level work (capture, template matching, input injection)
to the ActionPerformer collaborator.

	eng, err := statewalk.New(
		statewalk.WithActionPerformer(performer),
		statewalk.WithLogger(logger),
	)

States and transitions are registered during a quiescent configuration phase
(programmatically or from a YAML definition via Load); navigation then runs
to completion synchronously per call.
*/
package statewalk

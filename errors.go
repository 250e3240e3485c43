package tetracull

import "errors"

// Errors returned by the loading functions. Failures are wrapped with context, so check for these with errors.Is().
var (
	// ErrNoScenes is returned when a glTF document holds no scenes to load.
	ErrNoScenes = errors.New("tetracull: document has no scenes")
	// ErrInvalidNode is returned when a glTF document refers to a node, mesh, or camera index that doesn't exist.
	ErrInvalidNode = errors.New("tetracull: invalid index in document")
	// ErrNodeCycle is returned when a glTF document's node hierarchy loops back on itself.
	ErrNodeCycle = errors.New("tetracull: node hierarchy contains a cycle")
	// ErrInvalidOptions is returned when a world options file holds a value that can't be used.
	ErrInvalidOptions = errors.New("tetracull: invalid world options")
)

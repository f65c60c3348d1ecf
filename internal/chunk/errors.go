package chunk

import (
	"errors"
	"fmt"
)

var (
	// ErrSimulation reports a build aborted by a broken simulation invariant.
	ErrSimulation = errors.New("erosion simulation aborted")

	// ErrInvalidLOD is returned for a level of detail outside [0, MaxLOD].
	ErrInvalidLOD = errors.New("invalid lod")
)

// ErrorKind classifies a ChunkError.
type ErrorKind int

const (
	// ErrKindMesh wraps a failure of mesh construction.
	ErrKindMesh ErrorKind = iota
	// ErrKindNoBufferBuilt means the chunk produced no geometry.
	ErrKindNoBufferBuilt
)

// ChunkError is a recoverable failure to build one chunk.
type ChunkError struct {
	Kind ErrorKind
	Pos  Pos
	Err  error
}

func (e *ChunkError) Error() string {
	switch e.Kind {
	case ErrKindMesh:
		return fmt.Sprintf("mesh/%v", e.Err)
	case ErrKindNoBufferBuilt:
		return fmt.Sprintf("no buffer built: chunk pos = %s", e.Pos)
	}
	return fmt.Sprintf("chunk %s: unknown error kind %d", e.Pos, e.Kind)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

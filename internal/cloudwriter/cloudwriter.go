// Package cloudwriter buffers output files and uploads them as objects.
package cloudwriter

import (
	"context"
	"path"
)

// CloudWriter collects an object's bytes; Close uploads them.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(ctx context.Context, bucket, objectPath string) (CloudWriter, error)
}

// ObjectKey builds "<folder>/<runID>/<name>", so that each run writes its own
// prefix and never overwrites a previous run's objects.
func ObjectKey(folder, runID, name string) string {
	return path.Join(folder, runID, name)
}

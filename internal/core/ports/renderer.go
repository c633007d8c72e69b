package ports

import "time"

// Renderer is the abstraction for progress output.
// It decouples telemetry collection from presentation.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Stop signals the renderer to flush any buffered output.
	Stop() error

	// OnPlanEmit is called once the files of a run are known.
	OnPlanEmit(files []string)

	// OnTaskStart is called when a file starts processing.
	// spanID: unique identifier for this unit of work
	// parentID: spanID of the parent (empty if root)
	// name: human-readable name
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskComplete is called when a file finishes processing.
	// err: nil if successful, error otherwise
	OnTaskComplete(spanID string, endTime time.Time, err error)
}

package ports

import "time"

// PipelineObserver receives per-stage signals of the explore pipeline.
// Implementations must be safe for concurrent use.
type PipelineObserver interface {
	ObserveStage(stage string, d time.Duration, err error)
	ObserveRows(fetched, excluded int)
}

// Stage names reported to PipelineObserver.
const (
	StageProbe  = "probe"
	StageFetch  = "fetch"
	StageBucket = "bucket"
)

// NopObserver discards every signal.
type NopObserver struct{}

func (NopObserver) ObserveStage(string, time.Duration, error) {}
func (NopObserver) ObserveRows(int, int)                      {}

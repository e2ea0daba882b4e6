package types

// PipelineEvent is broadcast to websocket subscribers while a pipeline run progresses.
type PipelineEvent string

func (s PipelineEvent) String() string {
	return string(s)
}

const (
	EventLoadStarted PipelineEvent = "load_started"
	EventLoaded      PipelineEvent = "loaded"
	EventExported    PipelineEvent = "exported"
	EventFailed      PipelineEvent = "failed"
)

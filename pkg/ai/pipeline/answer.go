package pipeline

import (
	"insightgpt-be/pkg/ai/chart"
	"insightgpt-be/pkg/ai/router"
)

// FailureKind names what went wrong while answering. Absorbed kinds still
// come with a normal answer; the rest replace it with an apology.
type FailureKind string

const (
	FailureNone             FailureKind = ""
	FailureRouting          FailureKind = "routing"
	FailureWorker           FailureKind = "worker"
	FailureSynthesis        FailureKind = "synthesis"
	FailureChartParse       FailureKind = "chart_parse"
	FailureIndexUnavailable FailureKind = "index_unavailable"
	FailureTimeout          FailureKind = "timeout"
	FailureInternal         FailureKind = "internal"
)

// Fatal reports whether the kind aborted the pipeline.
func (k FailureKind) Fatal() bool {
	switch k {
	case FailureRouting, FailureSynthesis, FailureTimeout, FailureInternal:
		return true
	}
	return false
}

// FinalAnswer is what the caller shows the user.
type FinalAnswer struct {
	DisplayText string       `json:"display_text"`
	Chart       *chart.Spec  `json:"chart,omitempty"`
	Route       router.Route `json:"route,omitempty"`
	Failure     FailureKind  `json:"failure,omitempty"`
}

package dto

import (
	"insightgpt-be/pkg/ai/chart"
)

type QueryRequest struct {
	Query string `json:"query" validate:"required,max=4000"`
	// SessionId, when set, receives the question and the answer as new turns.
	SessionId string `json:"session_id,omitempty" validate:"omitempty,uuid"`
}

type QueryResponse struct {
	Answer  string      `json:"answer"`
	Chart   *chart.Spec `json:"chart,omitempty"`
	Route   string      `json:"route,omitempty"`
	Failure string      `json:"failure,omitempty"`
}

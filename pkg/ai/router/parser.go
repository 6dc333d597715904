package router

import (
	"strings"

	"insightgpt-be/internal/constant"
)

// Route is the worker chosen for one question.
type Route string

const (
	RouteStructuredQuery   Route = "structured_query"
	RouteDocumentRetrieval Route = "document_retrieval"
)

func (r Route) String() string {
	return string(r)
}

// ParseDecision maps a classifier response onto a Route.
//
// An exact capability token (ignoring case, quotes, backticks and trailing
// punctuation) wins. Otherwise the earliest capability name mentioned in the
// text wins. Anything unrecognised is DocumentRetrieval.
func ParseDecision(response string) Route {
	token := strings.ToLower(strings.Trim(strings.TrimSpace(response), "'\"`*.:!"))
	switch token {
	case strings.ToLower(constant.CapabilityStructuredQuery):
		return RouteStructuredQuery
	case strings.ToLower(constant.CapabilityDocumentRetrieval):
		return RouteDocumentRetrieval
	}

	lower := strings.ToLower(response)
	sqlAt := strings.Index(lower, strings.ToLower(constant.CapabilityStructuredQuery))
	docAt := strings.Index(lower, strings.ToLower(constant.CapabilityDocumentRetrieval))

	switch {
	case sqlAt >= 0 && (docAt < 0 || sqlAt < docAt):
		return RouteStructuredQuery
	default:
		return RouteDocumentRetrieval
	}
}

package dto

import (
	"encoding/json"
	"time"
)

type QueryLogListRequest struct {
	Route  string `query:"route" validate:"omitempty,oneof=SQLDatabase FinancialReportSearch"`
	Failed bool   `query:"failed"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

type QueryLogResponse struct {
	Id          string          `json:"id"`
	SessionId   *string         `json:"session_id,omitempty"`
	Question    string          `json:"question"`
	DisplayText string          `json:"display_text"`
	Route       string          `json:"route"`
	Failure     string          `json:"failure,omitempty"`
	Chart       json.RawMessage `json:"chart,omitempty"`
	DurationMs  int64           `json:"duration_ms"`
	CreatedAt   time.Time       `json:"created_at"`
}

type QueryLogListResponse struct {
	Items []QueryLogResponse `json:"items"`
	Total int64              `json:"total"`
}

package models

import (
	"encoding/json"
	"time"
)

// ListRequest запрос страницы журнала
type ListRequest struct {
	UserID int64
	Limit  *int
	Offset *int
}

// ActivityResponse запись журнала в виде для клиента
type ActivityResponse struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	IPAddress   *string         `json:"ipAddress"`
	UserAgent   string          `json:"userAgent"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	Icon        string          `json:"icon"`
	Color       string          `json:"color"`
}

// ActivityListResponse страница журнала
type ActivityListResponse struct {
	Activities []*ActivityResponse `json:"activities"`
	Total      int                 `json:"total"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
	HasMore    bool                `json:"hasMore"`
}

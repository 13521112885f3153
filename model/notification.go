package model

import "time"

// NotificationRecord is one stored notification as returned by
// hush/get_notifications. Records are immutable historical facts, the client
// never mutates them.
type NotificationRecord struct {
	ID        string    `json:"id" mapstructure:"id"`
	Timestamp time.Time `json:"timestamp" mapstructure:"timestamp"`
	Message   string    `json:"message" mapstructure:"message"`
	Title     string    `json:"title" mapstructure:"title"`
	Category  Category  `json:"category" mapstructure:"category"`
	// EntityID is the source entity, empty when the notification was not
	// attached to one
	EntityID  string `json:"entity_id" mapstructure:"entity_id"`
	Delivered bool   `json:"delivered" mapstructure:"delivered"`
	// CollapsedCount is the number of duplicates merged into this record by
	// backend deduplication, always >= 1
	CollapsedCount int `json:"collapsed_count" mapstructure:"collapsed_count"`
}

// TodayStats are the server-computed counters for the current day
type TodayStats struct {
	Total          int `json:"total" mapstructure:"total"`
	SafetyCount    int `json:"safety_count" mapstructure:"safety_count"`
	DeliveredCount int `json:"delivered_count" mapstructure:"delivered_count"`
}

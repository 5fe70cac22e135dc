// Package dto contains data transfer objects for the notification domain
package dto

import "time"

// DeliveryResult is the outcome of one recipient delivery
type DeliveryResult struct {
	ChatID int64  `json:"chatId"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the delivery succeeded
func (d DeliveryResult) OK() bool {
	return d.Error == ""
}

// RunReport summarizes one broadcast run
type RunReport struct {
	RunID      string           `json:"runId"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Items      int              `json:"items"`
	Recipients int              `json:"recipients"`
	Sent       int              `json:"sent"`
	Failed     int              `json:"failed"`
	Deliveries []DeliveryResult `json:"deliveries,omitempty"`
}

// ABOUTME: Persisted capacity planning session schema
// ABOUTME: One JSON object stored under a fixed key per client

package models

import "time"

// SessionVersion is the only session schema version accepted on load
const SessionVersion = 1

// CapacityPlanningSession is the persisted state of a planning session
type CapacityPlanningSession struct {
	Version          int                   `json:"version"`
	Baseline         CapacityScenarioInput `json:"baseline"`
	Optimized        CapacityScenarioInput `json:"optimized"`
	ActiveTemplateID string                `json:"activeTemplateId"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

package model

import "time"

// SlotType buckets an appointment hour into a part of the day.
type SlotType string

const (
	SlotMorning   SlotType = "morning"
	SlotAfternoon SlotType = "afternoon"
	SlotEvening   SlotType = "evening"
)

// Slot is an ephemeral candidate appointment window at hour granularity.
// Slots are recomputed per request and never persisted.
type Slot struct {
	WorkshopID        string    `json:"workshop_id"`
	Time              time.Time `json:"slot_time"`
	Type              SlotType  `json:"slot_type"`
	IsSameDay         bool      `json:"is_same_day"`
	IsEmergency       bool      `json:"is_emergency"`
	AvailabilityScore float64   `json:"availability_score"`
	MatchScore        float64   `json:"match_score"`
	EstimatedDuration int       `json:"estimated_duration"` // minutes
}

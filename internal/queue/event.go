// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationConfirmedEvent is published when a student's activity
// registration is created, either by a fresh Register or as the new
// half of a Change. It carries enough denormalized information for
// downstream consumers to log or notify without querying the primary
// database.
type RegistrationConfirmedEvent struct {
	ParticipantID uint64 `json:"participant_id"`
	StudentID     uint64 `json:"student_id"`
	StudentName   string `json:"student_name"`
	ActivityID    uint64 `json:"activity_id"`
	ActivityName  string `json:"activity_name"`
	EventID       uint64 `json:"event_id"`
	EventName     string `json:"event_name"`
	RegisteredOn  string `json:"registered_on"`
}

package model

// Activity represents a single activity inside an event as stored in
// the `activity` table. StartTime and EndTime are time-of-day values
// kept as "HH:MM:SS" strings the way MySQL returns TIME columns.
//
// ParticipantCount is a denormalized column: it must equal the number
// of rows in activity_participants referencing this activity after
// every committed registration transaction. The registration engine
// recounts it inside the same transaction as any mutation.
//
// Fields:
//  ID               – primary key identifier.
//  EventID          – owning event.
//  Name             – activity name.
//  Description      – free-form description.
//  StartTime        – time of day the activity starts.
//  EndTime          – time of day the activity ends.
//  ParticipantCount – cached count of live registrations.
type Activity struct {
	ID               uint64 // activity.activity_id
	EventID          uint64 // activity.event_id
	Name             string // activity.activity_name
	Description      string // activity.description
	StartTime        string // activity.start_time
	EndTime          string // activity.end_time
	ParticipantCount int    // activity.participant_count
}

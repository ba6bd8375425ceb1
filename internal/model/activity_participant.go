package model

import "time"

// ActivityParticipant is a registration row in the
// `activity_participants` table: one student registered for one
// activity, timestamped at creation. RegisteredOn is always assigned
// by the database (CURRENT_TIMESTAMP), never supplied by a client.
// The pair (ActivityID, StudentID) is unique at the storage layer.
//
// Fields:
//  ID           – primary key identifier (participant_id).
//  ActivityID   – activity the student registered for.
//  StudentID    – registered student.
//  RegisteredOn – creation timestamp.
type ActivityParticipant struct {
	ID           uint64    // activity_participants.participant_id
	ActivityID   uint64    // activity_participants.activity_id
	StudentID    uint64    // activity_participants.student_id
	RegisteredOn time.Time // activity_participants.registered_on
}

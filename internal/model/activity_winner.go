package model

// ActivityWinner records a placed finisher of an activity, as stored
// in the `activity_winners` table.
//
// Fields:
//  ID         – primary key identifier.
//  ActivityID – activity that was won.
//  StudentID  – winning student.
//  Position   – finishing position (1 = first place).
type ActivityWinner struct {
	ID         uint64 // activity_winners.winner_id
	ActivityID uint64 // activity_winners.activity_id
	StudentID  uint64 // activity_winners.student_id
	Position   int    // activity_winners.position
}

package model

import "time"

// AssociationMember links a student to an association with a role
// inside it, as stored in the `association_members` table.
//
// Fields:
//  ID            – primary key identifier.
//  AssociationID – association the student belongs to.
//  StudentID     – member student.
//  Role          – position inside the association (President, Secretary, …).
//  JoinedDate    – date the student joined.
type AssociationMember struct {
	ID            uint64    // association_members.member_id
	AssociationID uint64    // association_members.assoc_id
	StudentID     uint64    // association_members.student_id
	Role          string    // association_members.role
	JoinedDate    time.Time // association_members.joined_date
}

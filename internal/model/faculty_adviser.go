package model

// FacultyAdviser links a faculty member to an association they
// advise, as stored in the `association_faculty_advisers` table.
//
// Fields:
//  ID            – primary key identifier.
//  AssociationID – advised association.
//  FacultyID     – advising faculty member.
//  Role          – advisory role (Chief Adviser, Co-Adviser, …).
type FacultyAdviser struct {
	ID            uint64 // association_faculty_advisers.adviser_id
	AssociationID uint64 // association_faculty_advisers.assoc_id
	FacultyID     uint64 // association_faculty_advisers.faculty_id
	Role          string // association_faculty_advisers.role
}

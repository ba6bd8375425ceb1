package model

// Faculty represents a faculty member as stored in the `faculty`
// table. Faculty act as advisers to associations and judge
// activities; they are never mutated by the registration engine.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – full name.
//  Email       – contact email.
//  Phone       – contact phone number.
//  Designation – academic designation (Professor, Assistant Professor, …).
type Faculty struct {
	ID          uint64 // faculty.faculty_id
	Name        string // faculty.f_name
	Email       string // faculty.f_email
	Phone       string // faculty.f_phone
	Designation string // faculty.designation
}

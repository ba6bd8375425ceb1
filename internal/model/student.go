package model

// Student represents a student as stored in the `student` table.
// Registrations reference students by ID; the registration engine
// treats the row as read-only.
//
// Fields:
//  ID    – primary key identifier.
//  Name  – full name.
//  Email – contact email.
//  Phone – contact phone number.
type Student struct {
	ID    uint64 // student.student_id
	Name  string // student.s_name
	Email string // student.s_email
	Phone string // student.phone
}

package model

// Association represents a department student association as stored
// in the `association` table.
//
// Fields:
//  ID                – primary key identifier.
//  Name              – association name.
//  EstablishmentYear – year the association was founded.
//  DepartmentID      – department the association belongs to.
//  Description       – free-form description.
type Association struct {
	ID                uint64 // association.assoc_id
	Name              string // association.assoc_name
	EstablishmentYear int    // association.establishment_year
	DepartmentID      uint64 // association.department_id
	Description       string // association.description
}

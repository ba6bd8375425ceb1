package model

import "time"

// Event represents an association event as stored in the `event`
// table. An event owns a set of activities; its ParticipantCount is
// a cached aggregate maintained outside the registration engine.
//
// Fields:
//  ID               – primary key identifier.
//  AssociationID    – owning association.
//  Name             – event name.
//  Date             – calendar date the event takes place.
//  Venue            – where the event is held.
//  Description      – free-form description.
//  ParticipantCount – cached participant total for the event.
type Event struct {
	ID               uint64    // event.event_id
	AssociationID    uint64    // event.assoc_id
	Name             string    // event.event_name
	Date             time.Time // event.event_date
	Venue            string    // event.venue
	Description      string    // event.description
	ParticipantCount int       // event.participant_count
}

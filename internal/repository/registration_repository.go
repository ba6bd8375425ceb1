package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Deepthi1510/department-association/internal/model"
)

// RegistrationRepo implements the registration engine: registering,
// cancelling and changing a student's activity registration while
// keeping activity.participant_count consistent with the underlying
// activity_participants rows. Every mutating method opens its own
// transaction, performs all sub-steps inside it, and commits or rolls
// back before returning; the repo holds no state between calls.
// Read helpers run as single autocommit statements.
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a new RegistrationRepo bound to the given database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

// RegistrationDetail is a registration row joined with the activity
// and event it belongs to. It is returned by RegistrationsForStudent
// for display without further lookups.
type RegistrationDetail struct {
	ParticipantID uint64    `json:"participant_id"`
	ActivityID    uint64    `json:"activity_id"`
	ActivityName  string    `json:"activity_name"`
	EventName     string    `json:"event_name"`
	RegisteredOn  time.Time `json:"registered_on"`
}

// ActivityWithEvent is an activity annotated with its owning event's
// id and name, as returned by ListAllActivities.
type ActivityWithEvent struct {
	model.Activity
	EventName string `json:"event_name"`
}

// Register inserts a registration for (studentID, activityID) with a
// database-assigned timestamp and recounts the activity's
// participant_count inside the same transaction. It returns the new
// participant ID. A duplicate (activity_id, student_id) pair yields
// ErrAlreadyRegistered; a nonexistent activity surfaces as the
// driver's foreign-key error. On any failure the transaction is
// rolled back and neither the row nor the count change persists.
func (r *RegistrationRepo) Register(ctx context.Context, studentID, activityID uint64) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin register: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const insQ = `INSERT INTO activity_participants (activity_id, student_id, registered_on) VALUES (?, ?, CURRENT_TIMESTAMP)`
	res, err := tx.ExecContext(ctx, insQ, activityID, studentID)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrAlreadyRegistered
		}
		return 0, fmt.Errorf("insert registration: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("registration id: %w", err)
	}

	if err := r.recountParticipantsTx(ctx, tx, activityID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit register: %w", err)
	}
	committed = true
	return uint64(id), nil
}

// Cancel deletes the registration with the given participant ID and
// recounts the affected activity, all in one transaction. When no
// such registration exists the transaction is rolled back and
// ErrRegistrationNotFound is returned; a second Cancel with the same
// ID therefore fails without touching any participant_count.
func (r *RegistrationRepo) Cancel(ctx context.Context, participantID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cancel: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Resolve the activity before deleting; the recount needs it and a
	// miss here is the authoritative "not found".
	var activityID uint64
	const selQ = `SELECT activity_id FROM activity_participants WHERE participant_id = ?`
	if err := tx.QueryRowContext(ctx, selQ, participantID).Scan(&activityID); err != nil {
		if err == sql.ErrNoRows {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("lookup registration: %w", err)
	}

	const delQ = `DELETE FROM activity_participants WHERE participant_id = ?`
	if _, err := tx.ExecContext(ctx, delQ, participantID); err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}

	if err := r.recountParticipantsTx(ctx, tx, activityID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cancel: %w", err)
	}
	committed = true
	return nil
}

// Change moves a registration to another activity: it reads the
// current student and activity from the store (never from the
// caller), deletes the old row, inserts a new one with a fresh
// timestamp, and recounts both activities in one transaction.
// It returns the new participant ID. A lookup miss yields
// ErrRegistrationNotFound; a live registration for the target
// activity yields ErrAlreadyRegistered. Any failure rolls the whole
// operation back, so the intermediate zero-registration state is
// never visible outside the transaction.
func (r *RegistrationRepo) Change(ctx context.Context, participantID, newActivityID uint64) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin change: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var studentID, oldActivityID uint64
	const selQ = `SELECT student_id, activity_id FROM activity_participants WHERE participant_id = ?`
	if err := tx.QueryRowContext(ctx, selQ, participantID).Scan(&studentID, &oldActivityID); err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrRegistrationNotFound
		}
		return 0, fmt.Errorf("lookup registration: %w", err)
	}

	const delQ = `DELETE FROM activity_participants WHERE participant_id = ?`
	if _, err := tx.ExecContext(ctx, delQ, participantID); err != nil {
		return 0, fmt.Errorf("delete old registration: %w", err)
	}

	const insQ = `INSERT INTO activity_participants (activity_id, student_id, registered_on) VALUES (?, ?, CURRENT_TIMESTAMP)`
	res, err := tx.ExecContext(ctx, insQ, newActivityID, studentID)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrAlreadyRegistered
		}
		return 0, fmt.Errorf("insert new registration: %w", err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("registration id: %w", err)
	}

	if err := r.recountParticipantsTx(ctx, tx, oldActivityID); err != nil {
		return 0, err
	}
	if err := r.recountParticipantsTx(ctx, tx, newActivityID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit change: %w", err)
	}
	committed = true
	return uint64(newID), nil
}

// recountParticipantsTx recounts live registrations for an activity
// and writes the result into activity.participant_count. It always
// runs inside the caller's open transaction so the count matches the
// registration rows at commit time; it is never executed autocommit.
func (r *RegistrationRepo) recountParticipantsTx(ctx context.Context, tx *sql.Tx, activityID uint64) error {
	var count int
	const countQ = `SELECT COUNT(*) FROM activity_participants WHERE activity_id = ?`
	if err := tx.QueryRowContext(ctx, countQ, activityID).Scan(&count); err != nil {
		return fmt.Errorf("count participants: %w", err)
	}
	const updQ = `UPDATE activity SET participant_count = ? WHERE activity_id = ?`
	if _, err := tx.ExecContext(ctx, updQ, count, activityID); err != nil {
		return fmt.Errorf("update participant count: %w", err)
	}
	return nil
}

// GetRegistration returns a single registration row by participant
// ID. It returns sql.ErrNoRows when the registration does not exist.
// Handlers use it to verify ownership before Cancel or Change.
func (r *RegistrationRepo) GetRegistration(ctx context.Context, participantID uint64) (*model.ActivityParticipant, error) {
	const q = `SELECT participant_id, activity_id, student_id, registered_on FROM activity_participants WHERE participant_id = ?`
	var p model.ActivityParticipant
	err := r.db.QueryRowContext(ctx, q, participantID).Scan(&p.ID, &p.ActivityID, &p.StudentID, &p.RegisteredOn)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ActivitiesInEvent returns all activities of an event ordered by
// start time.
func (r *RegistrationRepo) ActivitiesInEvent(ctx context.Context, eventID uint64) ([]model.Activity, error) {
	const q = `SELECT activity_id, event_id, activity_name, description, start_time, end_time, participant_count
	           FROM activity WHERE event_id = ? ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActivities(rows)
}

// OtherActivitiesInEvent returns the activities of an event excluding
// one activity, ordered by start time. It feeds the candidate list
// when a student changes a registration within the same event.
func (r *RegistrationRepo) OtherActivitiesInEvent(ctx context.Context, eventID, excludeActivityID uint64) ([]model.Activity, error) {
	const q = `SELECT activity_id, event_id, activity_name, description, start_time, end_time, participant_count
	           FROM activity WHERE event_id = ? AND activity_id <> ? ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, q, eventID, excludeActivityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActivities(rows)
}

// AvailableActivitiesForStudent returns all activities the student
// has no live registration for. The anti-join keeps activities whose
// left-joined registration row for this student is absent.
func (r *RegistrationRepo) AvailableActivitiesForStudent(ctx context.Context, studentID uint64) ([]model.Activity, error) {
	const q = `SELECT DISTINCT a.activity_id, a.event_id, a.activity_name, a.description, a.start_time, a.end_time, a.participant_count
	           FROM activity a
	           LEFT JOIN activity_participants ap ON a.activity_id = ap.activity_id AND ap.student_id = ?
	           WHERE ap.participant_id IS NULL
	           ORDER BY a.activity_id`
	rows, err := r.db.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActivities(rows)
}

// RegistrationsForStudent returns the student's registrations joined
// with activity and event names, newest first.
func (r *RegistrationRepo) RegistrationsForStudent(ctx context.Context, studentID uint64) ([]RegistrationDetail, error) {
	const q = `SELECT ap.participant_id, ap.activity_id, a.activity_name, e.event_name, ap.registered_on
	           FROM activity_participants ap
	           JOIN activity a ON ap.activity_id = a.activity_id
	           JOIN event e ON a.event_id = e.event_id
	           WHERE ap.student_id = ?
	           ORDER BY ap.registered_on DESC`
	rows, err := r.db.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]RegistrationDetail, 0)
	for rows.Next() {
		var d RegistrationDetail
		if err := rows.Scan(&d.ParticipantID, &d.ActivityID, &d.ActivityName, &d.EventName, &d.RegisteredOn); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListAllActivities returns every activity across all events with the
// owning event's name, ordered by event date then start time.
func (r *RegistrationRepo) ListAllActivities(ctx context.Context) ([]ActivityWithEvent, error) {
	const q = `SELECT a.activity_id, a.event_id, a.activity_name, a.description, a.start_time, a.end_time, a.participant_count, e.event_name
	           FROM activity a
	           JOIN event e ON a.event_id = e.event_id
	           ORDER BY e.event_date, a.start_time`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ActivityWithEvent, 0)
	for rows.Next() {
		var a ActivityWithEvent
		if err := rows.Scan(&a.ID, &a.EventID, &a.Name, &a.Description, &a.StartTime, &a.EndTime, &a.ParticipantCount, &a.EventName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParticipantsInActivity lists the registration rows of one activity,
// oldest first. Used by association members reviewing turnout.
func (r *RegistrationRepo) ParticipantsInActivity(ctx context.Context, activityID uint64) ([]model.ActivityParticipant, error) {
	const q = `SELECT participant_id, activity_id, student_id, registered_on
	           FROM activity_participants WHERE activity_id = ? ORDER BY registered_on`
	rows, err := r.db.QueryContext(ctx, q, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ActivityParticipant, 0)
	for rows.Next() {
		var p model.ActivityParticipant
		if err := rows.Scan(&p.ID, &p.ActivityID, &p.StudentID, &p.RegisteredOn); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanActivities(rows *sql.Rows) ([]model.Activity, error) {
	acts := make([]model.Activity, 0)
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.EventID, &a.Name, &a.Description, &a.StartTime, &a.EndTime, &a.ParticipantCount); err != nil {
			return nil, err
		}
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return acts, nil
}

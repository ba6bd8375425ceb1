package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*RegistrationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRegistrationRepo(db), mock
}

func expectRecount(mock sqlmock.Sqlmock, activityID uint64, count int) {
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM activity_participants WHERE activity_id = \?`).
		WithArgs(activityID).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(count))
	mock.ExpectExec(`UPDATE activity SET participant_count = \? WHERE activity_id = \?`).
		WithArgs(count, activityID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestRegisterInsertsAndRecounts(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO activity_participants`).
		WithArgs(uint64(7), uint64(3)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	expectRecount(mock, 7, 5)
	mock.ExpectCommit()

	id, err := repo.Register(context.Background(), 3, 7)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id != 42 {
		t.Fatalf("participant id = %d, want 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterDuplicateRollsBack(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO activity_participants`).
		WithArgs(uint64(7), uint64(3)).
		WillReturnError(errors.New("Error 1062: Duplicate entry '7-3' for key 'uq_activity_student'"))
	mock.ExpectRollback()

	_, err := repo.Register(context.Background(), 3, 7)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("err = %v, want ErrAlreadyRegistered", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterRecountFailureRollsBack(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO activity_participants`).
		WithArgs(uint64(7), uint64(3)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM activity_participants WHERE activity_id = \?`).
		WithArgs(uint64(7)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if _, err := repo.Register(context.Background(), 3, 7); err == nil {
		t.Fatal("Register succeeded, want error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelDeletesAndRecounts(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT activity_id FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"activity_id"}).AddRow(7))
	mock.ExpectExec(`DELETE FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectRecount(mock, 7, 4)
	mock.ExpectCommit()

	if err := repo.Cancel(context.Background(), 42); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelMissingRegistration(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT activity_id FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Cancel(context.Background(), 99)
	if !errors.Is(err, ErrRegistrationNotFound) {
		t.Fatalf("err = %v, want ErrRegistrationNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChangeMovesRegistrationAndRecountsBoth(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT student_id, activity_id FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "activity_id"}).AddRow(3, 7))
	mock.ExpectExec(`DELETE FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO activity_participants`).
		WithArgs(uint64(8), uint64(3)).
		WillReturnResult(sqlmock.NewResult(43, 1))
	expectRecount(mock, 7, 4)
	expectRecount(mock, 8, 6)
	mock.ExpectCommit()

	newID, err := repo.Change(context.Background(), 42, 8)
	if err != nil {
		t.Fatalf("Change: %v", err)
	}
	if newID != 43 {
		t.Fatalf("new participant id = %d, want 43", newID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChangeMissingRegistration(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT student_id, activity_id FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Change(context.Background(), 99, 8)
	if !errors.Is(err, ErrRegistrationNotFound) {
		t.Fatalf("err = %v, want ErrRegistrationNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChangeDuplicateTargetRollsBack(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT student_id, activity_id FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"student_id", "activity_id"}).AddRow(3, 7))
	mock.ExpectExec(`DELETE FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO activity_participants`).
		WithArgs(uint64(8), uint64(3)).
		WillReturnError(errors.New("Error 1062: Duplicate entry '8-3' for key 'uq_activity_student'"))
	mock.ExpectRollback()

	_, err := repo.Change(context.Background(), 42, 8)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("err = %v, want ErrAlreadyRegistered", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetRegistration(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	ts := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT participant_id, activity_id, student_id, registered_on FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"participant_id", "activity_id", "student_id", "registered_on"}).
			AddRow(42, 7, 3, ts))

	p, err := repo.GetRegistration(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetRegistration: %v", err)
	}
	if p.StudentID != 3 || p.ActivityID != 7 {
		t.Fatalf("got student %d activity %d, want 3 and 7", p.StudentID, p.ActivityID)
	}
	if !p.RegisteredOn.Equal(ts) {
		t.Fatalf("registered_on = %v, want %v", p.RegisteredOn, ts)
	}
}

func TestGetRegistrationMissing(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT participant_id, activity_id, student_id, registered_on FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetRegistration(context.Background(), 99); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}
}

func activityRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"activity_id", "event_id", "activity_name", "description",
		"start_time", "end_time", "participant_count",
	})
}

func TestActivitiesInEvent(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	rows := activityRows().
		AddRow(1, 5, "Debate", "", "09:00:00", "11:00:00", 12).
		AddRow(2, 5, "Quiz", "general knowledge", "11:30:00", "13:00:00", 30)
	mock.ExpectQuery(`FROM activity WHERE event_id = \? ORDER BY start_time`).
		WithArgs(uint64(5)).
		WillReturnRows(rows)

	acts, err := repo.ActivitiesInEvent(context.Background(), 5)
	if err != nil {
		t.Fatalf("ActivitiesInEvent: %v", err)
	}
	if len(acts) != 2 {
		t.Fatalf("len = %d, want 2", len(acts))
	}
	if acts[0].Name != "Debate" || acts[1].ParticipantCount != 30 {
		t.Fatalf("unexpected rows: %+v", acts)
	}
}

func TestOtherActivitiesInEvent(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	rows := activityRows().
		AddRow(2, 5, "Quiz", "", "11:30:00", "13:00:00", 30)
	mock.ExpectQuery(`WHERE event_id = \? AND activity_id <> \? ORDER BY start_time`).
		WithArgs(uint64(5), uint64(1)).
		WillReturnRows(rows)

	acts, err := repo.OtherActivitiesInEvent(context.Background(), 5, 1)
	if err != nil {
		t.Fatalf("OtherActivitiesInEvent: %v", err)
	}
	if len(acts) != 1 || acts[0].ID != 2 {
		t.Fatalf("unexpected rows: %+v", acts)
	}
}

func TestAvailableActivitiesForStudent(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	rows := activityRows().
		AddRow(3, 6, "Hackathon", "24h build", "08:00:00", "20:00:00", 40)
	mock.ExpectQuery(`LEFT JOIN activity_participants ap`).
		WithArgs(uint64(3)).
		WillReturnRows(rows)

	acts, err := repo.AvailableActivitiesForStudent(context.Background(), 3)
	if err != nil {
		t.Fatalf("AvailableActivitiesForStudent: %v", err)
	}
	if len(acts) != 1 || acts[0].Name != "Hackathon" {
		t.Fatalf("unexpected rows: %+v", acts)
	}
}

func TestRegistrationsForStudent(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	ts := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"participant_id", "activity_id", "activity_name", "event_name", "registered_on"}).
		AddRow(42, 7, "Debate", "Tech Fest", ts)
	mock.ExpectQuery(`WHERE ap.student_id = \?`).
		WithArgs(uint64(3)).
		WillReturnRows(rows)

	regs, err := repo.RegistrationsForStudent(context.Background(), 3)
	if err != nil {
		t.Fatalf("RegistrationsForStudent: %v", err)
	}
	if len(regs) != 1 {
		t.Fatalf("len = %d, want 1", len(regs))
	}
	if regs[0].EventName != "Tech Fest" || regs[0].ActivityName != "Debate" {
		t.Fatalf("unexpected row: %+v", regs[0])
	}
}

func TestRegistrationsForStudentEmpty(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	mock.ExpectQuery(`WHERE ap.student_id = \?`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"participant_id", "activity_id", "activity_name", "event_name", "registered_on"}))

	regs, err := repo.RegistrationsForStudent(context.Background(), 3)
	if err != nil {
		t.Fatalf("RegistrationsForStudent: %v", err)
	}
	if regs == nil || len(regs) != 0 {
		t.Fatalf("regs = %v, want empty non-nil slice", regs)
	}
}

func TestListAllActivities(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	rows := sqlmock.NewRows([]string{
		"activity_id", "event_id", "activity_name", "description",
		"start_time", "end_time", "participant_count", "event_name",
	}).
		AddRow(1, 5, "Debate", "", "09:00:00", "11:00:00", 12, "Tech Fest").
		AddRow(3, 6, "Hackathon", "", "08:00:00", "20:00:00", 40, "Innovation Day")
	mock.ExpectQuery(`ORDER BY e.event_date, a.start_time`).
		WillReturnRows(rows)

	acts, err := repo.ListAllActivities(context.Background())
	if err != nil {
		t.Fatalf("ListAllActivities: %v", err)
	}
	if len(acts) != 2 {
		t.Fatalf("len = %d, want 2", len(acts))
	}
	if acts[1].EventName != "Innovation Day" {
		t.Fatalf("event name = %q, want %q", acts[1].EventName, "Innovation Day")
	}
}

func TestParticipantsInActivity(t *testing.T) {
	t.Parallel()
	repo, mock := newMock(t)

	ts := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"participant_id", "activity_id", "student_id", "registered_on"}).
		AddRow(42, 7, 3, ts).
		AddRow(43, 7, 4, ts.Add(time.Minute))
	mock.ExpectQuery(`WHERE activity_id = \? ORDER BY registered_on`).
		WithArgs(uint64(7)).
		WillReturnRows(rows)

	parts, err := repo.ParticipantsInActivity(context.Background(), 7)
	if err != nil {
		t.Fatalf("ParticipantsInActivity: %v", err)
	}
	if len(parts) != 2 || parts[1].StudentID != 4 {
		t.Fatalf("unexpected rows: %+v", parts)
	}
}

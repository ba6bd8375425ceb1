package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/repository"
)

func newStudentHandler(t *testing.T) (*StudentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	h := NewStudentHandler(
		repository.NewRegistrationRepo(db),
		repository.NewActivityRepo(db),
		repository.NewEventRepo(db),
		repository.NewStudentRepo(db),
	)
	return h, mock
}

func studentContext(t *testing.T, method, target, body string, principalID uint64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(1))
	c.Set("principal_id", float64(principalID))
	return c, rec
}

func expectActivityByID(mock sqlmock.Sqlmock, id, eventID uint64) {
	mock.ExpectQuery(`FROM activity WHERE activity_id = \?`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"activity_id", "event_id", "activity_name", "description",
			"start_time", "end_time", "participant_count",
		}).AddRow(id, eventID, "Debate", "", "09:00:00", "11:00:00", 10))
}

func TestRegisterUnknownActivity(t *testing.T) {
	t.Parallel()
	h, mock := newStudentHandler(t)
	mock.ExpectQuery(`FROM activity WHERE activity_id = \?`).
		WithArgs(uint64(999)).
		WillReturnError(sql.ErrNoRows)

	c, rec := studentContext(t, http.MethodPost, "/v1/registrations", `{"activity_id":999}`, 3)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRegisterDuplicateConflict(t *testing.T) {
	t.Parallel()
	h, mock := newStudentHandler(t)
	expectActivityByID(mock, 7, 5)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO activity_participants`).
		WithArgs(uint64(7), uint64(3)).
		WillReturnError(errors.New("Error 1062: Duplicate entry '7-3' for key 'uq_activity_student'"))
	mock.ExpectRollback()

	c, rec := studentContext(t, http.MethodPost, "/v1/registrations", `{"activity_id":7}`, 3)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func expectRegistrationByID(mock sqlmock.Sqlmock, participantID, activityID, studentID uint64) {
	mock.ExpectQuery(`FROM activity_participants WHERE participant_id = \?`).
		WithArgs(participantID).
		WillReturnRows(sqlmock.NewRows([]string{"participant_id", "activity_id", "student_id", "registered_on"}).
			AddRow(participantID, activityID, studentID, time.Now()))
}

func TestCancelRejectsForeignRegistration(t *testing.T) {
	t.Parallel()
	h, mock := newStudentHandler(t)
	expectRegistrationByID(mock, 42, 7, 99) // owned by student 99, caller is 3

	c, rec := studentContext(t, http.MethodDelete, "/v1/registrations/42", "", 3)
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestCancelOwnRegistration(t *testing.T) {
	t.Parallel()
	h, mock := newStudentHandler(t)
	expectRegistrationByID(mock, 42, 7, 3)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT activity_id FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"activity_id"}).AddRow(7))
	mock.ExpectExec(`DELETE FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM activity_participants WHERE activity_id = \?`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(9))
	mock.ExpectExec(`UPDATE activity SET participant_count = \? WHERE activity_id = \?`).
		WithArgs(9, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := studentContext(t, http.MethodDelete, "/v1/registrations/42", "", 3)
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelUnknownRegistration(t *testing.T) {
	t.Parallel()
	h, mock := newStudentHandler(t)
	mock.ExpectQuery(`FROM activity_participants WHERE participant_id = \?`).
		WithArgs(uint64(42)).
		WillReturnError(sql.ErrNoRows)

	c, rec := studentContext(t, http.MethodDelete, "/v1/registrations/42", "", 3)
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestChangeRejectsCrossEventTarget(t *testing.T) {
	t.Parallel()
	h, mock := newStudentHandler(t)
	expectRegistrationByID(mock, 42, 7, 3)
	expectActivityByID(mock, 7, 5) // current activity in event 5
	expectActivityByID(mock, 8, 6) // target activity in event 6

	c, rec := studentContext(t, http.MethodPut, "/v1/registrations/42", `{"new_activity_id":8}`, 3)
	c.SetParamNames("id")
	c.SetParamValues("42")
	if err := h.Change(c); err != nil {
		t.Fatalf("Change: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

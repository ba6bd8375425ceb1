package handler

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/Deepthi1510/department-association/internal/model"
	"github.com/Deepthi1510/department-association/internal/repository"
)

func newFacultyHandler(t *testing.T) (*FacultyHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	h := NewFacultyHandler(
		repository.NewWinnerRepo(db),
		repository.NewActivityRepo(db),
		repository.NewEventRepo(db),
		repository.NewAdviserRepo(db),
		repository.NewRegistrationRepo(db),
	)
	return h, mock
}

func facultyContext(t *testing.T, method, target, body string, facultyID uint64) echo.Context {
	t.Helper()
	c, _ := studentContext(t, method, target, body, facultyID)
	c.Set("role", model.RoleFaculty)
	return c
}

func expectEventByID(mock sqlmock.Sqlmock, id, assocID uint64) {
	mock.ExpectQuery(`FROM event WHERE event_id = \?`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{
			"event_id", "assoc_id", "event_name", "event_date",
			"venue", "description", "participant_count",
		}).AddRow(id, assocID, "Tech Fest", time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), "Main Hall", "", 0))
}

func expectAdviserCheck(mock sqlmock.Sqlmock, facultyID, assocID uint64, advises bool) {
	q := mock.ExpectQuery(`SELECT 1 FROM association_faculty_advisers WHERE faculty_id = \? AND assoc_id = \?`).
		WithArgs(facultyID, assocID)
	if advises {
		q.WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	} else {
		q.WillReturnError(sql.ErrNoRows)
	}
}

func expectWinnerByID(mock sqlmock.Sqlmock, winnerID, activityID, studentID uint64) {
	mock.ExpectQuery(`FROM activity_winners WHERE winner_id = \?`).
		WithArgs(winnerID).
		WillReturnRows(sqlmock.NewRows([]string{
			"winner_id", "activity_id", "student_id", "position",
		}).AddRow(winnerID, activityID, studentID, 1))
}

func TestCreateWinnerRejectsNonAdvisingFaculty(t *testing.T) {
	t.Parallel()
	h, mock := newFacultyHandler(t)
	expectActivityByID(mock, 7, 5)
	expectEventByID(mock, 5, 2)
	expectAdviserCheck(mock, 99, 2, false)

	c := facultyContext(t, http.MethodPost, "/v1/activities/7/winners", `{"student_id":3,"position":1}`, 99)
	c.SetParamNames("id")
	c.SetParamValues("7")
	err := h.CreateWinner(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("CreateWinner error = %v, want *echo.HTTPError", err)
	}
	if he.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", he.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateWinnerByAdviser(t *testing.T) {
	t.Parallel()
	h, mock := newFacultyHandler(t)
	expectActivityByID(mock, 7, 5)
	expectEventByID(mock, 5, 2)
	expectAdviserCheck(mock, 4, 2, true)
	mock.ExpectQuery(`FROM activity_participants WHERE activity_id = \?`).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"participant_id", "activity_id", "student_id", "registered_on",
		}).AddRow(11, 7, 3, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)))
	mock.ExpectExec(`INSERT INTO activity_winners`).
		WithArgs(uint64(7), uint64(3), 1).
		WillReturnResult(sqlmock.NewResult(20, 1))

	c := facultyContext(t, http.MethodPost, "/v1/activities/7/winners", `{"student_id":3,"position":1}`, 4)
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.CreateWinner(c); err != nil {
		t.Fatalf("CreateWinner: %v", err)
	}
	if got := c.Response().Status; got != http.StatusCreated {
		t.Fatalf("status = %d, want 201", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteWinnerRejectsNonAdvisingFaculty(t *testing.T) {
	t.Parallel()
	h, mock := newFacultyHandler(t)
	expectWinnerByID(mock, 20, 7, 3)
	expectActivityByID(mock, 7, 5)
	expectEventByID(mock, 5, 2)
	expectAdviserCheck(mock, 99, 2, false)

	c := facultyContext(t, http.MethodDelete, "/v1/winners/20", "", 99)
	c.SetParamNames("id")
	c.SetParamValues("20")
	err := h.DeleteWinner(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("DeleteWinner error = %v, want *echo.HTTPError", err)
	}
	if he.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", he.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateWinnerRejectsNonAdvisingFaculty(t *testing.T) {
	t.Parallel()
	h, mock := newFacultyHandler(t)
	expectWinnerByID(mock, 20, 7, 3)
	expectActivityByID(mock, 7, 5)
	expectEventByID(mock, 5, 2)
	expectAdviserCheck(mock, 99, 2, false)

	c := facultyContext(t, http.MethodPut, "/v1/winners/20", `{"position":2}`, 99)
	c.SetParamNames("id")
	c.SetParamValues("20")
	err := h.UpdateWinner(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("UpdateWinner error = %v, want *echo.HTTPError", err)
	}
	if he.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", he.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

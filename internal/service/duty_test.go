package service

import (
	"testing"

	"lakehouse-scheduler/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDutyValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDutyService(db)

	cases := []struct {
		name string
		req  model.DutyRequest
	}{
		{"empty name", model.DutyRequest{Description: "d", EstimatedHours: 1}},
		{"empty description", model.DutyRequest{Name: "n", EstimatedHours: 1}},
		{"zero hours", model.DutyRequest{Name: "n", Description: "d"}},
		{"bad priority", model.DutyRequest{Name: "n", Description: "d", EstimatedHours: 1, Priority: "SOON"}},
	}
	for _, tc := range cases {
		_, err := svc.CreateDuty(t.Context(), tc.req)
		assert.Equal(t, KindValidation, KindOf(err), tc.name)
	}

	duty, err := svc.CreateDuty(t.Context(), model.DutyRequest{
		Name: "mow the lawn", Description: "front and back", EstimatedHours: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PriorityMedium, duty.Priority)
	assert.True(t, duty.IsActive)
}

func TestAssignDuty(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", model.RoleMember)
	svc := NewDutyService(db)

	duty, err := svc.CreateDuty(t.Context(), model.DutyRequest{
		Name: "firewood", Description: "restock the rack", EstimatedHours: 1,
	})
	require.NoError(t, err)

	_, err = svc.Assign(t.Context(), 999, user.ID, "", "")
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.Assign(t.Context(), duty.ID, 999, "", "")
	assert.Equal(t, KindNotFound, KindOf(err))

	a, err := svc.Assign(t.Context(), duty.ID, user.ID, date(0), "before the weekend")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAssigned, a.Status)
	assert.Nil(t, a.CompletedDate)

	// duties are shared chores: a second assignee is fine
	other := createTestUser(t, db, "carol", model.RoleMember)
	_, err = svc.Assign(t.Context(), duty.ID, other.ID, date(0), "")
	assert.NoError(t, err)

	// deactivated duties leave the assignable pool
	inactive := false
	_, err = svc.UpdateDuty(t.Context(), duty.ID, model.DutyUpdateRequest{IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.Assign(t.Context(), duty.ID, user.ID, date(0), "")
	assert.Equal(t, KindNotFound, KindOf(err))

	// but existing assignments survive deactivation
	got, err := svc.Assignment(t.Context(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAssigned, got.Status)
}

func TestTransitionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", model.RoleMember)
	svc := NewDutyService(db)
	duty, err := svc.CreateDuty(t.Context(), model.DutyRequest{
		Name: "gutters", Description: "clear leaves", EstimatedHours: 3,
	})
	require.NoError(t, err)

	a, err := svc.Assign(t.Context(), duty.ID, user.ID, date(-1), "")
	require.NoError(t, err)

	// skipping IN_PROGRESS is not allowed
	_, err = svc.Transition(t.Context(), a.ID, model.StatusCompleted, "")
	assert.Equal(t, KindInvalidState, KindOf(err))

	a, err = svc.Transition(t.Context(), a.ID, model.StatusInProgress, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, a.Status)
	assert.Nil(t, a.CompletedDate)

	a, err = svc.Transition(t.Context(), a.ID, model.StatusCompleted, "")
	require.NoError(t, err)
	require.NotNil(t, a.CompletedDate)
	assert.GreaterOrEqual(t, *a.CompletedDate, a.AssignedDate)

	// terminal: nothing moves out of COMPLETED
	for _, next := range []string{model.StatusAssigned, model.StatusInProgress, model.StatusCancelled} {
		_, err = svc.Transition(t.Context(), a.ID, next, "")
		assert.Equal(t, KindInvalidState, KindOf(err), next)
	}
}

func TestTransitionCancel(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", model.RoleMember)
	svc := NewDutyService(db)
	duty, err := svc.CreateDuty(t.Context(), model.DutyRequest{
		Name: "dock", Description: "pull in for winter", EstimatedHours: 4,
	})
	require.NoError(t, err)

	a, err := svc.Assign(t.Context(), duty.ID, user.ID, "", "")
	require.NoError(t, err)

	a, err = svc.Transition(t.Context(), a.ID, model.StatusCancelled, "")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, a.Status)
	assert.Nil(t, a.CompletedDate)

	_, err = svc.Transition(t.Context(), a.ID, model.StatusInProgress, "")
	assert.Equal(t, KindInvalidState, KindOf(err))
}

func TestTransitionCompletedDateRules(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "bob", model.RoleMember)
	svc := NewDutyService(db)
	duty, err := svc.CreateDuty(t.Context(), model.DutyRequest{
		Name: "windows", Description: "wash all of them", EstimatedHours: 2,
	})
	require.NoError(t, err)

	a, err := svc.Assign(t.Context(), duty.ID, user.ID, date(0), "")
	require.NoError(t, err)
	_, err = svc.Transition(t.Context(), a.ID, model.StatusInProgress, "")
	require.NoError(t, err)

	// an explicit completion date before the assigned date is rejected
	_, err = svc.Transition(t.Context(), a.ID, model.StatusCompleted, date(-3))
	assert.Equal(t, KindValidation, KindOf(err))

	a, err = svc.Transition(t.Context(), a.ID, model.StatusCompleted, date(1))
	require.NoError(t, err)
	require.NotNil(t, a.CompletedDate)
	assert.Equal(t, date(1), *a.CompletedDate)

	_, err = svc.Transition(t.Context(), a.ID, "DONE", "")
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Transition(t.Context(), 12345, model.StatusCancelled, "")
	assert.Equal(t, KindNotFound, KindOf(err))
}

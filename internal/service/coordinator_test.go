package service

import (
	"testing"

	"lakehouse-scheduler/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCoordinator(t *testing.T) (*gorm.DB, *Coordinator, *memBlobStore) {
	t.Helper()
	db := setupTestDB(t)
	blobs := newMemBlobStore()
	coord := NewCoordinator(
		NewUserService(db),
		NewReservationService(db),
		NewDutyService(db),
		NewDocumentService(db, blobs),
	)
	return db, coord, blobs
}

func asActor(u *model.User) Actor { return Actor{ID: u.ID, Role: u.Role} }

func TestAdminOnlyOperations(t *testing.T) {
	db, coord, _ := setupCoordinator(t)
	member := createTestUser(t, db, "bob", model.RoleMember)

	_, err := coord.CreateDuty(t.Context(), asActor(member), model.DutyRequest{
		Name: "n", Description: "d", EstimatedHours: 1,
	})
	assert.Equal(t, KindAuthorization, KindOf(err))

	_, err = coord.CreateUser(t.Context(), asActor(member), model.CreateUserRequest{
		Username: "x", Email: "x@example.com", Password: "secret1",
	})
	assert.Equal(t, KindAuthorization, KindOf(err))

	_, err = coord.Users(t.Context(), asActor(member))
	assert.Equal(t, KindAuthorization, KindOf(err))

	assert.Equal(t, KindAuthorization, KindOf(coord.DeleteUser(t.Context(), asActor(member), member.ID)))

	_, err = coord.RequestRoleChange(t.Context(), asActor(member), member.ID, model.RoleAdmin)
	assert.Equal(t, KindAuthorization, KindOf(err))
}

func TestAssignDutyAuthorization(t *testing.T) {
	db, coord, _ := setupCoordinator(t)
	admin := createTestUser(t, db, "root", model.RoleAdmin)
	member := createTestUser(t, db, "bob", model.RoleMember)
	other := createTestUser(t, db, "carol", model.RoleMember)

	duty, err := coord.CreateDuty(t.Context(), asActor(admin), model.DutyRequest{
		Name: "firewood", Description: "restock", EstimatedHours: 1,
	})
	require.NoError(t, err)

	// members sign themselves up
	a, err := coord.AssignDuty(t.Context(), asActor(member), duty.ID, model.AssignmentRequest{})
	require.NoError(t, err)
	assert.Equal(t, member.ID, a.UserID)

	// but cannot volunteer someone else
	_, err = coord.AssignDuty(t.Context(), asActor(member), duty.ID, model.AssignmentRequest{UserID: other.ID})
	assert.Equal(t, KindAuthorization, KindOf(err))

	// admins can
	a, err = coord.AssignDuty(t.Context(), asActor(admin), duty.ID, model.AssignmentRequest{UserID: other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, a.UserID)

	// only the assignee or an admin may move it
	_, err = coord.TransitionAssignment(t.Context(), asActor(member), a.ID, model.TransitionRequest{Status: model.StatusInProgress})
	assert.Equal(t, KindAuthorization, KindOf(err))
	_, err = coord.TransitionAssignment(t.Context(), asActor(other), a.ID, model.TransitionRequest{Status: model.StatusInProgress})
	assert.NoError(t, err)
}

func TestSelfDemotionNeedsConfirmation(t *testing.T) {
	db, coord, _ := setupCoordinator(t)
	admin := createTestUser(t, db, "root", model.RoleAdmin)
	createTestUser(t, db, "root2", model.RoleAdmin)

	outcome, err := coord.RequestRoleChange(t.Context(), asActor(admin), admin.ID, model.RoleMember)
	require.NoError(t, err)
	require.NotNil(t, outcome.Pending)
	assert.Nil(t, outcome.Committed)

	// nothing was written
	var check model.User
	require.NoError(t, db.First(&check, admin.ID).Error)
	assert.Equal(t, model.RoleAdmin, check.Role)

	committed, err := coord.ConfirmRoleChange(t.Context(), asActor(admin), admin.ID, model.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, committed.User.Role)
	assert.True(t, committed.SessionStale)
}

func TestRoleChangeOnOthersCommitsDirectly(t *testing.T) {
	db, coord, _ := setupCoordinator(t)
	admin := createTestUser(t, db, "root", model.RoleAdmin)
	member := createTestUser(t, db, "bob", model.RoleMember)

	outcome, err := coord.RequestRoleChange(t.Context(), asActor(admin), member.ID, model.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, outcome.Committed)
	assert.Nil(t, outcome.Pending)
	assert.Equal(t, model.RoleAdmin, outcome.Committed.User.Role)
	assert.False(t, outcome.Committed.SessionStale)

	// promoting yourself is also direct; the session still goes stale
	demoted, err := coord.ConfirmRoleChange(t.Context(), asActor(admin), admin.ID, model.RoleMember)
	require.NoError(t, err)
	assert.True(t, demoted.SessionStale)
}

func TestSoleAdminCannotConfirmDemotion(t *testing.T) {
	db, coord, _ := setupCoordinator(t)
	admin := createTestUser(t, db, "root", model.RoleAdmin)

	outcome, err := coord.RequestRoleChange(t.Context(), asActor(admin), admin.ID, model.RoleMember)
	require.NoError(t, err)
	require.NotNil(t, outcome.Pending)

	_, err = coord.ConfirmRoleChange(t.Context(), asActor(admin), admin.ID, model.RoleMember)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestReservationOwnershipOnDelete(t *testing.T) {
	db, coord, _ := setupCoordinator(t)
	admin := createTestUser(t, db, "root", model.RoleAdmin)
	alice := createTestUser(t, db, "alice", model.RoleMember)
	bob := createTestUser(t, db, "bob", model.RoleMember)

	res, err := coord.CreateReservation(t.Context(), asActor(alice), model.ReservationRequest{
		StartDate: date(1), EndDate: date(3),
	})
	require.NoError(t, err)

	assert.Equal(t, KindAuthorization, KindOf(coord.DeleteReservation(t.Context(), asActor(bob), res.ID)))
	assert.NoError(t, coord.DeleteReservation(t.Context(), asActor(admin), res.ID))
}

func TestDocumentOwnershipOnDelete(t *testing.T) {
	db, coord, _ := setupCoordinator(t)
	admin := createTestUser(t, db, "root", model.RoleAdmin)
	alice := createTestUser(t, db, "alice", model.RoleMember)
	bob := createTestUser(t, db, "bob", model.RoleMember)

	doc, err := coord.UploadDocument(t.Context(), asActor(alice), "a.txt", "text/plain", []byte("x"), "")
	require.NoError(t, err)

	assert.Equal(t, KindAuthorization, KindOf(coord.DeleteDocument(t.Context(), asActor(bob), doc.ID)))
	assert.NoError(t, coord.DeleteDocument(t.Context(), asActor(alice), doc.ID))

	doc, err = coord.UploadDocument(t.Context(), asActor(bob), "b.txt", "text/plain", []byte("y"), "")
	require.NoError(t, err)
	assert.NoError(t, coord.DeleteDocument(t.Context(), asActor(admin), doc.ID))
}

func TestSignupAlwaysCreatesMember(t *testing.T) {
	_, coord, _ := setupCoordinator(t)

	u, err := coord.Signup(t.Context(), model.SignupRequest{
		Username: "newbie", Email: "newbie@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, u.Role)
}

func TestUpdateUserAuthorization(t *testing.T) {
	db, coord, _ := setupCoordinator(t)
	alice := createTestUser(t, db, "alice", model.RoleMember)
	bob := createTestUser(t, db, "bob", model.RoleMember)

	_, err := coord.UpdateUser(t.Context(), asActor(alice), bob.ID, model.UpdateUserRequest{FirstName: "B"})
	assert.Equal(t, KindAuthorization, KindOf(err))

	u, err := coord.UpdateUser(t.Context(), asActor(alice), alice.ID, model.UpdateUserRequest{FirstName: "A"})
	require.NoError(t, err)
	assert.Equal(t, "A", u.FirstName)
}

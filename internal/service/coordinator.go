package service

import (
	"context"
	"iter"

	"lakehouse-scheduler/internal/logger"
	"lakehouse-scheduler/internal/model"
)

// Actor is the authenticated caller of a façade operation, carried
// explicitly instead of living in ambient session state.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

// Coordinator is the single entry point handlers call. It owns
// authorization and the cross-store protocols; record-level rules stay in
// the individual stores.
type Coordinator struct {
	users        *UserService
	reservations *ReservationService
	duties       *DutyService
	documents    *DocumentService
}

func NewCoordinator(users *UserService, reservations *ReservationService, duties *DutyService, documents *DocumentService) *Coordinator {
	return &Coordinator{users: users, reservations: reservations, duties: duties, documents: documents}
}

// ---- reservations ----

func (c *Coordinator) CreateReservation(ctx context.Context, actor Actor, req model.ReservationRequest) (*model.Reservation, error) {
	res, err := c.reservations.Create(ctx, actor.ID, req.StartDate, req.EndDate, req.Notes)
	if err != nil {
		return nil, err
	}
	logger.Info("reservation.created", "id", res.ID, "owner", actor.ID, "start", res.StartDate, "end", res.EndDate)
	return res, nil
}

func (c *Coordinator) Reservations(ctx context.Context) iter.Seq2[model.Reservation, error] {
	return c.reservations.All(ctx)
}

func (c *Coordinator) UpcomingReservations(ctx context.Context) ([]model.Reservation, error) {
	return c.reservations.Upcoming(ctx)
}

func (c *Coordinator) MyReservations(ctx context.Context, actor Actor) ([]model.Reservation, error) {
	return c.reservations.ByOwner(ctx, actor.ID)
}

func (c *Coordinator) DeleteReservation(ctx context.Context, actor Actor, id uint) error {
	res, err := c.reservations.Get(ctx, id)
	if err != nil {
		return err
	}
	if res.UserID != actor.ID && !actor.IsAdmin() {
		return Unauthorized("only the owner or an administrator may delete a reservation")
	}
	if err := c.reservations.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("reservation.deleted", "id", id, "actor", actor.ID)
	return nil
}

// ---- duties ----

func (c *Coordinator) CreateDuty(ctx context.Context, actor Actor, req model.DutyRequest) (*model.Duty, error) {
	if !actor.IsAdmin() {
		return nil, Unauthorized("administrator role required")
	}
	return c.duties.CreateDuty(ctx, req)
}

func (c *Coordinator) UpdateDuty(ctx context.Context, actor Actor, id uint, req model.DutyUpdateRequest) (*model.Duty, error) {
	if !actor.IsAdmin() {
		return nil, Unauthorized("administrator role required")
	}
	return c.duties.UpdateDuty(ctx, id, req)
}

func (c *Coordinator) ActiveDuties(ctx context.Context) ([]model.Duty, error) {
	return c.duties.ActiveDuties(ctx)
}

func (c *Coordinator) Duties(ctx context.Context, actor Actor) ([]model.Duty, error) {
	if !actor.IsAdmin() {
		return nil, Unauthorized("administrator role required")
	}
	return c.duties.Duties(ctx)
}

// AssignDuty lets anyone sign themselves up for an active duty; assigning
// someone else is an administrator action.
func (c *Coordinator) AssignDuty(ctx context.Context, actor Actor, dutyID uint, req model.AssignmentRequest) (*model.DutyAssignment, error) {
	assignee := req.UserID
	if assignee == 0 {
		assignee = actor.ID
	}
	if assignee != actor.ID && !actor.IsAdmin() {
		return nil, Unauthorized("only administrators may assign duties to other users")
	}
	assignment, err := c.duties.Assign(ctx, dutyID, assignee, req.AssignedDate, req.Notes)
	if err != nil {
		return nil, err
	}
	logger.Info("duty.assigned", "duty", dutyID, "assignee", assignee, "actor", actor.ID)
	return assignment, nil
}

func (c *Coordinator) TransitionAssignment(ctx context.Context, actor Actor, id uint, req model.TransitionRequest) (*model.DutyAssignment, error) {
	assignment, err := c.duties.Assignment(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.UserID != actor.ID && !actor.IsAdmin() {
		return nil, Unauthorized("only the assignee or an administrator may update an assignment")
	}
	updated, err := c.duties.Transition(ctx, id, req.Status, req.CompletedDate)
	if err != nil {
		return nil, err
	}
	logger.Info("assignment.transitioned", "id", id, "status", updated.Status, "actor", actor.ID)
	return updated, nil
}

func (c *Coordinator) Assignments(ctx context.Context) ([]model.DutyAssignment, error) {
	return c.duties.Assignments(ctx)
}

func (c *Coordinator) MyAssignments(ctx context.Context, actor Actor) ([]model.DutyAssignment, error) {
	return c.duties.AssignmentsByUser(ctx, actor.ID)
}

// ---- users and roles ----

func (c *Coordinator) CreateUser(ctx context.Context, actor Actor, req model.CreateUserRequest) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, Unauthorized("administrator role required")
	}
	return c.users.Create(ctx, req)
}

// Signup self-registers a new member; the requested role is ignored.
func (c *Coordinator) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	return c.users.Create(ctx, model.CreateUserRequest{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Role:      model.RoleMember,
	})
}

func (c *Coordinator) User(ctx context.Context, id uint) (*model.User, error) {
	return c.users.Get(ctx, id)
}

func (c *Coordinator) Users(ctx context.Context, actor Actor) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, Unauthorized("administrator role required")
	}
	return c.users.List(ctx)
}

func (c *Coordinator) UsersByRole(ctx context.Context, actor Actor, role string) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, Unauthorized("administrator role required")
	}
	return c.users.ListByRole(ctx, role)
}

// UpdateUser lets users edit their own profile; editing anyone else
// requires ADMIN.
func (c *Coordinator) UpdateUser(ctx context.Context, actor Actor, id uint, req model.UpdateUserRequest) (*model.User, error) {
	if id != actor.ID && !actor.IsAdmin() {
		return nil, Unauthorized("only administrators may edit other users")
	}
	return c.users.Update(ctx, id, req)
}

func (c *Coordinator) DeleteUser(ctx context.Context, actor Actor, id uint) error {
	if !actor.IsAdmin() {
		return Unauthorized("administrator role required")
	}
	if err := c.users.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("user.deleted", "id", id, "actor", actor.ID)
	return nil
}

// RoleChangeOutcome is a two-variant result: exactly one of Committed and
// Pending is set.
type RoleChangeOutcome struct {
	Committed *RoleChangeCommitted
	Pending   *RoleChangePending
}

type RoleChangeCommitted struct {
	User *model.User
	// SessionStale is set when the actor changed their own role. The
	// caller must rebuild its cached identity from User instead of
	// assuming the session role is still valid.
	SessionStale bool
}

// RoleChangePending reports that the change was withheld and needs an
// explicit confirmation call.
type RoleChangePending struct {
	TargetID uint
	NewRole  string
	Warning  string
}

// RequestRoleChange changes a user's role, except that an administrator
// demoting themselves gets a pending outcome and nothing is written until
// ConfirmRoleChange.
func (c *Coordinator) RequestRoleChange(ctx context.Context, actor Actor, targetID uint, newRole string) (*RoleChangeOutcome, error) {
	if !actor.IsAdmin() {
		return nil, Unauthorized("administrator role required")
	}
	if actor.ID == targetID && newRole == model.RoleMember {
		if _, err := c.users.Get(ctx, targetID); err != nil {
			return nil, err
		}
		return &RoleChangeOutcome{Pending: &RoleChangePending{
			TargetID: targetID,
			NewRole:  newRole,
			Warning:  "demoting yourself immediately revokes your administrative access",
		}}, nil
	}
	committed, err := c.ConfirmRoleChange(ctx, actor, targetID, newRole)
	if err != nil {
		return nil, err
	}
	return &RoleChangeOutcome{Committed: committed}, nil
}

// ConfirmRoleChange commits a role change previously withheld by
// RequestRoleChange (or any direct change the actor may perform).
func (c *Coordinator) ConfirmRoleChange(ctx context.Context, actor Actor, targetID uint, newRole string) (*RoleChangeCommitted, error) {
	if !actor.IsAdmin() {
		return nil, Unauthorized("administrator role required")
	}
	user, err := c.users.ChangeRole(ctx, targetID, newRole)
	if err != nil {
		return nil, err
	}
	logger.Info("user.role_changed", "id", targetID, "role", newRole, "actor", actor.ID)
	return &RoleChangeCommitted{User: user, SessionStale: actor.ID == targetID}, nil
}

// ---- documents ----

func (c *Coordinator) UploadDocument(ctx context.Context, actor Actor, name, contentType string, data []byte, description string) (*model.Document, error) {
	doc, err := c.documents.Upload(ctx, actor.ID, name, contentType, data, description)
	if err != nil {
		return nil, err
	}
	logger.Info("document.uploaded", "id", doc.ID, "name", doc.OriginalFileName, "size", doc.FileSize, "actor", actor.ID)
	return doc, nil
}

func (c *Coordinator) Documents(ctx context.Context) ([]model.Document, error) {
	return c.documents.List(ctx)
}

func (c *Coordinator) MyDocuments(ctx context.Context, actor Actor) ([]model.Document, error) {
	return c.documents.ByUploader(ctx, actor.ID)
}

func (c *Coordinator) Document(ctx context.Context, id uint) (*model.Document, error) {
	return c.documents.Get(ctx, id)
}

func (c *Coordinator) DownloadDocument(ctx context.Context, id uint) (*model.Document, []byte, error) {
	return c.documents.Download(ctx, id)
}

func (c *Coordinator) SearchDocuments(ctx context.Context, fragment string) ([]model.Document, error) {
	return c.documents.Search(ctx, fragment)
}

func (c *Coordinator) DeleteDocument(ctx context.Context, actor Actor, id uint) error {
	doc, err := c.documents.Get(ctx, id)
	if err != nil {
		return err
	}
	if doc.UserID != actor.ID && !actor.IsAdmin() {
		return Unauthorized("only the uploader or an administrator may delete a document")
	}
	if err := c.documents.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("document.deleted", "id", id, "actor", actor.ID)
	return nil
}

package model

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type SignupRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required"`
	Role      string `json:"role"`
}

// UpdateUserRequest is a partial patch: empty fields keep the current
// value, including Password ("leave blank to keep current").
type UpdateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type RoleChangeRequest struct {
	Role    string `json:"role" binding:"required"`
	Confirm bool   `json:"confirm"`
}

type ReservationRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Notes     string `json:"notes"`
}

type DutyRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description" binding:"required"`
	EstimatedHours int    `json:"estimated_hours"`
	Priority       string `json:"priority"`
}

// DutyUpdateRequest patches a duty; nil IsActive keeps the current flag.
type DutyUpdateRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	EstimatedHours int    `json:"estimated_hours"`
	Priority       string `json:"priority"`
	IsActive       *bool  `json:"is_active"`
}

type AssignmentRequest struct {
	UserID       uint   `json:"user_id"`
	AssignedDate string `json:"assigned_date"`
	Notes        string `json:"notes"`
}

type TransitionRequest struct {
	Status        string `json:"status" binding:"required"`
	CompletedDate string `json:"completed_date"`
}

package model

import "time"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

const (
	RoleMember = "MEMBER"
	RoleAdmin  = "ADMIN"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

const (
	StatusAssigned   = "ASSIGNED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	FirstName string    `gorm:"size:50" json:"first_name"`
	LastName  string    `gorm:"size:50" json:"last_name"`
	Password  string    `gorm:"size:100" json:"-"`
	Role      string    `gorm:"size:20;default:MEMBER" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	StartDate string    `gorm:"type:date;index;not null" json:"start_date"`
	EndDate   string    `gorm:"type:date;not null" json:"end_date"`
	Notes     string    `gorm:"size:500" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Duty struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Description    string    `gorm:"size:500" json:"description"`
	EstimatedHours int       `json:"estimated_hours"`
	Priority       string    `gorm:"size:20;default:MEDIUM" json:"priority"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type DutyAssignment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DutyID        uint      `gorm:"index;not null" json:"duty_id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	AssignedDate  string    `gorm:"type:date;not null" json:"assigned_date"`
	CompletedDate *string   `gorm:"type:date" json:"completed_date"`
	Status        string    `gorm:"size:20;default:ASSIGNED" json:"status"`
	Notes         string    `gorm:"size:500" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Document holds upload metadata only; the bytes live in the blob store
// under FileName.
type Document struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	FileName         string    `gorm:"size:100;uniqueIndex;not null" json:"file_name"`
	OriginalFileName string    `gorm:"size:255;not null" json:"original_file_name"`
	ContentType      string    `gorm:"size:100" json:"content_type"`
	FileSize         int64     `gorm:"not null" json:"file_size"`
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	Description      string    `gorm:"size:500" json:"description"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

func (User) TableName() string           { return "users" }
func (Reservation) TableName() string    { return "reservations" }
func (Duty) TableName() string           { return "duties" }
func (DutyAssignment) TableName() string { return "duty_assignments" }
func (Document) TableName() string       { return "documents" }

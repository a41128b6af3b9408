package service

import (
	"context"
	"errors"
	"fmt"

	"lakehouse-scheduler/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MinPasswordLength = 6

// UserService owns user records and their roles. Authorization and the
// self-demotion choreography live in the Coordinator; this store only
// guarantees record-level rules (uniqueness, credential hygiene, the
// last-admin floor, no deletion with live dependents).
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

func validRole(role string) bool {
	return role == model.RoleMember || role == model.RoleAdmin
}

func hashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", Validation("password", fmt.Sprintf("must be at least %d characters long", MinPasswordLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if req.Username == "" {
		return nil, Validation("username", "must not be empty")
	}
	if req.Email == "" {
		return nil, Validation("email", "must not be empty")
	}
	role := req.Role
	if role == "" {
		role = model.RoleMember
	}
	if !validRole(role) {
		return nil, Validation("role", "must be MEMBER or ADMIN")
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, Conflict("username is already taken")
	}
	if err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, Conflict("email is already in use")
	}

	user := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hash,
		Role:      role,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// Update applies a partial patch. Username is immutable; an empty patch
// password keeps the stored credential.
func (s *UserService) Update(ctx context.Context, id uint, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != "" && req.Email != user.Email {
		var count int64
		if err := s.db.WithContext(ctx).Model(&model.User{}).
			Where("email = ? AND id <> ?", req.Email, id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return nil, Conflict("email is already in use")
		}
		user.Email = req.Email
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	return user, nil
}

// Delete rejects users that still own a current or future reservation or a
// non-terminal duty assignment, and never removes the last administrator.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("user")
			}
			return fmt.Errorf("load user %d: %w", id, err)
		}

		if user.Role == model.RoleAdmin {
			admins, err := countAdmins(tx)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return Conflict("cannot delete the last administrator")
			}
		}

		var count int64
		if err := tx.Model(&model.Reservation{}).
			Where("user_id = ? AND end_date >= ?", id, today()).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check reservations: %w", err)
		}
		if count > 0 {
			return Conflict("user still owns current or future reservations")
		}
		if err := tx.Model(&model.DutyAssignment{}).
			Where("user_id = ? AND status IN ?", id, []string{model.StatusAssigned, model.StatusInProgress}).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check assignments: %w", err)
		}
		if count > 0 {
			return Conflict("user still holds open duty assignments")
		}

		if err := tx.Delete(&model.User{}, id).Error; err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}
		return nil
	})
}

// ChangeRole sets the role, refusing to demote the only administrator.
func (s *UserService) ChangeRole(ctx context.Context, id uint, newRole string) (*model.User, error) {
	if !validRole(newRole) {
		return nil, Validation("role", "must be MEMBER or ADMIN")
	}
	var user model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("user")
			}
			return fmt.Errorf("load user %d: %w", id, err)
		}
		if user.Role == model.RoleAdmin && newRole == model.RoleMember {
			admins, err := countAdmins(tx)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return Conflict("cannot demote the last administrator")
			}
		}
		user.Role = newRole
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("update role for user %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func countAdmins(tx *gorm.DB) (int64, error) {
	var admins int64
	if err := tx.Model(&model.User{}).
		Where("role = ?", model.RoleAdmin).Count(&admins).Error; err != nil {
		return 0, fmt.Errorf("count admins: %w", err)
	}
	return admins, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("user")
		}
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := s.db.WithContext(ctx).Order("username").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (s *UserService) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	if !validRole(role) {
		return nil, Validation("role", "must be MEMBER or ADMIN")
	}
	var out []model.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", role).Order("username").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return out, nil
}

// HasAdmin reports whether any administrator account exists.
func (s *UserService) HasAdmin(ctx context.Context) (bool, error) {
	admins, err := countAdmins(s.db.WithContext(ctx))
	if err != nil {
		return false, err
	}
	return admins > 0, nil
}

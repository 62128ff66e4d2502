package services

import (
	"context"
	"errors"

	"flexfit-api/internal/adapters/persistence/models"
	"flexfit-api/internal/adapters/persistence/repositories"
	"flexfit-api/internal/core/domain"
	"flexfit-api/internal/pkg/password"

	"gorm.io/gorm"
)

// Member service errors
var (
	ErrMemberNotFoundSvc    = errors.New("member not found")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrCurrentPasswordWrong = errors.New("current password is incorrect")
	ErrCannotDeleteSelf     = errors.New("cannot delete your own account")
)

// MemberService handles the member directory business logic
type MemberService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

// NewMemberService creates a new member service
func NewMemberService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
) *MemberService {
	return &MemberService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// CreateMemberInput represents create member input
type CreateMemberInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateMemberInput represents partial member update input (for admin)
type UpdateMemberInput struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
}

// UpdateProfileInput represents profile update input (for self)
type UpdateProfileInput struct {
	Name            *string `json:"name" validate:"omitempty,max=100"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password"`
}

// ProfileResponse represents the member-facing profile view
type ProfileResponse struct {
	*models.UserResponse
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ListMembers lists all members, newest first, each annotated with their
// latest subscription.
func (s *MemberService) ListMembers(ctx context.Context) ([]*models.MemberResponse, error) {
	users, err := s.userRepo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]*models.MemberResponse, len(users))
	for i, user := range users {
		members[i] = user.ToMemberResponse()
	}
	return members, nil
}

// CreateMember registers a member on behalf of an admin
func (s *MemberService) CreateMember(ctx context.Context, input *CreateMemberInput) (*models.UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     string(domain.RoleMember),
	}

	if err := s.userRepo.CreateWithProfile(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// UpdateMember partially updates a member's name, email or password
func (s *MemberService) UpdateMember(ctx context.Context, id uint, input *UpdateMemberInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFoundSvc
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.userRepo.EmailTakenByOther(ctx, *input.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Password != nil {
		hashedPassword, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// DeleteMember removes a member and all dependent rows (subscriptions,
// profile) in one transaction.
func (s *MemberService) DeleteMember(ctx context.Context, id uint, adminID uint) error {
	if id == adminID {
		return ErrCannotDeleteSelf
	}

	_, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFoundSvc
		}
		return err
	}

	return s.userRepo.DeleteCascade(ctx, id)
}

// GetProfile returns a member's own profile
func (s *MemberService) GetProfile(ctx context.Context, userID uint) (*ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFoundSvc
		}
		return nil, err
	}

	resp := &ProfileResponse{UserResponse: user.ToResponse()}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil && profile != nil {
		resp.Phone = profile.Phone
		resp.Address = profile.Address
	}

	return resp, nil
}

// UpdateProfile updates a member's own name, email, contact details and,
// when a new password is supplied, their credential after verifying the
// current one.
func (s *MemberService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFoundSvc
		}
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.userRepo.EmailTakenByOther(ctx, *input.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.NewPassword != "" {
		if !password.Verify(input.CurrentPassword, user.Password) {
			return nil, ErrCurrentPasswordWrong
		}
		hashedPassword, err := password.Hash(input.NewPassword)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := &ProfileResponse{UserResponse: user.ToResponse()}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil && profile != nil {
		if input.Phone != nil {
			profile.Phone = *input.Phone
		}
		if input.Address != nil {
			profile.Address = *input.Address
		}
		if input.Phone != nil || input.Address != nil {
			if err := s.profileRepo.Update(ctx, profile); err != nil {
				return nil, err
			}
		}
		resp.Phone = profile.Phone
		resp.Address = profile.Address
	}

	return resp, nil
}

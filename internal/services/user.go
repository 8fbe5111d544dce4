package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/lrmsph/lrms-backend/internal/logger"
	"github.com/lrmsph/lrms-backend/internal/repos"
	"github.com/lrmsph/lrms-backend/internal/types"
	"github.com/lrmsph/lrms-backend/internal/utils"
)

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*types.User, error)
	// Login returns the account (profile included, digest never serialized)
	// and a signed access token.
	Login(ctx context.Context, email, password string) (*types.User, string, error)
	GetAllUsers(ctx context.Context) ([]*types.User, error)
	DeleteUser(ctx context.Context, id uint) error
	UpdateUser(ctx context.Context, id uint, update UserUpdate) (*types.User, error)
	UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*types.User, error)
	ChangePassword(ctx context.Context, id uint, newPassword string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
}

type RegisterInput struct {
	Email      string     `json:"email"`
	Password   string     `json:"password"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	MiddleName *string    `json:"middleName"`
	Role       string     `json:"role"`
	Birthdate  *time.Time `json:"birthdate"`
	Age        *int       `json:"age"`
}

// UserUpdate is a partial update of account-level columns. Nil means "leave
// unchanged".
type UserUpdate struct {
	Email      *string    `json:"email"`
	FirstName  *string    `json:"firstName"`
	LastName   *string    `json:"lastName"`
	MiddleName *string    `json:"middleName"`
	Role       *string    `json:"role"`
	Birthdate  *time.Time `json:"birthdate"`
	Age        *int       `json:"age"`
	IsActive   *bool      `json:"isActive"`
}

// ProfileUpdate is a partial update applied to both the account row and its
// denormalized profile mirror. The split between the two targets is a pure
// function of this structure (see splitProfileUpdate).
type ProfileUpdate struct {
	FirstName    *string    `json:"firstName"`
	LastName     *string    `json:"lastName"`
	MiddleName   *string    `json:"middleName"`
	Role         *string    `json:"role"`
	Birthdate    *time.Time `json:"birthdate"`
	Age          *int       `json:"age"`
	EmailAddress *string    `json:"emailAddress"`
}

type userService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	mailer       Mailer
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, mailer Mailer, jwtSecretKey string, accessTTL time.Duration) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		mailer:       mailer,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (s *userService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*types.User, error) {
	exists, err := s.userRepo.EmailExists(ctx, nil, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	digest, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = "USER"
	}

	user := &types.User{
		Email:      input.Email,
		Password:   digest,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		MiddleName: input.MiddleName,
		Birthdate:  input.Birthdate,
		Age:        input.Age,
		Role:       role,
		IsActive:   true,
		Profile: &types.Profile{
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			MiddleName:   input.MiddleName,
			Birthdate:    input.Birthdate,
			Age:          input.Age,
			EmailAddress: input.Email,
			Role:         role,
		},
	}

	if err := s.inTx(ctx, func(tx *gorm.DB) error {
		_, createErr := s.userRepo.Create(ctx, tx, user)
		return createErr
	}); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("Registered user", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, "", ErrNotFound
	}
	if !user.IsActive {
		return nil, "", ErrDeactivated
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, nil, user.ID, now); err != nil {
		return nil, "", fmt.Errorf("failed to record last login: %w", err)
	}
	user.LastLogin = &now

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign access token: %w", err)
	}

	s.log.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}

func (s *userService) generateAccessToken(user *types.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"role":   user.Role,
		"exp":    time.Now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecretKey))
}

func (s *userService) GetAllUsers(ctx context.Context) ([]*types.User, error) {
	users, err := s.userRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		return s.userRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	s.log.Info("Deleted user", "user_id", id)
	return nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, update UserUpdate) (*types.User, error) {
	updates := map[string]any{}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.FirstName != nil {
		updates["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		updates["last_name"] = *update.LastName
	}
	if update.MiddleName != nil {
		updates["middle_name"] = *update.MiddleName
	}
	if update.Role != nil {
		updates["role"] = *update.Role
	}
	if update.Birthdate != nil {
		updates["birthdate"] = *update.Birthdate
	}
	if update.Age != nil {
		updates["age"] = *update.Age
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdateFields(ctx, nil, id, updates); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to update user %d: %w", id, err)
		}
	}

	user, err := s.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user %d: %w", id, err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// splitProfileUpdate divides a ProfileUpdate into the account-level column
// map and the profile-level column map. The profile mirrors the account
// fields, so every set field lands in both maps under its own column name
// (emailAddress updates the account's email column).
func splitProfileUpdate(update ProfileUpdate) (map[string]any, map[string]any) {
	userCols := map[string]any{}
	profileCols := map[string]any{}

	if update.FirstName != nil {
		userCols["first_name"] = *update.FirstName
		profileCols["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		userCols["last_name"] = *update.LastName
		profileCols["last_name"] = *update.LastName
	}
	if update.MiddleName != nil {
		userCols["middle_name"] = *update.MiddleName
		profileCols["middle_name"] = *update.MiddleName
	}
	if update.Role != nil {
		userCols["role"] = *update.Role
		profileCols["role"] = *update.Role
	}
	if update.Birthdate != nil {
		userCols["birthdate"] = *update.Birthdate
		profileCols["birthdate"] = *update.Birthdate
	}
	if update.Age != nil {
		userCols["age"] = *update.Age
		profileCols["age"] = *update.Age
	}
	if update.EmailAddress != nil {
		userCols["email"] = *update.EmailAddress
		profileCols["email_address"] = *update.EmailAddress
	}

	return userCols, profileCols
}

func (s *userService) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*types.User, error) {
	user, err := s.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	if user == nil || user.Profile == nil {
		return nil, ErrNotFound
	}

	userCols, profileCols := splitProfileUpdate(update)

	// Both targets inside one transaction: account-level changes must not
	// stick when the profile write fails.
	err = s.inTx(ctx, func(tx *gorm.DB) error {
		if len(userCols) > 0 {
			if err := s.userRepo.UpdateFields(ctx, tx, id, userCols); err != nil {
				return err
			}
		}
		if len(profileCols) > 0 {
			if err := s.userRepo.UpdateProfileFields(ctx, tx, id, profileCols); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile for user %d: %w", id, err)
	}

	updated, err := s.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user %d: %w", id, err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return updated, nil
}

func (s *userService) ChangePassword(ctx context.Context, id uint, newPassword string) error {
	digest, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, nil, id, digest); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to change password for user %d: %w", id, err)
	}
	s.log.Info("Password changed", "user_id", id)
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	digest, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, nil, user.ID, digest); err != nil {
		return fmt.Errorf("failed to reset password for user %d: %w", user.ID, err)
	}

	// Best effort: the reset already happened, a mail failure only gets
	// logged.
	if s.mailer != nil {
		if mailErr := s.mailer.SendPasswordReset(ctx, user.Email, newPassword); mailErr != nil {
			s.log.Warn("Failed to send password reset email", "user_id", user.ID, "error", mailErr)
		}
	}

	s.log.Info("Password reset", "user_id", user.ID)
	return nil
}

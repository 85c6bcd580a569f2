package services

import (
	"errors"
	"strings"

	"recruit_backend/internal/auth"
	"recruit_backend/internal/logger"
	"recruit_backend/internal/models"
	"recruit_backend/internal/repositories"
	"recruit_backend/internal/scope"
	"recruit_backend/internal/services/dto"
	"recruit_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(db *gorm.DB, caller *scope.Caller) (*dto.UserDTO, error)
	// ResolveCaller строит caller по id из токена: роль и id владеемой сущности
	// берутся из БД, а не из запроса
	ResolveCaller(db *gorm.DB, userID string) (*scope.Caller, error)
	ParseToken(token string) (*auth.Claims, error)
	// EnsureAdmin создает администратора, если пользователя с таким email нет
	EnsureAdmin(db *gorm.DB, email, password string) (bool, error)
}

type AuthServiceImpl struct {
	userRepo     repositories.UserRepository
	profileRepo  repositories.ProfileRepository
	employerRepo repositories.EmployerRepository
	tokens       *auth.TokenManager
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	employerRepo repositories.EmployerRepository,
	tokens *auth.TokenManager,
) AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		employerRepo: employerRepo,
		tokens:       tokens,
	}
}

// Register создает пользователя и профиль его роли в одной транзакции
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Role != models.UserRoleApplicant && req.Role != models.UserRoleEmployer {
		return nil, apperrors.ValidationError(map[string]string{"role": "Must be one of: APPLICANT, EMPLOYER"})
	}
	if req.Role == models.UserRoleEmployer && strings.TrimSpace(req.CompanyName) == "" {
		return nil, apperrors.ValidationError(map[string]string{"company_name": "This field is required"})
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(tx, user); err != nil {
		return nil, handleRepoError(err)
	}

	switch req.Role {
	case models.UserRoleApplicant:
		profile := &models.Profile{
			UserID:    user.ID,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
		}
		if err := s.profileRepo.Create(tx, profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.Profile = profile
	case models.UserRoleEmployer:
		employer := &models.Employer{
			UserID:      user.ID,
			CompanyName: strings.TrimSpace(req.CompanyName),
			Country:     strings.TrimSpace(req.Country),
		}
		if err := s.employerRepo.Create(tx, employer); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.Employer = employer
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("User registered", "user_id", user.ID, "role", user.Role)
	return s.issue(user)
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if err := s.attachOwned(db, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthServiceImpl) Me(db *gorm.DB, caller *scope.Caller) (*dto.UserDTO, error) {
	if caller == nil {
		return nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	user, err := s.userRepo.FindByID(db, caller.UserID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	if err := s.attachOwned(db, user); err != nil {
		return nil, err
	}
	out := dto.NewUserDTO(user)
	return &out, nil
}

func (s *AuthServiceImpl) ResolveCaller(db *gorm.DB, userID string) (*scope.Caller, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if err := s.attachOwned(db, user); err != nil {
		return nil, err
	}

	caller := &scope.Caller{UserID: user.ID, Role: user.Role}
	if user.Profile != nil {
		caller.ProfileID = user.Profile.ID
	}
	if user.Employer != nil {
		caller.EmployerID = user.Employer.ID
	}
	return caller, nil
}

func (s *AuthServiceImpl) ParseToken(token string) (*auth.Claims, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *AuthServiceImpl) EnsureAdmin(db *gorm.DB, email, password string) (bool, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return false, nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return false, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	_, err := s.userRepo.FindByEmail(tx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return false, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	admin := &models.User{
		Email:           email,
		PasswordHash:    hash,
		Role:            models.UserRoleAdmin,
		IsActive:        true,
		IsEmailVerified: true,
	}
	if err := s.userRepo.Create(tx, admin); err != nil {
		return false, handleRepoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return false, apperrors.InternalError(err)
	}
	return true, nil
}

// attachOwned подгружает профиль или работодателя в зависимости от роли
func (s *AuthServiceImpl) attachOwned(db *gorm.DB, user *models.User) error {
	switch user.Role {
	case models.UserRoleApplicant:
		profile, err := s.profileRepo.FindByUserID(db, user.ID)
		if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.InternalError(err)
		}
		user.Profile = profile
	case models.UserRoleEmployer:
		employer, err := s.employerRepo.FindByUserID(db, user.ID)
		if err != nil && !errors.Is(err, repositories.ErrEmployerNotFound) {
			return apperrors.InternalError(err)
		}
		user.Employer = employer
	}
	return nil
}

func (s *AuthServiceImpl) issue(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        dto.NewUserDTO(user),
	}, nil
}

package services

import (
	"strings"

	"recruit_backend/internal/algorithms"
	"recruit_backend/internal/models"
	"recruit_backend/internal/repositories"
	"recruit_backend/internal/scope"
	"recruit_backend/internal/services/dto"
	"recruit_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService interface {
	GetMyProfile(db *gorm.DB, caller *scope.Caller) (*dto.ProfileResponse, error)
	UpdateMyProfile(db *gorm.DB, caller *scope.Caller, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	GetCompletion(db *gorm.DB, caller *scope.Caller) (*dto.ProfileCompletionResponse, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &ProfileServiceImpl{profileRepo: profileRepo}
}

func (s *ProfileServiceImpl) GetMyProfile(db *gorm.DB, caller *scope.Caller) (*dto.ProfileResponse, error) {
	if err := requireApplicant(caller); err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindByID(db, caller.ProfileID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return newProfileResponse(profile), nil
}

// UpdateMyProfile - частичное обновление: null очищает поле, отсутствующее поле не трогается
func (s *ProfileServiceImpl) UpdateMyProfile(db *gorm.DB, caller *scope.Caller, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if err := requireApplicant(caller); err != nil {
		return nil, err
	}

	fields, err := profileUpdateFields(req)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.profileRepo.FindByID(tx, caller.ProfileID); err != nil {
		return nil, handleRepoError(err)
	}
	if err := s.profileRepo.UpdateFields(tx, caller.ProfileID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}
	profile, err := s.profileRepo.FindByID(tx, caller.ProfileID)
	if err != nil {
		return nil, handleRepoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return newProfileResponse(profile), nil
}

func (s *ProfileServiceImpl) GetCompletion(db *gorm.DB, caller *scope.Caller) (*dto.ProfileCompletionResponse, error) {
	if err := requireApplicant(caller); err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindByID(db, caller.ProfileID)
	if err != nil {
		return nil, handleRepoError(err)
	}
	return &dto.ProfileCompletionResponse{
		Completion:    algorithms.ProfileCompletion(profile),
		MissingFields: algorithms.MissingProfileFields(profile),
	}, nil
}

func profileUpdateFields(req *dto.UpdateProfileRequest) (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	setString := func(column string, o dto.Optional[string]) {
		if !o.Set {
			return
		}
		fields[column] = strings.TrimSpace(o.Value)
	}
	setString("first_name", req.FirstName)
	setString("last_name", req.LastName)
	setString("phone", req.Phone)
	setString("nationality", req.Nationality)

	if req.DateOfBirth.Set {
		if req.DateOfBirth.Null {
			fields["date_of_birth"] = nil
		} else {
			fields["date_of_birth"] = req.DateOfBirth.Value
		}
	}

	if req.AIGeneratedCV.Set {
		cv, err := jsonObject("ai_generated_cv", req.AIGeneratedCV.Value)
		if err != nil {
			return nil, err
		}
		if cv == nil {
			fields["ai_generated_cv"] = nil
		} else {
			fields["ai_generated_cv"] = cv
		}
	}
	return fields, nil
}

func newProfileResponse(p *models.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		Profile:    p,
		Completion: algorithms.ProfileCompletion(p),
	}
}

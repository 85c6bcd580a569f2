package services

import (
	"bytes"
	"encoding/json"
	"errors"

	"recruit_backend/internal/repositories"
	"recruit_backend/internal/scope"
	"recruit_backend/internal/services/dto"
	"recruit_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// handleRepoError переводит ошибки репозиториев в AppError
func handleRepoError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return apperrors.ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	case errors.Is(err, repositories.ErrEmployerNotFound):
		return apperrors.ErrEmployerNotFound
	case errors.Is(err, repositories.ErrJobOrderNotFound):
		return apperrors.ErrJobOrderNotFound
	case errors.Is(err, repositories.ErrApplicationNotFound):
		return apperrors.ErrApplicationNotFound
	case errors.Is(err, repositories.ErrApplicationExists):
		return apperrors.ErrAlreadyApplied(err)
	case errors.Is(err, repositories.ErrComplaintNotFound):
		return apperrors.ErrComplaintNotFound
	case errors.Is(err, repositories.ErrNotificationNotFound):
		return apperrors.ErrNotificationNotFound
	}
	return apperrors.InternalError(err)
}

func requireApplicant(caller *scope.Caller) error {
	if !caller.IsApplicant() {
		return apperrors.ErrInsufficientPermissions
	}
	if caller.ProfileID == "" {
		return apperrors.ErrProfileNotFound
	}
	return nil
}

func requireEmployer(caller *scope.Caller) error {
	if !caller.IsEmployer() {
		return apperrors.ErrInsufficientPermissions
	}
	if caller.EmployerID == "" {
		return apperrors.ErrEmployerNotFound
	}
	return nil
}

// requireReader - чтение вакансий и откликов: EMPLOYER (в пределах своих) или ADMIN.
// Изменения доступны только владельцу через requireEmployer.
func requireReader(caller *scope.Caller) error {
	if caller.IsAdmin() {
		return nil
	}
	return requireEmployer(caller)
}

func toPagination(q dto.ListQuery) repositories.Pagination {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	size := q.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return repositories.Pagination{Page: page, PageSize: size}
}

// jsonObject проверяет, что документ - JSON-объект. Пустой ввод дает nil.
func jsonObject(field string, raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, apperrors.ValidationError(map[string]string{field: "Must be a JSON object"})
	}
	return datatypes.JSON(trimmed), nil
}

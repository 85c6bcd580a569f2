package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для ошибок бизнес-логики платформы подбора персонала.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (оборачивание ошибок из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrAlreadyApplied - повторный отклик на ту же заявку (409).
// Текст сообщения фронтенд использует, чтобы показать информационное состояние.
func ErrAlreadyApplied(err error) *AppError {
	return Wrap(err, CodeAlreadyApplied, "application", "Already applied to this job", http.StatusConflict)
}

// =========================================================================
// Фабричные ФУНКЦИИ (создание новых ошибок)
// =========================================================================

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ
// =========================================================================

// --- Auth ---

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrAccountDisabled = New(
	CodeAccountDisabled,
	"auth",
	"Your account has been deactivated",
	http.StatusForbidden,
)

// --- Profile / Employer ---

var ErrProfileNotFound = New(CodeNotFound, "profile", "Profile not found", http.StatusNotFound)

var ErrEmployerNotFound = New(CodeNotFound, "employer", "Employer not found", http.StatusNotFound)

var ErrDocumentNotFound = New(CodeNotFound, "employer", "Verification document not found", http.StatusNotFound)

// --- Job orders ---

// ErrJobOrderNotFound отдается и для чужих заявок работодателя
var ErrJobOrderNotFound = New(CodeNotFound, "job_order", "Job order not found", http.StatusNotFound)

// ErrJobOrderNotActive - откликнуться можно только на ACTIVE заявку.
// Наружу отдается как 404, как и отсутствующая заявка.
var ErrJobOrderNotActive = New(CodeNotFound, "job_order", "Job order not found or not accepting applications", http.StatusNotFound)

// --- Applications ---

var ErrApplicationNotFound = New(CodeNotFound, "application", "Application not found", http.StatusNotFound)

var ErrInvalidApplicationStatus = New(
	CodeValidationFailed,
	"application",
	"Invalid application status",
	http.StatusBadRequest,
)

var ErrTransitionNotAllowed = New(
	CodeInvalidStatus,
	"application",
	"Status transition is not allowed",
	http.StatusConflict,
)

// --- Complaints / Notifications / Users ---

var ErrComplaintNotFound = New(CodeNotFound, "complaint", "Complaint not found", http.StatusNotFound)

var ErrNotificationNotFound = New(CodeNotFound, "notification", "Notification not found", http.StatusNotFound)

var ErrUserNotFound = New(CodeNotFound, "user", "User not found", http.StatusNotFound)

package validator

import (
	"encoding/json"
	"log"
	"reflect"
	"time"

	"recruit_backend/internal/models"
	"recruit_backend/internal/services/dto"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Роль при регистрации: ADMIN через API не создается
	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-application-status", validateApplicationStatus)
	mustRegister("is-job-order-status", validateJobOrderStatus)
	mustRegister("is-complaint-category", validateComplaintCategory)
	mustRegister("is-complaint-status", validateComplaintStatus)
	// Решение по документу: pending назад не выставляется
	mustRegister("is-document-status", validateDocumentDecision)
}

// registerOptionalTypes учит валидатор смотреть внутрь dto.Optional:
// не переданное или null поле валидируется как пустое.
// Числа отдаются указателем, иначе omitempty пропустит явно переданный 0.
func registerOptionalTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(dto.Optional[string]); ok && o.Present() {
			return o.Value
		}
		return nil
	}, dto.Optional[string]{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(dto.Optional[int]); ok && o.Present() {
			value := o.Value
			return &value
		}
		return nil
	}, dto.Optional[int]{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(dto.Optional[float64]); ok && o.Present() {
			value := o.Value
			return &value
		}
		return nil
	}, dto.Optional[float64]{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(dto.Optional[time.Time]); ok && o.Present() {
			return o.Value
		}
		return nil
	}, dto.Optional[time.Time]{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(dto.Optional[json.RawMessage]); ok && o.Present() {
			return string(o.Value)
		}
		return nil
	}, dto.Optional[json.RawMessage]{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(dto.Optional[models.JobOrderStatus]); ok && o.Present() {
			return string(o.Value)
		}
		return nil
	}, dto.Optional[models.JobOrderStatus]{})
}

// --- Функции валидации ---
// Пустые значения пропускаются, для этого есть 'required'.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleApplicant, models.UserRoleEmployer:
		return true
	default:
		return false
	}
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ApplicationStatus(value).IsValid()
}

func validateJobOrderStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.JobOrderStatus(value).IsValid()
}

func validateComplaintCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ComplaintCategory(value).IsValid()
}

func validateComplaintStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ComplaintStatus(value).IsValid()
}

func validateDocumentDecision(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.DocumentStatus(value) {
	case models.DocumentStatusApproved, models.DocumentStatusRejected:
		return true
	default:
		return false
	}
}

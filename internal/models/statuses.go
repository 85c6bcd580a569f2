package models

type UserRole string
type JobOrderStatus string
type ApplicationStatus string
type ComplaintCategory string
type ComplaintStatus string
type DocumentStatus string

const (
	UserRoleApplicant UserRole = "APPLICANT"
	UserRoleEmployer  UserRole = "EMPLOYER"
	UserRoleAdmin     UserRole = "ADMIN"

	JobOrderStatusActive    JobOrderStatus = "ACTIVE"
	JobOrderStatusFilled    JobOrderStatus = "FILLED"
	JobOrderStatusCancelled JobOrderStatus = "CANCELLED"
	JobOrderStatusExpired   JobOrderStatus = "EXPIRED"

	ApplicationStatusApplied     ApplicationStatus = "APPLIED"
	ApplicationStatusShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationStatusInterviewed ApplicationStatus = "INTERVIEWED"
	ApplicationStatusSelected    ApplicationStatus = "SELECTED"
	ApplicationStatusProcessing  ApplicationStatus = "PROCESSING"
	ApplicationStatusDeployed    ApplicationStatus = "DEPLOYED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"

	ComplaintCategoryEmployerIssue     ComplaintCategory = "EMPLOYER_ISSUE"
	ComplaintCategoryAgencyIssue       ComplaintCategory = "AGENCY_ISSUE"
	ComplaintCategoryDeploymentDelay   ComplaintCategory = "DEPLOYMENT_DELAY"
	ComplaintCategoryAbuse             ComplaintCategory = "ABUSE"
	ComplaintCategoryContractViolation ComplaintCategory = "CONTRACT_VIOLATION"
	ComplaintCategoryOther             ComplaintCategory = "OTHER"

	ComplaintStatusOpen     ComplaintStatus = "OPEN"
	ComplaintStatusInReview ComplaintStatus = "IN_REVIEW"
	ComplaintStatusResolved ComplaintStatus = "RESOLVED"
	ComplaintStatusClosed   ComplaintStatus = "CLOSED"

	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// ApplicationStatuses - все статусы отклика в порядке воронки, REJECTED последним
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusApplied,
	ApplicationStatusShortlisted,
	ApplicationStatusInterviewed,
	ApplicationStatusSelected,
	ApplicationStatusProcessing,
	ApplicationStatusDeployed,
	ApplicationStatusRejected,
}

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleApplicant, UserRoleEmployer, UserRoleAdmin:
		return true
	}
	return false
}

func (s JobOrderStatus) IsValid() bool {
	switch s {
	case JobOrderStatusActive, JobOrderStatusFilled, JobOrderStatusCancelled, JobOrderStatusExpired:
		return true
	}
	return false
}

func (s ApplicationStatus) IsValid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (c ComplaintCategory) IsValid() bool {
	switch c {
	case ComplaintCategoryEmployerIssue, ComplaintCategoryAgencyIssue, ComplaintCategoryDeploymentDelay,
		ComplaintCategoryAbuse, ComplaintCategoryContractViolation, ComplaintCategoryOther:
		return true
	}
	return false
}

func (s ComplaintStatus) IsValid() bool {
	switch s {
	case ComplaintStatusOpen, ComplaintStatusInReview, ComplaintStatusResolved, ComplaintStatusClosed:
		return true
	}
	return false
}

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusPending, DocumentStatusApproved, DocumentStatusRejected:
		return true
	}
	return false
}

// internal/domain/models/profile.go
package models

// Profile records come from the upstream users/profile and users/associate
// endpoints. Every field is optional: the upstream omits whatever a given
// account never filled in, so absent stays distinguishable from empty.

// AssociateProfile is the profile of an associate (point-of-sale) account.
type AssociateProfile struct {
	ID            *string `json:"_id,omitempty"`
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Role          *string `json:"role,omitempty"`
	AssociateCode *string `json:"associateCode,omitempty"`
	RMName        *string `json:"rmName,omitempty"`
	PANNumber     *string `json:"panNumber,omitempty"`
	BankName      *string `json:"bankName,omitempty"`
	AccountNumber *string `json:"accountNumber,omitempty"`
	IFSC          *string `json:"ifsc,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// RMProfile is the profile of a relationship manager.
type RMProfile struct {
	ID              *string `json:"_id,omitempty"`
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Role            *string `json:"role,omitempty"`
	EmployeeCode    *string `json:"employeeCode,omitempty"`
	Region          *string `json:"region,omitempty"`
	Branch          *string `json:"branch,omitempty"`
	AssociatesCount *int    `json:"associatesCount,omitempty"`
}

package enums

import "fmt"

// OperatorRole represents an account-level permissions role.
type OperatorRole string

const (
	OperatorRoleAdmin       OperatorRole = "admin"
	OperatorRoleOperator    OperatorRole = "operator"
	OperatorRoleStakeholder OperatorRole = "stakeholder"
	OperatorRoleViewer      OperatorRole = "viewer"
)

var validOperatorRoles = []OperatorRole{
	OperatorRoleAdmin,
	OperatorRoleOperator,
	OperatorRoleStakeholder,
	OperatorRoleViewer,
}

// String implements fmt.Stringer.
func (r OperatorRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known OperatorRole.
func (r OperatorRole) IsValid() bool {
	for _, candidate := range validOperatorRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseOperatorRole converts raw input into an OperatorRole.
func ParseOperatorRole(value string) (OperatorRole, error) {
	for _, candidate := range validOperatorRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid operator role %q", value)
}

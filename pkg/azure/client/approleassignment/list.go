package approleassignment

import (
	msgraph "github.com/nais/msgraph.go/v1.0"
)

type List []msgraph.AppRoleAssignment

// Has returns true if the list contains an assignment with the same app role,
// assignee and target resource as the given assignment.
func (l List) Has(assignment msgraph.AppRoleAssignment) bool {
	for _, a := range l {
		if equalUUID(a.AppRoleID, assignment.AppRoleID) &&
			equalUUID(a.PrincipalID, assignment.PrincipalID) &&
			equalUUID(a.ResourceID, assignment.ResourceID) {
			return true
		}
	}

	return false
}

func equalUUID(a, b *msgraph.UUID) bool {
	return a != nil && b != nil && *a == *b
}

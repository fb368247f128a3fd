package provisioner

import (
	"fmt"
)

// DuplicateApplicationError is returned when an application with the desired
// display name already exists in the tenant. The run stops before touching the
// directory.
type DuplicateApplicationError struct {
	DisplayName string
	ClientId    string
}

func (e DuplicateApplicationError) Error() string {
	if len(e.ClientId) > 0 {
		return fmt.Sprintf("an application named '%s' already exists in this tenant (client ID '%s')", e.DisplayName, e.ClientId)
	}

	return fmt.Sprintf("an application named '%s' already exists in this tenant", e.DisplayName)
}

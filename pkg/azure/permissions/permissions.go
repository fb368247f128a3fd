package permissions

import (
	"fmt"

	msgraph "github.com/nais/msgraph.go/v1.0"
)

// Type denotes the kind of permission exposed by a resource service principal.
type Type string

const (
	TypeDelegatedScope  Type = "delegated scope"
	TypeApplicationRole Type = "application role"
)

// Permission is a permission exposed by the resource service principal,
// resolved to the ID needed when referencing it in requiredResourceAccess,
// permission grants, and app role assignments.
type Permission struct {
	Name string
	ID   msgraph.UUID
}

// Permissions holds both permissions required by the provisioned application.
type Permissions struct {
	DelegatedScope  Permission
	ApplicationRole Permission
}

// NotFoundError is returned when the resource service principal does not expose
// a matching permission, or exposes it without an ID.
type NotFoundError struct {
	Permission string
	Resource   string
	Type       Type
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found for service principal '%s'", e.Type, e.Permission, e.Resource)
}

// DelegatedScope scans the delegated permission scopes exposed by the given
// service principal for an entry matching value.
func DelegatedScope(servicePrincipal msgraph.ServicePrincipal, value string) (Permission, error) {
	for _, scope := range servicePrincipal.OAuth2PermissionScopes {
		if matches(scope.Value, value) {
			return fromPermissionScope(scope, servicePrincipal, value)
		}
	}

	return Permission{}, notFound(value, servicePrincipal, TypeDelegatedScope)
}

// ApplicationRole scans the app roles exposed by the given service principal
// for an entry matching value.
func ApplicationRole(servicePrincipal msgraph.ServicePrincipal, value string) (Permission, error) {
	for _, role := range servicePrincipal.AppRoles {
		if matches(role.Value, value) {
			return fromAppRole(role, servicePrincipal, value)
		}
	}

	return Permission{}, notFound(value, servicePrincipal, TypeApplicationRole)
}

func fromPermissionScope(in msgraph.PermissionScope, servicePrincipal msgraph.ServicePrincipal, value string) (Permission, error) {
	if in.ID == nil {
		return Permission{}, notFound(value, servicePrincipal, TypeDelegatedScope)
	}

	return Permission{Name: value, ID: *in.ID}, nil
}

func fromAppRole(in msgraph.AppRole, servicePrincipal msgraph.ServicePrincipal, value string) (Permission, error) {
	if in.ID == nil {
		return Permission{}, notFound(value, servicePrincipal, TypeApplicationRole)
	}

	return Permission{Name: value, ID: *in.ID}, nil
}

func matches(candidate *string, value string) bool {
	return candidate != nil && *candidate == value
}

func notFound(value string, servicePrincipal msgraph.ServicePrincipal, permissionType Type) *NotFoundError {
	resource := ""
	if servicePrincipal.DisplayName != nil {
		resource = *servicePrincipal.DisplayName
	}

	return &NotFoundError{
		Permission: value,
		Resource:   resource,
		Type:       permissionType,
	}
}

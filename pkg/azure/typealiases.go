package azure

// ClientId is the client ID (application ID) of an application registration.
// It is the value used when authenticating as the application.
type ClientId = string

// ObjectId is the directory object ID of an application registration.
type ObjectId = string

// ServicePrincipalId is the directory object ID of a service principal.
type ServicePrincipalId = string

// DisplayName is the display name of an application or service principal.
// Display names are not unique within a tenant.
type DisplayName = string

// IdentifierUris is the list of application ID URIs set on an application.
type IdentifierUris = []string

// Filter is an OData $filter expression for Graph API collection requests.
type Filter = string

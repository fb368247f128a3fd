package azure

const (
	// ExchangeratorPrefix is prepended to all resource names created by this application.
	ExchangeratorPrefix = "exchangerator"
)

// PrincipalType denotes the type of the assigned principal in an app role assignment.
type PrincipalType = string

const (
	PrincipalTypeServicePrincipal PrincipalType = "ServicePrincipal"
)

package graphsdk

// A Microsoft Graph Application entity.
type Application struct {
	Id          *string `json:"id,omitempty"`
	AppId       *string `json:"appId,omitempty"`
	DisplayName string  `json:"displayName"`
	Description *string `json:"description,omitempty"`
}

type ApplicationListResponse struct {
	Value []Application `json:"value"`
}

// A Microsoft Graph Service Principal entity.
type ServicePrincipal struct {
	Id          *string `json:"id,omitempty"`
	AppId       string  `json:"appId"`
	DisplayName string  `json:"appDisplayName,omitempty"`
}

type ServicePrincipalListResponse struct {
	Value []ServicePrincipal `json:"value"`
}

// FederatedIdentityCredential is the trust record that lets an external token
// issuer exchange its tokens for Entra access tokens without a stored secret.
type FederatedIdentityCredential struct {
	Id          *string  `json:"id,omitempty"`
	Name        string   `json:"name"`
	Issuer      string   `json:"issuer"`
	Subject     string   `json:"subject"`
	Description *string  `json:"description,omitempty"`
	Audiences   []string `json:"audiences"`
}

type FederatedIdentityCredentialListResponse struct {
	Value []FederatedIdentityCredential `json:"value"`
}

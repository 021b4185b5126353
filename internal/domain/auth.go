package domain

// ============================================================
// Auth
// ============================================================

// LoginRequest is the credential exchange payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token issued by the auth service. The
// token is opaque to this client; validity is decided by the backend on
// next use.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// APIError is the error body the bank API returns on rejected requests.
// Detail is shown to the user verbatim when present.
type APIError struct {
	Detail string `json:"detail"`
}

package dto

// TokenRequest is the body of the admin login endpoint.
//
// @Description Admin credentials
// @Example {"username": "admin", "password": "s3cret-pass"}
type TokenRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required,min=6" example:"s3cret-pass"`
} // @name TokenRequest

// TokenResponse carries a signed access token.
//
// @Description Access token for catalog administration
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"Bearer"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in" example:"900"`
} // @name TokenResponse

// Claims are the application claims carried by an access token.
type Claims struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
}

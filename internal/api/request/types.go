package request

// Credentials is the request body for creating a user and logging in
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

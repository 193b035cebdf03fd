package auth

// Identity is the authenticated principal embedded in issued tokens.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

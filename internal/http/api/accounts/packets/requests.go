package packets

// body for registering
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// body for editing a user. None of the fields are required: name and email
// overwrite the stored values even when omitted (an omitted field clears the
// column). Password is the one optional field — when empty the stored hash is
// kept.
type EditRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

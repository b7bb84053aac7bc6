package dto

// RegisterRequest describes the signup payload. Birthday fields are optional
// and enable the annual gift when provided.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	BirthMonth int    `json:"birth_month,omitempty"`
	BirthDay   int    `json:"birth_day,omitempty"`
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse reports guest orders linked to the account during login.
type LoginResponse struct {
	LinkedOrders int `json:"linked_orders"`
	GuestOrders  int `json:"guest_orders"`
}

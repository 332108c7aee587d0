package models

// Credentials is the login form of the admin panel.
type Credentials struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	RememberMe bool   `json:"rememberMe"`
}

// Session describes the current admin session state.
type Session struct {
	LoggedIn        bool   `json:"loggedIn"`
	RememberedEmail string `json:"rememberedEmail,omitempty"`
}

package dto

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegistroRequest struct {
	Email    string  `json:"email"    validate:"required,email"`
	Nombre   string  `json:"nombre"   validate:"required,min=2"`
	Telefono *string `json:"telefono"`
	Password string  `json:"password" validate:"required,min=6"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type UsuarioResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Nombre   string  `json:"nombre"`
	Telefono *string `json:"telefono,omitempty"`
	Rol      string  `json:"rol"`
	Activo   bool    `json:"activo"`
}

type CrearUsuarioRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Nombre   string `json:"nombre"   validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=6"`
	Rol      string `json:"rol"      validate:"required,oneof=admin supervisor cliente"`
}

type ActualizarUsuarioRequest struct {
	Nombre   string  `json:"nombre"`
	Telefono *string `json:"telefono"`
	Password string  `json:"password" validate:"omitempty,min=6"`
	Rol      string  `json:"rol"      validate:"omitempty,oneof=admin supervisor cliente"`
}

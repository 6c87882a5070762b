package dto

type CrearProveedorRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2"`
	Contacto  *string `json:"contacto"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type ActualizarProveedorRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=2"`
	Contacto  *string `json:"contacto"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type ProveedorResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Contacto  *string `json:"contacto,omitempty"`
	Email     *string `json:"email,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Activo    bool    `json:"activo"`
}

type CategoriaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

type CrearCategoriaRequest struct {
	ID     string `json:"id"     validate:"required,lowercase,alphanum"`
	Nombre string `json:"nombre" validate:"required,min=2"`
}

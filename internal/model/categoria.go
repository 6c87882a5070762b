package model

import "time"

// Categoria classifies products ("ramos", "centros", "plantas", …).
// The ID is a human-readable slug, not a uuid — it is referenced from the
// storefront URL and from Producto.CategoriaID.
type Categoria struct {
	ID        string `gorm:"primaryKey"`
	Nombre    string `gorm:"uniqueIndex;not null"`
	Activo    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Categoria) TableName() string { return "categorias" }

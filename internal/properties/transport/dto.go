package transport

import "inmobiliaria_backend/internal/properties/domain"

// SearchRequest is the public search form as query parameters.
type SearchRequest struct {
	Operacion string `form:"operacion" validate:"omitempty,oneof=comprar alquilar"`
	Tipo      string `form:"tipo" validate:"max=30"`
	Zona      string `form:"zona" validate:"max=100"`
	PrecioMax string `form:"precioMax" validate:"max=20"`
	Status    string `form:"status" validate:"max=30"`
}

type SearchCriteria struct {
	Operacion string `json:"operacion" validate:"max=30"`
	Tipo      string `json:"tipo" validate:"max=30"`
	Zona      string `json:"zona" validate:"max=100"`
	PrecioMax string `json:"precioMax" validate:"max=20"`
	Status    string `json:"status" validate:"max=30"`
}

// PropertyAlertRequest asks to be told when listings matching a search that
// returned nothing appear.
type PropertyAlertRequest struct {
	Nombre            string         `json:"nombre" validate:"required,min=1,max=120"`
	Email             string         `json:"email" validate:"required,email,max=254"`
	Telefono          string         `json:"telefono,omitempty" validate:"omitempty,phone"`
	CriteriosBusqueda SearchCriteria `json:"criteriosBusqueda"`
}

type PropertyListResponse struct {
	Items []domain.Property `json:"items"`
	Total int               `json:"total"`
}

type PropertyAlertResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

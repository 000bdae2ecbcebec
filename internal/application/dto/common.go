package dto

// APIResponse es el sobre común de todas las respuestas HTTP:
// {success, message?, data?, errors?}.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// PageResponse metadatos de página en respuestas de listado.
type PageResponse struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total,omitempty"`
}

package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeletedResponse resultado de un borrado.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"404"`
	Category string `json:"category" example:"NOT_FOUND"`
	Message  string `json:"message" example:"Recurso não encontrado: produto p1"`
}

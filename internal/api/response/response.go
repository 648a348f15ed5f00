package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gomarket/internal/domain"
	apperror "gomarket/internal/errors"
	"gomarket/internal/pkg/logger"
)

// JSON escreve data como JSON com o status informado.
func JSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Handle processa o resultado de uma chamada de serviço e envia a resposta padronizada.
func Handle(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err == nil {
		log.Debug("Requisição concluída com sucesso", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": successStatus,
		})
		JSON(w, log, successStatus, data)
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)
	if status >= 500 {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	JSON(w, log, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// Error envia apenas o erro.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	Handle(w, r, log, nil, err, 0)
}

// Decode lê o corpo JSON da requisição em dst.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}

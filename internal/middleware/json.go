package middleware

import (
	"encoding/json"
	"net/http"

	"building-portal/internal/model"
)

func jsonEncode(w http.ResponseWriter, value any) error {
	return json.NewEncoder(w).Encode(value)
}

func writeEnvelope(w http.ResponseWriter, status int, response model.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, response)
}

package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed      = "method_not_allowed"
	codeNotFound              = "not_found"
	codeInvalidRequestBody    = "invalid_request_body"
	codeInvalidID             = "invalid_id"
	codeInvalidQuantity       = "invalid_quantity"
	codeEmptyOrder            = "empty_order"
	codeUserNotFound          = "user_not_found"
	codeProductNotFound       = "product_not_found"
	codeCampaignNotFound      = "campaign_not_found"
	codeOutOfStock            = "out_of_stock"
	codePersistenceFailed     = "persistence_failed"
	codeProductNameRequired   = "product_name_required"
	codeCampaignNameRequired  = "campaign_name_required"
	codeInvalidPrice          = "invalid_price"
	codeInvalidStock          = "invalid_stock"
	codeInvalidDiscount       = "invalid_discount"
	codeInvalidCampaignWindow = "invalid_campaign_window"
	codeForbidden             = "forbidden"
	codeInternalError         = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

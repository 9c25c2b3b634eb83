package api

import (
	"encoding/json"
	"net/http"

	"github.com/Joshua-Anderson1/scoutradioz/internal/common"
	"github.com/Joshua-Anderson1/scoutradioz/internal/localstore"
	"github.com/Joshua-Anderson1/scoutradioz/internal/models/dtos"
)

// QRTransferHandlers encode and decode LightUser records for transfer
// between devices via QR code.
type QRTransferHandlers struct {
	transferSvc *common.QRTransferService
}

// NewQRTransferHandlers creates the QR transfer handlers
func NewQRTransferHandlers(transferSvc *common.QRTransferService) *QRTransferHandlers {
	return &QRTransferHandlers{transferSvc: transferSvc}
}

// Encode signs a posted LightUser into a QR-sized token.
func (h *QRTransferHandlers) Encode(w http.ResponseWriter, r *http.Request) {
	var user localstore.LightUser
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid user payload")
		return
	}
	if user.ID == "" || user.OrgKey == "" {
		respondWithError(w, http.StatusBadRequest, "user id and org key are required")
		return
	}

	token, err := h.transferSvc.Encode(user)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to encode transfer token")
		return
	}

	resp := dtos.TransferResponse{Token: token}
	respondWithSuccess(w, http.StatusOK, &resp)
}

// Decode validates a scanned token and returns the LightUser inside.
func (h *QRTransferHandlers) Decode(w http.ResponseWriter, r *http.Request) {
	var req dtos.TransferResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		respondWithError(w, http.StatusBadRequest, "token is required")
		return
	}

	user, err := h.transferSvc.Decode(req.Token)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, "transfer token invalid or expired")
		return
	}

	respondWithSuccess(w, http.StatusOK, user)
}

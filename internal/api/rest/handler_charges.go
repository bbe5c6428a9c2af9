package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/companieshouse/charges-data-api-sub000/internal/charges"
)

func (h *Handler) handleListCharges(w http.ResponseWriter, r *http.Request) {
	companyNumber := r.PathValue("company_number")
	if companyNumber == "" {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Company number is required")
		return
	}

	var req ListChargesRequest
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(&req, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid query parameters")
		return
	}

	view, err := h.service.FindCharges(r.Context(), companyNumber, req.Filter, req.StartIndex, req.ItemsPerPage)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleGetCharge(w http.ResponseWriter, r *http.Request) {
	companyNumber := r.PathValue("company_number")
	chargeID := r.PathValue("charge_id")
	if companyNumber == "" || chargeID == "" {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Company number and charge id are required")
		return
	}

	data, err := h.service.GetCharge(r.Context(), companyNumber, chargeID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) handleUpsertCharge(w http.ResponseWriter, r *http.Request) {
	companyNumber := r.PathValue("company_number")
	chargeID := r.PathValue("charge_id")
	if companyNumber == "" || chargeID == "" {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Company number and charge id are required")
		return
	}

	var req UpsertChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body")
		return
	}

	if !req.ExternalData.Status.IsValid() {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Unknown charge status")
		return
	}

	deltaAt, err := parseDeltaAt(req.InternalData.DeltaAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	delta := charges.Delta{
		DeltaAt:   deltaAt,
		UpdatedBy: req.InternalData.UpdatedBy,
		Data:      req.ExternalData,
	}
	if err := h.service.UpsertCharge(r.Context(), companyNumber, chargeID, delta); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (h *Handler) handleDeleteCharge(w http.ResponseWriter, r *http.Request) {
	chargeID := r.PathValue("charge_id")
	if chargeID == "" {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "Charge id is required")
		return
	}

	if err := h.service.DeleteCharge(r.Context(), chargeID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

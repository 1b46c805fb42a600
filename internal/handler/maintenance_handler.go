package handler

import (
	"net/http"
	"strings"

	"building-portal/internal/model"
	"building-portal/internal/service"
	"building-portal/pkg/apierror"
)

type MaintenanceHandler struct {
	requests *service.MaintenanceService
}

func NewMaintenanceHandler(requests *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{requests: requests}
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) error {
	var filter model.MaintenanceFilter
	var fields apierror.FieldErrors

	if id, fe := queryID(r, "property_id"); fe != nil {
		fields = append(fields, *fe)
	} else {
		filter.PropertyID = id
	}
	if id, fe := queryID(r, "unit_id"); fe != nil {
		fields = append(fields, *fe)
	} else {
		filter.UnitID = id
	}
	if len(fields) > 0 {
		return apierror.Validation("invalid maintenance filters", fields...)
	}
	filter.Status = strings.TrimSpace(r.URL.Query().Get("status"))

	requests, err := h.requests.List(r.Context(), filter)
	if err != nil {
		return err
	}
	if requests == nil {
		requests = []model.MaintenanceRequest{}
	}

	writeJSON(w, http.StatusOK, model.MaintenanceList{Success: true, Requests: requests})
	return nil
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	payload, err := decodeJSON[model.CreateMaintenanceRequest](r)
	if err != nil {
		return err
	}

	request, err := h.requests.Create(r.Context(), payload)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, model.MaintenanceCreated{Success: true, RequestID: request.RequestID})
	return nil
}

func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	payload, err := decodeJSON[model.UpdateMaintenanceRequest](r)
	if err != nil {
		return err
	}

	if err := h.requests.Update(r.Context(), payload); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, model.Message{Success: true, Message: "Maintenance request updated successfully"})
	return nil
}

func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, fe := queryID(r, "request_id")
	if fe != nil {
		return apierror.Validation("invalid maintenance identifier", *fe)
	}

	if err := h.requests.Delete(r.Context(), id); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, model.Message{Success: true, Message: "Maintenance request deleted successfully"})
	return nil
}

package handler

import (
	"net/http"

	"building-portal/internal/model"
	"building-portal/internal/service"
	"building-portal/pkg/apierror"
)

type OccupantHandler struct {
	occupants *service.OccupantService
}

func NewOccupantHandler(occupants *service.OccupantService) *OccupantHandler {
	return &OccupantHandler{occupants: occupants}
}

func (h *OccupantHandler) List(w http.ResponseWriter, r *http.Request) error {
	var filter model.OccupantFilter
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
	if id, fe := queryID(r, "lease_id"); fe != nil {
		fields = append(fields, *fe)
	} else {
		filter.LeaseID = id
	}
	if len(fields) > 0 {
		return apierror.Validation("invalid occupant filters", fields...)
	}

	occupants, err := h.occupants.List(r.Context(), filter)
	if err != nil {
		return err
	}
	if occupants == nil {
		occupants = []model.Occupant{}
	}

	writeJSON(w, http.StatusOK, model.OccupantList{Success: true, Occupants: occupants})
	return nil
}

func (h *OccupantHandler) Create(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	payload, err := decodeJSON[model.CreateOccupantRequest](r)
	if err != nil {
		return err
	}

	occupant, err := h.occupants.Create(r.Context(), payload)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, model.OccupantCreated{Success: true, OccupantID: occupant.OccupantID})
	return nil
}

func (h *OccupantHandler) Update(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	payload, err := decodeJSON[model.UpdateOccupantRequest](r)
	if err != nil {
		return err
	}

	if err := h.occupants.Update(r.Context(), payload); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, model.Message{Success: true, Message: "Occupant updated successfully"})
	return nil
}

// Delete takes its target from the occupant_id query parameter.
func (h *OccupantHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, fe := queryID(r, "occupant_id")
	if fe != nil {
		return apierror.Validation("invalid occupant identifier", *fe)
	}

	if err := h.occupants.Delete(r.Context(), id); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, model.Message{Success: true, Message: "Occupant deleted successfully"})
	return nil
}

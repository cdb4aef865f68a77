package handler

import (
	"net/http"

	"uptime-api/internal/apperror"
	"uptime-api/internal/auth"
	"uptime-api/internal/model"
	"uptime-api/internal/validation"
)

// CreateCheck handles POST /checks.
// Required payload: protocol, url, method, successCodes, timeoutSeconds.
// The caller is identified by the token header; the check is created with
// the token owner's phone and appended to that user's check list.
func (h *Handler) CreateCheck(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !validation.Validate(checkCreateRules, req) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	protocol, _ := stringField(req.Payload, "protocol")
	checkURL, _ := stringField(req.Payload, "url")
	method, _ := stringField(req.Payload, "method")
	timeoutSeconds, _ := intField(req.Payload, "timeoutSeconds")
	successCodes, ok := intSliceField(req.Payload, "successCodes")
	if !ok {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	tokenID := token(req)
	if tokenID == "" {
		h.respondError(w, apperror.ErrUnauthorized)
		return
	}

	var tok model.Token
	if err := h.store.Read(r.Context(), model.CollectionTokens, tokenID, &tok); err != nil {
		h.respondError(w, apperror.ErrUnauthorized)
		return
	}
	if h.auth.Expired(tok) {
		h.respondError(w, apperror.ErrUnauthorized)
		return
	}

	var user model.User
	if err := h.store.Read(r.Context(), model.CollectionUsers, tok.Phone, &user); err != nil {
		h.respondError(w, apperror.ErrUnauthorized)
		return
	}

	if len(user.Checks) >= h.cfg.MaxChecks {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	checkID, err := auth.NewCheckID()
	if err != nil {
		h.respondError(w, err)
		return
	}

	check := model.Check{
		ID:             checkID,
		UserPhone:      tok.Phone,
		Protocol:       protocol,
		URL:            checkURL,
		Method:         method,
		SuccessCodes:   successCodes,
		TimeoutSeconds: timeoutSeconds,
	}
	if err := h.store.Create(r.Context(), model.CollectionChecks, checkID, check); err != nil {
		h.respondError(w, err)
		return
	}

	// Read-modify-write on the user's check list; not atomic relative to
	// other writers of the same user document.
	user.Checks = append(user.Checks, checkID)
	if err := h.store.Update(r.Context(), model.CollectionUsers, tok.Phone, user); err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusCreated, check)
}

// GetCheck handles GET /checks?id=. Requires a token owned by the check's
// owner.
func (h *Handler) GetCheck(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !validation.Validate(checkGetRules, req) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	id, _ := stringField(req.Query, "id")

	var check model.Check
	if err := h.store.Read(r.Context(), model.CollectionChecks, id, &check); err != nil {
		h.respondError(w, err)
		return
	}

	if !h.auth.VerifyToken(r.Context(), token(req), check.UserPhone) {
		h.respondError(w, apperror.ErrUnauthorized)
		return
	}

	h.respond(w, http.StatusOK, check)
}

// UpdateCheck handles PUT /checks.
// Required payload: id. Optional: protocol, url, method, successCodes,
// timeoutSeconds, at least one of which must be present. Present fields
// are merged over the stored check.
func (h *Handler) UpdateCheck(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !validation.Validate(checkUpdateRules, req) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	id, _ := stringField(req.Payload, "id")
	protocol, hasProtocol := stringField(req.Payload, "protocol")
	checkURL, hasURL := stringField(req.Payload, "url")
	method, hasMethod := stringField(req.Payload, "method")
	timeoutSeconds, hasTimeout := intField(req.Payload, "timeoutSeconds")
	successCodes, hasCodes := intSliceField(req.Payload, "successCodes")
	if _, present := req.Payload["successCodes"]; present && !hasCodes {
		h.respondError(w, apperror.ErrValidation)
		return
	}
	if !hasProtocol && !hasURL && !hasMethod && !hasTimeout && !hasCodes {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	var check model.Check
	if err := h.store.Read(r.Context(), model.CollectionChecks, id, &check); err != nil {
		h.respondError(w, err)
		return
	}

	if !h.auth.VerifyToken(r.Context(), token(req), check.UserPhone) {
		h.respondError(w, apperror.ErrUnauthorized)
		return
	}

	if hasProtocol {
		check.Protocol = protocol
	}
	if hasURL {
		check.URL = checkURL
	}
	if hasMethod {
		check.Method = method
	}
	if hasTimeout {
		check.TimeoutSeconds = timeoutSeconds
	}
	if hasCodes {
		check.SuccessCodes = successCodes
	}

	if err := h.store.Update(r.Context(), model.CollectionChecks, id, check); err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusOK, check)
}

// DeleteCheck handles DELETE /checks?id=. Requires a token owned by the
// check's owner. The id is also removed from the owner's check list.
func (h *Handler) DeleteCheck(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !validation.Validate(checkDeleteRules, req) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	id, _ := stringField(req.Query, "id")

	var check model.Check
	if err := h.store.Read(r.Context(), model.CollectionChecks, id, &check); err != nil {
		h.respondError(w, err)
		return
	}

	if !h.auth.VerifyToken(r.Context(), token(req), check.UserPhone) {
		h.respondError(w, apperror.ErrUnauthorized)
		return
	}

	if err := h.store.Delete(r.Context(), model.CollectionChecks, id); err != nil {
		h.respondError(w, err)
		return
	}

	var user model.User
	if err := h.store.Read(r.Context(), model.CollectionUsers, check.UserPhone, &user); err == nil {
		remaining := user.Checks[:0]
		for _, checkID := range user.Checks {
			if checkID != id {
				remaining = append(remaining, checkID)
			}
		}
		user.Checks = remaining
		if err := h.store.Update(r.Context(), model.CollectionUsers, check.UserPhone, user); err != nil {
			h.respondError(w, err)
			return
		}
	}

	h.respond(w, http.StatusOK, nil)
}

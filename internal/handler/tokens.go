package handler

import (
	"net/http"

	"uptime-api/internal/apperror"
	"uptime-api/internal/auth"
	"uptime-api/internal/model"
	"uptime-api/internal/validation"
)

// CreateToken handles POST /tokens (login).
// Required payload: phone, password. On success the new token document is
// returned with an expiry one TTL from now.
func (h *Handler) CreateToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !validation.Validate(tokenCreateRules, req) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	phone, _ := stringField(req.Payload, "phone")
	password, _ := stringField(req.Payload, "password")

	var user model.User
	if err := h.store.Read(r.Context(), model.CollectionUsers, phone, &user); err != nil {
		h.respondError(w, err)
		return
	}

	if !h.hasher.Matches(password, user.HashedPassword) {
		h.respondError(w, apperror.ErrUnauthorized)
		return
	}

	tok := model.Token{
		Phone:   phone,
		ID:      auth.NewTokenID(),
		Expires: h.auth.NewExpiry(h.cfg.TokenTTL),
	}
	if err := h.store.Create(r.Context(), model.CollectionTokens, tok.ID, tok); err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusOK, tok)
}

// GetToken handles GET /tokens?id=.
func (h *Handler) GetToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !validation.Validate(tokenGetRules, req) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	id, _ := stringField(req.Query, "id")

	var tok model.Token
	if err := h.store.Read(r.Context(), model.CollectionTokens, id, &tok); err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusOK, tok)
}

// RenewToken handles PUT /tokens (renewal).
// Required payload: id, extend (must be true). Renewal extends the expiry
// by one TTL but is rejected once the token has already expired.
func (h *Handler) RenewToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !validation.Validate(tokenRenewRules, req) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	id, _ := stringField(req.Payload, "id")

	var tok model.Token
	if err := h.store.Read(r.Context(), model.CollectionTokens, id, &tok); err != nil {
		h.respondError(w, err)
		return
	}

	if h.auth.Expired(tok) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	tok.Expires = h.auth.NewExpiry(h.cfg.TokenTTL)
	if err := h.store.Update(r.Context(), model.CollectionTokens, id, tok); err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusOK, tok)
}

// DeleteToken handles DELETE /tokens?id= (logout). A deleted token is
// indistinguishable from one that never existed.
func (h *Handler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !validation.Validate(tokenDeleteRules, req) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	id, _ := stringField(req.Query, "id")
	if err := h.store.Delete(r.Context(), model.CollectionTokens, id); err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusOK, nil)
}

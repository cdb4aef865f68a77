package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"uptime-api/internal/apperror"
	"uptime-api/internal/model"
	"uptime-api/internal/validation"
)

// CreateUser handles POST /users.
// Required payload: firstName, lastName, phone, password, tosAgreement.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !validation.Validate(userCreateRules, req) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	firstName, _ := stringField(req.Payload, "firstName")
	lastName, _ := stringField(req.Payload, "lastName")
	phone, _ := stringField(req.Payload, "phone")
	password, _ := stringField(req.Payload, "password")
	tosAgreement, _ := boolField(req.Payload, "tosAgreement")

	hashedPassword, err := h.hasher.Hash(password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	user := model.User{
		FirstName:      firstName,
		LastName:       lastName,
		Phone:          phone,
		HashedPassword: hashedPassword,
		TOSAgreement:   tosAgreement,
	}

	// Exclusive create doubles as the duplicate-signup check: a concurrent
	// signup race resolves to one winner and one conflict.
	if err := h.store.Create(r.Context(), model.CollectionUsers, phone, user); err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusCreated, nil)
}

// GetUser handles GET /users?phone=. Requires a token owned by that phone.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !validation.Validate(userGetRules, req) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	phone, _ := stringField(req.Query, "phone")
	if !h.auth.VerifyToken(r.Context(), token(req), phone) {
		h.respondError(w, apperror.ErrUnauthorized)
		return
	}

	var user model.User
	if err := h.store.Read(r.Context(), model.CollectionUsers, phone, &user); err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusOK, user.Public())
}

// UpdateUser handles PUT /users.
// Required payload: phone. Optional: firstName, lastName, password, at
// least one of which must be present. The merge happens in memory; the
// store replaces the whole document.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !validation.Validate(userUpdateRules, req) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	phone, _ := stringField(req.Payload, "phone")
	firstName, hasFirst := stringField(req.Payload, "firstName")
	lastName, hasLast := stringField(req.Payload, "lastName")
	password, hasPassword := stringField(req.Payload, "password")
	if !hasFirst && !hasLast && !hasPassword {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	if !h.auth.VerifyToken(r.Context(), token(req), phone) {
		h.respondError(w, apperror.ErrUnauthorized)
		return
	}

	var user model.User
	if err := h.store.Read(r.Context(), model.CollectionUsers, phone, &user); err != nil {
		h.respondError(w, err)
		return
	}

	if hasFirst {
		user.FirstName = firstName
	}
	if hasLast {
		user.LastName = lastName
	}
	if hasPassword {
		hashedPassword, err := h.hasher.Hash(password)
		if err != nil {
			h.respondError(w, err)
			return
		}
		user.HashedPassword = hashedPassword
	}

	if err := h.store.Update(r.Context(), model.CollectionUsers, phone, user); err != nil {
		h.respondError(w, err)
		return
	}

	h.respond(w, http.StatusOK, nil)
}

// DeleteUser handles DELETE /users?phone=. Requires a token owned by that
// phone. The user's checks are deleted along with the account; outstanding
// tokens are not cascaded and simply age out (known gap).
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if !validation.Validate(userDeleteRules, req) {
		h.respondError(w, apperror.ErrValidation)
		return
	}

	phone, _ := stringField(req.Query, "phone")
	if !h.auth.VerifyToken(r.Context(), token(req), phone) {
		h.respondError(w, apperror.ErrUnauthorized)
		return
	}

	var user model.User
	if err := h.store.Read(r.Context(), model.CollectionUsers, phone, &user); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.store.Delete(r.Context(), model.CollectionUsers, phone); err != nil {
		h.respondError(w, err)
		return
	}

	for _, checkID := range user.Checks {
		if err := h.store.Delete(r.Context(), model.CollectionChecks, checkID); err != nil &&
			!errors.Is(err, apperror.ErrNotFound) {
			h.log.Error("failed to delete check for removed user",
				zap.String("phone", phone),
				zap.String("checkId", checkID),
				zap.Error(err))
		}
	}

	h.respond(w, http.StatusOK, nil)
}

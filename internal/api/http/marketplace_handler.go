package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"carhive-backend/internal/domain"
	"carhive-backend/internal/security"
	"carhive-backend/internal/service"
)

// MarketplaceHandler exposes the rental lifecycle over JSON. Privileged
// routes expect the authority capability as a Bearer token; the service
// layer validates it and the engine compares identities.
type MarketplaceHandler struct {
	svc service.MarketplaceService
}

func NewMarketplaceHandler(svc service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{svc: svc}
}

// RegisterRoutes attaches all marketplace routes to the router.
func (h *MarketplaceHandler) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/listings", h.HandleAddListing).Methods(http.MethodPost)
	api.HandleFunc("/listings", h.HandleListListings).Methods(http.MethodGet)
	api.HandleFunc("/listings/{index}", h.HandleGetListing).Methods(http.MethodGet)
	api.HandleFunc("/listings/{index}", h.HandleUnlist).Methods(http.MethodDelete)
	api.HandleFunc("/listings/{index}/rent", h.HandleRent).Methods(http.MethodPost)
	api.HandleFunc("/rentals/return", h.HandleReturn).Methods(http.MethodPost)
	api.HandleFunc("/rentals/extend", h.HandleExtend).Methods(http.MethodPost)
	api.HandleFunc("/rentals/expire", h.HandleExpire).Methods(http.MethodPost)
	api.HandleFunc("/rentals/expire-overdue", h.HandleExpireOverdue).Methods(http.MethodPost)
	api.HandleFunc("/withdrawals", h.HandleWithdraw).Methods(http.MethodPost)
	api.HandleFunc("/balances", h.HandleBalances).Methods(http.MethodGet)
}

func (h *MarketplaceHandler) HandleAddListing(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authority token")
		return
	}

	var in service.AddListingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.svc.AddListing(r.Context(), token, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *MarketplaceHandler) HandleListListings(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListListings(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"listings": entries})
}

func (h *MarketplaceHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	entry, err := h.svc.GetListing(r.Context(), index)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *MarketplaceHandler) HandleUnlist(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authority token")
		return
	}
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	if err := h.svc.Unlist(r.Context(), token, index); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type rentRequest struct {
	Periods      uint64    `json:"periods"`
	RenterID     uuid.UUID `json:"renter_id"`
	PaymentCents uint64    `json:"payment_cents"`
}

func (h *MarketplaceHandler) HandleRent(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	var req rentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RenterID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "renter_id is required")
		return
	}

	rental, err := h.svc.Rent(r.Context(), index, req.Periods, req.RenterID, req.PaymentCents)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

type returnRequest struct {
	Rental domain.ActiveRental `json:"rental"`
}

func (h *MarketplaceHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	refund, err := h.svc.Return(r.Context(), &req.Rental)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"refund_cents": refund})
}

type extendRequest struct {
	Rental       domain.ActiveRental `json:"rental"`
	ExtraPeriods uint64              `json:"extra_periods"`
	PaymentCents uint64              `json:"payment_cents"`
}

func (h *MarketplaceHandler) HandleExtend(w http.ResponseWriter, r *http.Request) {
	var req extendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Extend(r.Context(), &req.Rental, req.ExtraPeriods, req.PaymentCents); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req.Rental)
}

func (h *MarketplaceHandler) HandleExpire(w http.ResponseWriter, r *http.Request) {
	var req returnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Expire(r.Context(), &req.Rental); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleExpireOverdue sweeps every overdue active rental in one call.
// Expiry is permissionless, so the sweep is too.
func (h *MarketplaceHandler) HandleExpireOverdue(w http.ResponseWriter, r *http.Request) {
	expired, err := h.svc.ExpireOverdue(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"expired": expired})
}

type withdrawRequest struct {
	AmountCents uint64 `json:"amount_cents"`
	Recipient   string `json:"recipient"`
}

func (h *MarketplaceHandler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authority token")
		return
	}

	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := h.svc.Withdraw(r.Context(), token, req.AmountCents, req.Recipient)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"amount_cents": amount})
}

func (h *MarketplaceHandler) HandleBalances(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authority token")
		return
	}

	revenue, deposits, err := h.svc.Balances(r.Context(), token)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{
		"revenue_balance_cents": revenue,
		"deposit_pool_cents":    deposits,
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return token, token != ""
}

func pathIndex(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := mux.Vars(r)["index"]
	index, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid listing index")
		return 0, false
	}
	return index, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps lifecycle errors to HTTP statuses. Anything
// unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, security.ErrInvalidToken), errors.Is(err, security.ErrExpiredToken):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidListingIndex):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotListed),
		errors.Is(err, domain.ErrAlreadyInState),
		errors.Is(err, domain.ErrNotRented),
		errors.Is(err, domain.ErrAlreadyExpired),
		errors.Is(err, domain.ErrNotYetExpired):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInsufficientPayment),
		errors.Is(err, domain.ErrInvalidWithdrawalAmount),
		errors.Is(err, domain.ErrFundsOverflow):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

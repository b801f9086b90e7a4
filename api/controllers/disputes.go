package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedopt/admin-backend/api/middleware"
	"github.com/pedopt/admin-backend/api/responses"
	"github.com/pedopt/admin-backend/api/validators"
	"github.com/pedopt/admin-backend/internal/disputes"
	"github.com/pedopt/admin-backend/pkg/enums"
	pkgerrors "github.com/pedopt/admin-backend/pkg/errors"
	"github.com/pedopt/admin-backend/pkg/logger"
)

func DisputeAnalytics(service disputes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, service.Analytics(r.Context()))
	}
}

func DisputeBySeller(service disputes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, err := breakdownLimit(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, service.BySeller(ctx, limit))
	}
}

func DisputeTrend(service disputes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		period, err := queryPeriod(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, service.Trend(ctx, period))
	}
}

type resolveDisputeRequest struct {
	ResolutionType  string           `json:"resolution_type" validate:"required,oneof=refund_buyer release_to_seller partial_refund"`
	ResolutionNotes string           `json:"resolution_notes" validate:"max=2000"`
	RefundAmount    *decimal.Decimal `json:"refund_amount,omitempty"`
}

func DisputeResolve(service disputes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		disputeID, err := uuid.Parse(chi.URLParam(r, "disputeID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid dispute id"))
			return
		}

		actorRaw := strings.TrimSpace(r.Header.Get(middleware.ActorIDHeader))
		if actorRaw == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, middleware.ActorIDHeader+" header required"))
			return
		}
		actorID, err := uuid.Parse(actorRaw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid actor id"))
			return
		}

		var req resolveDisputeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resolution, err := service.Resolve(ctx, disputes.ResolveInput{
			DisputeID:    disputeID,
			Resolution:   enums.DisputeResolutionType(req.ResolutionType),
			Notes:        req.ResolutionNotes,
			RefundAmount: req.RefundAmount,
			ActorID:      actorID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, resolution)
	}
}

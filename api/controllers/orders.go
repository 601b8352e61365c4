package controllers

import (
	"net/http"

	"github.com/classcooks/classcooks-backend/api/middleware"
	"github.com/classcooks/classcooks-backend/api/responses"
	"github.com/classcooks/classcooks-backend/api/validators"
	cartsvc "github.com/classcooks/classcooks-backend/internal/cart"
	internalorders "github.com/classcooks/classcooks-backend/internal/orders"
	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
	"github.com/classcooks/classcooks-backend/pkg/logger"
)

type submitResponse struct {
	OrderID string `json:"order_id"`
}

// OrderSubmit turns the caller's cart into an order. The cart is cleared only
// after the order is durably written; a failed clear is logged and left for
// the TTL to collect.
func OrderSubmit(orderSvc internalorders.Service, cartSvc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := middleware.UserIDFromContext(ctx)

		lines, err := cartSvc.Get(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if len(lines) == 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
			return
		}

		actor := internalorders.Identity{
			UserID:   userID,
			Email:    middleware.EmailFromContext(ctx),
			SchoolID: middleware.SchoolIDFromContext(ctx),
		}

		orderID, err := orderSvc.Submit(ctx, actor, lines)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := cartSvc.Clear(ctx, userID); err != nil && logg != nil {
			logg.Error(logg.WithOrderID(ctx, orderID.String()), "cart.clear_failed", err)
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, submitResponse{OrderID: orderID.String()})
	}
}

// OrderGet returns the order header and items. A failed item read degrades to
// a partial response carrying the header.
func OrderGet(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetOrder(r.Context(), orderID)
		if err != nil {
			if detail != nil && pkgerrors.IsCode(err, pkgerrors.CodePartialFetch) {
				responses.WritePartial(r.Context(), logg, w, detail, err)
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func OrderList(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.ListOrders(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

// ClassOrderGet returns the denormalized summary for one class.
func ClassOrderGet(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		classID, err := validators.ParseUUIDParam(r, "classId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.GetClassOrder(r.Context(), classID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

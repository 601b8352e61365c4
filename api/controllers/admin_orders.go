package controllers

import (
	"net/http"

	"github.com/classcooks/classcooks-backend/api/responses"
	"github.com/classcooks/classcooks-backend/api/validators"
	internalorders "github.com/classcooks/classcooks-backend/internal/orders"
	"github.com/classcooks/classcooks-backend/pkg/enums"
	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
	"github.com/classcooks/classcooks-backend/pkg/logger"
)

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminOrderTransition advances the order-level status and fans the stage out
// to every class summary on the order.
func AdminOrderTransition(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload orderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		if err := svc.TransitionOrder(r.Context(), orderID, status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"order_id": orderID.String(), "status": string(status)})
	}
}

type itemStageRequest struct {
	Action  string `json:"action" validate:"required"`
	ClassID string `json:"class_id"`
}

// AdminOrderItemTransition stamps a stage on one item and its class summary
// without touching the order-level status.
func AdminOrderItemTransition(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := validators.ParseUUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload itemStageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		action, err := enums.ParseStageAction(payload.Action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid action"))
			return
		}

		input := internalorders.TransitionItemInput{
			OrderID: orderID,
			ItemID:  itemID,
			Action:  action,
		}
		if payload.ClassID != "" {
			classID, err := validators.ParseUUID(payload.ClassID, "class_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.ClassID = classID
		}

		if err := svc.TransitionItem(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"item_id": itemID.String(), "action": string(action)})
	}
}

// AdminOrderComplete marks an order closed out. Idempotent.
func AdminOrderComplete(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.MarkComplete(r.Context(), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"order_id": orderID.String(), "status": string(enums.OrderStatusComplete)})
	}
}

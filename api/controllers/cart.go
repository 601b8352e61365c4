package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/classcooks/classcooks-backend/api/middleware"
	"github.com/classcooks/classcooks-backend/api/responses"
	"github.com/classcooks/classcooks-backend/api/validators"
	cartsvc "github.com/classcooks/classcooks-backend/internal/cart"
	pkgerrors "github.com/classcooks/classcooks-backend/pkg/errors"
	"github.com/classcooks/classcooks-backend/pkg/logger"
)

type cartResponse struct {
	Lines []cartsvc.Line `json:"lines"`
}

// CartGet returns the caller's working cart.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		lines, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponse{Lines: lines})
	}
}

type addLineRequest struct {
	RecipeID     uuid.UUID  `json:"recipe_id" validate:"required"`
	RecipeName   string     `json:"recipe_name" validate:"required"`
	ClassID      uuid.UUID  `json:"class_id" validate:"required"`
	ClassName    string     `json:"class_name" validate:"required"`
	Notes        string     `json:"notes"`
	DeliveryDate *time.Time `json:"delivery_date"`
	ImageURL     *string    `json:"image_url"`
}

// CartAddLine adds a recipe for a class; re-adding the same pairing bumps the
// quantity instead of appending a duplicate.
func CartAddLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		lines, err := svc.AddLine(r.Context(), userID, cartsvc.Line{
			RecipeID:     payload.RecipeID,
			RecipeName:   payload.RecipeName,
			ClassID:      payload.ClassID,
			ClassName:    payload.ClassName,
			Notes:        payload.Notes,
			DeliveryDate: payload.DeliveryDate,
			ImageURL:     payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, cartResponse{Lines: lines})
	}
}

// CartRemoveLine drops one (recipe, class) line.
func CartRemoveLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, classID, err := cartLineParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		lines, err := svc.RemoveLine(r.Context(), userID, recipeID, classID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponse{Lines: lines})
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, classID, err := cartLineParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		lines, err := svc.UpdateQuantity(r.Context(), userID, recipeID, classID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponse{Lines: lines})
	}
}

type updateNotesRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}

func CartUpdateNotes(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, classID, err := cartLineParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateNotesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		lines, err := svc.UpdateNotes(r.Context(), userID, recipeID, classID, payload.Notes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponse{Lines: lines})
	}
}

type updateDateRequest struct {
	DeliveryDate *time.Time `json:"delivery_date"`
}

func CartUpdateDate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, classID, err := cartLineParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateDateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		lines, err := svc.UpdateDate(r.Context(), userID, recipeID, classID, payload.DeliveryDate)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponse{Lines: lines})
	}
}

type updateClassRequest struct {
	ClassID   uuid.UUID `json:"class_id" validate:"required"`
	ClassName string    `json:"class_name" validate:"required"`
}

// CartUpdateClass moves a line to another class. Landing on an existing
// (recipe, class) pairing merges the two lines.
func CartUpdateClass(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, classID, err := cartLineParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateClassRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		lines, err := svc.UpdateClass(r.Context(), userID, recipeID, classID, payload.ClassID, payload.ClassName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponse{Lines: lines})
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if err := svc.Clear(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartResponse{Lines: []cartsvc.Line{}})
	}
}

func cartLineParams(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	recipeID, err := validators.ParseUUIDParam(r, "recipeId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	classID, err := validators.ParseUUIDParam(r, "classId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if recipeID == uuid.Nil || classID == uuid.Nil {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe and class ids required")
	}
	return recipeID, classID, nil
}

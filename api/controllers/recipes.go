package controllers

import (
	"net/http"

	"github.com/classcooks/classcooks-backend/api/responses"
	"github.com/classcooks/classcooks-backend/api/validators"
	recipesvc "github.com/classcooks/classcooks-backend/internal/recipes"
	"github.com/classcooks/classcooks-backend/pkg/logger"
)

func RecipeList(svc recipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipes, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, recipes)
	}
}

func RecipeGet(svc recipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, err := validators.ParseUUIDParam(r, "recipeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recipe, err := svc.Get(r.Context(), recipeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, recipe)
	}
}

func RecipeCreate(svc recipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload recipesvc.CreateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recipe, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, recipe)
	}
}

func RecipeUpdate(svc recipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, err := validators.ParseUUIDParam(r, "recipeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload recipesvc.UpdateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		recipe, err := svc.Update(r.Context(), recipeID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, recipe)
	}
}

func RecipeDelete(svc recipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, err := validators.ParseUUIDParam(r, "recipeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), recipeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"recipe_id": recipeID.String(), "deleted": "true"})
	}
}

package controllers

import (
	"net/http"

	"github.com/classcooks/classcooks-backend/api/responses"
	"github.com/classcooks/classcooks-backend/api/validators"
	schoolsvc "github.com/classcooks/classcooks-backend/internal/schools"
	"github.com/classcooks/classcooks-backend/pkg/logger"
)

func SchoolList(svc schoolsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schools, err := svc.ListSchools(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, schools)
	}
}

// SchoolGet returns one school with its classes and delivery days.
func SchoolGet(svc schoolsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schoolID, err := validators.ParseUUIDParam(r, "schoolId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		school, err := svc.GetSchool(r.Context(), schoolID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, school)
	}
}

func SchoolClasses(svc schoolsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schoolID, err := validators.ParseUUIDParam(r, "schoolId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		classes, err := svc.ListClasses(r.Context(), schoolID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, classes)
	}
}

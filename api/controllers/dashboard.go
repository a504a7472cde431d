package controllers

import (
	"net/http"

	"github.com/medstock/medstock-backend/api/responses"
	dashboardsvc "github.com/medstock/medstock-backend/internal/dashboard"
	"github.com/medstock/medstock-backend/pkg/logger"
)

// Dashboard returns every chart projection in one payload.
func Dashboard(svc *dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := svc.Build(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}

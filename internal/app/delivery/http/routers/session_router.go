package routers

import (
	"curebird-service/internal/app/delivery/http/controllers"
	"curebird-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachSessionRoutes(router chi.Router, middlewares *middlewares.Middlewares, sessionController *controllers.SessionController) {
	router.Post("/", sessionController.CreateSession)
	router.With(middlewares.Authenticate).Get("/state", sessionController.GetState)
	router.With(middlewares.Authenticate).Post("/route", sessionController.ReportRoute)
	router.With(middlewares.Authenticate).Post("/refresh", sessionController.Refresh)
	router.With(middlewares.Authenticate).Delete("/", sessionController.DeleteSession)
}

package routers

import (
	"curebird-service/internal/app/delivery/http/controllers"
	"curebird-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachOnboardingRoutes(router chi.Router, middlewares *middlewares.Middlewares, onboardingController *controllers.OnboardingController) {
	router.With(middlewares.Authenticate).Get("/prefill", onboardingController.GetPrefill)
	router.With(middlewares.Authenticate).Post("/patient", onboardingController.SubmitPatient)
	router.With(middlewares.Authenticate).Post("/doctor", onboardingController.SubmitDoctor)
}

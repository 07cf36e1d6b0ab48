package routers

import (
	"curebird-service/internal/app/delivery/http/controllers"
	"curebird-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.With(middlewares.Authenticate).Post("/register", authController.Register)
	router.With(middlewares.Authenticate).Post("/login", authController.Login)
	router.With(middlewares.Authenticate).Post("/federated", authController.FederatedSignIn)
	router.With(middlewares.Authenticate).Post("/doctor/login", authController.DoctorLogin)
	router.With(middlewares.Authenticate).Post("/doctor/federated", authController.DoctorFederatedSignIn)
	router.With(middlewares.Authenticate).Post("/otp/send", authController.SendOtp)
	router.With(middlewares.Authenticate).Post("/otp/confirm", authController.ConfirmOtp)
	router.With(middlewares.Authenticate).Post("/logout", authController.Logout)
}

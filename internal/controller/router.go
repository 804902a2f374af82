package controller

import (
	"gig-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services, jwtSecret string, corsOrigins []string) {
	handler.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     corsOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE},
	}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	auth := requesterIdentity(jwtSecret)

	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newGigRoutesHandler(api, services, validate, auth)
	newBidRoutesHandler(api, services, validate, auth)
}

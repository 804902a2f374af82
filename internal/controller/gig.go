package controller

import (
	"net/http"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type gigRoutesHandler struct {
	gigService service.Gig
	validate   *validator.Validate
}

func newGigRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, auth echo.MiddlewareFunc) *gigRoutesHandler {
	h := &gigRoutesHandler{gigService: services.Gig, validate: v}
	outer.GET("/gigs", h.GetOpenGigs)
	outer.GET("/gigs/:gigId", h.GetGig)
	outer.POST("/gigs", h.PostGig, auth)

	return h
}

type postGigInput struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Description string  `json:"description" validate:"required,max=2000"`
	Budget      float64 `json:"budget" validate:"required,gt=0"`
}

// /gigs
func (h *gigRoutesHandler) PostGig(c echo.Context) error {
	var input postGigInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.CreateGigInput{
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		OwnerId:     requesterId(c),
	}

	gig, err := h.gigService.CreateGig(c.Request().Context(), model)
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Server error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusCreated, gig); e != nil {
		return e
	}

	return nil
}

type getOpenGigsInput struct {
	Search string `query:"search" validate:"max=100"`
	Limit  int32  `query:"limit" validate:"gte=0,lte=50"`
	Offset int32  `query:"offset" validate:"gte=0"`
}

func newGetOpenGigsInput() getOpenGigsInput {
	return getOpenGigsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /gigs
func (h *gigRoutesHandler) GetOpenGigs(c echo.Context) error {
	var input = newGetOpenGigsInput()
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	gigs, err := h.gigService.GetOpenGigs(c.Request().Context(), input.Search, pg)
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Server error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, gigs); e != nil {
		return e
	}

	return nil
}

// /gigs/:gigId
func (h *gigRoutesHandler) GetGig(c echo.Context) error {
	gig, err := h.gigService.GetGigById(c.Request().Context(), c.Param("gigId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, gig); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Server error"}); e != nil {
			return e
		}
	}

	return err
}

package controller

import (
	"net/http"

	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate, auth echo.MiddlewareFunc) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v}
	outer.POST("/bids", h.PostBid, auth)
	outer.GET("/bids/:gigId", h.GetGigBids, auth)
	outer.PATCH("/bids/:bidId/hire", h.HireBid, auth)

	return h
}

type postBidInput struct {
	GigId   string  `json:"gigId" validate:"required,max=100"`
	Message string  `json:"message" validate:"required,max=2000"`
	Price   float64 `json:"price" validate:"required,gt=0"`
}

// /bids
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
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

	model := &entity.CreateBidInput{
		GigId:        input.GigId,
		FreelancerId: requesterId(c),
		Message:      input.Message,
		Price:        input.Price,
	}

	bid, err := h.bidService.CreateBid(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusCreated, bid); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"}); e != nil {
			return e
		}
	case service.ErrGigNotOpen:
		if e := c.JSON(http.StatusConflict, errorResponse{"This gig is no longer accepting bids"}); e != nil {
			return e
		}
	case service.ErrOwnGigBid:
		if e := c.JSON(http.StatusForbidden, errorResponse{"You cannot bid on your own gig"}); e != nil {
			return e
		}
	case service.ErrDuplicateBid:
		if e := c.JSON(http.StatusConflict, errorResponse{"You have already submitted a bid for this gig"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Server error"}); e != nil {
			return e
		}
	}

	return err
}

type getGigBidsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

func newGetGigBidsInput() getGigBidsInput {
	return getGigBidsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /bids/:gigId
func (h *bidRoutesHandler) GetGigBids(c echo.Context) error {
	var input = newGetGigBidsInput()
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
	bids, err := h.bidService.GetGigBids(c.Request().Context(), c.Param("gigId"), requesterId(c), pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, bids); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no gig with given id"}); e != nil {
			return e
		}
	case service.ErrNotGigOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the gig owner can view its bids"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Server error"}); e != nil {
			return e
		}
	}

	return err
}

// /bids/:bidId/hire
func (h *bidRoutesHandler) HireBid(c echo.Context) error {
	result, err := h.bidService.HireBid(c.Request().Context(), c.Param("bidId"), requesterId(c))
	if err == nil {
		if e := c.JSON(http.StatusOK, result); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrBidNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no bid with given id"}); e != nil {
			return e
		}
	case service.ErrGigNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no gig for given bid"}); e != nil {
			return e
		}
	case service.ErrNotGigOwner:
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only the gig owner can hire for this gig"}); e != nil {
			return e
		}
	case service.ErrGigAlreadyAssigned:
		if e := c.JSON(http.StatusConflict, errorResponse{"This gig has already been assigned"}); e != nil {
			return e
		}
	case service.ErrHireRaceLost:
		if e := c.JSON(http.StatusConflict, errorResponse{"Another hire request assigned this gig first"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Server error during hiring process"}); e != nil {
			return e
		}
	}

	return err
}

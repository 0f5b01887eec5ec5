package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ridepool_backend/internal/model"
	"ridepool_backend/pkg/database"
	"ridepool_backend/pkg/utils/jwt"
)

type RouteRequestInput struct {
	RouteID uint   `json:"route_id" validate:"required"`
	Seats   int    `json:"seats" validate:"required,min=1"`
	Message string `json:"message"`
}

// CreateRouteRequest lets a rider ask to join a route. One request per
// rider per route; the requested seats must fit the route's capacity.
func CreateRouteRequest(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(RouteRequestInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Seats < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one seat must be requested",
		})
	}

	var route model.Route
	if err := database.GetDB().First(&route, input.RouteID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	}

	if route.UserID == claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You cannot request a seat on your own route",
		})
	}
	if !route.IsActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Route is not active",
		})
	}
	if !route.CanAccommodate(input.Seats) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":           "Requested seats exceed available seats",
			"seats_available": route.SeatsAvailable,
		})
	}

	var existing model.RouteRequest
	if err := database.GetDB().
		Where("user_id = ? AND route_id = ?", claims.UserID, input.RouteID).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You have already requested this route",
		})
	}

	request := model.RouteRequest{
		UserID:  claims.UserID,
		RouteID: input.RouteID,
		Seats:   input.Seats,
		Message: input.Message,
		Status:  model.RequestStatusPending,
	}

	// The (user_id, route_id) unique index backs up the existence check
	// above, so a double submit still cannot create two rows.
	if err := database.GetDB().Create(&request).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Could not create request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Request sent to the driver",
		"request": request,
	})
}

// ListMyRequests returns the rider's outgoing requests.
func ListMyRequests(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var requests []model.RouteRequest
	if err := database.GetDB().
		Where("user_id = ?", claims.UserID).
		Preload("Route").
		Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch requests",
		})
	}

	return c.JSON(requests)
}

// ListIncomingRequests returns requests against the driver's routes.
func ListIncomingRequests(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var requests []model.RouteRequest
	query := database.GetDB().
		Joins("JOIN routes ON route_requests.route_id = routes.id").
		Where("routes.user_id = ?", claims.UserID).
		Preload("Route").
		Preload("User")

	if status := c.Query("status"); status != "" {
		query = query.Where("route_requests.status = ?", status)
	}

	if err := query.Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch requests",
		})
	}

	return c.JSON(requests)
}

type RequestStatusInput struct {
	Status model.RequestStatus `json:"status" validate:"required"`
}

// UpdateRequestStatus lets the route owner accept or reject a pending
// request. Accepting re-checks capacity and reserves the seats in the same
// transaction.
func UpdateRequestStatus(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(RequestStatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Status != model.RequestStatusAccepted && input.Status != model.RequestStatusRejected {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be accepted or rejected",
		})
	}

	var request model.RouteRequest
	if err := database.GetDB().Preload("Route").First(&request, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Request not found",
		})
	}

	if request.Route.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the route owner can update this request",
		})
	}
	if request.Status != model.RequestStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Request has already been processed",
		})
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if input.Status == model.RequestStatusAccepted {
			var route model.Route
			if err := tx.First(&route, request.RouteID).Error; err != nil {
				return err
			}
			if !route.CanAccommodate(request.Seats) {
				return fiber.NewError(fiber.StatusBadRequest, "Not enough seats left on this route")
			}
			if err := tx.Model(&route).
				Update("seats_available", gorm.Expr("seats_available - ?", request.Seats)).Error; err != nil {
				return err
			}
		}

		return tx.Model(&request).Update("status", input.Status).Error
	})
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"error": fiberErr.Message,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update request",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Request " + string(input.Status),
		"request": request,
	})
}

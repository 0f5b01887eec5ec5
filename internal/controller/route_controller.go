package controller

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"ridepool_backend/internal/model"
	"ridepool_backend/pkg/database"
	"ridepool_backend/pkg/utils/geo"
	"ridepool_backend/pkg/utils/geocode"
	"ridepool_backend/pkg/utils/jwt"
)

var geocoder *geocode.Client

// InitRouteController wires the geocoding client used for address fallback.
func InitRouteController(client *geocode.Client) {
	geocoder = client
}

type RouteInput struct {
	PickupAddress  string   `json:"pickup_address" validate:"required"`
	DropoffAddress string   `json:"dropoff_address" validate:"required"`
	PickupLat      *float64 `json:"pickup_lat"`
	PickupLng      *float64 `json:"pickup_lng"`
	DropoffLat     *float64 `json:"dropoff_lat"`
	DropoffLng     *float64 `json:"dropoff_lng"`
	DepartureTime  string   `json:"departure_time" validate:"required"`
	Weekdays       []string `json:"weekdays" validate:"required"`
	SeatsAvailable int      `json:"seats_available" validate:"required,min=1"`
	PricePerSeat   float64  `json:"price_per_seat" validate:"required"`
}

func validDepartureTime(value string) bool {
	if len(value) != 5 || value[2] != ':' {
		return false
	}
	hour, err := strconv.Atoi(value[:2])
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	minute, err := strconv.Atoi(value[3:])
	if err != nil || minute < 0 || minute > 59 {
		return false
	}
	return true
}

// resolveEndpoint returns the given coordinates, or forward-geocodes the
// address when the client did not send any.
func resolveEndpoint(c *fiber.Ctx, address string, lat, lng *float64) (geo.Point, error) {
	if lat != nil && lng != nil {
		return geo.Point{Lat: *lat, Lng: *lng}, nil
	}

	point, _, err := geocoder.Forward(c.Context(), address)
	return point, err
}

func CreateRoute(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(RouteInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.PickupAddress == "" || input.DropoffAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Pickup and drop-off addresses are required",
		})
	}
	if !validDepartureTime(input.DepartureTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Departure time must be in HH:MM format",
		})
	}
	if !model.ValidWeekdays(input.Weekdays) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Weekdays must be lowercase weekday names",
		})
	}
	if input.SeatsAvailable < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one seat must be available",
		})
	}

	pickup, err := resolveEndpoint(c, input.PickupAddress, input.PickupLat, input.PickupLng)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not resolve pickup address",
		})
	}
	dropoff, err := resolveEndpoint(c, input.DropoffAddress, input.DropoffLat, input.DropoffLng)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not resolve drop-off address",
		})
	}

	if !geo.ValidCoordinates(pickup) || !geo.ValidCoordinates(dropoff) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Coordinates out of range",
		})
	}

	weekdaysJSON, err := json.Marshal(input.Weekdays)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid weekday list",
		})
	}

	route := model.Route{
		UserID:         claims.UserID,
		PickupAddress:  input.PickupAddress,
		DropoffAddress: input.DropoffAddress,
		PickupLat:      pickup.Lat,
		PickupLng:      pickup.Lng,
		DropoffLat:     dropoff.Lat,
		DropoffLng:     dropoff.Lng,
		DepartureTime:  input.DepartureTime,
		Weekdays:       datatypes.JSON(weekdaysJSON),
		SeatsAvailable: input.SeatsAvailable,
		PricePerSeat:   input.PricePerSeat,
		IsActive:       true,
	}

	if err := database.GetDB().Create(&route).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create route",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Route published successfully",
		"route":   route,
	})
}

func ListMyRoutes(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var routes []model.Route
	if err := database.GetDB().Where("user_id = ?", claims.UserID).Find(&routes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch routes",
		})
	}

	return c.JSON(routes)
}

// GetRoute looks a route up by numeric ID or, failing that, by slug.
func GetRoute(c *fiber.Ctx) error {
	param := c.Params("id")

	query := database.GetDB().Preload("User")
	if id, err := strconv.ParseUint(param, 10, 64); err == nil {
		query = query.Where("id = ?", id)
	} else {
		query = query.Where("slug = ?", param)
	}

	var route model.Route
	if err := query.First(&route).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	}

	return c.JSON(fiber.Map{
		"route":  route,
		"driver": route.User.GetPublicProfile(),
	})
}

type RouteUpdateInput struct {
	DepartureTime  *string  `json:"departure_time"`
	Weekdays       []string `json:"weekdays"`
	SeatsAvailable *int     `json:"seats_available"`
	PricePerSeat   *float64 `json:"price_per_seat"`
	IsActive       *bool    `json:"is_active"`
}

func UpdateRoute(c *fiber.Ctx) error {
	input := new(RouteUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var route model.Route
	if err := database.GetDB().First(&route, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	}

	updates := map[string]interface{}{}
	if input.DepartureTime != nil {
		if !validDepartureTime(*input.DepartureTime) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Departure time must be in HH:MM format",
			})
		}
		updates["departure_time"] = *input.DepartureTime
	}
	if input.Weekdays != nil {
		if !model.ValidWeekdays(input.Weekdays) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Weekdays must be lowercase weekday names",
			})
		}
		weekdaysJSON, _ := json.Marshal(input.Weekdays)
		updates["weekdays"] = datatypes.JSON(weekdaysJSON)
	}
	if input.SeatsAvailable != nil {
		if *input.SeatsAvailable < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Seats available cannot be negative",
			})
		}
		updates["seats_available"] = *input.SeatsAvailable
	}
	if input.PricePerSeat != nil {
		updates["price_per_seat"] = *input.PricePerSeat
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nothing to update",
		})
	}

	if err := database.GetDB().Model(&route).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update route",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Route updated successfully",
		"route":   route,
	})
}

// DeactivateRoute hides a route from searches without deleting its history.
func DeactivateRoute(c *fiber.Ctx) error {
	if err := database.GetDB().Model(&model.Route{}).
		Where("id = ?", c.Params("id")).
		Update("is_active", false).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not deactivate route",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Route deactivated",
	})
}

func DeleteRoute(c *fiber.Ctx) error {
	if err := database.GetDB().Delete(&model.Route{}, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete route",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Route deleted",
	})
}

// SearchRoutes returns active routes of other drivers whose pickup and
// drop-off both lie within the match radius of the rider's points. Result
// order follows the fetch order; no distance ranking is applied.
func SearchRoutes(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	riderPickup, err := parsePoint(c, "pickup_lat", "pickup_lng")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	riderDropoff, err := parsePoint(c, "dropoff_lat", "dropoff_lng")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var candidates []model.Route
	if err := database.GetDB().
		Where("is_active = ? AND user_id <> ?", true, claims.UserID).
		Find(&candidates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch routes",
		})
	}

	matches := make([]model.Route, 0)
	for _, route := range candidates {
		routePickup := geo.Point{Lat: route.PickupLat, Lng: route.PickupLng}
		routeDropoff := geo.Point{Lat: route.DropoffLat, Lng: route.DropoffLng}
		if geo.MatchesEndpoints(riderPickup, riderDropoff, routePickup, routeDropoff) {
			matches = append(matches, route)
		}
	}

	return c.JSON(fiber.Map{
		"matches": matches,
		"count":   len(matches),
	})
}

func parsePoint(c *fiber.Ctx, latKey, lngKey string) (geo.Point, error) {
	lat, err := strconv.ParseFloat(c.Query(latKey), 64)
	if err != nil {
		return geo.Point{}, fiber.NewError(fiber.StatusBadRequest, latKey+" is required")
	}
	lng, err := strconv.ParseFloat(c.Query(lngKey), 64)
	if err != nil {
		return geo.Point{}, fiber.NewError(fiber.StatusBadRequest, lngKey+" is required")
	}

	point := geo.Point{Lat: lat, Lng: lng}
	if !geo.ValidCoordinates(point) {
		return geo.Point{}, fiber.NewError(fiber.StatusBadRequest, "coordinates out of range")
	}

	return point, nil
}

package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ridepool_backend/pkg/utils/geo"
)

// ForwardGeocode resolves a free-text address to coordinates.
func ForwardGeocode(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "q is required",
		})
	}

	point, displayName, err := geocoder.Forward(c.Context(), query)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not resolve address",
		})
	}

	return c.JSON(fiber.Map{
		"lat":          point.Lat,
		"lng":          point.Lng,
		"display_name": displayName,
	})
}

// ReverseGeocode resolves coordinates to a display address.
func ReverseGeocode(c *fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "lat and lng are required",
		})
	}

	point := geo.Point{Lat: lat, Lng: lng}
	if !geo.ValidCoordinates(point) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "coordinates out of range",
		})
	}

	address, err := geocoder.Reverse(c.Context(), point)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not resolve coordinates",
		})
	}

	return c.JSON(fiber.Map{
		"display_name": address,
	})
}

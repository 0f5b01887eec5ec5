package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"ridepool_backend/internal/model"
	"ridepool_backend/pkg/database"
	"ridepool_backend/pkg/utils/image"
	"ridepool_backend/pkg/utils/jwt"
	"ridepool_backend/pkg/utils/storage"
)

type ProfileUpdateInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	VehicleType string `json:"vehicle_type"`
}

func GetProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var user model.User
	if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(user.GetPublicProfile())
}

func UpdateProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(ProfileUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var user model.User
	if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.PhoneNumber = input.PhoneNumber
	user.Address = input.Address
	user.City = input.City
	user.VehicleType = input.VehicleType
	user.ProfileComplete = user.IsProfileComplete()

	if err := database.GetDB().Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user.GetPublicProfile(),
	})
}

// uploadUserImage handles avatar and vehicle photo uploads; column picks
// which user field receives the stored URL.
func uploadUserImage(c *fiber.Ctx, kind, column string) error {
	claims := c.Locals("user").(*jwt.Claims)

	var user model.User
	if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	buf, contentType, err := image.ProcessImage(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	url, err := storage.UploadUserFile(user.Username, kind, file.Filename, contentType, buf)
	if err != nil {
		log.Printf("Could not upload %s for user %d: %v", kind, user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload file",
		})
	}

	if err := database.GetDB().Model(&user).Update(column, url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save file URL",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Upload successful",
		"url":     url,
	})
}

func UploadAvatar(c *fiber.Ctx) error {
	return uploadUserImage(c, "avatars", "avatar")
}

func UploadVehiclePhoto(c *fiber.Ctx) error {
	return uploadUserImage(c, "vehicles", "vehicle_photo")
}

package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teamboard/models"
	"teamboard/utils"
)

type AuthController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewAuthController(db *gorm.DB, logger *log.Logger) *AuthController {
	return &AuthController{
		DB:     db,
		Logger: logger,
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	PhoneNo  string `json:"phone_no" validate:"required,max=20"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	PhoneNo  string `json:"phone_no"`
}

func summarize(user *models.User) UserSummary {
	return UserSummary{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		PhoneNo:  user.PhoneNo,
	}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	// Duplicate guard: reject when any existing user shares the email
	// OR the phone number.
	var existing models.User
	if err := ac.DB.Where("email = ? OR phone_no = ?", req.Email, req.PhoneNo).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "User already exists with this email or phone number")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		ac.Logger.Printf("Failed to hash password: %v", err)
		return utils.ServerError(c, err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PhoneNo:      req.PhoneNo,
		PasswordHash: string(hashedPassword),
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		ac.Logger.Printf("Failed to create user: %v", err)
		return utils.ServerError(c, err)
	}

	utils.LogEvent("user_registered", map[string]interface{}{
		"user_id": user.ID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    summarize(&user),
	})
}

// Login accepts a single identifier field, classified as an email or a
// phone number. Every failure path returns the same message so the
// response never reveals whether the identifier is registered.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	column := "phone_no"
	if utils.IsEmailIdentifier(req.Identifier) {
		column = "email"
	}

	var user models.User
	if err := ac.DB.Where(column+" = ?", req.Identifier).First(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.LogEvent("login_failed", map[string]interface{}{
			"user_id": user.ID,
			"ip":      c.IP(),
		})
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid credentials")
	}

	token, err := utils.GenerateJWTToken(&user)
	if err != nil {
		ac.Logger.Printf("Failed to generate token: %v", err)
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  summarize(&user),
	})
}

func (ac *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.JSON(fiber.Map{
		"user": summarize(user),
	})
}

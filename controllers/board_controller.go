package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamboard/models"
	"teamboard/utils"
)

type BoardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewBoardController(db *gorm.DB, logger *log.Logger) *BoardController {
	return &BoardController{
		DB:     db,
		Logger: logger,
	}
}

type CreateBoardRequest struct {
	Title  string `json:"title"`
	TeamID uint   `json:"teamId"`
}

func (bc *BoardController) CreateBoard(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req CreateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" || req.TeamID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Board title and team ID are required")
	}

	if !IsTeamMember(bc.DB, req.TeamID, user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You must be a team member to create a board")
	}

	board := models.Board{
		Title:     req.Title,
		TeamID:    req.TeamID,
		CreatedBy: &user.ID,
	}
	if err := bc.DB.Create(&board).Error; err != nil {
		bc.Logger.Printf("Create Board Error: %v", err)
		return utils.ServerError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Board created successfully",
		"board":   board,
	})
}

func (bc *BoardController) GetTeamBoards(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Params("teamId"))

	if !IsTeamMember(bc.DB, teamID, user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied: You are not a member of this team")
	}

	var boards []models.Board
	if err := bc.DB.Where("team_id = ?", teamID).Order("id ASC").Find(&boards).Error; err != nil {
		bc.Logger.Printf("Get Team Boards Error: %v", err)
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{"boards": boards})
}

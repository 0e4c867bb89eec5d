package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamboard/models"
	"teamboard/utils"
)

type ListController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewListController(db *gorm.DB, logger *log.Logger) *ListController {
	return &ListController{
		DB:     db,
		Logger: logger,
	}
}

type CreateListRequest struct {
	Title   string `json:"title"`
	BoardID uint   `json:"boardId"`
}

func (lc *ListController) CreateList(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req CreateListRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" || req.BoardID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "List title and board ID are required")
	}

	board, err := FindBoardForMember(lc.DB, req.BoardID, user.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Board not found or access denied")
	}

	// New lists sort after existing ones.
	var maxPosition int
	lc.DB.Model(&models.List{}).
		Where("board_id = ?", board.ID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPosition)

	list := models.List{
		Title:    req.Title,
		BoardID:  board.ID,
		Position: maxPosition + 1,
	}
	if err := lc.DB.Create(&list).Error; err != nil {
		lc.Logger.Printf("Create List Error: %v", err)
		return utils.ServerError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "List created successfully",
		"list":    list,
	})
}

func (lc *ListController) GetBoardLists(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	boardID := utils.ParseUint(c.Params("boardId"))

	if _, err := FindBoardForMember(lc.DB, boardID, user.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Board not found or access denied")
	}

	var lists []models.List
	if err := lc.DB.Where("board_id = ?", boardID).
		Order("position ASC, title ASC").
		Find(&lists).Error; err != nil {
		lc.Logger.Printf("Get Board Lists Error: %v", err)
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{"lists": lists})
}

package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamboard/models"
	"teamboard/utils"
)

type CommentController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewCommentController(db *gorm.DB, logger *log.Logger) *CommentController {
	return &CommentController{
		DB:     db,
		Logger: logger,
	}
}

type CreateCommentRequest struct {
	TaskID  uint   `json:"taskId"`
	Content string `json:"content"`
}

func (cc *CommentController) CreateComment(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.TaskID == 0 || req.Content == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Task ID and comment content are required")
	}

	if _, err := FindTaskForMember(cc.DB, req.TaskID, user.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Task not found or access denied")
	}

	comment := models.Comment{
		TaskID:  req.TaskID,
		UserID:  user.ID,
		Content: req.Content,
	}
	if err := cc.DB.Create(&comment).Error; err != nil {
		cc.Logger.Printf("Create Comment Error: %v", err)
		return utils.ServerError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment added successfully",
		"comment": fiber.Map{
			"id":       comment.ID,
			"task_id":  comment.TaskID,
			"user_id":  comment.UserID,
			"content":  comment.Content,
			"username": user.Username,
		},
	})
}

type commentWithAuthor struct {
	models.Comment
	Username string `json:"username"`
}

// GetTaskComments returns a task's comments oldest first.
func (cc *CommentController) GetTaskComments(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := utils.ParseUint(c.Params("taskId"))

	if _, err := FindTaskForMember(cc.DB, taskID, user.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Task not found or access denied")
	}

	var comments []commentWithAuthor
	err := cc.DB.Model(&models.Comment{}).
		Select("comments.*, users.username").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.task_id = ?", taskID).
		Order("comments.id ASC").
		Scan(&comments).Error
	if err != nil {
		cc.Logger.Printf("Get Task Comments Error: %v", err)
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{"comments": comments})
}

package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamboard/models"
	"teamboard/utils"
)

type TaskController struct {
	DB     *gorm.DB
	Logger *log.Logger
	Hub    *BoardHub
}

func NewTaskController(db *gorm.DB, logger *log.Logger, hub *BoardHub) *TaskController {
	return &TaskController{
		DB:     db,
		Logger: logger,
		Hub:    hub,
	}
}

type CreateTaskRequest struct {
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	ListID      uint                `json:"listId"`
	AssignedTo  *uint               `json:"assignedTo"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
}

// UpdateTaskRequest carries partial-update semantics: only supplied
// fields change, everything else keeps its prior value.
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	ListID      *uint                `json:"listId"`
	AssignedTo  *uint                `json:"assignedTo"`
	Priority    *models.TaskPriority `json:"priority"`
	Status      *models.TaskStatus   `json:"status"`
}

func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Title == "" || req.ListID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Task title and list ID are required")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	status := req.Status
	if status == "" {
		status = models.StatusNew
	}
	if !priority.Valid() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid priority")
	}
	if !status.Valid() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid status")
	}

	list, err := FindListForMember(tc.DB, req.ListID, user.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "List not found or access denied")
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		ListID:      list.ID,
		CreatedBy:   user.ID,
		AssignedTo:  req.AssignedTo,
		Priority:    priority,
		Status:      status,
	}
	if err := tc.DB.Create(&task).Error; err != nil {
		tc.Logger.Printf("Create Task Error: %v", err)
		return utils.ServerError(c, err)
	}

	tc.Hub.Broadcast(BoardEvent{Type: "task_created", BoardID: list.BoardID, Task: &task})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Task created successfully",
		"task":    task,
	})
}

type taskWithAssignee struct {
	models.Task
	AssignedUsername *string `json:"assigned_username"`
}

func (tc *TaskController) GetListTasks(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	listID := utils.ParseUint(c.Params("listId"))

	if _, err := FindListForMember(tc.DB, listID, user.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "List not found or access denied")
	}

	var tasks []taskWithAssignee
	err := tc.DB.Model(&models.Task{}).
		Select("tasks.*, users.username AS assigned_username").
		Joins("LEFT JOIN users ON users.id = tasks.assigned_to").
		Where("tasks.list_id = ?", listID).
		Order("tasks.id ASC").
		Scan(&tasks).Error
	if err != nil {
		tc.Logger.Printf("Get List Tasks Error: %v", err)
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{"tasks": tasks})
}

// UpdateTask applies a partial update. Changing listId is how tasks
// move between columns; the destination must be a list on the same
// board as the current one.
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := utils.ParseUint(c.Params("taskId"))

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	task, err := FindTaskForMember(tc.DB, taskID, user.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Task not found or access denied")
	}

	var currentList models.List
	if err := tc.DB.First(&currentList, task.ListID).Error; err != nil {
		tc.Logger.Printf("Update Task Error: %v", err)
		return utils.ServerError(c, err)
	}
	boardID := currentList.BoardID

	if req.ListID != nil && *req.ListID != task.ListID {
		var destination models.List
		if err := tc.DB.First(&destination, *req.ListID).Error; err != nil || destination.BoardID != boardID {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot move task to a list on a different board")
		}
		task.ListID = destination.ID
	}

	if req.Title != nil {
		if *req.Title == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Task title is required")
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.AssignedTo != nil {
		// Zero clears the assignee.
		if *req.AssignedTo == 0 {
			task.AssignedTo = nil
		} else {
			task.AssignedTo = req.AssignedTo
		}
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid priority")
		}
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid status")
		}
		task.Status = *req.Status
	}

	if err := tc.DB.Save(task).Error; err != nil {
		tc.Logger.Printf("Update Task Error: %v", err)
		return utils.ServerError(c, err)
	}

	tc.Hub.Broadcast(BoardEvent{Type: "task_updated", BoardID: boardID, Task: task})

	return c.JSON(fiber.Map{
		"message": "Task updated successfully",
		"task":    task,
	})
}

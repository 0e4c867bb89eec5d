package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamboard/models"
	"teamboard/utils"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, logger *log.Logger) *DashboardController {
	return &DashboardController{
		DB:     db,
		Logger: logger,
	}
}

// DashboardTask is a task row joined up to its list and board titles.
type DashboardTask struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	BoardTitle  string  `json:"board_title"`
	ListTitle   string  `json:"list_title"`
}

// CategorizedTasks buckets a user's assigned tasks for the dashboard
// view.
type CategorizedTasks struct {
	Todo       []DashboardTask `json:"todo"`
	InProgress []DashboardTask `json:"inProgress"`
	Completed  []DashboardTask `json:"completed"`
}

// Categorize buckets tasks by list title, not the task's own status:
// "to do" → todo, "in progress"/"review" → inProgress, "done" →
// completed. Matching is case-insensitive and trimmed; anything else
// is dropped from the dashboard.
func Categorize(tasks []DashboardTask) CategorizedTasks {
	categorized := CategorizedTasks{
		Todo:       []DashboardTask{},
		InProgress: []DashboardTask{},
		Completed:  []DashboardTask{},
	}

	for _, task := range tasks {
		switch strings.ToLower(strings.TrimSpace(task.ListTitle)) {
		case "to do":
			categorized.Todo = append(categorized.Todo, task)
		case "in progress", "review":
			categorized.InProgress = append(categorized.InProgress, task)
		case "done":
			categorized.Completed = append(categorized.Completed, task)
		}
	}

	return categorized
}

// GetUserTasks fetches every task assigned to the caller across all
// teams and returns them categorized for the dashboard. This is a
// stateless projection; it owns no data.
func (dc *DashboardController) GetUserTasks(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var tasks []DashboardTask
	err := dc.DB.Model(&models.Task{}).
		Select("tasks.id, tasks.title, tasks.description, boards.title AS board_title, lists.title AS list_title").
		Joins("JOIN lists ON lists.id = tasks.list_id").
		Joins("JOIN boards ON boards.id = lists.board_id").
		Where("tasks.assigned_to = ?", user.ID).
		Order("tasks.id ASC").
		Scan(&tasks).Error
	if err != nil {
		dc.Logger.Printf("Dashboard tasks error: %v", err)
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    Categorize(tasks),
	})
}

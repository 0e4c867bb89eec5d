package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	controller "teamboard/controllers"
	"teamboard/middleware"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db, log.New(os.Stdout, "AUTH: ", log.LstdFlags))

	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints, rate limited against brute force. One
	// limiter instance serves both routes; the key includes the path
	// so register and login count separately.
	authLimiter := middleware.AuthRateLimiter()
	auth.Post("/register", authLimiter, authController.Register)
	auth.Post("/login", authLimiter, authController.Login)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Get("/me", authController.GetCurrentUser)
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB) {
	hub := controller.NewBoardHub(db, log.New(os.Stdout, "WS: ", log.LstdFlags))

	teamController := controller.NewTeamController(db, log.New(os.Stdout, "TEAM: ", log.LstdFlags))
	boardController := controller.NewBoardController(db, log.New(os.Stdout, "BOARD: ", log.LstdFlags))
	listController := controller.NewListController(db, log.New(os.Stdout, "LIST: ", log.LstdFlags))
	taskController := controller.NewTaskController(db, log.New(os.Stdout, "TASK: ", log.LstdFlags), hub)
	commentController := controller.NewCommentController(db, log.New(os.Stdout, "COMMENT: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(db, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))

	requestLog := logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	})

	teams := app.Group("/teams", middleware.Protected(), requestLog)
	teams.Post("/create", teamController.CreateTeam)
	teams.Get("/user/teams", teamController.GetUserTeams)
	teams.Get("/:teamId", teamController.GetTeam)
	teams.Get("/:teamId/members", teamController.GetTeamMembers)
	teams.Post("/:teamId/members", teamController.AddTeamMember)
	teams.Delete("/:teamId/members/:userId", teamController.RemoveTeamMember)

	boards := app.Group("/boards", middleware.Protected(), requestLog)
	boards.Post("/create", boardController.CreateBoard)
	boards.Get("/team/:teamId", boardController.GetTeamBoards)

	lists := app.Group("/lists", middleware.Protected(), requestLog)
	lists.Post("/create", listController.CreateList)
	lists.Get("/board/:boardId", listController.GetBoardLists)

	tasks := app.Group("/tasks", middleware.Protected(), requestLog)
	tasks.Post("/create", taskController.CreateTask)
	tasks.Get("/list/:listId", taskController.GetListTasks)
	tasks.Put("/:taskId", taskController.UpdateTask)

	comments := app.Group("/comments", middleware.Protected(), requestLog)
	comments.Post("/create", commentController.CreateComment)
	comments.Get("/task/:taskId", commentController.GetTaskComments)

	dashboard := app.Group("/dashboard", middleware.Protected(), requestLog)
	dashboard.Get("/tasks", dashboardController.GetUserTasks)

	// Live task events for a board (drag-and-drop sync)
	app.Get("/ws/boards/:boardId", middleware.Protected(), hub.RequireBoardAccess, hub.Handle())
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app, db)
	SetupAPIRoutes(app, db)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "The requested resource was not found",
		})
	})
}

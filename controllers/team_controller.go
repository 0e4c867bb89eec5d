package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teamboard/models"
	"teamboard/utils"
)

type TeamController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTeamController(db *gorm.DB, logger *log.Logger) *TeamController {
	return &TeamController{
		DB:     db,
		Logger: logger,
	}
}

// Default workspace created alongside every team. The list order is
// fixed: To Do, In Progress, Completed.
var defaultListTitles = []string{"To Do", "In Progress", "Completed"}

const defaultBoardTitle = "Main Board"

var (
	errNotAMember = errors.New("user is not a member of this team")
	errLastAdmin  = errors.New("cannot remove the last admin")
)

type CreateTeamRequest struct {
	Name string `json:"name"`
}

type AddMemberRequest struct {
	UserID uint        `json:"userId"`
	Role   models.Role `json:"role"`
}

// CreateTeam creates a team together with its default workspace: the
// creator's admin membership, the "Main Board", and three default
// lists, all inside one transaction. Any failure rolls the whole
// sequence back so no team exists without its workspace.
func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var req CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Name == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Team name is required")
	}

	var team models.Team
	var boardID uint

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		team = models.Team{
			Name:      req.Name,
			CreatedBy: user.ID,
		}
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		membership := models.TeamMember{
			TeamID: team.ID,
			UserID: user.ID,
			Role:   models.RoleAdmin,
		}
		if err := tx.Create(&membership).Error; err != nil {
			return err
		}

		board := models.Board{
			Title:  defaultBoardTitle,
			TeamID: team.ID,
		}
		if err := tx.Create(&board).Error; err != nil {
			return err
		}
		boardID = board.ID

		for i, title := range defaultListTitles {
			list := models.List{
				Title:    title,
				BoardID:  board.ID,
				Position: i + 1,
			}
			if err := tx.Create(&list).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		tc.Logger.Printf("Create Team Error: %v", err)
		return utils.ServerError(c, err)
	}

	utils.LogEvent("team_created", map[string]interface{}{
		"team_id": team.ID,
		"user_id": user.ID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Team created successfully with default board and lists",
		"team":    team,
		"isAdmin": true,
		"boardId": boardID,
	})
}

type userTeam struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"created_at"`
	Role      models.Role `json:"role"`
}

// GetUserTeams lists the teams the caller belongs to, newest first,
// with the caller's role in each.
func (tc *TeamController) GetUserTeams(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var teams []userTeam
	err := tc.DB.Model(&models.Team{}).
		Select("teams.id, teams.name, teams.created_at, team_members.role").
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ? AND team_members.deleted_at IS NULL", user.ID).
		Order("teams.created_at DESC").
		Scan(&teams).Error
	if err != nil {
		tc.Logger.Printf("Get User Teams Error: %v", err)
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{"teams": teams})
}

// GetTeam returns a team's detail for members only.
func (tc *TeamController) GetTeam(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Params("teamId"))

	if !IsTeamMember(tc.DB, teamID, user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied: Not a team member")
	}

	var team models.Team
	if err := tc.DB.First(&team, teamID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Team not found")
	}

	return c.JSON(fiber.Map{"team": team})
}

type teamMemberInfo struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
}

// GetTeamMembers returns the roster with roles, admins first.
func (tc *TeamController) GetTeamMembers(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Params("teamId"))

	if !IsTeamMember(tc.DB, teamID, user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied: You are not a member of this team")
	}

	var members []teamMemberInfo
	err := tc.DB.Model(&models.TeamMember{}).
		Select("users.id, users.username, users.email, team_members.role").
		Joins("JOIN users ON users.id = team_members.user_id").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.role = 'admin' DESC").
		Scan(&members).Error
	if err != nil {
		tc.Logger.Printf("Get Team Members Error: %v", err)
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{"members": members})
}

// AddTeamMember enrolls a user into a team. Admin-only.
func (tc *TeamController) AddTeamMember(c *fiber.Ctx) error {
	requester := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Params("teamId"))

	var req AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.UserID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "User ID is required")
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid role")
	}

	var team models.Team
	if err := tc.DB.First(&team, teamID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Team not found")
	}

	if !IsTeamAdmin(tc.DB, teamID, requester.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Only team admins can add members")
	}

	var target models.User
	if err := tc.DB.First(&target, req.UserID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found")
	}

	if IsTeamMember(tc.DB, teamID, req.UserID) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "User is already a team member")
	}

	membership := models.TeamMember{
		TeamID: teamID,
		UserID: req.UserID,
		Role:   role,
	}
	if err := tc.DB.Create(&membership).Error; err != nil {
		tc.Logger.Printf("Add Team Member Error: %v", err)
		return utils.ServerError(c, err)
	}

	// Best-effort notification; never fails the request.
	go func(email, username, teamName string, role models.Role) {
		if err := utils.SendMemberAddedEmail(email, username, teamName, string(role)); err != nil {
			tc.Logger.Printf("Member-added email failed: %v", err)
		}
	}(target.Email, target.Username, team.Name, role)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Team member added successfully",
		"teamId":  teamID,
		"userId":  req.UserID,
		"role":    role,
	})
}

// RemoveTeamMember removes a membership. Admin-only, and a team can
// never lose its last admin: the admin count is re-validated inside
// the same transaction as the delete, with the team's admin rows
// locked on postgres so two concurrent removals cannot both pass the
// count check.
func (tc *TeamController) RemoveTeamMember(c *fiber.Ctx) error {
	requester := c.Locals("user").(*models.User)
	teamID := utils.ParseUint(c.Params("teamId"))
	targetUserID := utils.ParseUint(c.Params("userId"))

	if !IsTeamAdmin(tc.DB, teamID, requester.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Only team admins can remove members")
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		adminQuery := tx.Where("team_id = ? AND role = ?", teamID, models.RoleAdmin)
		if tx.Dialector.Name() == "postgres" {
			adminQuery = adminQuery.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var admins []models.TeamMember
		if err := adminQuery.Find(&admins).Error; err != nil {
			return err
		}

		var target models.TeamMember
		if err := tx.Where("team_id = ? AND user_id = ?", teamID, targetUserID).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotAMember
			}
			return err
		}

		if target.Role == models.RoleAdmin && len(admins) <= 1 {
			return errLastAdmin
		}

		// Hard delete so the (team, user) pair can be re-added later.
		return tx.Unscoped().Delete(&target).Error
	})

	switch {
	case errors.Is(err, errNotAMember):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User is not a member of this team")
	case errors.Is(err, errLastAdmin):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot remove the last admin from the team")
	case err != nil:
		tc.Logger.Printf("Remove Team Member Error: %v", err)
		return utils.ServerError(c, err)
	}

	utils.LogEvent("member_removed", map[string]interface{}{
		"team_id": teamID,
		"user_id": targetUserID,
	})

	return c.JSON(fiber.Map{"message": "Team member removed successfully"})
}

package controller

import (
	"gorm.io/gorm"

	"teamboard/models"
)

// Authorization for anything below a team is derived by walking the
// containment tree up to the owning team and checking membership
// there. The hierarchy queries below join through team_members so a
// missing entity and a missing membership produce the same
// ErrRecordNotFound, which handlers surface as a uniform "not found or
// access denied" response. That conflation is deliberate: it keeps
// resource existence from leaking to non-members.

// IsTeamMember reports whether a membership row exists for the pair.
func IsTeamMember(db *gorm.DB, teamID, userID uint) bool {
	var count int64
	db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count)
	return count > 0
}

// IsTeamAdmin reports whether the user's membership has the admin role.
func IsTeamAdmin(db *gorm.DB, teamID, userID uint) bool {
	var count int64
	db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ? AND role = ?", teamID, userID, models.RoleAdmin).
		Count(&count)
	return count > 0
}

// FindBoardForMember loads a board only if the user belongs to the
// board's team.
func FindBoardForMember(db *gorm.DB, boardID, userID uint) (*models.Board, error) {
	var board models.Board
	err := db.Joins("JOIN team_members ON team_members.team_id = boards.team_id").
		Where("boards.id = ? AND team_members.user_id = ? AND team_members.deleted_at IS NULL", boardID, userID).
		First(&board).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// FindListForMember loads a list only if the user belongs to the team
// owning the list's board.
func FindListForMember(db *gorm.DB, listID, userID uint) (*models.List, error) {
	var list models.List
	err := db.Joins("JOIN boards ON boards.id = lists.board_id").
		Joins("JOIN team_members ON team_members.team_id = boards.team_id").
		Where("lists.id = ? AND team_members.user_id = ? AND team_members.deleted_at IS NULL", listID, userID).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// FindTaskForMember loads a task only if the user belongs to the team
// at the root of the task's list → board → team chain.
func FindTaskForMember(db *gorm.DB, taskID, userID uint) (*models.Task, error) {
	var task models.Task
	err := db.Joins("JOIN lists ON lists.id = tasks.list_id").
		Joins("JOIN boards ON boards.id = lists.board_id").
		Joins("JOIN team_members ON team_members.team_id = boards.team_id").
		Where("tasks.id = ? AND team_members.user_id = ? AND team_members.deleted_at IS NULL", taskID, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CountTeamAdmins counts admin memberships for a team. Callers that
// delete admins must run this inside the same transaction as the
// delete (see RemoveTeamMember).
func CountTeamAdmins(db *gorm.DB, teamID uint) (int64, error) {
	var count int64
	err := db.Model(&models.TeamMember{}).
		Where("team_id = ? AND role = ?", teamID, models.RoleAdmin).
		Count(&count).Error
	return count, err
}

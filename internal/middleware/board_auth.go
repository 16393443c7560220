package middleware

import (
	"github.com/codedocs/board-manager/internal/constants"
	"github.com/codedocs/board-manager/internal/database"
	apierrors "github.com/codedocs/board-manager/internal/errors"
	"github.com/codedocs/board-manager/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireBoardAccess checks if the user has an access row on the board
// named by the :id URL parameter.
func RequireBoardAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		boardID := c.Param("id")
		if boardID == "" {
			apierrors.BadRequest(c, "Invalid board ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var board models.Board
		if err := database.GetDB().First(&board, "id = ?", boardID).Error; err != nil {
			apierrors.NotFound(c, "Board not found")
			c.Abort()
			return
		}

		// 404 instead of 403 to avoid leaking board existence
		var access models.UserBoardAccess
		if err := database.GetDB().
			Where("board_id = ? AND user_id = ?", boardID, userID).
			First(&access).Error; err != nil {
			apierrors.NotFound(c, "Board not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyBoard, board)
		c.Set(constants.ContextKeyBoardAccess, access)
		c.Next()
	}
}

// RequireBoardOwner checks if the user owns the board loaded by
// RequireBoardAccess.
func RequireBoardOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessInterface, exists := c.Get(constants.ContextKeyBoardAccess)
		if !exists {
			apierrors.Forbidden(c, "Board access required")
			c.Abort()
			return
		}

		access, ok := accessInterface.(models.UserBoardAccess)
		if !ok {
			apierrors.InternalError(c, "Invalid board access data")
			c.Abort()
			return
		}

		if access.Access != models.AccessOwner {
			apierrors.Forbidden(c, "Only the board owner can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

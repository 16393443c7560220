package handlers

import (
	"errors"
	"net/http"

	"github.com/codedocs/board-manager/internal/dto"
	apierrors "github.com/codedocs/board-manager/internal/errors"
	"github.com/codedocs/board-manager/internal/middleware"
	"github.com/codedocs/board-manager/internal/models"
	"github.com/codedocs/board-manager/internal/services"
	"github.com/gin-gonic/gin"
)

// BoardHandler coordinates the board lifecycle HTTP handlers.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// CreateBoard creates a new board owned by the caller.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateBoardRequest struct {
		BoardType   models.BoardType `json:"board_type" binding:"required"`
		PrevBoardID string           `json:"prev_board_id"`
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(services.CreateBoardInput{
		BoardType:   req.BoardType,
		OwnerID:     userID,
		PrevBoardID: req.PrevBoardID,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBoardDetailDTO(*board))
}

// DeleteBoard removes a board. Owner only.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.boardService.DeleteBoard(c.Param("id"), userID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBoards returns every board the caller participates in.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	accesses, owners, err := h.boardService.ListUserBoards(userID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	items := make([]dto.BoardListItemDTO, len(accesses))
	for i, a := range accesses {
		item := dto.BoardListItemDTO{
			Board:  dto.ToBoardDetailDTO(a.Board),
			Access: a.Access,
		}
		if owner, ok := owners[a.BoardID]; ok {
			ownerDTO := dto.ToUserDTO(owner)
			item.Owner = &ownerDTO
		}
		items[i] = item
	}

	c.JSON(http.StatusOK, gin.H{"boards": items})
}

// OpenBoard returns the board's shareable link.
func (h *BoardHandler) OpenBoard(c *gin.Context) {
	link, err := h.boardService.GenerateLink(c.Param("id"))
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"link": link})
}

// LeaveBoard removes the caller from a board.
func (h *BoardHandler) LeaveBoard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.boardService.LeaveBoard(c.Param("id"), userID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBoardColumns returns the board's columns in position order.
func (h *BoardHandler) GetBoardColumns(c *gin.Context) {
	columns, err := h.boardService.GetColumns(c.Param("id"))
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"columns": dto.ToColumnDTOs(columns)})
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound),
		errors.Is(err, services.ErrNoBoardAccess):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidBoardType):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotBoardOwner):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrOwnerCannotLeave):
		apierrors.NotAcceptable(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

package services

import (
	"errors"
	"fmt"

	"github.com/codedocs/board-manager/internal/models"
	"github.com/codedocs/board-manager/internal/repository"
	"github.com/codedocs/board-manager/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrBoardNotFound    = errors.New("board not found")
	ErrInvalidBoardType = errors.New("unknown board type")
	ErrNotBoardOwner    = errors.New("only the board owner can do this")
	ErrOwnerCannotLeave = errors.New("the owner cannot leave the board")
	ErrNoBoardAccess    = errors.New("no access to this board")
)

// defaultKanbanColumns are created on every new kanban board.
var defaultKanbanColumns = []string{"TODO", "IN PROGRESS", "DONE"}

// BoardService provides business logic for board lifecycle operations.
type BoardService struct {
	boardRepo  repository.BoardRepository
	accessRepo repository.AccessRepository
	columnRepo repository.ColumnRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(
	boardRepo repository.BoardRepository,
	accessRepo repository.AccessRepository,
	columnRepo repository.ColumnRepository,
) *BoardService {
	return &BoardService{
		boardRepo:  boardRepo,
		accessRepo: accessRepo,
		columnRepo: columnRepo,
	}
}

// CreateBoardInput represents parameters to create a new board.
type CreateBoardInput struct {
	BoardType models.BoardType
	OwnerID   uint64
	// PrevBoardID optionally names a board whose participants are
	// carried over to the new one.
	PrevBoardID string
}

// CreateBoard creates a board owned by the caller. Kanban boards get
// the default column set; participants of a previous board are
// inherited with its owner demoted to editor.
func (s *BoardService) CreateBoard(input CreateBoardInput) (*models.Board, error) {
	if input.BoardType != models.BoardTypeKanban && input.BoardType != models.BoardTypeNotes {
		return nil, ErrInvalidBoardType
	}

	prefix, err := utils.GenerateBoardPrefix()
	if err != nil {
		return nil, fmt.Errorf("failed to generate board prefix: %w", err)
	}

	board := &models.Board{
		Name:      "Untitled",
		BoardType: input.BoardType,
		Prefix:    prefix,
	}
	if err := s.boardRepo.Create(board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	accesses := []models.UserBoardAccess{{
		BoardID: board.ID,
		UserID:  input.OwnerID,
		Access:  models.AccessOwner,
	}}

	if input.PrevBoardID != "" {
		prev, err := s.accessRepo.ListByBoard(input.PrevBoardID)
		if err != nil {
			return nil, fmt.Errorf("failed to load previous board participants: %w", err)
		}
		for _, a := range prev {
			if a.UserID == input.OwnerID {
				continue
			}
			access := a.Access
			if access == models.AccessOwner {
				access = models.AccessEditor
			}
			accesses = append(accesses, models.UserBoardAccess{
				BoardID: board.ID,
				UserID:  a.UserID,
				Access:  access,
			})
		}
	}

	if err := s.accessRepo.CreateAll(accesses); err != nil {
		return nil, fmt.Errorf("failed to create board accesses: %w", err)
	}

	if input.BoardType == models.BoardTypeKanban {
		for i, name := range defaultKanbanColumns {
			col := &models.Column{BoardID: board.ID, Name: name, Position: i}
			if err := s.columnRepo.Insert(col); err != nil {
				return nil, fmt.Errorf("failed to create default column: %w", err)
			}
		}
	}

	return board, nil
}

// DeleteBoard removes a board; only its owner may do so.
func (s *BoardService) DeleteBoard(boardID string, userID uint64) error {
	access, err := s.accessRepo.Find(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to check board access: %w", err)
	}
	if access.Access != models.AccessOwner {
		return ErrNotBoardOwner
	}

	if err := s.boardRepo.Delete(boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

// ListUserBoards returns every board the user participates in,
// together with their access level and each board's owner.
func (s *BoardService) ListUserBoards(userID uint64) ([]models.UserBoardAccess, map[string]models.User, error) {
	accesses, err := s.accessRepo.ListByUser(userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list boards: %w", err)
	}

	owners := make(map[string]models.User, len(accesses))
	for _, a := range accesses {
		owner, err := s.accessRepo.FindOwner(a.BoardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, nil, fmt.Errorf("failed to find board owner: %w", err)
		}
		owners[a.BoardID] = owner.User
	}

	return accesses, owners, nil
}

// GenerateLink returns the shareable link for the board. The link
// names only the board; whoever opens it connects with a token
// identifying themselves and is granted the board's link access on
// first join.
func (s *BoardService) GenerateLink(boardID string) (string, error) {
	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrBoardNotFound
		}
		return "", fmt.Errorf("failed to find board: %w", err)
	}

	return fmt.Sprintf("/board/%s", boardID), nil
}

// LeaveBoard removes the caller's access row. Owners cannot leave:
// their departure would destroy the board, which must be explicit.
func (s *BoardService) LeaveBoard(boardID string, userID uint64) error {
	access, err := s.accessRepo.Find(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoBoardAccess
		}
		return fmt.Errorf("failed to check board access: %w", err)
	}
	if access.Access == models.AccessOwner {
		return ErrOwnerCannotLeave
	}

	if err := s.accessRepo.Remove(boardID, userID); err != nil {
		return fmt.Errorf("failed to leave board: %w", err)
	}
	return nil
}

// GetColumns returns the board's columns ordered by position.
func (s *BoardService) GetColumns(boardID string) ([]models.Column, error) {
	if _, err := s.boardRepo.FindByID(boardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	columns, err := s.columnRepo.ListByBoard(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return columns, nil
}

package repository

import (
	"github.com/codedocs/board-manager/internal/models"
)

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// Create creates a new board
	Create(board *models.Board) error

	// FindByID finds a board by its opaque id
	FindByID(id string) (*models.Board, error)

	// Update persists the full board row
	Update(board *models.Board) error

	// UpdateFields applies the given column values and returns the
	// refreshed board
	UpdateFields(id string, fields map[string]interface{}) (*models.Board, error)

	// Delete removes a board together with its accesses, columns and
	// nodes in one transaction
	Delete(id string) error

	// Touch bumps the board's updated timestamp
	Touch(id string) error
}

// AccessRepository defines the interface for user-board access rows
type AccessRepository interface {
	// GetOrCreate returns the access row for (user, board), creating
	// it with the board's link access if it does not exist yet
	GetOrCreate(user *models.User, board *models.Board) (*models.UserBoardAccess, error)

	// Find returns the access row for (user, board)
	Find(boardID string, userID uint64) (*models.UserBoardAccess, error)

	// Update persists an access row
	Update(access *models.UserBoardAccess) error

	// CreateAll inserts a batch of access rows
	CreateAll(accesses []models.UserBoardAccess) error

	// ListByBoard returns every access row of a board with users loaded
	ListByBoard(boardID string) ([]models.UserBoardAccess, error)

	// ListForUsers returns the board's access rows of the given users
	ListForUsers(boardID string, userIDs []uint64) ([]models.UserBoardAccess, error)

	// ListByUser returns every access row of a user with boards loaded
	ListByUser(userID uint64) ([]models.UserBoardAccess, error)

	// FindOwner returns the owner access row of a board
	FindOwner(boardID string) (*models.UserBoardAccess, error)

	// Remove deletes the access row. Removing the owner's row deletes
	// the board and everything attached to it.
	Remove(boardID string, userID uint64) error
}

// NodeRepository defines the interface for node data access
type NodeRepository interface {
	// Create allocates the next tag on the board and inserts the node
	Create(boardID, color string, status *string) (*models.Node, error)

	// FindByID finds a node by id
	FindByID(id uint64) (*models.Node, error)

	// ListByBoard returns all nodes of a board
	ListByBoard(boardID string) ([]models.Node, error)

	// UpdateFields applies the given column values and returns the
	// refreshed node
	UpdateFields(id uint64, fields map[string]interface{}) (*models.Node, error)

	// Delete removes a node
	Delete(id uint64) error

	// AcquireLock sets the advisory lock to userID if and only if the
	// node is currently unlocked. Reports whether the caller won.
	AcquireLock(nodeID, userID uint64) (bool, error)

	// ReleaseLock clears the advisory lock if held by userID.
	ReleaseLock(nodeID, userID uint64) (bool, error)

	// ReleaseAllLocks clears every lock userID holds on the board and
	// returns the unlocked nodes.
	ReleaseAllLocks(boardID string, userID uint64) ([]models.Node, error)

	// MoveToBoard moves all nodes of a board to another board,
	// remapping column references through columnMap (old id -> new id).
	MoveToBoard(fromBoardID, toBoardID string, columnMap map[string]string) error
}

// ColumnRepository defines the interface for kanban column data access
type ColumnRepository interface {
	// FindByID finds a column by id
	FindByID(id uint64) (*models.Column, error)

	// ListByBoard returns the board's columns ordered by position
	ListByBoard(boardID string) ([]models.Column, error)

	// Insert places the column at its requested position, shifting
	// existing columns at or after that position by +1
	Insert(column *models.Column) error

	// Delete removes the column and every node referencing it, then
	// shifts subsequent positions by -1
	Delete(id uint64) error

	// UpdateFields applies the given column values and returns the
	// refreshed column
	UpdateFields(id uint64, fields map[string]interface{}) (*models.Column, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

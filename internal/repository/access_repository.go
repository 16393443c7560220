package repository

import (
	"github.com/codedocs/board-manager/internal/models"
	"gorm.io/gorm"
)

// GormAccessRepository is a GORM implementation of AccessRepository
type GormAccessRepository struct {
	db *gorm.DB
}

// NewAccessRepository creates a new AccessRepository
func NewAccessRepository(db *gorm.DB) AccessRepository {
	return &GormAccessRepository{db: db}
}

// GetOrCreate returns the access row for (user, board), creating it
// with the board's link access if absent. The (board, user) primary
// key guarantees at most one row per pair.
func (r *GormAccessRepository) GetOrCreate(user *models.User, board *models.Board) (*models.UserBoardAccess, error) {
	access := models.UserBoardAccess{
		BoardID: board.ID,
		UserID:  user.ID,
	}
	err := r.db.
		Where(models.UserBoardAccess{BoardID: board.ID, UserID: user.ID}).
		Attrs(models.UserBoardAccess{Access: board.LinkAccess}).
		FirstOrCreate(&access).Error
	if err != nil {
		return nil, err
	}

	access.User = *user
	return &access, nil
}

// Find returns the access row for (user, board)
func (r *GormAccessRepository) Find(boardID string, userID uint64) (*models.UserBoardAccess, error) {
	var access models.UserBoardAccess
	if err := r.db.Preload("User").
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&access).Error; err != nil {
		return nil, err
	}
	return &access, nil
}

// Update persists an access row
func (r *GormAccessRepository) Update(access *models.UserBoardAccess) error {
	return r.db.Model(&models.UserBoardAccess{}).
		Where("board_id = ? AND user_id = ?", access.BoardID, access.UserID).
		Update("access", access.Access).Error
}

// CreateAll inserts a batch of access rows
func (r *GormAccessRepository) CreateAll(accesses []models.UserBoardAccess) error {
	if len(accesses) == 0 {
		return nil
	}
	return r.db.Create(&accesses).Error
}

// ListByBoard returns every access row of a board with users loaded
func (r *GormAccessRepository) ListByBoard(boardID string) ([]models.UserBoardAccess, error) {
	var accesses []models.UserBoardAccess
	if err := r.db.Preload("User").
		Where("board_id = ?", boardID).
		Find(&accesses).Error; err != nil {
		return nil, err
	}
	return accesses, nil
}

// ListForUsers returns the board's access rows of the given users
func (r *GormAccessRepository) ListForUsers(boardID string, userIDs []uint64) ([]models.UserBoardAccess, error) {
	if len(userIDs) == 0 {
		return []models.UserBoardAccess{}, nil
	}

	var accesses []models.UserBoardAccess
	if err := r.db.Preload("User").
		Where("board_id = ? AND user_id IN ?", boardID, userIDs).
		Find(&accesses).Error; err != nil {
		return nil, err
	}
	return accesses, nil
}

// ListByUser returns every access row of a user with boards loaded
func (r *GormAccessRepository) ListByUser(userID uint64) ([]models.UserBoardAccess, error) {
	var accesses []models.UserBoardAccess
	if err := r.db.Preload("Board").
		Where("user_id = ?", userID).
		Find(&accesses).Error; err != nil {
		return nil, err
	}
	return accesses, nil
}

// FindOwner returns the owner access row of a board
func (r *GormAccessRepository) FindOwner(boardID string) (*models.UserBoardAccess, error) {
	var access models.UserBoardAccess
	if err := r.db.Preload("User").
		Where("board_id = ? AND access = ?", boardID, models.AccessOwner).
		First(&access).Error; err != nil {
		return nil, err
	}
	return &access, nil
}

// Remove deletes the access row. When the departing user is the
// board's owner the whole board goes with them.
func (r *GormAccessRepository) Remove(boardID string, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var access models.UserBoardAccess
		if err := tx.Where("board_id = ? AND user_id = ?", boardID, userID).
			First(&access).Error; err != nil {
			return err
		}

		if access.Access == models.AccessOwner {
			return deleteBoardTx(tx, boardID)
		}

		return tx.Where("board_id = ? AND user_id = ?", boardID, userID).
			Delete(&models.UserBoardAccess{}).Error
	})
}

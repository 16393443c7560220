package repository

import (
	"time"

	"github.com/codedocs/board-manager/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// Create creates a new board
func (r *GormBoardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

// FindByID finds a board by its opaque id
func (r *GormBoardRepository) FindByID(id string) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// Update persists the full board row
func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// UpdateFields applies the given column values and returns the refreshed board
func (r *GormBoardRepository) UpdateFields(id string, fields map[string]interface{}) (*models.Board, error) {
	res := r.db.Model(&models.Board{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(id)
}

// Delete removes a board together with its accesses, columns and nodes
func (r *GormBoardRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteBoardTx(tx, id)
	})
}

// deleteBoardTx is the single cascade rule for board removal. It is
// shared with AccessRepository.Remove so an owner's departure takes
// the board down the same way an explicit delete does.
func deleteBoardTx(tx *gorm.DB, boardID string) error {
	if err := tx.Where("board_id = ?", boardID).Delete(&models.Node{}).Error; err != nil {
		return err
	}
	if err := tx.Where("board_id = ?", boardID).Delete(&models.Column{}).Error; err != nil {
		return err
	}
	if err := tx.Where("board_id = ?", boardID).Delete(&models.UserBoardAccess{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", boardID).Delete(&models.Board{}).Error
}

// Touch bumps the board's updated timestamp
func (r *GormBoardRepository) Touch(id string) error {
	return r.db.Model(&models.Board{}).Where("id = ?", id).
		UpdateColumn("updated_at", time.Now()).Error
}

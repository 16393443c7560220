package repository

import (
	"strconv"

	"github.com/codedocs/board-manager/internal/models"
	"gorm.io/gorm"
)

// GormColumnRepository is a GORM implementation of ColumnRepository
type GormColumnRepository struct {
	db *gorm.DB
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &GormColumnRepository{db: db}
}

// FindByID finds a column by id
func (r *GormColumnRepository) FindByID(id uint64) (*models.Column, error) {
	var column models.Column
	if err := r.db.First(&column, id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// ListByBoard returns the board's columns ordered by position
func (r *GormColumnRepository) ListByBoard(boardID string) ([]models.Column, error) {
	var columns []models.Column
	if err := r.db.Where("board_id = ?", boardID).
		Order("position ASC").
		Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

// Insert places the column at its requested position, keeping the
// board's positions dense: everything at or after the slot moves +1.
// A position beyond the end is clamped to the end.
func (r *GormColumnRepository) Insert(column *models.Column) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Column{}).
			Where("board_id = ?", column.BoardID).
			Count(&count).Error; err != nil {
			return err
		}

		if column.Position < 0 {
			column.Position = 0
		}
		if column.Position > int(count) {
			column.Position = int(count)
		}

		if err := tx.Model(&models.Column{}).
			Where("board_id = ? AND position >= ?", column.BoardID, column.Position).
			UpdateColumn("position", gorm.Expr("position + 1")).Error; err != nil {
			return err
		}

		return tx.Create(column).Error
	})
}

// Delete removes the column and every node referencing it, then
// shifts subsequent positions by -1.
func (r *GormColumnRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var column models.Column
		if err := tx.First(&column, id).Error; err != nil {
			return err
		}

		if err := tx.Where("board_id = ? AND status = ?",
			column.BoardID, strconv.FormatUint(column.ID, 10)).
			Delete(&models.Node{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Column{}, id).Error; err != nil {
			return err
		}

		return tx.Model(&models.Column{}).
			Where("board_id = ? AND position > ?", column.BoardID, column.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}

// UpdateFields applies the given column values and returns the refreshed column
func (r *GormColumnRepository) UpdateFields(id uint64, fields map[string]interface{}) (*models.Column, error) {
	res := r.db.Model(&models.Column{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(id)
}

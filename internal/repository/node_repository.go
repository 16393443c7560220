package repository

import (
	"github.com/codedocs/board-manager/internal/models"
	"gorm.io/gorm"
)

// GormNodeRepository is a GORM implementation of NodeRepository
type GormNodeRepository struct {
	db *gorm.DB
}

// NewNodeRepository creates a new NodeRepository
func NewNodeRepository(db *gorm.DB) NodeRepository {
	return &GormNodeRepository{db: db}
}

// Create allocates the next tag on the board and inserts the node.
// The tag comes from a counter on the board row bumped with a single
// UPDATE, so tags stay unique and are never reused after deletion.
func (r *GormNodeRepository) Create(boardID, color string, status *string) (*models.Node, error) {
	var node models.Node

	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Board{}).
			Where("id = ?", boardID).
			UpdateColumn("last_tag", gorm.Expr("last_tag + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var board models.Board
		if err := tx.First(&board, "id = ?", boardID).Error; err != nil {
			return err
		}

		node = models.Node{
			BoardID:   boardID,
			Title:     "Untitled",
			Tag:       board.LastTag,
			Color:     color,
			Status:    status,
			PositionX: 100,
			PositionY: 100,
		}
		return tx.Create(&node).Error
	})
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// FindByID finds a node by id
func (r *GormNodeRepository) FindByID(id uint64) (*models.Node, error) {
	var node models.Node
	if err := r.db.First(&node, id).Error; err != nil {
		return nil, err
	}
	return &node, nil
}

// ListByBoard returns all nodes of a board
func (r *GormNodeRepository) ListByBoard(boardID string) ([]models.Node, error) {
	var nodes []models.Node
	if err := r.db.Where("board_id = ?", boardID).
		Order("tag ASC").
		Find(&nodes).Error; err != nil {
		return nil, err
	}
	return nodes, nil
}

// UpdateFields applies the given column values and returns the refreshed node
func (r *GormNodeRepository) UpdateFields(id uint64, fields map[string]interface{}) (*models.Node, error) {
	res := r.db.Model(&models.Node{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(id)
}

// Delete removes a node
func (r *GormNodeRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Node{}, id).Error
}

// AcquireLock sets the advisory lock to userID if and only if the node
// is currently unlocked. The conditional UPDATE makes the acquisition
// atomic: of two concurrent callers exactly one wins.
func (r *GormNodeRepository) AcquireLock(nodeID, userID uint64) (bool, error) {
	res := r.db.Model(&models.Node{}).
		Where("id = ? AND locked_by_id IS NULL", nodeID).
		UpdateColumn("locked_by_id", userID)
	return res.RowsAffected > 0, res.Error
}

// ReleaseLock clears the advisory lock if held by userID
func (r *GormNodeRepository) ReleaseLock(nodeID, userID uint64) (bool, error) {
	res := r.db.Model(&models.Node{}).
		Where("id = ? AND locked_by_id = ?", nodeID, userID).
		UpdateColumn("locked_by_id", nil)
	return res.RowsAffected > 0, res.Error
}

// ReleaseAllLocks clears every lock userID holds on the board and
// returns the unlocked nodes.
func (r *GormNodeRepository) ReleaseAllLocks(boardID string, userID uint64) ([]models.Node, error) {
	var nodes []models.Node

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ? AND locked_by_id = ?", boardID, userID).
			Find(&nodes).Error; err != nil {
			return err
		}
		if len(nodes) == 0 {
			return nil
		}

		if err := tx.Model(&models.Node{}).
			Where("board_id = ? AND locked_by_id = ?", boardID, userID).
			UpdateColumn("locked_by_id", nil).Error; err != nil {
			return err
		}

		for i := range nodes {
			nodes[i].LockedByID = nil
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// MoveToBoard moves all nodes of a board to another board, remapping
// column references through columnMap (old column id -> new column id).
// Nodes whose column is not in the map keep their status as-is.
// Migrated nodes keep their tags, so the target board's tag counter
// is raised past them to keep future tags unique on that board.
func (r *GormNodeRepository) MoveToBoard(fromBoardID, toBoardID string, columnMap map[string]string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for oldColumn, newColumn := range columnMap {
			if err := tx.Model(&models.Node{}).
				Where("board_id = ? AND status = ?", fromBoardID, oldColumn).
				UpdateColumns(map[string]interface{}{
					"board_id": toBoardID,
					"status":   newColumn,
				}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Node{}).
			Where("board_id = ?", fromBoardID).
			UpdateColumn("board_id", toBoardID).Error; err != nil {
			return err
		}

		var maxTag int
		if err := tx.Model(&models.Node{}).
			Where("board_id = ?", toBoardID).
			Select("COALESCE(MAX(tag), 0)").
			Scan(&maxTag).Error; err != nil {
			return err
		}

		return tx.Model(&models.Board{}).
			Where("id = ? AND last_tag < ?", toBoardID, maxTag).
			UpdateColumn("last_tag", maxTag).Error
	})
}

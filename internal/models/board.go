package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardType string

const (
	BoardTypeKanban BoardType = "kanban"
	BoardTypeNotes  BoardType = "board_for_notes"
)

type Board struct {
	ID         string    `gorm:"primarykey;type:varchar(128)" json:"id"`
	Name       string    `gorm:"type:varchar(248);not null" json:"name"`
	BoardType  BoardType `gorm:"type:varchar(50);not null" json:"board_type"`
	Prefix     string    `gorm:"type:varchar(8);not null" json:"prefix"`
	LinkAccess Access    `gorm:"not null;default:0" json:"link_access"`
	// LastTag is the highest node tag ever handed out on this board.
	// Tags are never reused, even after the node is deleted.
	LastTag   int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`

	// Relations
	Accesses []UserBoardAccess `gorm:"foreignKey:BoardID" json:"-"`
	Columns  []Column          `gorm:"foreignKey:BoardID" json:"-"`
	Nodes    []Node            `gorm:"foreignKey:BoardID" json:"-"`
}

// BeforeCreate assigns an opaque id so boards are addressable by an
// unguessable key rather than a sequence number.
func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

package models

import "time"

// Node is a single board item: a card on a kanban board or a free
// note on a notes board. Tag is a per-board monotonic counter used
// for the human-readable "prefix-tag" label.
//
// LockedByID is a cooperative advisory lock: while set, only that
// user may mutate or delete the node. It is cleared by an explicit
// stop or when the holder's last session on the board disconnects.
type Node struct {
	ID          uint64  `gorm:"primarykey" json:"id"`
	BoardID     string  `gorm:"type:varchar(128);index;not null" json:"board_id"`
	Title       string  `gorm:"type:varchar(248);not null;default:'Untitled'" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Tag         int     `gorm:"not null" json:"tag"`
	LinkTo      string  `gorm:"type:varchar(248)" json:"link_to"`
	Status      *string `gorm:"type:varchar(248)" json:"status"`
	Color       string  `gorm:"type:varchar(16)" json:"color"`
	Assigned    *string `gorm:"type:varchar(248)" json:"assigned"`
	PositionX   float64 `gorm:"not null;default:100" json:"position_x"`
	PositionY   float64 `gorm:"not null;default:100" json:"position_y"`
	LockedByID  *uint64 `json:"locked_by"`

	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`

	// Relations
	Board    Board `gorm:"foreignKey:BoardID" json:"-"`
	LockedBy *User `gorm:"foreignKey:LockedByID" json:"-"`
}

// CanBeChanged reports whether clients may set the field directly.
// Id, tag and the lock are never client-settable.
func (n *Node) CanBeChanged(field string) bool {
	switch field {
	case "title", "description", "link_to", "status", "assigned", "position_x", "position_y":
		return true
	}
	return false
}

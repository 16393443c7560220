package models

// Column is a kanban lane. Positions within a board are dense and
// contiguous starting at 0; insertion and deletion renumber the
// columns that follow.
type Column struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	BoardID  string `gorm:"type:varchar(128);index;not null" json:"board_id"`
	Name     string `gorm:"type:varchar(248);not null" json:"name"`
	Position int    `gorm:"not null" json:"position"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"-"`
}

func (c *Column) CanBeChanged(field string) bool {
	return field == "name"
}

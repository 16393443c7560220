package models

// Access is an ordered permission level. Comparisons are numeric:
// an OWNER can do everything an EDITOR can, and so on down.
type Access int

const (
	AccessViewer Access = 0
	AccessEditor Access = 1
	AccessOwner  Access = 2
)

func (a Access) Valid() bool {
	return a >= AccessViewer && a <= AccessOwner
}

// UserBoardAccess links a user to a board with a permission level.
// There is exactly one row per (user, board) pair; it is created
// implicitly with the board's link access the first time a user
// opens the board.
type UserBoardAccess struct {
	BoardID string `gorm:"primarykey;type:varchar(128)" json:"board_id"`
	UserID  uint64 `gorm:"primarykey" json:"user_id"`
	Access  Access `gorm:"not null" json:"access"`

	// Relations
	Board Board `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

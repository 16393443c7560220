package dto

import (
	"time"

	"github.com/codedocs/board-manager/internal/models"
)

// UserDTO represents a user in API responses and room events
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserWithAccessDTO pairs a user with their access level on a board
type UserWithAccessDTO struct {
	User   UserDTO       `json:"user"`
	Access models.Access `json:"access"`
}

// BoardDTO is the board summary sent over the room protocol
type BoardDTO struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	BoardType  models.BoardType `json:"board_type"`
	LinkAccess models.Access    `json:"link_access"`
}

// BoardDetailDTO is the full board representation for REST responses
type BoardDetailDTO struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	BoardType  models.BoardType `json:"board_type"`
	Prefix     string           `json:"prefix"`
	LinkAccess models.Access    `json:"link_access"`
	Created    time.Time        `json:"created"`
	Updated    time.Time        `json:"updated"`
}

// BoardListItemDTO is one entry of the caller's board list
type BoardListItemDTO struct {
	Board  BoardDetailDTO `json:"board"`
	Access models.Access  `json:"access"`
	Owner  *UserDTO       `json:"owner,omitempty"`
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

func ToUserWithAccessDTO(access models.UserBoardAccess) UserWithAccessDTO {
	return UserWithAccessDTO{
		User:   ToUserDTO(access.User),
		Access: access.Access,
	}
}

func ToUserWithAccessDTOs(accesses []models.UserBoardAccess) []UserWithAccessDTO {
	out := make([]UserWithAccessDTO, len(accesses))
	for i, a := range accesses {
		out[i] = ToUserWithAccessDTO(a)
	}
	return out
}

func ToBoardDTO(board models.Board) BoardDTO {
	return BoardDTO{
		ID:         board.ID,
		Name:       board.Name,
		BoardType:  board.BoardType,
		LinkAccess: board.LinkAccess,
	}
}

func ToBoardDetailDTO(board models.Board) BoardDetailDTO {
	return BoardDetailDTO{
		ID:         board.ID,
		Name:       board.Name,
		BoardType:  board.BoardType,
		Prefix:     board.Prefix,
		LinkAccess: board.LinkAccess,
		Created:    board.CreatedAt,
		Updated:    board.UpdatedAt,
	}
}

package dto

import (
	"fmt"
	"time"

	"github.com/codedocs/board-manager/internal/models"
)

// NodeDTO represents a node in room events and API responses
type NodeDTO struct {
	ID          uint64    `json:"id"`
	BoardID     string    `json:"board_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         int       `json:"tag"`
	Label       string    `json:"label"`
	LinkTo      string    `json:"link_to"`
	Status      *string   `json:"status"`
	Color       string    `json:"color"`
	Assigned    *string   `json:"assigned"`
	PositionX   float64   `json:"position_x"`
	PositionY   float64   `json:"position_y"`
	LockedBy    *uint64   `json:"locked_by"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// ColumnDTO represents a kanban column
type ColumnDTO struct {
	ID       uint64 `json:"id"`
	BoardID  string `json:"board_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// ToNodeDTO converts a node; prefix is the owning board's tag prefix.
func ToNodeDTO(node models.Node, prefix string) NodeDTO {
	return NodeDTO{
		ID:          node.ID,
		BoardID:     node.BoardID,
		Title:       node.Title,
		Description: node.Description,
		Tag:         node.Tag,
		Label:       fmt.Sprintf("%s-%d", prefix, node.Tag),
		LinkTo:      node.LinkTo,
		Status:      node.Status,
		Color:       node.Color,
		Assigned:    node.Assigned,
		PositionX:   node.PositionX,
		PositionY:   node.PositionY,
		LockedBy:    node.LockedByID,
		Created:     node.CreatedAt,
		Updated:     node.UpdatedAt,
	}
}

func ToNodeDTOs(nodes []models.Node, prefix string) []NodeDTO {
	out := make([]NodeDTO, len(nodes))
	for i, n := range nodes {
		out[i] = ToNodeDTO(n, prefix)
	}
	return out
}

func ToColumnDTO(column models.Column) ColumnDTO {
	return ColumnDTO{
		ID:       column.ID,
		BoardID:  column.BoardID,
		Name:     column.Name,
		Position: column.Position,
	}
}

func ToColumnDTOs(columns []models.Column) []ColumnDTO {
	out := make([]ColumnDTO, len(columns))
	for i, c := range columns {
		out[i] = ToColumnDTO(c)
	}
	return out
}

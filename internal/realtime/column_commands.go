package realtime

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/codedocs/board-manager/internal/dto"
	"github.com/codedocs/board-manager/internal/models"
	"gorm.io/gorm"
)

// boardColumn mirrors boardNode for kanban columns.
func (s *Session) boardColumn(columnID uint64) (*models.Column, error) {
	column, err := s.engine.columns.FindByID(columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if column.BoardID != s.board.ID {
		return nil, nil
	}
	return column, nil
}

func (s *Session) cmdColumnsInfo(msg map[string]interface{}) error {
	columns, err := s.engine.columns.ListByBoard(s.board.ID)
	if err != nil {
		return err
	}

	s.enqueue(Event{"type": CmdColumnsInfo, "columns": dto.ToColumnDTOs(columns)})
	return nil
}

func (s *Session) cmdCreateColumn(msg map[string]interface{}) error {
	name, okName := getString(msg, "name")
	position, okPos := getInt(msg, "position")
	if !okName || !okPos {
		s.enqueue(errorEvent(CmdCreateColumn, http.StatusBadRequest, "invalid name or position"))
		return nil
	}

	column := &models.Column{
		BoardID:  s.board.ID,
		Name:     name,
		Position: position,
	}
	if err := s.engine.columns.Insert(column); err != nil {
		return err
	}

	s.enqueue(Event{"type": CmdCreateColumn, "column": dto.ToColumnDTO(*column)})
	return nil
}

func (s *Session) cmdDeleteColumn(msg map[string]interface{}) error {
	columnID, ok := getUint(msg, "column_id")
	if !ok {
		s.enqueue(errorEvent(CmdDeleteColumn, http.StatusBadRequest, "invalid column_id"))
		return nil
	}

	column, err := s.boardColumn(columnID)
	if err != nil || column == nil {
		return err
	}

	if err := s.engine.columns.Delete(columnID); err != nil {
		return ignoreNotFound(err)
	}

	s.enqueue(Event{"type": CmdDeleteColumn, "column_id": columnID})
	return nil
}

func (s *Session) cmdChangingColumn(msg map[string]interface{}) error {
	columnID, ok := getUint(msg, "column_id")
	if !ok {
		s.enqueue(errorEvent(CmdChangingColumn, http.StatusBadRequest, "invalid column_id"))
		return nil
	}

	column, err := s.boardColumn(columnID)
	if err != nil || column == nil {
		return err
	}

	fields := make(map[string]interface{})
	for k, v := range msg {
		if !column.CanBeChanged(k) {
			continue
		}
		if _, ok := v.(string); !ok {
			s.enqueue(errorEvent(CmdChangingColumn, http.StatusBadRequest, fmt.Sprintf("invalid value for %s", k)))
			return nil
		}
		fields[k] = v
	}

	if len(fields) > 0 {
		column, err = s.engine.columns.UpdateFields(columnID, fields)
		if err != nil {
			return ignoreNotFound(err)
		}
	}

	s.broadcast(Event{"type": CmdChangingColumn, "column": dto.ToColumnDTO(*column)})
	return nil
}

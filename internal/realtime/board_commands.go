package realtime

import (
	"fmt"
	"net/http"

	"github.com/codedocs/board-manager/internal/dto"
	"github.com/codedocs/board-manager/internal/models"
)

func (s *Session) cmdBoardInfo(msg map[string]interface{}) error {
	board, err := s.engine.boards.FindByID(s.board.ID)
	if err != nil {
		return ignoreNotFound(err)
	}

	s.board = board
	s.enqueue(Event{"type": CmdBoardInfo, "board": dto.ToBoardDTO(*board)})
	return nil
}

func (s *Session) cmdChangeLinkAccess(msg map[string]interface{}) error {
	value, ok := getInt(msg, "new_access")
	access := accessFromInt(value)
	if !ok || access == nil {
		s.enqueue(errorEvent(CmdChangeLinkAccess, http.StatusBadRequest, "invalid access level"))
		return nil
	}

	board, err := s.engine.boards.UpdateFields(s.board.ID, map[string]interface{}{
		"link_access": *access,
	})
	if err != nil {
		return ignoreNotFound(err)
	}

	s.board = board
	s.broadcast(Event{"type": CmdChangeLinkAccess, "board": dto.ToBoardDTO(*board)})
	return nil
}

// boardConfigFields are the board attributes clients may set through
// change_board_config.
var boardConfigFields = map[string]bool{
	"name":       true,
	"board_type": true,
}

// boardConfigValue checks a client-supplied config value. Both
// settable attributes are strings; board_type must name a known type.
func boardConfigValue(field string, v interface{}) (interface{}, bool) {
	str, ok := v.(string)
	if !ok {
		return nil, false
	}
	if field == "board_type" {
		bt := models.BoardType(str)
		if bt != models.BoardTypeKanban && bt != models.BoardTypeNotes {
			return nil, false
		}
	}
	return str, true
}

func (s *Session) cmdChangeBoardConfig(msg map[string]interface{}) error {
	cfg, ok := msg["config"].(map[string]interface{})
	if !ok {
		s.enqueue(errorEvent(CmdChangeBoardConfig, http.StatusBadRequest, "config must be an object"))
		return nil
	}

	fields := make(map[string]interface{})
	for k, v := range cfg {
		if !boardConfigFields[k] {
			continue
		}
		value, ok := boardConfigValue(k, v)
		if !ok {
			s.enqueue(errorEvent(CmdChangeBoardConfig, http.StatusBadRequest, fmt.Sprintf("invalid value for %s", k)))
			return nil
		}
		fields[k] = value
	}

	board := s.board
	if len(fields) > 0 {
		updated, err := s.engine.boards.UpdateFields(s.board.ID, fields)
		if err != nil {
			return ignoreNotFound(err)
		}
		s.board = updated
		board = updated
	}

	s.broadcast(Event{"type": CmdChangeBoardConfig, "board": dto.ToBoardDTO(*board)})
	return nil
}

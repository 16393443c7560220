package realtime

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/codedocs/board-manager/internal/dto"
	"github.com/codedocs/board-manager/internal/models"
	"github.com/codedocs/board-manager/internal/utils"
	"gorm.io/gorm"
)

// nodeFieldValue checks a client-supplied value against the mutable
// node field's storage type. Nullable text fields accept JSON null.
func nodeFieldValue(field string, v interface{}) (interface{}, bool) {
	switch field {
	case "title", "description", "link_to":
		_, ok := v.(string)
		return v, ok
	case "status", "assigned":
		if v == nil {
			return nil, true
		}
		_, ok := v.(string)
		return v, ok
	case "position_x", "position_y":
		_, ok := v.(float64)
		return v, ok
	}
	return nil, false
}

// boardNode loads a node and checks it belongs to the session's
// board. A missing or foreign node yields (nil, nil): commands on
// vanished entities are silent no-ops.
func (s *Session) boardNode(nodeID uint64) (*models.Node, error) {
	node, err := s.engine.nodes.FindByID(nodeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if node.BoardID != s.board.ID {
		return nil, nil
	}
	return node, nil
}

// holdsLock reports whether the session's user owns the node's
// advisory lock. If not, the sender gets a can_not_changing frame
// with the node's current state.
func (s *Session) holdsLock(node *models.Node) bool {
	if node.LockedByID != nil && *node.LockedByID == s.user.ID {
		return true
	}
	s.enqueue(Event{"type": EvtCannotChange, "node": dto.ToNodeDTO(*node, s.board.Prefix)})
	return false
}

func (s *Session) cmdBoardNodes(msg map[string]interface{}) error {
	nodes, err := s.engine.nodes.ListByBoard(s.board.ID)
	if err != nil {
		return err
	}

	s.enqueue(Event{"type": CmdBoardNodes, "nodes": dto.ToNodeDTOs(nodes, s.board.Prefix)})
	return nil
}

func (s *Session) cmdCreateNode(msg map[string]interface{}) error {
	var status *string
	if v, ok := getString(msg, "status"); ok {
		status = &v
	}

	node, err := s.engine.nodes.Create(s.board.ID, utils.RandomNodeColor(), status)
	if err != nil {
		return ignoreNotFound(err)
	}

	s.broadcast(Event{"type": EvtNodeCreated, "node": dto.ToNodeDTO(*node, s.board.Prefix)})
	return nil
}

func (s *Session) cmdStartChangingNode(msg map[string]interface{}) error {
	nodeID, ok := getUint(msg, "node_id")
	if !ok {
		s.enqueue(errorEvent(CmdStartChangingNode, http.StatusBadRequest, "invalid node_id"))
		return nil
	}

	node, err := s.boardNode(nodeID)
	if err != nil || node == nil {
		return err
	}

	won, err := s.engine.nodes.AcquireLock(nodeID, s.user.ID)
	if err != nil {
		return err
	}

	// Re-fetch for the broadcast payload. The node can be deleted
	// between the lock write and this read; then no node_changed goes
	// out, and the concurrent delete's own node_deleted event tells
	// every session the node is gone.
	node, err = s.boardNode(nodeID)
	if err != nil || node == nil {
		return err
	}

	if !won {
		s.enqueue(Event{"type": EvtCannotChange, "node": dto.ToNodeDTO(*node, s.board.Prefix)})
		return nil
	}

	s.broadcast(Event{"type": EvtNodeChanged, "node": dto.ToNodeDTO(*node, s.board.Prefix)})
	return nil
}

func (s *Session) cmdChangingNode(msg map[string]interface{}) error {
	nodeID, ok := getUint(msg, "node_id")
	if !ok {
		s.enqueue(errorEvent(CmdChangingNode, http.StatusBadRequest, "invalid node_id"))
		return nil
	}

	node, err := s.boardNode(nodeID)
	if err != nil || node == nil {
		return err
	}
	if !s.holdsLock(node) {
		return nil
	}

	fields := make(map[string]interface{})
	for k, v := range msg {
		if !node.CanBeChanged(k) {
			continue
		}
		value, ok := nodeFieldValue(k, v)
		if !ok {
			s.enqueue(errorEvent(CmdChangingNode, http.StatusBadRequest, fmt.Sprintf("invalid value for %s", k)))
			return nil
		}
		fields[k] = value
	}

	if len(fields) > 0 {
		node, err = s.engine.nodes.UpdateFields(nodeID, fields)
		if err != nil {
			return ignoreNotFound(err)
		}
		if err := s.engine.boards.Touch(s.board.ID); err != nil {
			return err
		}
	}

	s.broadcast(Event{"type": EvtNodeChanged, "node": dto.ToNodeDTO(*node, s.board.Prefix)})
	return nil
}

func (s *Session) cmdStopChangingNode(msg map[string]interface{}) error {
	nodeID, ok := getUint(msg, "node_id")
	if !ok {
		s.enqueue(errorEvent(CmdStopChangingNode, http.StatusBadRequest, "invalid node_id"))
		return nil
	}

	node, err := s.boardNode(nodeID)
	if err != nil || node == nil {
		return err
	}
	if !s.holdsLock(node) {
		return nil
	}

	if _, err := s.engine.nodes.ReleaseLock(nodeID, s.user.ID); err != nil {
		return err
	}

	node.LockedByID = nil
	s.broadcast(Event{"type": EvtNodeChanged, "node": dto.ToNodeDTO(*node, s.board.Prefix)})
	return nil
}

func (s *Session) cmdDeleteNode(msg map[string]interface{}) error {
	nodeID, ok := getUint(msg, "node_id")
	if !ok {
		s.enqueue(errorEvent(CmdDeleteNode, http.StatusBadRequest, "invalid node_id"))
		return nil
	}

	node, err := s.boardNode(nodeID)
	if err != nil || node == nil {
		return err
	}
	if !s.holdsLock(node) {
		return nil
	}

	if err := s.engine.nodes.Delete(nodeID); err != nil {
		return err
	}
	if err := s.engine.boards.Touch(s.board.ID); err != nil {
		return err
	}

	s.broadcast(Event{"type": EvtNodeDeleted, "node": dto.ToNodeDTO(*node, s.board.Prefix)})
	return nil
}

// cmdMigrateBoard moves every node of this board to another board,
// remapping column references. Fire-and-forget: no event is emitted.
func (s *Session) cmdMigrateBoard(msg map[string]interface{}) error {
	targetID, ok := getString(msg, "another_board_id")
	if !ok {
		s.enqueue(errorEvent(CmdMigrateBoard, http.StatusBadRequest, "invalid another_board_id"))
		return nil
	}
	columnMap, ok := getStringMap(msg, "columns_map")
	if !ok {
		s.enqueue(errorEvent(CmdMigrateBoard, http.StatusBadRequest, "columns_map must be an object"))
		return nil
	}

	target, err := s.engine.boards.FindByID(targetID)
	if err != nil {
		return ignoreNotFound(err)
	}

	if err := s.engine.nodes.MoveToBoard(s.board.ID, target.ID, columnMap); err != nil {
		return err
	}
	return s.engine.boards.Touch(target.ID)
}

package realtime

import (
	"net/http"

	"github.com/codedocs/board-manager/internal/dto"
	"github.com/codedocs/board-manager/internal/models"
)

// accessFromInt validates a wire-level access value.
func accessFromInt(v int) *models.Access {
	access := models.Access(v)
	if !access.Valid() {
		return nil
	}
	return &access
}

func (s *Session) cmdActiveUsers(msg map[string]interface{}) error {
	seen := make(map[uint64]bool)
	var userIDs []uint64
	for _, other := range s.engine.registry.Sessions(s.board.ID) {
		if !seen[other.user.ID] {
			seen[other.user.ID] = true
			userIDs = append(userIDs, other.user.ID)
		}
	}

	accesses, err := s.engine.accesses.ListForUsers(s.board.ID, userIDs)
	if err != nil {
		return err
	}

	s.enqueue(Event{"type": CmdActiveUsers, "users": dto.ToUserWithAccessDTOs(accesses)})
	return nil
}

func (s *Session) cmdAllUsers(msg map[string]interface{}) error {
	accesses, err := s.engine.accesses.ListByBoard(s.board.ID)
	if err != nil {
		return err
	}

	s.enqueue(Event{"type": CmdAllUsers, "users": dto.ToUserWithAccessDTOs(accesses)})
	return nil
}

func (s *Session) cmdChangeUserAccess(msg map[string]interface{}) error {
	targetID, okTarget := getUint(msg, "another_user_id")
	value, okValue := getInt(msg, "new_access")
	newAccess := accessFromInt(value)
	if !okTarget || !okValue || newAccess == nil {
		s.enqueue(errorEvent(CmdChangeUserAccess, http.StatusBadRequest, "invalid access level"))
		return nil
	}

	caller, err := s.engine.accesses.Find(s.board.ID, s.user.ID)
	if err != nil {
		return ignoreNotFound(err)
	}
	target, err := s.engine.accesses.Find(s.board.ID, targetID)
	if err != nil {
		return ignoreNotFound(err)
	}

	// Nobody can touch a user above their own level, nor hand out a
	// level above their own.
	if caller.Access < target.Access {
		s.enqueue(errorEvent(CmdChangeUserAccess, http.StatusForbidden, ""))
		return nil
	}
	if caller.Access < *newAccess {
		s.enqueue(errorEvent(CmdChangeUserAccess, http.StatusNotAcceptable, ""))
		return nil
	}

	target.Access = *newAccess
	if err := s.engine.accesses.Update(target); err != nil {
		return err
	}

	s.broadcast(Event{"type": CmdChangeUserAccess, "user": dto.ToUserWithAccessDTO(*target)})
	return nil
}

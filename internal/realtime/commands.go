package realtime

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type commandHandler func(s *Session, msg map[string]interface{}) error

// command couples a handler with the payload keys it insists on.
// A message missing one of them is rejected before the handler runs,
// with an error frame naming the command and the field.
type command struct {
	required []string
	handle   commandHandler
}

// commands is the closed routing table: a message type not listed
// here is a protocol error, never a reflection lookup.
var commands = map[string]command{
	CmdBoardInfo:         {nil, (*Session).cmdBoardInfo},
	CmdActiveUsers:       {nil, (*Session).cmdActiveUsers},
	CmdAllUsers:          {nil, (*Session).cmdAllUsers},
	CmdChangeLinkAccess:  {[]string{"new_access"}, (*Session).cmdChangeLinkAccess},
	CmdChangeUserAccess:  {[]string{"another_user_id", "new_access"}, (*Session).cmdChangeUserAccess},
	CmdChangeBoardConfig: {[]string{"config"}, (*Session).cmdChangeBoardConfig},
	CmdBoardNodes:        {nil, (*Session).cmdBoardNodes},
	CmdCreateNode:        {nil, (*Session).cmdCreateNode},
	CmdStartChangingNode: {[]string{"node_id"}, (*Session).cmdStartChangingNode},
	CmdChangingNode:      {[]string{"node_id"}, (*Session).cmdChangingNode},
	CmdStopChangingNode:  {[]string{"node_id"}, (*Session).cmdStopChangingNode},
	CmdDeleteNode:        {[]string{"node_id"}, (*Session).cmdDeleteNode},
	CmdColumnsInfo:       {nil, (*Session).cmdColumnsInfo},
	CmdCreateColumn:      {[]string{"name", "position"}, (*Session).cmdCreateColumn},
	CmdDeleteColumn:      {[]string{"column_id"}, (*Session).cmdDeleteColumn},
	CmdChangingColumn:    {[]string{"column_id"}, (*Session).cmdChangingColumn},
	CmdMigrateBoard:      {[]string{"another_board_id", "columns_map"}, (*Session).cmdMigrateBoard},
}

// dispatch routes one inbound message. Rejections go to the sender
// only and never close the connection; a non-nil return is a store
// failure and fatal for the session.
func (s *Session) dispatch(msg map[string]interface{}) error {
	name, _ := msg["type"].(string)

	cmd, ok := commands[name]
	if !ok {
		s.enqueue(errorEvent(name, 400, fmt.Sprintf("unknown command: %q", name)))
		return nil
	}

	for _, field := range cmd.required {
		if _, present := msg[field]; !present {
			s.enqueue(missingFieldEvent(name, field))
			return nil
		}
	}

	return cmd.handle(s, msg)
}

// ignoreNotFound keeps commands on vanished entities as silent
// no-ops: concurrent deletion is an expected race, not a failure.
func ignoreNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func getString(msg map[string]interface{}, key string) (string, bool) {
	v, ok := msg[key].(string)
	return v, ok
}

func getUint(msg map[string]interface{}, key string) (uint64, bool) {
	switch v := msg[key].(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

func getInt(msg map[string]interface{}, key string) (int, bool) {
	switch v := msg[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// getStringMap normalizes a JSON object of string/number values into
// a string-to-string map.
func getStringMap(msg map[string]interface{}, key string) (map[string]string, bool) {
	raw, ok := msg[key].(map[string]interface{})
	if !ok {
		return nil, false
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch t := v.(type) {
		case string:
			out[k] = t
		case float64:
			out[k] = fmt.Sprintf("%.0f", t)
		default:
			return nil, false
		}
	}
	return out, true
}

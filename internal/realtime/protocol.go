package realtime

import (
	"fmt"
	"net/http"
)

// Command names accepted over a board connection.
const (
	CmdBoardInfo         = "board_info"
	CmdActiveUsers       = "active_users"
	CmdAllUsers          = "all_users"
	CmdChangeLinkAccess  = "change_link_access"
	CmdChangeUserAccess  = "change_user_access"
	CmdChangeBoardConfig = "change_board_config"
	CmdBoardNodes        = "board_nodes"
	CmdCreateNode        = "create_node"
	CmdStartChangingNode = "start_changing_node"
	CmdChangingNode      = "changing_node"
	CmdStopChangingNode  = "stop_changing_node"
	CmdDeleteNode        = "delete_node"
	CmdColumnsInfo       = "columns_info"
	CmdCreateColumn      = "create_column"
	CmdDeleteColumn      = "delete_column"
	CmdChangingColumn    = "changing_column"
	CmdMigrateBoard      = "migrate_to_another_board"
)

// Event names the server emits on its own.
const (
	EvtChannelName  = "channel_name"
	EvtYourAccess   = "your_access"
	EvtNewUser      = "new_user"
	EvtDeleteUser   = "delete_user"
	EvtNodeCreated  = "node_created"
	EvtNodeChanged  = "node_changed"
	EvtNodeDeleted  = "node_deleted"
	EvtCannotChange = "can_not_changing"
)

// Event is one outbound JSON frame.
type Event map[string]interface{}

// closeCode maps an HTTP-style status onto the websocket close code
// range reserved for application use.
func closeCode(httpStatus int) int {
	return 4000 + httpStatus
}

// errorEvent is the reply for a command that was rejected without any
// state change.
func errorEvent(command string, httpStatus int, message string) Event {
	return Event{
		"type":       command,
		"error_code": closeCode(httpStatus),
		"message":    message,
	}
}

func missingFieldEvent(command, field string) Event {
	return errorEvent(command, http.StatusBadRequest, fmt.Sprintf("missing required field: %s", field))
}

package services

import (
	"testing"

	"github.com/codedocs/board-manager/internal/models"
	"github.com/codedocs/board-manager/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type boardServiceTestEnv struct {
	db       *gorm.DB
	service  *BoardService
	accesses repository.AccessRepository
}

func setupBoardServiceTestEnv(t *testing.T) boardServiceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.UserBoardAccess{},
		&models.Column{},
		&models.Node{},
	)
	require.NoError(t, err)

	boardRepo := repository.NewBoardRepository(db)
	accessRepo := repository.NewAccessRepository(db)
	columnRepo := repository.NewColumnRepository(db)

	return boardServiceTestEnv{
		db:       db,
		service:  NewBoardService(boardRepo, accessRepo, columnRepo),
		accesses: accessRepo,
	}
}

func (env boardServiceTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func TestBoardService_CreateKanbanBoard(t *testing.T) {
	env := setupBoardServiceTestEnv(t)
	owner := env.createUser(t, "owner")

	board, err := env.service.CreateBoard(CreateBoardInput{
		BoardType: models.BoardTypeKanban,
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, board.ID)
	require.Len(t, board.Prefix, 5)

	access, err := env.accesses.Find(board.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, models.AccessOwner, access.Access)

	columns, err := env.service.GetColumns(board.ID)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	for i, name := range []string{"TODO", "IN PROGRESS", "DONE"} {
		require.Equal(t, name, columns[i].Name)
		require.Equal(t, i, columns[i].Position)
	}
}

func TestBoardService_CreateNotesBoardHasNoColumns(t *testing.T) {
	env := setupBoardServiceTestEnv(t)
	owner := env.createUser(t, "owner")

	board, err := env.service.CreateBoard(CreateBoardInput{
		BoardType: models.BoardTypeNotes,
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)

	columns, err := env.service.GetColumns(board.ID)
	require.NoError(t, err)
	require.Empty(t, columns)
}

func TestBoardService_CreateBoardInvalidType(t *testing.T) {
	env := setupBoardServiceTestEnv(t)
	owner := env.createUser(t, "owner")

	_, err := env.service.CreateBoard(CreateBoardInput{
		BoardType: "spreadsheet",
		OwnerID:   owner.ID,
	})
	require.ErrorIs(t, err, ErrInvalidBoardType)
}

func TestBoardService_CreateBoardInheritsParticipants(t *testing.T) {
	env := setupBoardServiceTestEnv(t)
	prevOwner := env.createUser(t, "prev-owner")
	viewer := env.createUser(t, "viewer")
	creator := env.createUser(t, "creator")

	prev, err := env.service.CreateBoard(CreateBoardInput{
		BoardType: models.BoardTypeNotes,
		OwnerID:   prevOwner.ID,
	})
	require.NoError(t, err)
	require.NoError(t, env.accesses.CreateAll([]models.UserBoardAccess{
		{BoardID: prev.ID, UserID: viewer.ID, Access: models.AccessViewer},
		{BoardID: prev.ID, UserID: creator.ID, Access: models.AccessEditor},
	}))

	next, err := env.service.CreateBoard(CreateBoardInput{
		BoardType:   models.BoardTypeNotes,
		OwnerID:     creator.ID,
		PrevBoardID: prev.ID,
	})
	require.NoError(t, err)

	// The creator owns the new board even though they were only an
	// editor on the previous one.
	access, err := env.accesses.Find(next.ID, creator.ID)
	require.NoError(t, err)
	require.Equal(t, models.AccessOwner, access.Access)

	// The previous owner is carried over demoted to editor.
	access, err = env.accesses.Find(next.ID, prevOwner.ID)
	require.NoError(t, err)
	require.Equal(t, models.AccessEditor, access.Access)

	access, err = env.accesses.Find(next.ID, viewer.ID)
	require.NoError(t, err)
	require.Equal(t, models.AccessViewer, access.Access)
}

func TestBoardService_DeleteBoard(t *testing.T) {
	env := setupBoardServiceTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")

	board, err := env.service.CreateBoard(CreateBoardInput{
		BoardType: models.BoardTypeKanban,
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)
	require.NoError(t, env.accesses.CreateAll([]models.UserBoardAccess{
		{BoardID: board.ID, UserID: member.ID, Access: models.AccessEditor},
	}))

	require.ErrorIs(t, env.service.DeleteBoard(board.ID, member.ID), ErrNotBoardOwner)
	require.ErrorIs(t, env.service.DeleteBoard("no-such-board", owner.ID), ErrBoardNotFound)

	require.NoError(t, env.service.DeleteBoard(board.ID, owner.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.Board{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestBoardService_ListUserBoards(t *testing.T) {
	env := setupBoardServiceTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")

	board, err := env.service.CreateBoard(CreateBoardInput{
		BoardType: models.BoardTypeNotes,
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)
	require.NoError(t, env.accesses.CreateAll([]models.UserBoardAccess{
		{BoardID: board.ID, UserID: member.ID, Access: models.AccessViewer},
	}))

	accesses, owners, err := env.service.ListUserBoards(member.ID)
	require.NoError(t, err)
	require.Len(t, accesses, 1)
	require.Equal(t, board.ID, accesses[0].BoardID)
	require.Equal(t, models.AccessViewer, accesses[0].Access)
	require.Equal(t, owner.Username, owners[board.ID].Username)
}

func TestBoardService_GenerateLink(t *testing.T) {
	env := setupBoardServiceTestEnv(t)
	owner := env.createUser(t, "owner")

	board, err := env.service.CreateBoard(CreateBoardInput{
		BoardType: models.BoardTypeNotes,
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)

	link, err := env.service.GenerateLink(board.ID)
	require.NoError(t, err)

	// The link names the board and nothing else: whoever opens it
	// must identify themselves with their own token.
	require.Equal(t, "/board/"+board.ID, link)

	_, err = env.service.GenerateLink("no-such-board")
	require.ErrorIs(t, err, ErrBoardNotFound)
}

func TestBoardService_LeaveBoard(t *testing.T) {
	env := setupBoardServiceTestEnv(t)
	owner := env.createUser(t, "owner")
	member := env.createUser(t, "member")

	board, err := env.service.CreateBoard(CreateBoardInput{
		BoardType: models.BoardTypeNotes,
		OwnerID:   owner.ID,
	})
	require.NoError(t, err)
	require.NoError(t, env.accesses.CreateAll([]models.UserBoardAccess{
		{BoardID: board.ID, UserID: member.ID, Access: models.AccessEditor},
	}))

	require.ErrorIs(t, env.service.LeaveBoard(board.ID, owner.ID), ErrOwnerCannotLeave)
	require.ErrorIs(t, env.service.LeaveBoard(board.ID, 9999), ErrNoBoardAccess)

	require.NoError(t, env.service.LeaveBoard(board.ID, member.ID))

	_, err = env.accesses.Find(board.ID, member.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The board survives a member leaving.
	_, err = env.service.GetColumns(board.ID)
	require.NoError(t, err)
}

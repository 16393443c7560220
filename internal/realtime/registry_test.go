package realtime

import (
	"sync"
	"testing"

	"github.com/codedocs/board-manager/internal/models"
	"github.com/stretchr/testify/require"
)

func testSession(userID uint64) *Session {
	return &Session{
		user: &models.User{ID: userID},
		send: make(chan Event, sendBuffer),
		done: make(chan struct{}),
	}
}

func TestRegistry_JoinLeave(t *testing.T) {
	r := NewRegistry()

	a := testSession(1)
	b := testSession(2)

	r.Join("board-1", a)
	r.Join("board-1", b)
	require.Len(t, r.Sessions("board-1"), 2)

	r.Leave("board-1", a)
	sessions := r.Sessions("board-1")
	require.Len(t, sessions, 1)
	require.Same(t, b, sessions[0])

	r.Leave("board-1", b)
	require.Empty(t, r.Sessions("board-1"))
	require.Empty(t, r.rooms, "empty rooms must be dropped")
}

func TestRegistry_LeaveUnknownRoom(t *testing.T) {
	r := NewRegistry()
	r.Leave("nope", testSession(1))
	require.Empty(t, r.Sessions("nope"))
}

func TestRegistry_JoinLeaveReportUserSessions(t *testing.T) {
	r := NewRegistry()

	first := testSession(7)
	second := testSession(7)
	other := testSession(8)

	require.Equal(t, 1, r.Join("board-1", first))
	require.Equal(t, 2, r.Join("board-1", second))
	require.Equal(t, 1, r.Join("board-1", other))
	require.Equal(t, 1, r.Join("board-2", testSession(7)))

	require.Equal(t, 1, r.Leave("board-1", first))
	require.Equal(t, 0, r.Leave("board-1", second))
	require.Equal(t, 0, r.Leave("board-1", other))
}

func TestRegistry_ConcurrentJoinsAnnounceOnce(t *testing.T) {
	r := NewRegistry()

	const sessions = 16
	results := make(chan int, sessions)

	var wg sync.WaitGroup
	all := make([]*Session, sessions)
	for i := range all {
		all[i] = testSession(7)
	}
	for _, s := range all {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			results <- r.Join("board-1", s)
		}(s)
	}
	wg.Wait()
	close(results)

	// Exactly one join may observe count 1, no matter the interleaving.
	firsts := 0
	for n := range results {
		if n == 1 {
			firsts++
		}
	}
	require.Equal(t, 1, firsts)

	// And exactly one leave observes count 0.
	departures := make(chan int, sessions)
	for _, s := range all {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			departures <- r.Leave("board-1", s)
		}(s)
	}
	wg.Wait()
	close(departures)

	lasts := 0
	for n := range departures {
		if n == 0 {
			lasts++
		}
	}
	require.Equal(t, 1, lasts)
}

func TestRegistry_BroadcastReachesRoomOnly(t *testing.T) {
	r := NewRegistry()
	b := NewRoomBroadcaster(r)

	member := testSession(1)
	outsider := testSession(2)
	r.Join("board-1", member)
	r.Join("board-2", outsider)

	b.Broadcast("board-1", Event{"type": "ping"})

	select {
	case evt := <-member.send:
		require.Equal(t, "ping", evt["type"])
	default:
		t.Fatal("expected event for room member")
	}

	select {
	case evt := <-outsider.send:
		t.Fatalf("unexpected event for other room: %v", evt)
	default:
	}
}

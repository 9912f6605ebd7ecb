package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mvidak/tictactoe-go/internal/model"
)

type ManagerSuite struct {
	suite.Suite
	manager *Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.manager = NewManager()
}

func (s *ManagerSuite) newMember(code model.RoomCode, player model.PlayerID) *Client {
	c := &Client{
		send:     make(chan model.Event, sendBufferSize),
		playerID: player,
		room:     code,
	}
	s.manager.add(code, c)
	return c
}

func drain(c *Client) []model.Event {
	var events []model.Event
	for {
		select {
		case e := <-c.send:
			events = append(events, e)
		default:
			return events
		}
	}
}

func (s *ManagerSuite) TestBroadcastReachesAllMembers() {
	a := s.newMember("ROOM01", "alice")
	b := s.newMember("ROOM01", "bob")
	other := s.newMember("ROOM02", "carol")

	s.manager.Broadcast("ROOM01", model.NewSignal(model.EventRestartCanceled))

	s.Len(drain(a), 1)
	s.Len(drain(b), 1)
	s.Empty(drain(other))
}

func (s *ManagerSuite) TestSendToTargetsOneIdentity() {
	a := s.newMember("ROOM01", "alice")
	b := s.newMember("ROOM01", "bob")

	s.manager.SendTo("ROOM01", "bob", model.NewSignal(model.EventOpponentConnected))

	s.Empty(drain(a))
	s.Len(drain(b), 1)
}

func (s *ManagerSuite) TestSendToOthersExcludesIdentity() {
	a := s.newMember("ROOM01", "alice")
	b := s.newMember("ROOM01", "bob")

	s.manager.SendToOthers("ROOM01", "alice", model.NewSignal(model.EventOpponentLeft))

	s.Empty(drain(a))
	s.Len(drain(b), 1)
}

func (s *ManagerSuite) TestUnknownRoomIsNoOp() {
	s.NotPanics(func() {
		s.manager.Broadcast("NOPE", model.NewSignal(model.EventOpponentLeft))
	})
	s.Equal(0, s.manager.MemberCount("NOPE"))
}

func (s *ManagerSuite) TestRemoveDiscardsEmptiedGroup() {
	a := s.newMember("ROOM01", "alice")
	b := s.newMember("ROOM01", "bob")

	s.Equal(2, s.manager.MemberCount("ROOM01"))
	s.Equal(1, s.manager.remove("ROOM01", a))
	s.Equal(0, s.manager.removeAndClose("ROOM01", b))
	s.Equal(0, s.manager.MemberCount("ROOM01"))

	// Channel closed by removeAndClose
	_, open := <-b.send
	s.False(open)
}

func (s *ManagerSuite) TestFullBufferDropsInsteadOfBlocking() {
	a := s.newMember("ROOM01", "alice")
	for i := 0; i < sendBufferSize; i++ {
		s.manager.Broadcast("ROOM01", model.NewSignal(model.EventOpponentMove))
	}

	done := make(chan struct{})
	go func() {
		s.manager.Broadcast("ROOM01", model.NewSignal(model.EventOpponentMove))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("broadcast blocked on a full client buffer")
	}
	s.Len(drain(a), sendBufferSize)
}

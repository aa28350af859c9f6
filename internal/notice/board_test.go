package notice

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-tilesim/internal/scheduler"
	"github.com/pixil98/go-tilesim/internal/world"
)

const testTick = 50 * time.Millisecond

func newTestBoard(opts ...BoardOpt) (*Board, *scheduler.Scheduler) {
	s := scheduler.New(scheduler.WithTickInterval(testTick))
	return NewBoard(s, opts...), s
}

func advance(s *scheduler.Scheduler, ticks int) {
	for i := 0; i < ticks; i++ {
		s.Advance(testTick)
	}
}

func TestBoard_CancelMessage(t *testing.T) {
	b, s := newTestBoard()

	b.SetCancelMessage("You cannot walk here.")
	testutil.AssertEqual(t, "shown", b.CancelMessage(), "You cannot walk here.")

	advance(s, 40)
	b.SetCancelMessage("There is no way.")
	advance(s, 40)
	testutil.AssertEqual(t, "extended", b.CancelMessage(), "There is no way.")

	advance(s, 20)
	testutil.AssertEqual(t, "expired", b.CancelMessage(), "")

	b.SetCancelMessage("again")
	advance(s, 60)
	testutil.AssertEqual(t, "expired again", b.CancelMessage(), "")
}

func TestBoard_ServerMessage(t *testing.T) {
	b, s := newTestBoard()

	b.SetServerMessage("Server restarting.")
	advance(s, 59)
	testutil.AssertEqual(t, "shown", b.ServerMessage(), "Server restarting.")
	advance(s, 1)
	testutil.AssertEqual(t, "expired", b.ServerMessage(), "")
}

func TestBoard_FloatingText(t *testing.T) {
	b, s := newTestBoard(WithWidth(3))

	b.AddFloatingText(world.Position{X: 1, Y: 2}, "aaa bbb", 7)

	els := b.Elements()
	testutil.AssertEqual(t, "count", len(els), 1)
	testutil.AssertEqual(t, "kind", els[0].Kind, Floating)
	testutil.AssertEqual(t, "remaining", els[0].Remaining(), 1.0)
	if !slices.Equal(els[0].Lines, []string{"aaa", "bbb"}) {
		t.Errorf("lines %q", els[0].Lines)
	}

	advance(s, FloatingTicks-1)
	testutil.AssertEqual(t, "still shown", len(b.Elements()), 1)
	advance(s, 1)
	testutil.AssertEqual(t, "expired", len(b.Elements()), 0)
}

func TestBoard_SpeechBuffer(t *testing.T) {
	b, s := newTestBoard()

	b.Say("rat", "hello\nworld", 0)

	el, ok := b.Speaking("rat")
	testutil.AssertEqual(t, "speaking", ok, true)
	testutil.AssertEqual(t, "first line", el.Lines[0], "hello")

	// 15 * sqrt(5) is just over 33 ticks.
	advance(s, 34)
	el, ok = b.Speaking("rat")
	testutil.AssertEqual(t, "still speaking", ok, true)
	testutil.AssertEqual(t, "second line", el.Lines[0], "world")
	testutil.AssertEqual(t, "one element", len(b.Elements()), 1)

	advance(s, 34)
	_, ok = b.Speaking("rat")
	testutil.AssertEqual(t, "done", ok, false)
	testutil.AssertEqual(t, "empty", len(b.Elements()), 0)
}

func TestBoard_SayReplaces(t *testing.T) {
	b, s := newTestBoard()

	b.Say("rat", "one\ntwo", 0)
	b.Say("rat", "three", 0)

	el, _ := b.Speaking("rat")
	testutil.AssertEqual(t, "replaced", el.Lines[0], "three")
	testutil.AssertEqual(t, "one element", len(b.Elements()), 1)

	advance(s, 34)
	_, ok := b.Speaking("rat")
	testutil.AssertEqual(t, "queue dropped", ok, false)
}

func TestBoard_SpeakersAreIndependent(t *testing.T) {
	b, _ := newTestBoard()

	b.Say("rat", "squeak", 0)
	b.Say("wolf", "howl", 0)

	testutil.AssertEqual(t, "two elements", len(b.Elements()), 2)

	b.Clear()
	testutil.AssertEqual(t, "cleared", len(b.Elements()), 0)
	_, ok := b.Speaking("rat")
	testutil.AssertEqual(t, "not speaking", ok, false)
}

func TestSpeechDuration(t *testing.T) {
	testutil.AssertEqual(t, "four runes", SpeechDuration("abcd", testTick), 30*testTick)
	testutil.AssertEqual(t, "empty", SpeechDuration("", testTick), time.Duration(0))
}

func TestUserError(t *testing.T) {
	cause := errors.New("no path found")
	err := WrapUserError("There is no way.", cause)

	testutil.AssertEqual(t, "message", err.Error(), "There is no way.")
	testutil.AssertEqual(t, "unwrap", errors.Is(err, cause), true)

	var ue *UserError
	testutil.AssertEqual(t, "as", errors.As(error(NewUserError("nope")), &ue), true)
	testutil.AssertEqual(t, "as message", ue.Message, "nope")
}

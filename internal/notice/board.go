package notice

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-tilesim/internal/display"
	"github.com/pixil98/go-tilesim/internal/scheduler"
	"github.com/pixil98/go-tilesim/internal/world"
)

const (
	CancelMessageDuration = 3 * time.Second
	ServerMessageDuration = 3 * time.Second

	FloatingTicks = 15
	// SpeechTicksPerRoot scales with the square root of the message length.
	SpeechTicksPerRoot = 15
)

type Kind int

const (
	Floating Kind = iota
	Speech
)

// Element is a piece of text shown in the world for a limited time.
type Element struct {
	ID       uuid.UUID
	Kind     Kind
	Speaker  string
	Position world.Position
	Lines    []string
	Color    int

	timer *scheduler.Timer
}

// Remaining returns the fraction of the element's lifetime left, clamped.
func (e *Element) Remaining() float64 {
	return scheduler.Clamp01(e.timer.RemainingFraction())
}

type timedText struct {
	text  string
	timer *scheduler.Timer
}

// Board holds the cancel message, the server message and every text
// element currently on screen.
type Board struct {
	scheduler *scheduler.Scheduler
	width     int

	cancel timedText
	server timedText

	active  []*Element
	speech  map[string]*Element
	buffers map[string][]string
}

func NewBoard(s *scheduler.Scheduler, opts ...BoardOpt) *Board {
	b := &Board{
		scheduler: s,
		width:     display.DefaultWidth,
		speech:    make(map[string]*Element),
		buffers:   make(map[string][]string),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// SetCancelMessage shows msg and restarts its expiry.
func (b *Board) SetCancelMessage(msg string) {
	b.setTimed(&b.cancel, msg, CancelMessageDuration)
}

func (b *Board) CancelMessage() string {
	return b.cancel.text
}

// SetServerMessage shows msg from the server and restarts its expiry.
func (b *Board) SetServerMessage(msg string) {
	b.setTimed(&b.server, msg, ServerMessageDuration)
}

func (b *Board) ServerMessage() string {
	return b.server.text
}

func (b *Board) setTimed(slot *timedText, msg string, d time.Duration) {
	slot.text = msg
	if slot.timer != nil {
		slot.timer = slot.timer.ExtendTo(b.ticks(d))
		return
	}
	slot.timer = b.scheduler.AddEvent(func() {
		slot.text = ""
		slot.timer = nil
	}, b.ticks(d))
}

func (b *Board) ticks(d time.Duration) int {
	interval := b.scheduler.TickInterval()
	return int((d + interval - 1) / interval)
}

// AddFloatingText shows msg above pos.
func (b *Board) AddFloatingText(pos world.Position, msg string, color int) uuid.UUID {
	el := &Element{
		ID:       uuid.New(),
		Kind:     Floating,
		Position: pos,
		Lines:    display.Lines(msg, b.width),
		Color:    color,
	}
	b.show(el, time.Duration(FloatingTicks)*b.scheduler.TickInterval())
	return el.ID
}

// Say shows what speaker said, one line at a time. A new message replaces
// whatever the speaker still had queued.
func (b *Board) Say(speaker string, msg string, color int) uuid.UUID {
	delete(b.buffers, speaker)
	if prev, ok := b.speech[speaker]; ok {
		prev.timer.Complete()
	}

	lines := strings.Split(msg, "\n")
	if len(lines) > 1 {
		b.buffers[speaker] = lines[1:]
	}
	return b.speak(speaker, lines[0], color)
}

func (b *Board) speak(speaker string, line string, color int) uuid.UUID {
	el := &Element{
		ID:      uuid.New(),
		Kind:    Speech,
		Speaker: speaker,
		Lines:   display.Lines(line, b.width),
		Color:   color,
	}
	b.speech[speaker] = el
	b.show(el, SpeechDuration(line, b.scheduler.TickInterval()))
	return el.ID
}

// SpeechDuration returns how long a line of speech stays up.
func SpeechDuration(line string, tickInterval time.Duration) time.Duration {
	n := float64(len([]rune(line)))
	return time.Duration(SpeechTicksPerRoot * math.Sqrt(n) * float64(tickInterval))
}

func (b *Board) show(el *Element, d time.Duration) {
	b.active = append(b.active, el)
	el.timer = b.scheduler.AddEventAfter(func() { b.expire(el) }, d)
}

func (b *Board) expire(el *Element) {
	for i, other := range b.active {
		if other == el {
			b.active = append(b.active[:i], b.active[i+1:]...)
			break
		}
	}

	if el.Kind != Speech {
		return
	}
	if b.speech[el.Speaker] == el {
		delete(b.speech, el.Speaker)
	}

	queued := b.buffers[el.Speaker]
	if len(queued) == 0 {
		delete(b.buffers, el.Speaker)
		return
	}
	next := queued[0]
	if len(queued) == 1 {
		delete(b.buffers, el.Speaker)
	} else {
		b.buffers[el.Speaker] = queued[1:]
	}
	b.speak(el.Speaker, next, el.Color)
}

// Elements returns the elements on screen, oldest first.
func (b *Board) Elements() []*Element {
	out := make([]*Element, len(b.active))
	copy(out, b.active)
	return out
}

// Speaking returns the speech element currently shown for speaker.
func (b *Board) Speaking(speaker string) (*Element, bool) {
	el, ok := b.speech[speaker]
	return el, ok
}

// Clear removes every text element. The cancel and server messages stay.
func (b *Board) Clear() {
	for _, el := range b.active {
		el.timer.Cancel()
	}
	b.active = nil
	clear(b.speech)
	clear(b.buffers)
}

// Package input tracks the viewer's button state. Platform events are
// translated into Events by the window package and fed through Apply.
package input

// Key is a logical viewer key.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// EventType identifies a processed platform event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventKeyDown
	EventKeyUp
)

// Event is a platform event reduced to what the viewer reacts to.
type Event struct {
	Type EventType
	Key  Key
}

// ButtonState is the state of one button. WasDown is true for exactly one
// frame after the button is released.
type ButtonState struct {
	IsDown  bool
	WasDown bool
}

// Process records the button's new level.
func (b *ButtonState) Process(down bool) {
	b.WasDown = b.IsDown && !down
	b.IsDown = down
}

// State is the per-frame input snapshot.
type State struct {
	Up    ButtonState
	Down  ButtonState
	Left  ButtonState
	Right ButtonState
	Quit  ButtonState

	// QuitRequested is set by a window close or by pressing the quit key.
	QuitRequested bool
}

// New returns a State with every button up.
func New() *State {
	return &State{}
}

// BeginFrame clears edge flags so a release is reported for one frame only.
func (s *State) BeginFrame() {
	for _, b := range []*ButtonState{&s.Up, &s.Down, &s.Left, &s.Right, &s.Quit} {
		b.WasDown = false
	}
}

// HandleKey updates the button bound to key. Unknown keys are ignored.
func (s *State) HandleKey(key Key, down bool) {
	b := s.button(key)
	if b == nil {
		return
	}
	// Key repeat delivers repeated downs; only level changes matter.
	if b.IsDown == down {
		return
	}
	b.Process(down)
	if key == KeyQuit && b.IsDown {
		s.QuitRequested = true
	}
}

// Apply feeds a batch of events into the state.
func (s *State) Apply(events []Event) {
	for _, e := range events {
		switch e.Type {
		case EventQuit:
			s.QuitRequested = true
		case EventKeyDown:
			s.HandleKey(e.Key, true)
		case EventKeyUp:
			s.HandleKey(e.Key, false)
		}
	}
}

func (s *State) button(key Key) *ButtonState {
	switch key {
	case KeyUp:
		return &s.Up
	case KeyDown:
		return &s.Down
	case KeyLeft:
		return &s.Left
	case KeyRight:
		return &s.Right
	case KeyQuit:
		return &s.Quit
	default:
		return nil
	}
}

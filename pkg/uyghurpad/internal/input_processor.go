package internal

import (
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/constants"
	"github.com/veandco/go-sdl2/sdl"
)

var globalInputProcessor *Processor

type Processor struct {
	mapping     *InputMapping
	axisStates  map[uint8]int8
	hatStates   map[uint8]uint8
	controllers map[sdl.JoystickID]*sdl.GameController
	joysticks   map[sdl.JoystickID]*sdl.Joystick
	eventQueue  []*Event
}

func NewInputProcessor(mapping *InputMapping) *Processor {
	if mapping == nil {
		mapping = DefaultInputMapping()
	}
	return &Processor{
		mapping:     mapping,
		axisStates:  make(map[uint8]int8),
		hatStates:   make(map[uint8]uint8),
		controllers: make(map[sdl.JoystickID]*sdl.GameController),
		joysticks:   make(map[sdl.JoystickID]*sdl.Joystick),
	}
}

func initInputProcessor(mappingPath string) {
	globalInputProcessor = NewInputProcessor(GetInputMapping(mappingPath))

	// Game controllers, including those present at startup, arrive as
	// CONTROLLERDEVICEADDED events. Raw joysticks are opened here.
	n := sdl.NumJoysticks()
	GetInternalLogger().Debug("Detecting joysticks", "joystick_count", n)
	for i := 0; i < n; i++ {
		if !sdl.IsGameController(i) {
			globalInputProcessor.open(i)
		}
	}
}

func GetInputProcessor() *Processor {
	return globalInputProcessor
}

func (ip *Processor) open(index int) {
	logger := GetInternalLogger()

	if sdl.IsGameController(index) {
		controller := sdl.GameControllerOpen(index)
		if controller == nil {
			logger.Error("Failed to open game controller", "index", index)
			return
		}
		ip.controllers[controller.Joystick().InstanceID()] = controller
		logger.Debug("Opened game controller", "index", index, "name", controller.Name())
		return
	}

	joystick := sdl.JoystickOpen(index)
	if joystick == nil {
		logger.Debug("Failed to open raw joystick", "index", index)
		return
	}
	ip.joysticks[joystick.InstanceID()] = joystick
	logger.Debug("Opened raw joystick", "index", index, "name", joystick.Name())
}

// isController reports whether a joystick instance is already delivering
// controller events, in which case its raw joystick events are duplicates.
func (ip *Processor) isController(id sdl.JoystickID) bool {
	_, ok := ip.controllers[id]
	return ok
}

func (ip *Processor) Mapping() *InputMapping {
	return ip.mapping
}

// ProcessSDLEvent maps a raw SDL event to a virtual button event, or returns
// nil when the event is not mapped. A hat or axis changing direction
// produces a release and a press; the press is queued for Next.
func (ip *Processor) ProcessSDLEvent(event sdl.Event) *Event {
	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		if button, ok := ip.mapping.KeyboardMap[e.Keysym.Sym]; ok && e.Repeat == 0 {
			return &Event{Button: button, Pressed: e.Type == sdl.KEYDOWN, Source: SourceKeyboard, RawCode: int(e.Keysym.Sym)}
		}
	case *sdl.ControllerDeviceEvent:
		switch e.Type {
		case sdl.CONTROLLERDEVICEADDED:
			ip.open(int(e.Which))
		case sdl.CONTROLLERDEVICEREMOVED:
			if c, ok := ip.controllers[e.Which]; ok {
				c.Close()
				delete(ip.controllers, e.Which)
			}
		}
	case *sdl.ControllerButtonEvent:
		if button, ok := ip.mapping.ControllerButtonMap[sdl.GameControllerButton(e.Button)]; ok {
			if e.Type == sdl.CONTROLLERBUTTONDOWN {
				GetInternalLogger().Debug("Controller button mapped", "button", e.Button, "virtualButton", button.GetName())
			}
			return &Event{Button: button, Pressed: e.Type == sdl.CONTROLLERBUTTONDOWN, Source: SourceController, RawCode: int(e.Button)}
		}
	case *sdl.ControllerAxisEvent:
		return ip.axisEvent(e.Axis, e.Value, SourceController)
	case *sdl.JoyAxisEvent:
		if !ip.isController(e.Which) {
			return ip.axisEvent(e.Axis, e.Value, SourceJoystick)
		}
	case *sdl.JoyButtonEvent:
		if ip.isController(e.Which) {
			return nil
		}
		if button, ok := ip.mapping.JoystickButtonMap[e.Button]; ok {
			return &Event{Button: button, Pressed: e.Type == sdl.JOYBUTTONDOWN, Source: SourceJoystick, RawCode: int(e.Button)}
		}
	case *sdl.JoyHatEvent:
		if !ip.isController(e.Which) {
			return ip.hatEvent(e.Hat, e.Value)
		}
	}
	return nil
}

// axisEvent turns an analog axis into a digital button with hysteresis at
// the configured threshold.
func (ip *Processor) axisEvent(axis uint8, value int16, source Source) *Event {
	cfg, ok := ip.mapping.JoystickAxisMap[axis]
	if !ok {
		return nil
	}

	var state int8
	switch {
	case value > cfg.Threshold:
		state = 1
	case value < -cfg.Threshold:
		state = -1
	}

	previous := ip.axisStates[axis]
	if state == previous {
		return nil
	}
	ip.axisStates[axis] = state

	buttonFor := func(s int8) constants.VirtualButton {
		if s > 0 {
			return cfg.PositiveButton
		}
		return cfg.NegativeButton
	}

	var out *Event
	if previous != 0 {
		out = &Event{Button: buttonFor(previous), Pressed: false, Source: source, RawCode: int(axis)}
	}
	if state != 0 && buttonFor(state) != constants.VirtualButtonUnassigned {
		press := &Event{Button: buttonFor(state), Pressed: true, Source: source, RawCode: int(axis)}
		if out == nil {
			return press
		}
		ip.eventQueue = append(ip.eventQueue, press)
	}
	return out
}

func (ip *Processor) hatEvent(hat uint8, value uint8) *Event {
	previous := ip.hatStates[hat]
	ip.hatStates[hat] = value
	if previous == value {
		return nil
	}

	var out *Event
	if previous != sdl.HAT_CENTERED {
		if button, ok := ip.mapping.JoystickHatMap[previous]; ok {
			out = &Event{Button: button, Pressed: false, Source: SourceHatSwitch, RawCode: int(previous)}
		}
	}
	if value != sdl.HAT_CENTERED {
		if button, ok := ip.mapping.JoystickHatMap[value]; ok {
			press := &Event{Button: button, Pressed: true, Source: SourceHatSwitch, RawCode: int(value)}
			if out == nil {
				return press
			}
			ip.eventQueue = append(ip.eventQueue, press)
		}
	}
	return out
}

// Next pops a queued event, or returns nil.
func (ip *Processor) Next() *Event {
	if len(ip.eventQueue) == 0 {
		return nil
	}
	evt := ip.eventQueue[0]
	ip.eventQueue = ip.eventQueue[1:]
	return evt
}

func (ip *Processor) closeAll() {
	for id, c := range ip.controllers {
		c.Close()
		delete(ip.controllers, id)
	}
	for id, j := range ip.joysticks {
		j.Close()
		delete(ip.joysticks, id)
	}
}

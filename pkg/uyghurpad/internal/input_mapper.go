package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/constants"
	"github.com/veandco/go-sdl2/sdl"
)

const MappingPathEnvVar = "UYGHURPAD_INPUT_MAPPING"

type Source int

const (
	SourceKeyboard Source = iota
	SourceController
	SourceJoystick
	SourceHatSwitch
)

type Event struct {
	Button  constants.VirtualButton
	Pressed bool
	Source  Source
	RawCode int
}

type JoystickAxisMapping struct {
	PositiveButton constants.VirtualButton
	NegativeButton constants.VirtualButton
	Threshold      int16
}

// InputMapping turns controller and joystick input into virtual buttons.
// The physical keyboard is reserved for typing, so KeyboardMap only holds
// keys that never produce text.
type InputMapping struct {
	KeyboardMap         map[sdl.Keycode]constants.VirtualButton
	ControllerButtonMap map[sdl.GameControllerButton]constants.VirtualButton
	JoystickAxisMap     map[uint8]JoystickAxisMapping
	JoystickButtonMap   map[uint8]constants.VirtualButton
	JoystickHatMap      map[uint8]constants.VirtualButton
}

type axisMapping struct {
	PositiveButton int   `json:"positive_button"`
	NegativeButton int   `json:"negative_button"`
	Threshold      int16 `json:"threshold"`
}

// Mapping is the JSON form of InputMapping. Keys are SDL codes, values are
// VirtualButton values.
type Mapping struct {
	KeyboardMap         map[int]int         `json:"keyboard_map,omitempty"`
	ControllerButtonMap map[int]int         `json:"controller_button_map,omitempty"`
	JoystickAxisMap     map[int]axisMapping `json:"joystick_axis_map,omitempty"`
	JoystickButtonMap   map[int]int         `json:"joystick_button_map,omitempty"`
	JoystickHatMap      map[int]int         `json:"joystick_hat_map,omitempty"`
}

func DefaultInputMapping() *InputMapping {
	return &InputMapping{
		KeyboardMap: map[sdl.Keycode]constants.VirtualButton{
			sdl.K_F1: constants.VirtualButtonMenu,
			sdl.K_F2: constants.VirtualButtonY,
			sdl.K_F3: constants.VirtualButtonSelect,
		},
		ControllerButtonMap: map[sdl.GameControllerButton]constants.VirtualButton{
			sdl.CONTROLLER_BUTTON_DPAD_UP:       constants.VirtualButtonUp,
			sdl.CONTROLLER_BUTTON_DPAD_DOWN:     constants.VirtualButtonDown,
			sdl.CONTROLLER_BUTTON_DPAD_LEFT:     constants.VirtualButtonLeft,
			sdl.CONTROLLER_BUTTON_DPAD_RIGHT:    constants.VirtualButtonRight,
			sdl.CONTROLLER_BUTTON_A:             constants.VirtualButtonB,
			sdl.CONTROLLER_BUTTON_B:             constants.VirtualButtonA,
			sdl.CONTROLLER_BUTTON_X:             constants.VirtualButtonY,
			sdl.CONTROLLER_BUTTON_Y:             constants.VirtualButtonX,
			sdl.CONTROLLER_BUTTON_LEFTSHOULDER:  constants.VirtualButtonL1,
			sdl.CONTROLLER_BUTTON_RIGHTSHOULDER: constants.VirtualButtonR1,
			sdl.CONTROLLER_BUTTON_START:         constants.VirtualButtonStart,
			sdl.CONTROLLER_BUTTON_BACK:          constants.VirtualButtonSelect,
			sdl.CONTROLLER_BUTTON_GUIDE:         constants.VirtualButtonMenu,
		},
		JoystickAxisMap: map[uint8]JoystickAxisMapping{
			uint8(sdl.CONTROLLER_AXIS_TRIGGERLEFT):  {PositiveButton: constants.VirtualButtonL2, Threshold: 16000},
			uint8(sdl.CONTROLLER_AXIS_TRIGGERRIGHT): {PositiveButton: constants.VirtualButtonR2, Threshold: 16000},
		},
		JoystickButtonMap: map[uint8]constants.VirtualButton{},
		JoystickHatMap: map[uint8]constants.VirtualButton{
			sdl.HAT_UP:    constants.VirtualButtonUp,
			sdl.HAT_DOWN:  constants.VirtualButtonDown,
			sdl.HAT_LEFT:  constants.VirtualButtonLeft,
			sdl.HAT_RIGHT: constants.VirtualButtonRight,
		},
	}
}

// GetInputMapping loads the mapping from path, then from the environment
// variable, falling back to the defaults.
func GetInputMapping(path string) *InputMapping {
	logger := GetInternalLogger()

	for _, p := range []string{path, os.Getenv(MappingPathEnvVar)} {
		if p == "" {
			continue
		}
		mapping, err := LoadInputMappingFromJSON(p)
		if err == nil {
			logger.Info("Loaded custom input mapping", "path", p)
			return mapping
		}
		logger.Warn("Failed to load custom input mapping", "path", p, "error", err)
	}
	return DefaultInputMapping()
}

func LoadInputMappingFromJSON(filePath string) (*InputMapping, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	return LoadInputMappingFromBytes(data)
}

// LoadInputMappingFromBytes overlays the JSON mapping onto the defaults, so a
// file only needs to list the bindings it changes.
func LoadInputMappingFromBytes(data []byte) (*InputMapping, error) {
	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	mapping := DefaultInputMapping()

	for keyCode, button := range m.KeyboardMap {
		mapping.KeyboardMap[sdl.Keycode(keyCode)] = constants.VirtualButton(button)
	}
	for button, vb := range m.ControllerButtonMap {
		mapping.ControllerButtonMap[sdl.GameControllerButton(button)] = constants.VirtualButton(vb)
	}
	for axis, am := range m.JoystickAxisMap {
		mapping.JoystickAxisMap[uint8(axis)] = JoystickAxisMapping{
			PositiveButton: constants.VirtualButton(am.PositiveButton),
			NegativeButton: constants.VirtualButton(am.NegativeButton),
			Threshold:      am.Threshold,
		}
	}
	for button, vb := range m.JoystickButtonMap {
		mapping.JoystickButtonMap[uint8(button)] = constants.VirtualButton(vb)
	}
	for hat, vb := range m.JoystickHatMap {
		mapping.JoystickHatMap[uint8(hat)] = constants.VirtualButton(vb)
	}

	return mapping, nil
}

func (im *InputMapping) ToJSON() ([]byte, error) {
	m := Mapping{
		KeyboardMap:         make(map[int]int),
		ControllerButtonMap: make(map[int]int),
		JoystickAxisMap:     make(map[int]axisMapping),
		JoystickButtonMap:   make(map[int]int),
		JoystickHatMap:      make(map[int]int),
	}

	for keyCode, button := range im.KeyboardMap {
		m.KeyboardMap[int(keyCode)] = int(button)
	}
	for button, vb := range im.ControllerButtonMap {
		m.ControllerButtonMap[int(button)] = int(vb)
	}
	for axis, am := range im.JoystickAxisMap {
		m.JoystickAxisMap[int(axis)] = axisMapping{
			PositiveButton: int(am.PositiveButton),
			NegativeButton: int(am.NegativeButton),
			Threshold:      am.Threshold,
		}
	}
	for button, vb := range im.JoystickButtonMap {
		m.JoystickButtonMap[int(button)] = int(vb)
	}
	for hat, vb := range im.JoystickHatMap {
		m.JoystickHatMap[int(hat)] = int(vb)
	}

	return json.MarshalIndent(m, "", "  ")
}

func (im *InputMapping) SaveToJSON(filePath string) error {
	data, err := im.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal mapping to JSON: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}

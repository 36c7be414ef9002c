package constants

import (
	"os"
	"time"
)

type VirtualButton int

const (
	VirtualButtonUnassigned VirtualButton = iota
	VirtualButtonUp
	VirtualButtonDown
	VirtualButtonLeft
	VirtualButtonRight
	VirtualButtonA
	VirtualButtonB
	VirtualButtonX
	VirtualButtonY
	VirtualButtonL1
	VirtualButtonL2
	VirtualButtonR1
	VirtualButtonR2
	VirtualButtonStart
	VirtualButtonSelect
	VirtualButtonMenu
)

var virtualButtonNames = map[VirtualButton]string{
	VirtualButtonUnassigned: "Unassigned",
	VirtualButtonUp:         "Up",
	VirtualButtonDown:       "Down",
	VirtualButtonLeft:       "Left",
	VirtualButtonRight:      "Right",
	VirtualButtonA:          "A",
	VirtualButtonB:          "B",
	VirtualButtonX:          "X",
	VirtualButtonY:          "Y",
	VirtualButtonL1:         "L1",
	VirtualButtonL2:         "L2",
	VirtualButtonR1:         "R1",
	VirtualButtonR2:         "R2",
	VirtualButtonStart:      "Start",
	VirtualButtonSelect:     "Select",
	VirtualButtonMenu:       "Menu",
}

func (vb VirtualButton) GetName() string {
	if name, ok := virtualButtonNames[vb]; ok {
		return name
	}
	return "Unknown"
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

const (
	DefaultInputDelay = 20 * time.Millisecond
	DevModeEnvVar     = "UYGHURPAD_DEV"
	DebugEnvVar       = "UYGHURPAD_DEBUG"
)

// IsDevMode reports whether the app runs in a plain desktop window instead of fullscreen.
func IsDevMode() bool {
	return os.Getenv(DevModeEnvVar) != ""
}

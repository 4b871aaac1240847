package ui

import (
	"strings"
)

// LampView is everything the lamp tab needs to render; the panel model
// fills it from the transmitter so this package stays presentation-only.
type LampView struct {
	State  string // "idle", "sos", "morse"
	Lit    bool
	Typing bool
	Input  string
	Status string
}

// RenderLamp draws the lamp tab: a big on/off indicator, the transmission
// state, the Morse input prompt when active, and key hints.
func RenderLamp(width, height int, v LampView, th Theme) string {
	var b strings.Builder

	if v.Lit {
		b.WriteString(th.Good.Render("  ( LAMP ON )"))
	} else {
		b.WriteString(th.Dim.Render("  ( lamp off )"))
	}
	b.WriteString("\n\n")

	switch v.State {
	case "sos":
		b.WriteString(th.Alert.Render("  transmitting SOS"))
	case "morse":
		b.WriteString(th.Accent.Render("  transmitting Morse"))
	default:
		b.WriteString(th.Dim.Render("  idle"))
	}
	b.WriteString("\n\n")

	if v.Typing {
		b.WriteString(th.Accent.Render("  message: " + v.Input + "_"))
		b.WriteString("\n")
		b.WriteString(th.Dim.Render("  enter to transmit, esc to cancel"))
	} else {
		b.WriteString(th.Dim.Render("  o toggle   s SOS   m morse   x stop"))
	}

	if v.Status != "" {
		b.WriteString("\n\n")
		b.WriteString(th.Alert.Render("  " + v.Status))
	}

	return b.String()
}

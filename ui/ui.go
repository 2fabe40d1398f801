// Package ui implements the heads-up overlay: frame statistics, a rolling
// performance graph and the chat log fed by the network peer.
package ui

import (
	"errors"
	"strings"

	"github.com/backusd/cubeworld/log"
	"github.com/backusd/cubeworld/subsystem"
	"github.com/backusd/cubeworld/types"
)

const (
	// Number of chat lines retained.
	maxChatLines = 10

	// Number of frames kept in the performance graph.
	historyLength = 240

	// Height in pixels for the performance graph and bars.
	graphHeight float32 = 40
	barHeight   float32 = 6

	// Latency mapped to a full bar, in ms.
	maxBarLatency float32 = 500

	// Vertical distance between chat lines in pixels.
	chatLineHeight float32 = 14
)

var ErrInvalidSize = errors.New("ui: overlay dimensions must be positive")

var (
	fpsColor     = types.XYZ(0.2, 0.9, 0.3)
	cpuColor     = types.XYZ(1.0, 0.6, 0.1)
	latencyColor = types.XYZ(0.3, 0.6, 1.0)
	chatColor    = types.XYZ(0.9, 0.9, 0.9)
)

// painter draws overlay primitives in window coordinates.
type painter interface {
	beginOverlay(w, h int)
	bar(x, y, w, h, fill float32, color types.Vec3)
	text(x, y float32, s string, color types.Vec3)
	series(s *stackedSeries, y, h float32)
	endOverlay()
}

type UI struct {
	logger  log.Logger
	painter painter

	width   int
	height  int
	visible bool

	fps     int
	cpu     int
	latency float32

	history *stackedSeries
	chat    []string
}

func New() *UI {
	return newUI(glPainter{})
}

func newUI(p painter) *UI {
	return &UI{
		logger:  log.New("ui"),
		painter: p,
		visible: true,
	}
}

func (u *UI) Init(_ subsystem.Renderer, _ subsystem.Host, w, h int) error {
	if w <= 0 || h <= 0 {
		return ErrInvalidSize
	}
	u.width, u.height = w, h
	u.history = makeStackedSeries(historyLength, fpsColor, cpuColor)
	u.chat = make([]string, 0, maxChatLines)
	return nil
}

func (u *UI) Frame(_ subsystem.Renderer, in subsystem.Controls, fps, cpu int, latency float32) error {
	if in.Triggered(subsystem.ToggleUI) {
		u.visible = !u.visible
		if u.visible {
			u.history.Clear()
		}
	}

	u.fps, u.cpu, u.latency = fps, cpu, latency
	u.history.Append(0, float32(fps))
	u.history.Append(1, float32(cpu))
	return nil
}

// Draw the overlay. It is called by the active zone while its scene is
// being rendered.
func (u *UI) Draw(_ subsystem.Renderer) {
	if !u.visible || u.history == nil {
		return
	}

	w := float32(u.width)
	u.painter.beginOverlay(u.width, u.height)
	u.painter.bar(4, 4, w/4, barHeight, float32(u.cpu)/100, cpuColor)
	u.painter.bar(4, 6+barHeight, w/4, barHeight, u.latency/maxBarLatency, latencyColor)
	chatTop := 12 + 2*barHeight
	for i, line := range u.chat {
		u.painter.text(4, chatTop+chatLineHeight*float32(i), line, chatColor)
	}
	u.painter.series(u.history, float32(u.height)-graphHeight, graphHeight)
	u.painter.endOverlay()
}

func (u *UI) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		// Minimized windows report a zero sized framebuffer.
		return
	}
	u.width, u.height = w, h
}

// Add a chat line received from the network peer.
func (u *UI) AddChatMessage(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	u.logger.Infof("chat: %s", text)
	if len(u.chat) == maxChatLines {
		u.chat = append(u.chat[:0], u.chat[1:]...)
	}
	u.chat = append(u.chat, text)
}

// Get a copy of the retained chat lines, oldest first.
func (u *UI) Messages() []string {
	out := make([]string, len(u.chat))
	copy(out, u.chat)
	return out
}

// Check whether the overlay is shown.
func (u *UI) Visible() bool {
	return u.visible
}

func (u *UI) Shutdown() {
	u.history = nil
	u.chat = nil
}

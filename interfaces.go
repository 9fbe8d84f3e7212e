package main

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// PagePane is one renderable page slot: a decoded image, or the load state
// that stands in for it (spinner or inline failure indicator).
type PagePane struct {
	Img    *ebiten.Image
	Status LoadStatus
	Err    error
	Index  int
}

// DisplayContent is the resolved content for paginated modes. Right is nil
// for a single page or an unpaired spread position.
type DisplayContent struct {
	Left  *PagePane
	Right *PagePane
}

// StripPane is one page in the vertical strip, positioned in content
// coordinates (scroll offset applied by the renderer).
type StripPane struct {
	Pane PagePane
	Y    float64
	H    float64
	W    float64
}

// RenderState provides read-only access to reader state for the renderer
type RenderState interface {
	// Display modes
	Mode() DisplayMode
	IsFullscreen() bool
	RightToLeft() bool
	Background() color.RGBA

	// Rendering data
	PaginatedContent() *DisplayContent
	VerticalStrip() []StripPane
	ScrollOffset() float64

	// Zoom and pan state
	ZoomPercent() float64
	PanOffset() (float64, float64)

	// UI state
	IsShowingControls() bool
	IsShowingHelp() bool
	IsInPageInputMode() bool
	GetPageInputBuffer() string
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	Title() string
	PageStatus() string
	GetTotalPagesCount() int
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleControls()
	ToggleFullscreen()
	ToggleReadingDirection()
	SetDisplayMode(mode DisplayMode)

	// Page input
	EnterPageInputMode()
	ExitPageInputMode()
	ProcessPageInput()
	UpdatePageInputBuffer(buffer string)

	// Navigation
	NavigateNext()
	NavigatePrevious()
	NextChapter()
	PreviousChapter()
	JumpToPage(page int) // 1-based

	// Zoom
	ZoomIn()
	ZoomOut()
	SetZoomPercent(zoom float64)

	// Messages
	ShowOverlayMessage(message string)

	// Common data access
	GetTotalPagesCount() int
}

// InputState provides read-only access to input-related state
type InputState interface {
	IsInPageInputMode() bool
	GetPageInputBuffer() string
}

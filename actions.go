package main

// ActionDefinition defines an action with its default keybindings and description
type ActionDefinition struct {
	Name        string
	Keys        []string
	Description string
}

// actionDefinitions contains all action definitions with default keybindings
// and descriptions. The Escape key is intentionally absent: it is context
// dependent (close panel, cancel input, then exit) and handled directly by
// the reader before the binding table runs.
var actionDefinitions = []ActionDefinition{
	{"exit", []string{"KeyQ"}, "Close the reader"},
	{"help", []string{"Shift+Slash"}, "Show/hide help"},
	{"toggle_controls", []string{"KeyM"}, "Show/hide reader controls"},
	{"next", []string{"ArrowRight", "KeyD", "Shift+KeyD", "Space"}, "Next page (spread in double mode)"},
	{"previous", []string{"ArrowLeft", "KeyA", "Shift+KeyA", "Shift+Space"}, "Previous page (spread in double mode)"},
	{"next_chapter", []string{"PageDown", "KeyN"}, "Jump to next chapter"},
	{"previous_chapter", []string{"PageUp", "KeyP"}, "Jump to previous chapter"},
	{"jump_first", []string{"Home"}, "Jump to first page of chapter"},
	{"jump_last", []string{"End"}, "Jump to last page of chapter"},
	{"page_input", []string{"KeyG"}, "Go to page (enter page number)"},
	{"mode_single", []string{"Key1"}, "Single page mode"},
	{"mode_double", []string{"Key2"}, "Double page (spread) mode"},
	{"mode_vertical", []string{"Key3"}, "Continuous vertical scroll mode"},
	{"toggle_reading_direction", []string{"Shift+KeyB"}, "Toggle reading direction (LTR / RTL)"},
	{"fullscreen", []string{"Enter"}, "Toggle fullscreen"},

	// Zoom actions
	{"zoom_in", []string{"Equal", "Shift+Equal"}, "Zoom in"},
	{"zoom_out", []string{"Minus"}, "Zoom out"},
	{"zoom_100", []string{"Key0"}, "Set zoom to 100%"},
	{"zoom_200", []string{"Shift+Key0"}, "Set zoom to 200%"},
}

// ActionExecutor provides centralized action execution logic shared by
// every binding source.
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	switch action {
	case "exit":
		inputActions.Exit()
	case "help":
		inputActions.ToggleHelp()
	case "toggle_controls":
		inputActions.ToggleControls()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "next_chapter":
		inputActions.NextChapter()
	case "previous_chapter":
		inputActions.PreviousChapter()
	case "jump_first":
		inputActions.JumpToPage(1)
	case "jump_last":
		totalPages := inputActions.GetTotalPagesCount()
		if totalPages > 0 {
			inputActions.JumpToPage(totalPages)
		}
	case "page_input":
		if !inputState.IsInPageInputMode() {
			inputActions.EnterPageInputMode()
		}
	case "mode_single":
		inputActions.SetDisplayMode(ModeSingle)
	case "mode_double":
		inputActions.SetDisplayMode(ModeDouble)
	case "mode_vertical":
		inputActions.SetDisplayMode(ModeVertical)
	case "toggle_reading_direction":
		inputActions.ToggleReadingDirection()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "zoom_in":
		inputActions.ZoomIn()
	case "zoom_out":
		inputActions.ZoomOut()
	case "zoom_100":
		inputActions.SetZoomPercent(100)
	case "zoom_200":
		inputActions.SetZoomPercent(200)
	default:
		return false
	}

	return true
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keys := make([]string, len(action.Keys))
		copy(keys, action.Keys)
		keybindings[action.Name] = keys
	}
	return keybindings
}

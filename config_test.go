package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name            string
		configJSON      string
		expectedWidth   int
		expectedHeight  int
		expectedCache   int
		expectedPreload int
		expectedRTL     bool
	}{
		{
			name: "Valid config",
			configJSON: `{
				"window_width": 1000,
				"window_height": 800,
				"right_to_left": true,
				"cache_size": 64,
				"preload_count": 8
			}`,
			expectedWidth:   1000,
			expectedHeight:  800,
			expectedCache:   64,
			expectedPreload: 8,
			expectedRTL:     true,
		},
		{
			name: "Width too small",
			configJSON: `{
				"window_width": 200,
				"window_height": 600,
				"cache_size": 64,
				"preload_count": 8
			}`,
			expectedWidth:   defaultWidth,
			expectedHeight:  600,
			expectedCache:   64,
			expectedPreload: 8,
			expectedRTL:     false,
		},
		{
			name: "Cache size below minimum",
			configJSON: `{
				"window_width": 800,
				"window_height": 600,
				"cache_size": 1,
				"preload_count": 4
			}`,
			expectedWidth:   800,
			expectedHeight:  600,
			expectedCache:   32,
			expectedPreload: 4,
			expectedRTL:     false,
		},
		{
			name: "Cache size above maximum",
			configJSON: `{
				"window_width": 800,
				"window_height": 600,
				"cache_size": 999,
				"preload_count": 4
			}`,
			expectedWidth:   800,
			expectedHeight:  600,
			expectedCache:   128,
			expectedPreload: 4,
			expectedRTL:     false,
		},
		{
			name: "Preload count out of range",
			configJSON: `{
				"window_width": 800,
				"window_height": 600,
				"cache_size": 32,
				"preload_count": 99
			}`,
			expectedWidth:   800,
			expectedHeight:  600,
			expectedCache:   32,
			expectedPreload: 16,
			expectedRTL:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, ".mrv.json")

			err := os.WriteFile(configPath, []byte(tt.configJSON), 0644)
			if err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			result := loadConfigFromPath(configPath)
			config := result.Config

			if config.WindowWidth != tt.expectedWidth {
				t.Errorf("Expected width %d, got %d", tt.expectedWidth, config.WindowWidth)
			}
			if config.WindowHeight != tt.expectedHeight {
				t.Errorf("Expected height %d, got %d", tt.expectedHeight, config.WindowHeight)
			}
			if config.CacheSize != tt.expectedCache {
				t.Errorf("Expected cache size %d, got %d", tt.expectedCache, config.CacheSize)
			}
			if config.PreloadCount != tt.expectedPreload {
				t.Errorf("Expected preload count %d, got %d", tt.expectedPreload, config.PreloadCount)
			}
			if config.RightToLeft != tt.expectedRTL {
				t.Errorf("Expected RTL %v, got %v", tt.expectedRTL, config.RightToLeft)
			}
		})
	}
}

func TestMissingConfigUsesDefaults(t *testing.T) {
	result := loadConfigFromPath(filepath.Join(t.TempDir(), "nope.json"))

	if result.Status != "Default" {
		t.Errorf("Expected status Default, got %s", result.Status)
	}
	if result.Config.WindowWidth != defaultWidth || result.Config.WindowHeight != defaultHeight {
		t.Errorf("Expected default window size, got %dx%d",
			result.Config.WindowWidth, result.Config.WindowHeight)
	}
	if !result.Config.RightToLeft {
		t.Error("Expected RTL default to be true")
	}
	if result.Config.BackendURL != defaultBackendURL {
		t.Errorf("Expected default backend URL, got %s", result.Config.BackendURL)
	}
}

func TestInvalidConfigJSON(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".mrv.json")
	if err := os.WriteFile(configPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	result := loadConfigFromPath(configPath)
	if result.Status != "Error" || !result.HasError {
		t.Errorf("Expected Error status, got %s (HasError=%v)", result.Status, result.HasError)
	}
	if result.Config.WindowWidth != defaultWidth {
		t.Errorf("Expected defaults after parse error, got width %d", result.Config.WindowWidth)
	}
}

func TestKeybindingValidation(t *testing.T) {
	tests := []struct {
		name        string
		keybindings map[string][]string
		expectError bool
	}{
		{
			name:        "Valid bindings",
			keybindings: map[string][]string{"next": {"ArrowRight", "Space"}, "previous": {"ArrowLeft"}},
			expectError: false,
		},
		{
			name:        "Valid with modifiers",
			keybindings: map[string][]string{"zoom_200": {"Shift+Key0"}, "help": {"Shift+Slash"}},
			expectError: false,
		},
		{
			name:        "Unknown key",
			keybindings: map[string][]string{"next": {"KeyUnknown"}},
			expectError: true,
		},
		{
			name:        "Unknown modifier",
			keybindings: map[string][]string{"next": {"Super+KeyA"}},
			expectError: true,
		},
		{
			name:        "Key conflict",
			keybindings: map[string][]string{"next": {"Space"}, "previous": {"Space"}},
			expectError: true,
		},
		{
			name:        "Same key different modifiers is fine",
			keybindings: map[string][]string{"next": {"Space"}, "previous": {"Shift+Space"}},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateKeybindings(tt.keybindings)
			if tt.expectError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestInvalidKeybindingsFallBackToDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".mrv.json")
	configJSON := `{
		"window_width": 800,
		"window_height": 600,
		"keybindings": {"next": ["NotAKey"]}
	}`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	result := loadConfigFromPath(configPath)
	if result.Status != "Warning" {
		t.Errorf("Expected Warning status, got %s", result.Status)
	}

	defaults := GetDefaultKeybindings()
	if len(result.Config.Keybindings["next"]) != len(defaults["next"]) {
		t.Errorf("Expected default next bindings, got %v", result.Config.Keybindings["next"])
	}
}

func TestPartialKeybindingsFilledWithDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".mrv.json")
	configJSON := `{
		"window_width": 800,
		"window_height": 600,
		"keybindings": {"exit": ["KeyX"]}
	}`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	result := loadConfigFromPath(configPath)

	if got := result.Config.Keybindings["exit"]; len(got) != 1 || got[0] != "KeyX" {
		t.Errorf("Custom exit binding lost: %v", got)
	}
	if len(result.Config.Keybindings["next"]) == 0 {
		t.Error("Missing action was not filled with defaults")
	}
}

func TestKeyNameForChar(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Lowercase letter", "m", "KeyM"},
		{"Uppercase letter", "Q", "KeyQ"},
		{"Digit", "3", "Key3"},
		{"Multi-character", "mm", ""},
		{"Empty", "", ""},
		{"Punctuation", "/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := KeyNameForChar(tt.input); result != tt.expected {
				t.Errorf("KeyNameForChar(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseKeyString(t *testing.T) {
	tests := []struct {
		name      string
		keyStr    string
		wantValid bool
		wantShift bool
		wantCtrl  bool
	}{
		{"Plain key", "KeyA", true, false, false},
		{"Shift modifier", "Shift+KeyB", true, true, false},
		{"Ctrl modifier", "Ctrl+Space", true, false, true},
		{"Both modifiers", "Ctrl+Shift+Home", true, true, true},
		{"Unknown key", "KeyNope", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo, valid := parseKeyString(tt.keyStr)
			if valid != tt.wantValid {
				t.Fatalf("parseKeyString(%q) valid = %v, want %v", tt.keyStr, valid, tt.wantValid)
			}
			if !valid {
				return
			}
			if combo.Shift != tt.wantShift || combo.Ctrl != tt.wantCtrl {
				t.Errorf("parseKeyString(%q) = %+v", tt.keyStr, combo)
			}
		})
	}
}

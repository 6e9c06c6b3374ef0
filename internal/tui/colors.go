package tui

// Color constants for the timeledger TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#0F1B2D" // Dark navy
	ColorBorder         = "#2E3E57" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (labels, user input, titles)
	ColorSecondaryText = "#ABB6C7" // Secondary text
	ColorDisabledText  = "#67718A" // Disabled/muted text
	ColorPlaceholder   = "#ABB6C7" // Input placeholders
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Teal theme)
	ColorAccentMain   = "#0EA5A4" // Accent elements, active borders
	ColorAccentBright = "#5EEAD4" // Highlights, selected rows

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Success, confirmations
	ColorWarning = "#F59E0B" // Warnings, drift notices
)

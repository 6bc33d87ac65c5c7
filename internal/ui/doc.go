// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different types of content (code,
// paths, errors, etc.) that render appropriately based on terminal
// capabilities. When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("ejgo keygen --write")   // Commands and code
//	ui.Path.Sprint("secrets.ejson")         // File paths
//	ui.Key.Sprint(publicKey)                // Hex public keys
//	ui.Warning.Sprint("[dry-run]")          // Warnings
//	ui.Highlight.Sprint("environment")      // User values
//	ui.Muted.Sprint("default")              // De-emphasized text
//
// Whole status lines are built with Succeeded, Failed and Hint, which lead
// with the ✓, ✗ and → marks.
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
//
// When colors are disabled, formatters apply text decorations:
//   - Code: `backticks`
//   - Key, Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration (self-evident from context)
package ui

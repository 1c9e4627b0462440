// Package viz holds the terminal styling of the predprey CLI: color
// themes, lipgloss styles derived from them and population sparklines.
package viz

// Package ui renders mkt's terminal output.
//
// Output is styled with lipgloss and pterm prefixes when the destination is
// a color capable terminal and falls back to plain text otherwise (pipes,
// NO_COLOR, --no-color). Template descriptions are Markdown and rendered
// with glamour. The Prompter asks for undeclared TXML variable values.
package ui

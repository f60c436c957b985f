// Package formatting renders values for people: indented JSON, Markdown
// tables for tool output and terminal tables for the CLI.
package formatting

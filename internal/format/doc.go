// Package format defines the numeric display formats of the data panel,
// the offset column formats, and byte order selection. Each data format
// carries a fixed panel layout: how many byte sections fit a row, how many
// bytes each section holds, and how many digits one byte occupies.
package format

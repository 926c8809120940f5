// Package cli parses command-line arguments and validates them into the
// options the terminal host starts with.
package cli

// Package main provides the deckconf CLI for inspecting deck option presets.
package main

func main() {
	Execute()
}

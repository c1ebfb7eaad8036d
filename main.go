package main

import "github.com/RyanBlaney/voice-spectra/cmd"

func main() {
	cmd.Execute()
}

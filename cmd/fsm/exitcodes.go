package main

// Exit codes.
const (
	ExitSuccess = 0 // Success
	ExitError   = 1 // General error (invalid arguments, runtime failure)
	ExitNoStore = 2 // No store found in the working directory or any parent
)

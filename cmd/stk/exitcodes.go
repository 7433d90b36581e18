package main

// Exit codes shared by all stk commands.
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration error (no depot found, invalid paths)
	ExitDataError    = 3 // Data error (malformed inventory, I/O failure)
	ExitNotFound     = 4 // Item not found in inventory
	ExitInsufficient = 5 // Removal exceeds the quantity on hand
)

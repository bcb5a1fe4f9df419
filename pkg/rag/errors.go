package rag

import "errors"

// Failure taxonomy for the retrieval/validation pipeline. Malformed oracle
// replies are absorbed by the confidence scorer and never surface as errors.
var (
	// ErrOracleUnavailable marks transport or timeout failures of the
	// completion oracle.
	ErrOracleUnavailable = errors.New("oracle unavailable")

	// ErrIndexUnavailable marks transport or timeout failures of a
	// similarity index collection.
	ErrIndexUnavailable = errors.New("similarity index unavailable")

	// ErrSessionStoreUnavailable marks failures of the chat memory store.
	// Never recovered locally: dropping history silently would corrupt
	// conversation context without signal.
	ErrSessionStoreUnavailable = errors.New("session store unavailable")
)

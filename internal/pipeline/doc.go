// Package pipeline wires the fetch, resolve, and join stages together
// over stage-file storage.
//
// Each stage reads its inputs from the previous stage's latest file and
// overwrites its own output wholesale. A missing required input (the
// players stage) is a fatal error; an input that loaded but is empty flows
// through as an empty result.
package pipeline

package tui

import (
	"github.com/merdandt/city-snaps/internal/history"
	"github.com/merdandt/city-snaps/internal/normalize"
)

// outcome is the complete result of one query: either a normalized result
// or a terminal error (configuration, transport, or recovery failure with
// the raw text attached).
type outcome struct {
	query    string
	raw      string
	result   normalize.Result
	err      error
	searched bool // false for the automatic startup load
}

type resultMsg struct {
	outcome outcome
}

type historyLoadedMsg struct {
	records []history.Record
}

type errMsg struct {
	err error
}

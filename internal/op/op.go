// Package op provides constants for the commands the passphrase service
// understands.
package op

import "strings"

// An Op is a service command. The service speaks RESP, so any Valkey or
// Redis client can send these.
type Op string

const (
	Generate Op = "generate"
	Entropy  Op = "entropy"
	Lists    Op = "lists"
	Ping     Op = "ping"
	Quit     Op = "quit"
)

// New creates an Op from wire data. It does not validate that the operation is
// supported.
func New(op []byte) Op {
	return Op(strings.ToLower(string(op)))
}

// Option keywords accepted by Generate and Entropy.
const (
	OptList     = "list"
	OptWords    = "words"
	OptEntropy  = "entropy"
	OptStrength = "strength"
	OptSep      = "sep"
	OptTitle    = "title"
	OptCount    = "count"
)

package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownOpcode is returned when an opcode matches no instruction.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrStackUnderflow is returned by 00EE with an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrStackOverflow is returned by 2NNN when the call stack is full.
	ErrStackOverflow = errors.New("stack overflow")
)

// ExecutionError is the session-fatal error raised while executing an opcode.
// PC is the address the opcode was fetched from.
type ExecutionError struct {
	Opcode Opcode
	PC     uint16
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%v: opcode %s at 0x%03X", e.Err, e.Opcode, e.PC)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause from github.com/pkg/errors reach the sentinel.
func (e *ExecutionError) Cause() error {
	return e.Err
}

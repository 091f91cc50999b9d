package graphbuilder

import "errors"

var (
	ErrInvalidPayload  = errors.New("graphbuilder: payload failed schema validation")
	ErrUnknownRunner   = errors.New("graphbuilder: no runner registered for node")
	ErrDuplicatePort   = errors.New("graphbuilder: duplicate port id on node")
	ErrUnknownEdgeNode = errors.New("graphbuilder: edge references an undeclared node")
	ErrCyclicPayload   = errors.New("graphbuilder: payload topology contains a cycle")
)

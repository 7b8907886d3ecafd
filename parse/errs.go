package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse      = errors.New("parse error")
	ErrEmpty      = fmt.Errorf("%w: empty document", ErrParse)
	ErrTrailing   = fmt.Errorf("%w: trailing data after document", ErrParse)
	errBadOptions = errors.New("invalid parse options")
)

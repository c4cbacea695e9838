package prompt

import (
	"errors"
	"fmt"
)

// MissingVariableError reports a declared input variable that was not
// provided in the Args at format time.
type MissingVariableError struct {
	Variable string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("prompt: missing input variable %q", e.Variable)
}

// AsMissingVariable unwraps err into a MissingVariableError if one is
// anywhere in its chain.
func AsMissingVariable(err error) (*MissingVariableError, bool) {
	var e *MissingVariableError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

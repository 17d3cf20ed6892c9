package problemgen

import "fmt"

// Validator vets a generated question before it is served. Validators
// hold no state and may be shared between goroutines.
type Validator interface {
	Name() string
	Validate(q *Question) *ValidationError
}

// ValidationError names the validator that rejected a question.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

func runValidators(chain []Validator, q *Question) *ValidationError {
	for _, v := range chain {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}

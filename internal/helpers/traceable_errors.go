package helpers

import (
	"strings"

	"github.com/ztrue/tracerr"
)

// Error carries zero or more stack-traced errors. The zero value (NilError)
// means success; it is returned by value everywhere so callers check IsNil
// rather than comparing against nil.
type Error struct {
	errs []tracerr.Error
}

var NilError = Error{nil}

func IsNil(err error) bool {
	switch e := err.(type) {
	case Error:
		return e.First() == nil
	case *Error:
		return e == nil || e.First() == nil
	}
	return err == nil
}

func (e Error) IsNil() bool {
	return IsNil(e)
}

func (e Error) HasError() bool {
	return !IsNil(e)
}

func (e Error) Error() string {
	messages := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// String renders each error with its stack trace and source context.
func (e Error) String() string {
	result := ""
	for _, err := range e.errs {
		result += "-------------------------------------------------------------------------------\n"
		result += Indent(tracerr.SprintSourceColor(err, 3), "  ") + "\n"
	}
	return result
}

func (e Error) First() tracerr.Error {
	if len(e.errs) == 0 {
		return nil
	}
	return e.errs[0]
}

func (e Error) NumErrors() int {
	return len(e.errs)
}

func Wrap(err error) Error {
	if err == nil {
		return NilError
	}
	if traceable, ok := err.(Error); ok {
		return traceable
	}
	return Error{[]tracerr.Error{tracerr.Wrap(err)}}
}

func Errorf(format string, args ...interface{}) Error {
	return Error{[]tracerr.Error{tracerr.Errorf(format, args...)}}
}

func Join(others ...Error) Error {
	others = FilterSlice(others, func(err Error) bool {
		return !IsNil(err)
	})
	if len(others) == 0 {
		return NilError
	}
	if len(others) == 1 {
		return others[0]
	}

	result := Error{}
	for _, o := range others {
		result.errs = append(result.errs, o.errs...)
	}
	return result
}

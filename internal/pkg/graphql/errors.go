package graphql

import (
	"strings"

	"github.com/tidwall/gjson"
)

type Error struct {
	Message string
	Path    []string
	Code    string
}

func (e *Error) Error() string {
	return e.Message
}

type Errors []*Error

func (errs Errors) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}

	return strings.Join(msgs, "; ")
}

func parseErrors(value gjson.Result) Errors {
	if !value.IsArray() {
		return nil
	}

	var errs Errors
	value.ForEach(func(_, v gjson.Result) bool {
		e := &Error{
			Message: v.Get("message").String(),
			Code:    v.Get("extensions.code").String(),
		}
		v.Get("path").ForEach(func(_, p gjson.Result) bool {
			e.Path = append(e.Path, p.String())
			return true
		})
		errs = append(errs, e)

		return true
	})

	return errs
}

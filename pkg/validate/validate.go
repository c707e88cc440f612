// Package validate holds the request validator used at the API boundary.
// Malformed input is rejected here; the invoice pipeline never re-validates.
package validate

import "github.com/go-playground/validator/v10"

var v = validator.New()

// Struct validates a request struct against its validate tags.
func Struct(s any) error {
	return v.Struct(s)
}

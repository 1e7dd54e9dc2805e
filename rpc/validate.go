package rpc

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// validate is shared; validator.Validate caches struct metadata and is
// safe for concurrent use.
var validate = validator.New()

// ValidateParams checks the validate tags on a request struct and wraps
// any failure into a ValidationError so no malformed request reaches the
// wire.
func ValidateParams(method string, params any) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Method: method, Reason: verrs[0].Namespace() + " failed " + verrs[0].Tag(), Err: verrs}
	}
	return &ValidationError{Method: method, Reason: "invalid parameters", Err: err}
}

package models

import (
	"errors"
	"fmt"

	"catalog-sync/core/reconcile"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks v against its `validate` tags and returns a *reconcile.ValidationError
// naming the first failing field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &reconcile.ValidationError{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed on %q rule", fe.Tag()),
		}
	}
	return &reconcile.ValidationError{Message: err.Error()}
}

// ValidateRemoteProduct checks a product decoded from the platform before it is composed.
func ValidateRemoteProduct(p *RemoteProduct) error {
	if p == nil {
		return &reconcile.ValidationError{Message: "nil product"}
	}
	return Validate(p)
}

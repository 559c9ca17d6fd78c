package commands

import (
	"errors"

	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/utils"
)

func validate(cmd interface{}) error {
	err := utils.ValidateStruct(cmd)
	if err == nil {
		return nil
	}

	appErr := apperrors.NewValidationError(err.Error())
	var fields utils.FieldErrors
	if errors.As(err, &fields) {
		details := make(map[string]interface{}, len(fields))
		for field, msg := range fields {
			details[field] = msg
		}
		appErr = appErr.WithDetails(details)
	}
	return appErr
}

package util

import "errors"

var (
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// IsParameterError 判断错误是否应返回 400
func IsParameterError(err error) bool {
	return errors.Is(err, ErrMissingParameter) || errors.Is(err, ErrInvalidParameter)
}

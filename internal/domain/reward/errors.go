package reward

import "errors"

var (
	ErrInternal = errors.New("internal reward error")
)

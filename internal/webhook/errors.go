package webhook

import "errors"

var (
	ErrInvalidSecret   = errors.New("invalid webhook secret token")
	ErrIPNotAllowed    = errors.New("source IP not whitelisted")
	ErrRateLimitExceed = errors.New("rate limit exceeded")
)

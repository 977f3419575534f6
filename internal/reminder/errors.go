package reminder

import "errors"

var ErrDeliveryFailure = errors.New("reminder delivery failed")

package payment

import (
	"fmt"

	"cafe-pos/internal/apperr"
)

var ErrDuplicatePayment = fmt.Errorf("%w: payment already recorded", apperr.ErrValidation)

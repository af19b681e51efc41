package order

import (
	"fmt"

	"cafe-pos/internal/apperr"
)

var (
	ErrOrderNotFound = fmt.Errorf("%w: no active order", apperr.ErrNotFound)
	ErrLineNotFound  = fmt.Errorf("%w: order line", apperr.ErrNotFound)
	ErrTableNotFound = fmt.Errorf("%w: table", apperr.ErrNotFound)

	ErrPaymentRequired = apperr.Invalid("status", "orders are completed through checkout")
)

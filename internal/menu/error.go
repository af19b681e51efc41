package menu

import (
	"fmt"

	"cafe-pos/internal/apperr"
)

var ErrMenuItemNotFound = fmt.Errorf("%w: menu item", apperr.ErrNotFound)

package cart

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrOutOfStock       = errors.New("product is out of stock")
	ErrStockExceeded    = errors.New("not enough stock")
	ErrCartItemNotFound = errors.New("cart item not found")
)

// StockExceededError reports the maximum quantity that can still be
// ordered. errors.Is matches it against ErrStockExceeded.
type StockExceededError struct {
	Max int
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("only %d left in stock", e.Max)
}

func (e *StockExceededError) Is(target error) bool {
	return target == ErrStockExceeded
}

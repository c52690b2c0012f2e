package storage

import "errors"

var ErrInsufficientFunds = errors.New("insufficient funds")

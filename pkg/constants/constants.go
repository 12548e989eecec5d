package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	PoolKey   ContextKey = "pool"
	TxKey     ContextKey = "tx"
	LoggerKey ContextKey = "logger"
	RequestID ContextKey = "request_id"
)

// Validate is the shared validator instance used by request DTOs.
var Validate = validator.New(validator.WithRequiredStructEnabled())

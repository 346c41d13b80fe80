package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	// ErrKeyInvalidCredentials indicates a wrong admin username or password.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyTimeout            = "error.timeout"

	// ErrKeyUnknownItem takes the item id as argument.
	ErrKeyUnknownItem = "error.order.unknown_item"
	// ErrKeyInvalidQuantity takes the item id and the received value as arguments.
	ErrKeyInvalidQuantity = "error.order.invalid_quantity"
	// ErrKeySolverFailure indicates that no optimal plan was found for a valid order.
	ErrKeySolverFailure = "error.order.solver_failure"
	ErrKeyQuoteNotFound = "error.quote_not_found"
	// ErrKeyInvalidCatalog takes the offending field and the reason as arguments.
	ErrKeyInvalidCatalog = "error.catalog.invalid"
	// ErrKeyCatalogReadOnly indicates that no catalog store is configured.
	ErrKeyCatalogReadOnly    = "error.catalog.read_only"
	ErrKeyServiceUnavailable = "error.service_unavailable"
)

// Success message translation keys.
const (
	SuccessKeyOrderOptimized = "success.order_optimized"
	SuccessKeyCatalogUpdated = "success.catalog_updated"
)

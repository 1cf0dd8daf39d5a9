package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrEmailTaken         = errors.New("EMAIL_TAKEN")
	ErrUserNotFound       = errors.New("USER_NOT_FOUND")

	ErrModuleNotFound   = errors.New("MODULE_NOT_FOUND")
	ErrDependencyNotMet = errors.New("DEPENDENCY_NOT_MET")
	ErrStoreUnavailable = errors.New("STORE_UNAVAILABLE")
	ErrInstallInFlight  = errors.New("INSTALL_IN_FLIGHT")
	ErrCheckoutRequired = errors.New("CHECKOUT_REQUIRED")
	ErrAlreadyInstalled = errors.New("ALREADY_INSTALLED")
	ErrEmptyCart        = errors.New("EMPTY_CART")
	ErrSessionNotFound  = errors.New("SESSION_NOT_FOUND")
	ErrInvalidProfile   = errors.New("INVALID_PROFILE")
	ErrInvalidSignature = errors.New("INVALID_SIGNATURE")
)

// Package validator provides a small validation abstraction for request and
// domain structs.
//
// Business code depends on the Validator interface. The concrete
// implementation wraps go-playground/validator v10 with English messages and
// the custom tags "phone" and "otp".
package validator

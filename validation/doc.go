// Package validation provides struct-tag based validation for apiwire
// configuration, built on go-playground/validator.
package validation

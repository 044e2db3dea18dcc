package auth

import (
	"chat-router/domain"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateClaims(claims CustomClaims) error {
	if err := validate.Struct(claims); err != nil {
		return err
	}
	if claims.HasRole(RoleCustomer) && claims.SessionID == "" {
		return fmt.Errorf("customer token without session_id")
	}
	return nil
}

// ValidateDescriptor checks what a customer declared before the chat reaches the coordinator.
func ValidateDescriptor(desc domain.ChatDescriptor) error {
	return validate.Struct(desc)
}

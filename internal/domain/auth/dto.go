package auth

import (
	"strings"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/validator"
)

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *AdminLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CodeLoginRequest signs in a MANAGER or EMPLOYEE. Secret is the access code,
// or the password once one has been set up.
type CodeLoginRequest struct {
	Code   string       `json:"code"`
	Secret string       `json:"access_code"`
	Role   account.Role `json:"-"`
}

func (r *CodeLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	} else if !validator.IsValidAccountCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code format is invalid",
		})
	}
	if validator.IsEmpty(r.Secret) {
		errs = append(errs, validator.ValidationError{
			Field:   "access_code",
			Message: "access_code is required",
		})
	}
	if !r.Role.IsStaff() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "code login is only available to managers and employees",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetupPasswordRequest struct {
	Code            string `json:"code" validate:"required"`
	AccessCode      string `json:"access_code" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (r *SetupPasswordRequest) Validate() error {
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.NewPassword != r.ConfirmPassword {
		return validator.ValidationErrors{{
			Field:   "confirm_password",
			Message: "confirm_password must match new_password",
		}}
	}
	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	if validator.IsEmpty(r.RefreshToken) {
		return validator.ValidationErrors{{
			Field:   "refresh_token",
			Message: "refresh_token is required",
		}}
	}
	return nil
}

type AccountSummary struct {
	ID        string       `json:"id"`
	Code      string       `json:"code"`
	Role      account.Role `json:"role"`
	Firstname string       `json:"firstname"`
	Lastname  string       `json:"lastname"`
}

type TokenResponse struct {
	AccessToken           string         `json:"access_token"`
	AccessTokenExpiresIn  int64          `json:"access_token_expires_in"`
	RefreshToken          string         `json:"refresh_token"`
	RefreshTokenExpiresIn int64          `json:"refresh_token_expires_in"`
	Account               AccountSummary `json:"account"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}

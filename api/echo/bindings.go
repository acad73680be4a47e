package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/megatechsolutions/superadmin/core"
)

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Identifier = core.CleanString(lr.Identifier, true /* lower */)
	return validate.Struct(lr)
}

// VerifyRequest carries the two-factor route's inputs. It is deliberately
// not validated up front: missing or invalid values redirect back to login
// rather than producing a field-error response.
type VerifyRequest struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
	Code   string `json:"code"`
}

type RespondRequest struct {
	Message string `json:"message" validate:"required"`
}

func (rr *RespondRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(rr)
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open active closed resolved"`
}

func (sr *StatusRequest) Validate(validate *validator.Validate) error {
	sr.Status = core.CleanString(sr.Status, true /* lower */)
	return validate.Struct(sr)
}

type AdminStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

func (ar *AdminStatusRequest) Validate(validate *validator.Validate) error {
	ar.Status = core.CleanString(ar.Status, true /* lower */)
	return validate.Struct(ar)
}

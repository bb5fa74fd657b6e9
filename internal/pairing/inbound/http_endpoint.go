package inbound

import (
	"github.com/shandysiswandi/otpbridge/internal/pairing/usecase"
	"github.com/shandysiswandi/otpbridge/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// IssueOTP stores the OTP a frontend has just sent to a phone.
// @Summary Store OTP
// @Description Remembers the OTP for the phone so a chat reply with the same code verifies it.
// @Tags Pairing
// @Accept json
// @Produce json
// @Param request body IssueOTPRequest true "OTP issuance payload"
// @Success 200 {object} router.successResponse{data=IssueOTPResponse} "OTP stored"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /webhook/otp [post]
func (h *HTTPEndpoint) IssueOTP(r *router.Request) (any, error) {
	var req IssueOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.IssueOTP(r.Context(), usecase.IssueOTPInput{
		Phone: req.Phone,
		OTP:   req.OTP,
	}); err != nil {
		return nil, err
	}

	return IssueOTPResponse{Success: true}, nil
}

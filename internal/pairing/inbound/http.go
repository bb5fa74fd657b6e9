package inbound

import "github.com/shandysiswandi/otpbridge/internal/pkg/router"

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/webhook/otp", end.IssueOTP)
}

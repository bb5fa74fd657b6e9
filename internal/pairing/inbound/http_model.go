package inbound

type IssueOTPRequest struct {
	Phone string `json:"phone" example:"081234567890"`
	OTP   string `json:"otp" example:"482913"`
}

type IssueOTPResponse struct {
	Success bool `json:"success" example:"true"`
}

func (IssueOTPResponse) Message() string {
	return "otp has been stored"
}

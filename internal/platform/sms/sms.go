package sms

import "context"

// Sender delivers one-time codes to a mobile number. Implementations
// must not log the code.
type Sender interface {
	SendOtp(ctx context.Context, mobile, code string) error
}

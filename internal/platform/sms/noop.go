package sms

import "context"

// NoopSender backs dev mode, where the code is echoed in the API
// response instead of dispatched.
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (*NoopSender) SendOtp(context.Context, string, string) error {
	return nil
}

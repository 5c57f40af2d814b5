package sms

import (
	"context"
	"fmt"

	"tyreplus-backend/internal/pkg/config"
	"tyreplus-backend/internal/pkg/errs"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(cfg config.SmsConfig) (*TwilioSender, error) {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFrom == "" {
		return nil, errs.New("missing twilio credentials")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &TwilioSender{
		client: client,
		from:   cfg.TwilioFrom,
	}, nil
}

func (t *TwilioSender) SendOtp(_ context.Context, mobile, code string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(fmt.Sprintf("+91%s", mobile))
	params.SetBody(fmt.Sprintf("%s is your TyrePlus verification code. Valid for 5 minutes.", code))

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return errs.Wrap(err, "failed to send otp sms")
	}
	return nil
}

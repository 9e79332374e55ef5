package services

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type SMSServiceInterface interface {
	SendVerificationCode(phone, code string) error
}

type TwilioSMSService struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSMSService(accountSID, authToken, from string) SMSServiceInterface {
	return &TwilioSMSService{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (s *TwilioSMSService) SendVerificationCode(phone, code string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(fmt.Sprintf("Your FitAI verification code: %s", code))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}

// LogSMSService stands in when no SMS gateway is configured: it logs the code
// instead of sending it. Only wired in development.
type LogSMSService struct {
	logger *zap.SugaredLogger
}

func NewLogSMSService(logger *zap.SugaredLogger) SMSServiceInterface {
	return &LogSMSService{logger: logger}
}

func (s *LogSMSService) SendVerificationCode(phone, code string) error {
	s.logger.Warnw("SMS gateway not configured, logging code instead", "phone", phone, "code", code)
	return nil
}

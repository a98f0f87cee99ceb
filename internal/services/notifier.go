package services

import (
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier delivers a one-time code to a contact. The default LogNotifier
// prints the code instead of sending anything; TwilioNotifier sends a real
// SMS when credentials are configured.
type Notifier interface {
	SendOTP(contact, code string) error
}

// LogNotifier writes the code to the process log in place of real delivery.
type LogNotifier struct{}

func (LogNotifier) SendOTP(contact, code string) error {
	log.Printf("OTP for %s: %s", contact, code)
	return nil
}

// TwilioNotifier sends the code over SMS via the Twilio REST API.
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioNotifier creates a Twilio-backed notifier from credentials.
func NewTwilioNotifier(accountSID, authToken, from string) (*TwilioNotifier, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioNotifier{client: client, from: from}, nil
}

func (t *TwilioNotifier) SendOTP(contact, code string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(contact)
	params.SetBody(fmt.Sprintf("Your Seva booking verification code is %s. It expires in 5 minutes.", code))

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send OTP SMS: %v", err)
		return err
	}

	log.Printf("✅ OTP SMS sent! SID: %s", *resp.Sid)
	return nil
}

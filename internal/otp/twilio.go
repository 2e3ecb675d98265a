package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const twilioVerifyBaseURL = "https://verify.twilio.com/v2"

// TwilioVerifier talks to the Twilio Verify API directly over HTTP.
type TwilioVerifier struct {
	accountSID string
	authToken  string
	serviceSID string
	baseURL    string
	client     *http.Client
}

func NewTwilioVerifier(accountSID, authToken, serviceSID string) *TwilioVerifier {
	return &TwilioVerifier{
		accountSID: accountSID,
		authToken:  authToken,
		serviceSID: serviceSID,
		baseURL:    twilioVerifyBaseURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type verifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (v *TwilioVerifier) Send(ctx context.Context, phone string) (string, error) {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Channel", "sms")

	endpoint := fmt.Sprintf("%s/Services/%s/Verifications", v.baseURL, v.serviceSID)
	resp, err := v.post(ctx, endpoint, form)
	if err != nil {
		return "", err
	}
	if resp.Status == "" {
		return "", fmt.Errorf("otp: provider returned no status")
	}
	return resp.Status, nil
}

func (v *TwilioVerifier) Check(ctx context.Context, phone, code string) (bool, error) {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("Code", code)

	endpoint := fmt.Sprintf("%s/Services/%s/VerificationCheck", v.baseURL, v.serviceSID)
	resp, err := v.post(ctx, endpoint, form)
	if err != nil {
		// Twilio answers 404 when the challenge expired or was never sent;
		// that is a failed check, not a provider outage.
		if err == errVerificationNotFound {
			return false, nil
		}
		return false, err
	}
	return resp.Status == "approved", nil
}

var errVerificationNotFound = fmt.Errorf("otp: verification not found")

func (v *TwilioVerifier) post(ctx context.Context, endpoint string, form url.Values) (*verifyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(v.accountSID, v.authToken)

	httpResp, err := v.client.Do(req)
	if err != nil {
		log.Println("[OTP] [ERROR] twilio request failed:", err)
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == http.StatusNotFound {
		return nil, errVerificationNotFound
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		var body verifyResponse
		_ = json.NewDecoder(httpResp.Body).Decode(&body)
		log.Printf("[OTP] [ERROR] twilio responded %d: %s", httpResp.StatusCode, body.Message)
		return nil, fmt.Errorf("otp: provider responded %d", httpResp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return &body, nil
}

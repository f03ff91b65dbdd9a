package mod

import (
	"bytes"
	"encoding/json"
)

// CardDetails is the card form as submitted by the client.
type CardDetails struct {
	CardNumber      string `json:"cardNumber"`
	CardHolder      string `json:"cardHolder"`
	ExpirationDay   string `json:"expirationDay"`
	ExpirationMonth string `json:"expirationMonth"`
	Ccv             string `json:"ccv"`
}

// UnmarshalJSON also accepts ccv as a JSON number, as older form clients send it.
func (c *CardDetails) UnmarshalJSON(b []byte) error {
	type plain CardDetails
	aux := struct {
		*plain
		Ccv json.RawMessage `json:"ccv"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.Ccv = ""
	raw := bytes.TrimSpace(aux.Ccv)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '"':
		return json.Unmarshal(raw, &c.Ccv)
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return err
		}
		c.Ccv = n.String()
	}
	return nil
}

// MaskedNumber keeps the last four digits only.
func (c CardDetails) MaskedNumber() string {
	n := len(c.CardNumber)
	if n <= 4 {
		return c.CardNumber
	}
	masked := make([]byte, n)
	for i := 0; i < n-4; i++ {
		masked[i] = '*'
	}
	copy(masked[n-4:], c.CardNumber[n-4:])
	return string(masked)
}

type CardTypeData struct {
	Type string `json:"type"` //VISA, MASTERCARD, etc
	Name string `json:"name"`
}

type ChecksumData struct {
	Valid bool `json:"valid"`
}

type FieldError struct {
	Code    string `json:"code"` //required, minlength, maxlength, numbersOnly, checksum
	Message string `json:"message"`
}

type ValidationData struct {
	Valid    bool                    `json:"valid"`
	CardType string                  `json:"cardType"`
	Errors   map[string][]FieldError `json:"errors,omitempty"`
}

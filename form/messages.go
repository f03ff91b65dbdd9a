package form

type MessageKey string

const (
	CCNumMissingTxt            MessageKey = "ccNumMissingTxt"
	CCNumTooShortTxt           MessageKey = "ccNumTooShortTxt"
	CCNumTooLongTxt            MessageKey = "ccNumTooLongTxt"
	CCNumContainsLettersTxt    MessageKey = "ccNumContainsLettersTxt"
	CCNumChecksumInvalidTxt    MessageKey = "ccNumChecksumInvalidTxt"
	CardHolderMissingTxt       MessageKey = "cardHolderMissingTxt"
	ExpirationDayMissingTxt    MessageKey = "expirationDayMissingTxt"
	ExpirationDayTooShortTxt   MessageKey = "expirationDayTooShortTxt"
	ExpirationDayTooLongTxt    MessageKey = "expirationDayTooLongTxt"
	ExpirationMonthMissingTxt  MessageKey = "expirationMonthMissingTxt"
	ExpirationMonthTooShortTxt MessageKey = "expirationMonthTooShortTxt"
	ExpirationMonthTooLongTxt  MessageKey = "expirationMonthTooLongTxt"
	CCVMissingTxt              MessageKey = "ccvMissingTxt"
	CCVNumTooShortTxt          MessageKey = "ccvNumTooShortTxt"
	CCVNumTooLongTxt           MessageKey = "ccvNumTooLongTxt"
	CCVContainsLettersTxt      MessageKey = "ccvContainsLettersTxt"
)

var defaultTexts = map[MessageKey]string{
	CCNumMissingTxt:            "Card number is required",
	CCNumTooShortTxt:           "Card number is too short",
	CCNumTooLongTxt:            "Card number is too long",
	CCNumContainsLettersTxt:    "Card number can contain digits only",
	CCNumChecksumInvalidTxt:    "Provided card number is invalid",
	CardHolderMissingTxt:       "Card holder name is required",
	ExpirationDayMissingTxt:    "Expiration day is required",
	ExpirationDayTooShortTxt:   "Expiration day is too short",
	ExpirationDayTooLongTxt:    "Expiration day is too long",
	ExpirationMonthMissingTxt:  "Expiration month is required",
	ExpirationMonthTooShortTxt: "Expiration month is too short",
	ExpirationMonthTooLongTxt:  "Expiration month is too long",
	CCVMissingTxt:              "CCV number is required",
	CCVNumTooShortTxt:          "CCV number is too short",
	CCVNumTooLongTxt:           "CCV number is too long",
	CCVContainsLettersTxt:      "CCV number can contain digits only",
}

// IsMessageKey reports whether key names a known message.
func IsMessageKey(key string) bool {
	_, ok := defaultTexts[MessageKey(key)]
	return ok
}

// Messages holds the user facing texts. The zero value serves the defaults.
// Messages is a value type, With returns a modified copy.
type Messages struct {
	texts map[MessageKey]string
}

func DefaultMessages() Messages {
	return Messages{}
}

// Text returns the configured text for key, or its default.
func (m Messages) Text(key MessageKey) string {
	if text, ok := m.texts[key]; ok && text != "" {
		return text
	}
	return defaultTexts[key]
}

// With sets the text for key. An empty text restores the default.
func (m Messages) With(key MessageKey, text string) Messages {
	texts := make(map[MessageKey]string, len(m.texts)+1)
	for k, v := range m.texts {
		texts[k] = v
	}
	if text == "" {
		delete(texts, key)
	} else {
		texts[key] = text
	}
	return Messages{texts: texts}
}

// Messages lets a fixed Messages value act as a MessageSource.
func (m Messages) Messages() Messages {
	return m
}

type MessageSource interface {
	Messages() Messages
}

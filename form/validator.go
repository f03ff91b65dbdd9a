package form

import (
	"strings"

	"git.thinkinpower.net/ccform/cardtype"
	"git.thinkinpower.net/ccform/mod"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	FieldCardNumber      = "cardNumber"
	FieldCardHolder      = "cardHolder"
	FieldExpirationDay   = "expirationDay"
	FieldExpirationMonth = "expirationMonth"
	FieldCcv             = "ccv"
)

const (
	CodeRequired    = "required"
	CodeMinLength   = "minlength"
	CodeMaxLength   = "maxlength"
	CodeNumbersOnly = "numbersOnly"
	CodeChecksum    = "checksum"
)

// Options switches validation per field. A disabled field accepts anything.
type Options struct {
	ValidateCCNum           bool
	ValidateCardHolder      bool
	ValidateExpirationDay   bool
	ValidateExpirationMonth bool
	ValidateCCV             bool
}

func DefaultOptions() Options {
	return Options{
		ValidateCCNum:           true,
		ValidateCardHolder:      true,
		ValidateExpirationDay:   true,
		ValidateExpirationMonth: true,
		ValidateCCV:             true,
	}
}

type rule struct {
	code    string
	tag     string
	message MessageKey
}

type field struct {
	name    string
	enabled func(Options) bool
	value   func(mod.CardDetails) string
	rules   []rule
}

// length and digit rules skip empty values, required reports those
var fields = []field{
	{
		name:    FieldCardNumber,
		enabled: func(o Options) bool { return o.ValidateCCNum },
		value:   func(c mod.CardDetails) string { return c.CardNumber },
		rules: []rule{
			{CodeRequired, "required", CCNumMissingTxt},
			{CodeMinLength, "omitempty,min=12", CCNumTooShortTxt},
			{CodeMaxLength, "omitempty,max=19", CCNumTooLongTxt},
			{CodeNumbersOnly, "omitempty,number", CCNumContainsLettersTxt},
			{CodeChecksum, "checksum", CCNumChecksumInvalidTxt},
		},
	},
	{
		name:    FieldCardHolder,
		enabled: func(o Options) bool { return o.ValidateCardHolder },
		value:   func(c mod.CardDetails) string { return c.CardHolder },
		rules: []rule{
			{CodeRequired, "required", CardHolderMissingTxt},
		},
	},
	{
		name:    FieldExpirationDay,
		enabled: func(o Options) bool { return o.ValidateExpirationDay },
		value:   func(c mod.CardDetails) string { return c.ExpirationDay },
		rules: []rule{
			{CodeRequired, "required", ExpirationDayMissingTxt},
			{CodeMinLength, "omitempty,min=2", ExpirationDayTooShortTxt},
			{CodeMaxLength, "omitempty,max=2", ExpirationDayTooLongTxt},
		},
	},
	{
		name:    FieldExpirationMonth,
		enabled: func(o Options) bool { return o.ValidateExpirationMonth },
		value:   func(c mod.CardDetails) string { return c.ExpirationMonth },
		rules: []rule{
			{CodeRequired, "required", ExpirationMonthMissingTxt},
			{CodeMinLength, "omitempty,min=2", ExpirationMonthTooShortTxt},
			{CodeMaxLength, "omitempty,max=2", ExpirationMonthTooLongTxt},
		},
	},
	{
		name:    FieldCcv,
		enabled: func(o Options) bool { return o.ValidateCCV },
		value:   func(c mod.CardDetails) string { return c.Ccv },
		rules: []rule{
			{CodeRequired, "required", CCVMissingTxt},
			{CodeMinLength, "omitempty,min=3", CCVNumTooShortTxt},
			{CodeMaxLength, "omitempty,max=4", CCVNumTooLongTxt},
			{CodeNumbersOnly, "omitempty,number", CCVContainsLettersTxt},
		},
	},
}

// RegisterValidations adds the "checksum" (Luhn) tag. Digit-only input is
// checked with the built-in "number" tag.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("checksum", validateChecksum)
}

func validateChecksum(fl validator.FieldLevel) bool {
	return cardtype.IsValidChecksum(fl.Field().String())
}

type Result struct {
	CardType cardtype.CardType
	Errors   map[string][]mod.FieldError
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r Result) HasError(field, code string) bool {
	for _, e := range r.Errors[field] {
		if e.Code == code {
			return true
		}
	}
	return false
}

type Validator struct {
	engine   *validator.Validate
	registry *cardtype.Registry
	options  Options
	messages MessageSource
}

// New builds a Validator over registry. messages is consulted on every call so
// a reloading source takes effect without rebuilding the Validator; nil means
// the default texts.
func New(registry *cardtype.Registry, options Options, messages MessageSource) (*Validator, error) {
	engine := validator.New()
	if err := RegisterValidations(engine); err != nil {
		return nil, err
	}
	if messages == nil {
		messages = DefaultMessages()
	}
	return &Validator{engine: engine, registry: registry, options: options, messages: messages}, nil
}

func (v *Validator) Options() Options {
	return v.options
}

// Validate runs every rule of every enabled field. Rules are independent, a
// field may report several codes at once.
func (v *Validator) Validate(details mod.CardDetails) Result {
	messages := v.messages.Messages()
	result := Result{}
	result.CardType, _ = cardtype.Classify(v.registry, details.CardNumber)
	for _, f := range fields {
		if !f.enabled(v.options) {
			continue
		}
		value := f.value(details)
		for _, r := range f.rules {
			if err := v.engine.Var(value, r.tag); err == nil {
				continue
			}
			if result.Errors == nil {
				result.Errors = make(map[string][]mod.FieldError)
			}
			result.Errors[f.name] = append(result.Errors[f.name], mod.FieldError{Code: r.code, Message: messages.Text(r.message)})
		}
	}
	return result
}

// DisableFields returns o with validation switched off for the named fields.
func (o Options) DisableFields(names ...string) (Options, error) {
	for _, name := range names {
		switch strings.TrimSpace(name) {
		case "":
		case FieldCardNumber:
			o.ValidateCCNum = false
		case FieldCardHolder:
			o.ValidateCardHolder = false
		case FieldExpirationDay:
			o.ValidateExpirationDay = false
		case FieldExpirationMonth:
			o.ValidateExpirationMonth = false
		case FieldCcv:
			o.ValidateCCV = false
		default:
			return o, errors.Errorf("unknown field %q", name)
		}
	}
	return o, nil
}

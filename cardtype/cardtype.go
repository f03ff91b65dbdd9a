package cardtype

type CardType string

// None is returned when no definition matches.
const None CardType = ""

const (
	Visa               CardType = "VISA"
	Mastercard         CardType = "MASTERCARD"
	AmericanExpress    CardType = "AMERICAN_EXPRESS"
	DiscoverClub       CardType = "DISCOVER_CLUB"
	Diners             CardType = "DINERS"
	DinersCarteBlanche CardType = "DINERS_CARTE_BLANCHE"
	ChinaUnionPay      CardType = "CHINA_UNIONPAY"
	JCB                CardType = "JCB"
	Laser              CardType = "LASER"
	Maestro            CardType = "MAESTRO"
	VisaElectron       CardType = "VISA_ELECTRON"
)

func (t CardType) String() string {
	return string(t)
}

package enums

type PaymentMethod string

const (
	PaymentMethodMpesa PaymentMethod = "MPESA"
	PaymentMethodCard  PaymentMethod = "CARD"
	PaymentMethodBank  PaymentMethod = "BANK"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodMpesa, PaymentMethodCard, PaymentMethodBank:
		return true
	}
	return false
}

package enum

// PaymentType represents how an order was paid. Stored as a string so the
// database stays readable and new tender types can be added without remapping.
type PaymentType string

const (
	PaymentTypeCash PaymentType = "CASH"
	PaymentTypeCard PaymentType = "CARD"
	PaymentTypeUPI  PaymentType = "UPI"
)

// IsValid reports whether the payment type is one of the known tender types.
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeCash, PaymentTypeCard, PaymentTypeUPI:
		return true
	}
	return false
}

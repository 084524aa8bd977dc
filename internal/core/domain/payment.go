package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod indicates how a disbursement was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodPix          PaymentMethod = "PIX" // Brazilian instant transfer
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodBoleto       PaymentMethod = "BOLETO" // Bank slip
	MethodCard         PaymentMethod = "CARD"
)

// IsValid reports whether the method belongs to the fixed vocabulary.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodPix, MethodBankTransfer, MethodBoleto, MethodCard:
		return true
	}
	return false
}

// Payment is a recorded disbursement against a payable, optionally tied to a
// specific installment. The receipt file itself lives in external storage;
// only its path is kept here.
type Payment struct {
	PaymentID     string          `json:"paymentID"` // Primary Key (UUID)
	PayableID     string          `json:"payableID"` // FK -> payables (Not Null)
	InstallmentID string          `json:"installmentID,omitempty"` // Nullable FK -> installments
	PaymentDate   time.Time       `json:"paymentDate"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Method        PaymentMethod   `json:"method"`
	ReceiptPath   string          `json:"receiptPath,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type POSSessionStatus string

const (
	POSSessionOpen   POSSessionStatus = "open"
	POSSessionClosed POSSessionStatus = "closed"
)

type POSTransactionKind string

const (
	POSSale   POSTransactionKind = "sale"
	POSRefund POSTransactionKind = "refund"
	POSPayout POSTransactionKind = "payout"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// POSTransaction is one entry in a session's ledger. Amounts are always
// positive; the kind decides the sign during reconciliation.
type POSTransaction struct {
	ID          string             `json:"id" bson:"id"`
	Kind        POSTransactionKind `json:"kind" bson:"kind"`
	Method      PaymentMethod      `json:"method" bson:"method"`
	AmountCents int64              `json:"amount_cents" bson:"amount_cents"`
	OrderID     string             `json:"order_id,omitempty" bson:"order_id,omitempty"`
	Reference   string             `json:"reference,omitempty" bson:"reference,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	CreatedBy   string             `json:"created_by,omitempty" bson:"created_by,omitempty"`
}

// POSSession is a cash-register shift with an embedded transaction ledger.
// Expected cash and discrepancy are filled in when the session closes.
type POSSession struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	StoreID           string             `json:"store_id" bson:"store_id"`
	Status            POSSessionStatus   `json:"status" bson:"status"`
	OpeningFloatCents int64              `json:"opening_float_cents" bson:"opening_float_cents"`
	Transactions      []POSTransaction   `json:"transactions" bson:"transactions"`
	CountedCashCents  int64              `json:"counted_cash_cents,omitempty" bson:"counted_cash_cents,omitempty"`
	ExpectedCashCents int64              `json:"expected_cash_cents,omitempty" bson:"expected_cash_cents,omitempty"`
	DiscrepancyCents  int64              `json:"discrepancy_cents,omitempty" bson:"discrepancy_cents,omitempty"`
	OpenedBy          string             `json:"opened_by,omitempty" bson:"opened_by,omitempty"`
	ClosedBy          string             `json:"closed_by,omitempty" bson:"closed_by,omitempty"`
	OpenedAt          time.Time          `json:"opened_at" bson:"opened_at"`
	ClosedAt          *time.Time         `json:"closed_at,omitempty" bson:"closed_at,omitempty"`
}

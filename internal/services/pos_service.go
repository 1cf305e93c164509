package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/models"
	"backoffice/internal/repository"
)

// ErrSessionAlreadyOpen is returned when a store tries to open a second
// concurrent register session.
var ErrSessionAlreadyOpen = errors.New("store already has an open pos session")

// ExpectedCash reconciles a session ledger against its opening float.
// Card amounts never touch the drawer; payouts always do.
func ExpectedCash(openingFloatCents int64, txs []models.POSTransaction) int64 {
	expected := openingFloatCents
	for _, tx := range txs {
		switch tx.Kind {
		case models.POSSale:
			if tx.Method == models.PaymentCash {
				expected += tx.AmountCents
			}
		case models.POSRefund:
			if tx.Method == models.PaymentCash {
				expected -= tx.AmountCents
			}
		case models.POSPayout:
			expected -= tx.AmountCents
		}
	}
	return expected
}

// POSService manages register sessions and their transaction ledgers.
type POSService struct {
	sessions *repository.POSRepository
}

func NewPOSService(sessions *repository.POSRepository) *POSService {
	return &POSService{sessions: sessions}
}

// Open starts a session with the counted opening float. One open session per
// store at a time.
func (s *POSService) Open(ctx context.Context, storeID string, openingFloatCents int64, openedBy string) (*models.POSSession, error) {
	_, err := s.sessions.FindOpenByStore(ctx, storeID)
	if err == nil {
		return nil, ErrSessionAlreadyOpen
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	session := &models.POSSession{
		StoreID:           storeID,
		Status:            models.POSSessionOpen,
		OpeningFloatCents: openingFloatCents,
		Transactions:      []models.POSTransaction{},
		OpenedBy:          openedBy,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Record appends a ledger entry to an open session.
func (s *POSService) Record(ctx context.Context, sessionID string, kind models.POSTransactionKind, method models.PaymentMethod, amountCents int64, orderID, reference, createdBy string) (*models.POSTransaction, error) {
	tx := models.POSTransaction{
		ID:          uuid.NewString(),
		Kind:        kind,
		Method:      method,
		AmountCents: amountCents,
		OrderID:     orderID,
		Reference:   reference,
		CreatedAt:   time.Now(),
		CreatedBy:   createdBy,
	}
	if err := s.sessions.AppendTransaction(ctx, sessionID, tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Close reconciles the ledger against the counted drawer and closes the
// session. Discrepancy is counted minus expected: positive means overage.
func (s *POSService) Close(ctx context.Context, sessionID string, countedCashCents int64, closedBy string) (*models.POSSession, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	expected := ExpectedCash(session.OpeningFloatCents, session.Transactions)
	discrepancy := countedCashCents - expected

	if err := s.sessions.Close(ctx, sessionID, countedCashCents, expected, discrepancy, closedBy); err != nil {
		return nil, err
	}
	return s.sessions.FindByID(ctx, sessionID)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/ledgercore/internal/adapter/http/dto"
	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/infrastructure/metrics"
	"github.com/iho/ledgercore/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, input usecase.ListTransactionsByAccountInput) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	ledger      TransactionService
	metrics     *metrics.Metrics
	postTimeout time.Duration
}

// NewTransactionHandler creates a new TransactionHandler. metrics may be nil;
// a non-positive postTimeout falls back to the default.
func NewTransactionHandler(ledger TransactionService, m *metrics.Metrics, postTimeout time.Duration) *TransactionHandler {
	if postTimeout <= 0 {
		postTimeout = usecase.DefaultPostTimeout
	}

	return &TransactionHandler{ledger: ledger, metrics: m, postTimeout: postTimeout}
}

// Post validates and applies a transaction.
func (h *TransactionHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		h.recordRejection(err)
		writeError(w, mapDomainError(err), "invalid transaction", err.Error())
		return
	}

	// Bound the whole post, including the wait for account locks. A timed
	// out post has applied nothing and is safe to resubmit.
	ctx, cancel := context.WithTimeout(r.Context(), h.postTimeout)
	defer cancel()

	start := time.Now()
	txn, err := h.ledger.PostTransaction(ctx, input)

	if h.metrics != nil {
		h.metrics.PostDuration.Observe(time.Since(start).Seconds())
	}

	if err != nil {
		h.recordRejection(err)
		writeError(w, mapDomainError(err), "failed to post transaction", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.TransactionsCommitted.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Get retrieves a committed transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.ledger.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// ListByAccount lists transactions touching an account.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	txns, err := h.ledger.ListTransactionsByAccount(r.Context(), usecase.ListTransactionsByAccountInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Total:        int64(len(txns)),
	})
}

func (h *TransactionHandler) recordRejection(err error) {
	if h.metrics == nil {
		return
	}

	h.metrics.TransactionsRejected.WithLabelValues(rejectionReason(err)).Inc()

	if errors.Is(err, domain.ErrLockTimeout) {
		h.metrics.LockWaitTimeouts.Inc()
	}
}

package handler

import (
	"fulfillment-ledger/internal/adapter/http/dto"
	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/internal/core/ports"
	"fulfillment-ledger/pkg/apperror"
	"fulfillment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet reads and admin ledger operations.
type WalletHandler struct {
	ledgerSvc ports.LedgerService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerSvc ports.LedgerService) *WalletHandler {
	return &WalletHandler{ledgerSvc: ledgerSvc}
}

// Summary handles GET /api/v1/wallets/:kind/summary.
func (h *WalletHandler) Summary(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var q dto.SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	key, err := walletKey(a, c.Param("kind"), q.OwnerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.ledgerSvc.GetWalletSummary(c.Request.Context(), key, q.From, q.To)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// Transactions handles GET /api/v1/wallets/:kind/transactions.
func (h *WalletHandler) Transactions(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var q dto.TransactionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	key, err := walletKey(a, c.Param("kind"), q.OwnerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	types := make([]domain.TxType, 0, len(q.Types))
	for _, t := range q.Types {
		types = append(types, domain.TxType(t))
	}
	query := ports.TransactionQuery{
		Types:    types,
		From:     q.From,
		To:       q.To,
		Page:     max(q.Page, 1),
		PageSize: q.PageSize,
	}
	if query.PageSize == 0 {
		query.PageSize = 20
	}

	txns, total, err := h.ledgerSvc.ListTransactions(c.Request.Context(), key, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	if txns == nil {
		txns = []domain.WalletTransaction{}
	}
	response.Paged(c, txns, response.PageMeta{Page: query.Page, PageSize: query.PageSize, Total: total})
}

// Adjust handles POST /api/v1/admin/wallets/adjust.
func (h *WalletHandler) Adjust(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req dto.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	txn, err := h.ledgerSvc.AdminAdjustWallet(c.Request.Context(), ports.AdjustRequest{
		Key:         domain.WalletKey{Kind: domain.WalletKind(req.WalletKind), OwnerID: uuid.MustParse(req.OwnerID)},
		Type:        domain.TxType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		ReferenceID: req.ReferenceID,
		Actor:       a,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, txn)
}

// Settle handles POST /api/v1/admin/wallets/settle.
func (h *WalletHandler) Settle(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	txns, err := h.ledgerSvc.Settle(c.Request.Context(), ports.SettleRequest{
		Key:           domain.WalletKey{Kind: domain.WalletKind(req.WalletKind), OwnerID: uuid.MustParse(req.OwnerID)},
		Amount:        req.Amount,
		EarningAmount: req.EarningAmount,
		Description:   req.Description,
		Actor:         a,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, txns)
}

// SetMinUsage handles PUT /api/v1/admin/wallets/customer/:owner/min-usage.
func (h *WalletHandler) SetMinUsage(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	owner, ok := uuidParam(c, "owner")
	if !ok {
		return
	}

	var req dto.MinUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	w, err := h.ledgerSvc.SetMinUsageAmount(c.Request.Context(), a, owner, *req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, w)
}

// Reconcile handles GET /api/v1/admin/wallets/:kind/:owner/reconcile.
func (h *WalletHandler) Reconcile(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	key, err := walletKey(a, c.Param("kind"), c.Param("owner"))
	if err != nil {
		response.Error(c, err)
		return
	}

	drift, err := h.ledgerSvc.Reconcile(c.Request.Context(), key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"drift":      drift,
		"consistent": drift.Consistent(),
	})
}

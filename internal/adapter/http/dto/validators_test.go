package dto

import (
	"testing"
	"time"

	"fulfillment-ledger/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsAndEscapes(t *testing.T) {
	ref := "  adj-001  "
	req := AdjustRequest{
		WalletKind:  " seller ",
		Description: "  refund <script>alert('x')</script>  ",
		ReferenceID: &ref,
	}
	SanitizeStruct(&req)

	assert.Equal(t, "seller", req.WalletKind)
	assert.Equal(t, "adj-001", *req.ReferenceID)
	assert.Contains(t, req.Description, "&lt;script&gt;")
	assert.NotContains(t, req.Description, "<script>")
}

func TestSanitizeStruct_NilPointerIsNoOp(t *testing.T) {
	req := AdjustRequest{Description: "ok"}
	SanitizeStruct(&req)
	assert.Nil(t, req.ReferenceID)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestSafeID(t *testing.T) {
	for _, tc := range []string{"ref-001", "REF_002", "a.b.c", "ABC-def_GHI.123"} {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
	for _, tc := range []string{"ref 001", "ref<001>", "ref;DROP", "", "ref\n001"} {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestTransitionRequest_Validation(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(TransitionRequest{Status: "delivered"}))
	assert.Error(t, binding.Validator.ValidateStruct(TransitionRequest{Status: "teleported"}))
	assert.Error(t, binding.Validator.ValidateStruct(TransitionRequest{}))
}

func TestAdjustRequest_Validation(t *testing.T) {
	valid := AdjustRequest{
		WalletKind: "delivery_staff",
		OwnerID:    uuid.NewString(),
		Type:       "debit",
		Amount:     100,
	}
	require.NoError(t, binding.Validator.ValidateStruct(valid))

	tests := []struct {
		name   string
		mutate func(*AdjustRequest)
	}{
		{"unknown kind", func(r *AdjustRequest) { r.WalletKind = "merchant" }},
		{"bad owner", func(r *AdjustRequest) { r.OwnerID = "nope" }},
		{"settlement type", func(r *AdjustRequest) { r.Type = "settlement" }},
		{"zero amount", func(r *AdjustRequest) { r.Amount = 0 }},
		{"amount above cap", func(r *AdjustRequest) { r.Amount = 100000000000001 }},
		{"unsafe reference", func(r *AdjustRequest) { ref := "a b"; r.ReferenceID = &ref }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, binding.Validator.ValidateStruct(req))
		})
	}
}

func TestSettleRequest_Validation(t *testing.T) {
	valid := SettleRequest{WalletKind: "delivery_staff", OwnerID: uuid.NewString(), Amount: 25000, EarningAmount: 3000}
	require.NoError(t, binding.Validator.ValidateStruct(valid))

	huge := valid
	huge.EarningAmount = 1 << 62
	assert.Error(t, binding.Validator.ValidateStruct(huge))

	neg := valid
	neg.Amount = -1
	assert.Error(t, binding.Validator.ValidateStruct(neg))
}

func TestTransactionListQuery_Validation(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(TransactionListQuery{Types: []string{"credit", "earning_credit"}}))
	assert.Error(t, binding.Validator.ValidateStruct(TransactionListQuery{Types: []string{"refund"}}))
	assert.Error(t, binding.Validator.ValidateStruct(TransactionListQuery{PageSize: 500}))
}

func TestMinUsageRequest_Validation(t *testing.T) {
	zero := int64(0)
	neg := int64(-1)
	assert.NoError(t, binding.Validator.ValidateStruct(MinUsageRequest{Amount: &zero}))
	assert.Error(t, binding.Validator.ValidateStruct(MinUsageRequest{Amount: &neg}))
	assert.Error(t, binding.Validator.ValidateStruct(MinUsageRequest{}))
}

func TestNewOrderResponse(t *testing.T) {
	seller := uuid.New()
	o := &domain.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     domain.OrderStatusSellerConfirmationPending,
		SellerID:   &seller,
		Total:      25000,
		UpdatedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	resp := NewOrderResponse(o)

	assert.True(t, resp.SellerMediated)
	assert.Equal(t, seller.String(), *resp.SellerID)
	assert.Nil(t, resp.AssignedDeliveryStaffID)
	assert.NotNil(t, resp.Items)
	assert.Equal(t, "2026-03-01T10:00:00Z", resp.UpdatedAt)
}

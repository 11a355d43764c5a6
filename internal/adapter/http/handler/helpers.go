package handler

import (
	"fulfillment-ledger/internal/adapter/http/middleware"
	"fulfillment-ledger/internal/core/domain"
	"fulfillment-ledger/pkg/apperror"
	"fulfillment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actor returns the authenticated actor, writing a 401 when absent.
func actor(c *gin.Context) (domain.Actor, bool) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
	}
	return a, ok
}

// uuidParam parses a path parameter, writing a 400 when malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// walletKey resolves which wallet a request addresses. Admins name the
// owner explicitly; everyone else may only address their own wallet.
func walletKey(a domain.Actor, kind, ownerID string) (domain.WalletKey, error) {
	k := domain.WalletKind(kind)
	if !k.Valid() {
		return domain.WalletKey{}, apperror.Validation("unknown wallet kind")
	}

	if a.Role == domain.RoleAdmin {
		owner, err := uuid.Parse(ownerID)
		if err != nil {
			return domain.WalletKey{}, apperror.Validation("owner_id is required")
		}
		return domain.WalletKey{Kind: k, OwnerID: owner}, nil
	}

	own, ok := a.WalletKind()
	if !ok || own != k {
		return domain.WalletKey{}, apperror.ErrForbidden()
	}
	if ownerID != "" && ownerID != a.ID.String() {
		return domain.WalletKey{}, apperror.ErrForbidden()
	}
	return domain.WalletKey{Kind: k, OwnerID: a.ID}, nil
}

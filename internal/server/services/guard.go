package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/uptask/internal/common"
	"github.com/dmitrijs2005/uptask/internal/dbx"
	"github.com/dmitrijs2005/uptask/internal/server/auth"
	"github.com/dmitrijs2005/uptask/internal/server/models"
	"github.com/dmitrijs2005/uptask/internal/server/repositories/repomanager"
)

// ownedBy loads the record id and checks that who owns it. Malformed and
// unknown ids both yield notFound; a record of somebody else yields
// common.ErrorForbidden.
func ownedBy[T models.Owned](ctx context.Context, tx dbx.DBTX, who auth.Identity, id string, notFound error, find func(ctx context.Context, tx dbx.DBTX, id string) (T, error)) (T, error) {
	var zero T

	if _, err := uuid.Parse(id); err != nil {
		return zero, notFound
	}

	item, err := find(ctx, tx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return zero, notFound
		}
		return zero, internalError("find", err)
	}

	if item.GetOwnerID() != who.ID {
		return zero, common.ErrorForbidden
	}
	return item, nil
}

// withOwned runs mutate on the record id in one transaction, after ownedBy
// has accepted it. find should lock the row so that the check and the
// mutation cannot interleave with another writer.
func withOwned[T models.Owned](
	ctx context.Context,
	m repomanager.RepositoryManager,
	who auth.Identity,
	id string,
	notFound error,
	find func(ctx context.Context, tx dbx.DBTX, id string) (T, error),
	mutate func(ctx context.Context, tx dbx.DBTX, item T) error,
) error {
	err := m.RunInTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		item, err := ownedBy(ctx, tx, who, id, notFound, find)
		if err != nil {
			return err
		}
		return mutate(ctx, tx, item)
	})
	return classify("transaction", err)
}

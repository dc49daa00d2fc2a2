// File: database/repository/reservation/transaction.go
package reservationRepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"roomly/models"
)

// CommitTransactionally inserts a reservation after re-verifying that no
// blocking reservation overlaps its window on the same resource.
//
// The transaction alone cannot close the race: Mongo transactions run on a
// snapshot and only abort on write conflicts over the same documents, so two
// concurrent inserts of distinct reservation documents would both see an
// empty window and both commit. To force the conflict, every commit first
// bumps a claim counter on the shared resource document; concurrent claimers
// of the same room then collide on that one document and the loser's
// transaction aborts, surfaced here as ErrConflict so the caller can retry.
func (r *mongoReservationRepo) CommitTransactionally(ctx context.Context, res *models.Reservation) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		claim := r.resources.FindOneAndUpdate(sc,
			bson.M{"id": res.ResourceID},
			bson.M{"$inc": bson.M{"claim_seq": 1}},
		)
		if err := claim.Err(); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return fmt.Errorf("resource %s not found: %w", res.ResourceID, err)
			}
			return fmt.Errorf("resource claim failed: %w", err)
		}

		count, err := r.coll.CountDocuments(sc, overlapFilter(res.ResourceID, res.StartTime, res.EndTime))
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if count > 0 {
			return ErrConflict
		}
		if _, err := r.coll.InsertOne(sc, res); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicateNumber
			}
			return fmt.Errorf("insert reservation failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		switch {
		case errors.Is(err, ErrConflict):
			return ErrConflict
		case errors.Is(err, ErrDuplicateNumber):
			return ErrDuplicateNumber
		case isWriteConflict(err):
			return ErrConflict
		}
		return fmt.Errorf("reservation transaction failed: %w", err)
	}

	return nil
}

// writeConflictCode is Mongo's error code for intra-transaction write-write
// conflicts on the same document.
const writeConflictCode = 112

// isWriteConflict reports whether the error means the transaction aborted
// because a concurrent transaction wrote the same documents, which is how a
// lost claim on the resource document surfaces.
func isWriteConflict(err error) bool {
	var srvErr mongo.ServerError
	if errors.As(err, &srvErr) {
		return srvErr.HasErrorLabel("TransientTransactionError") ||
			srvErr.HasErrorCode(writeConflictCode)
	}
	return false
}

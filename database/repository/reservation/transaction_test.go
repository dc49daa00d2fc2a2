// File: database/repository/reservation/transaction_test.go
package reservationRepo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsWriteConflict(t *testing.T) {
	assert.True(t, isWriteConflict(mongo.CommandError{Name: "WriteConflict", Code: writeConflictCode}))
	assert.True(t, isWriteConflict(mongo.CommandError{Labels: []string{"TransientTransactionError"}}))

	// Wrapped driver errors must still be recognized.
	wrapped := fmt.Errorf("reservation transaction failed: %w", mongo.CommandError{Code: writeConflictCode})
	assert.True(t, isWriteConflict(wrapped))

	assert.False(t, isWriteConflict(errors.New("network down")))
	assert.False(t, isWriteConflict(mongo.CommandError{Code: 11000}))
	assert.False(t, isWriteConflict(nil))
}

package service

import (
	"errors"
	"testing"

	"github.com/salonpoint/pos-api/internal/domain/entity"
	"github.com/salonpoint/pos-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreCurrentReturnsClone(t *testing.T) {
	store := NewSessionStore()

	snap := store.Current()
	snap.Stage = enum.StageOverview
	snap.Customer = &entity.Customer{Name: "Mutated"}

	// Mutating the snapshot must not leak into the stored session
	fresh := store.Current()
	assert.Equal(t, enum.StageSelectService, fresh.Stage)
	assert.Nil(t, fresh.Customer)
}

func TestSessionStoreMutateBumpsVersion(t *testing.T) {
	store := NewSessionStore()

	sess, err := store.Mutate(func(s *entity.InvoiceSession) error {
		s.Customer = &entity.Customer{Name: "Ana", Phone: "0917"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), sess.Version)
	assert.Equal(t, "Ana", store.Current().Customer.Name)

	sess, err = store.Mutate(func(s *entity.InvoiceSession) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, int64(2), sess.Version)
}

func TestSessionStoreMutateErrorLeavesSessionUntouched(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Mutate(func(s *entity.InvoiceSession) error {
		s.Customer = &entity.Customer{Name: "Partial"}
		return errors.New("boom")
	})
	require.Error(t, err)

	// The failed mutation ran on a clone; the stored session is unchanged
	assert.Nil(t, store.Current().Customer)
	assert.Equal(t, int64(0), store.Current().Version)
}

func TestSessionStoreReset(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Mutate(func(s *entity.InvoiceSession) error {
		s.Stage = enum.StagePayment
		s.Customer = &entity.Customer{Name: "Ana", Phone: "0917"}
		return nil
	})
	require.NoError(t, err)

	sess := store.Reset()
	assert.Equal(t, enum.StageSelectService, sess.Stage)
	assert.Nil(t, sess.Customer)
	assert.Nil(t, sess.Service)
	// Version keeps increasing across resets so subscribers see a new state
	assert.Equal(t, int64(2), sess.Version)
}

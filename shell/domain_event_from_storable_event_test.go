package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

func Test_DomainEventFrom_RoundTripsACloseEndedHold(t *testing.T) {
	// arrange
	now := time.Now()
	event := core.BuildBookPlacedOnHold(
		uuid.New().String(), uuid.New().String(), core.BookTypeCirculating, core.CloseEndedHoldDuration(now, 3), now)
	metadata := shell.NewCommandMetadata()

	storableEvent, err := shell.StorableEventFrom(event, metadata)
	require.NoError(t, err)

	// act
	domainEvent, err := shell.DomainEventFrom(storableEvent)

	// assert
	require.NoError(t, err)
	placed, ok := domainEvent.(core.BookPlacedOnHold)
	require.True(t, ok)
	assert.Equal(t, event.EventID, placed.EventID)
	assert.Equal(t, event.PatronID, placed.PatronID)
	assert.Equal(t, event.BookID, placed.BookID)
	require.NotNil(t, placed.HoldTill)
	assert.True(t, event.HoldTill.Equal(*placed.HoldTill))
	assert.False(t, placed.IsOpenEnded())
}

func Test_DomainEventFrom_RoundTripsAnOpenEndedHold(t *testing.T) {
	// arrange
	now := time.Now()
	event := core.BuildBookPlacedOnHold(
		uuid.New().String(), uuid.New().String(), core.BookTypeRestricted, core.OpenEndedHoldDuration(now), now)

	storableEvent, err := shell.StorableEventWithEmptyMetadataFrom(event)
	require.NoError(t, err)

	// act
	domainEvent, err := shell.DomainEventFrom(storableEvent)

	// assert
	require.NoError(t, err)
	placed, ok := domainEvent.(core.BookPlacedOnHold)
	require.True(t, ok)
	assert.Nil(t, placed.HoldTill)
	assert.True(t, placed.IsOpenEnded())
}

func Test_DomainEventFrom_FailsForAnUnknownEventType(t *testing.T) {
	// arrange
	storableEvent, err := shell.BuildStorableEventWithEmptyMetadata(
		uuid.New().String(), "SomethingUnknown", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storableEvent)

	// assert
	require.Error(t, err)
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_EventEnvelopesFrom_ConvertsAllEventsInOrder(t *testing.T) {
	// arrange: the shape of a journal read-back before redelivery
	now := time.Now()
	patronID, bookID := uuid.New().String(), uuid.New().String()
	placed := core.BuildBookPlacedOnHold(
		patronID, bookID, core.BookTypeCirculating, core.CloseEndedHoldDuration(now, 3), now)
	returned := core.BuildBookReturned(patronID, bookID, core.BookTypeCirculating, now)

	firstStorable, err := shell.StorableEventFrom(placed, shell.NewCommandMetadata())
	require.NoError(t, err)
	secondStorable, err := shell.StorableEventFrom(returned, shell.NewCommandMetadata())
	require.NoError(t, err)

	// act
	envelopes, err := shell.EventEnvelopesFrom(shell.StorableEvents{firstStorable, secondStorable})

	// assert
	require.NoError(t, err)
	require.Len(t, envelopes, 2)
	assert.IsType(t, core.BookPlacedOnHold{}, envelopes[0].DomainEvent)
	assert.IsType(t, core.BookReturned{}, envelopes[1].DomainEvent)
}

func Test_EventEnvelopesFrom_FailsForAnUnknownEventType(t *testing.T) {
	// arrange
	storableEvent, err := shell.BuildStorableEventWithEmptyMetadata(
		uuid.New().String(), "SomethingUnknown", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	// act
	_, err = shell.EventEnvelopesFrom(shell.StorableEvents{storableEvent})

	// assert
	require.Error(t, err)
	assert.ErrorIs(t, err, shell.ErrEventEnvelopeFromStorableEventFailed)
}

func Test_EventEnvelopeFrom_CarriesMetadataAndDomainEvent(t *testing.T) {
	// arrange
	event := core.BuildBookReturned(uuid.New().String(), uuid.New().String(), core.BookTypeCirculating, time.Now())
	metadata := shell.NewCommandMetadata()

	storableEvent, err := shell.StorableEventFrom(event, metadata)
	require.NoError(t, err)

	// act
	envelope, err := shell.EventEnvelopeFrom(storableEvent)

	// assert
	require.NoError(t, err)
	assert.Equal(t, metadata, envelope.EventMetadata)
	assert.Equal(t, event, envelope.DomainEvent)
}

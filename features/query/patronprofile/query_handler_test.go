package patronprofile_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/core"
	"github.com/AntonStoeckl/library-lending-go/features/query/patronprofile"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

type profileStorageStub struct {
	profiles map[core.PatronIDString]patronprofile.PatronProfile
}

func (s profileStorageStub) LoadProfile(
	_ context.Context,
	patronID core.PatronIDString,
) (patronprofile.PatronProfile, error) {

	profile, ok := s.profiles[patronID]
	if !ok {
		return patronprofile.PatronProfile{}, shell.ErrPatronNotFound
	}

	return profile, nil
}

func Test_PatronProfile_Handle(t *testing.T) {
	// arrange
	patronID := uuid.New()
	bookID := uuid.New().String()

	storage := profileStorageStub{profiles: map[core.PatronIDString]patronprofile.PatronProfile{
		patronID.String(): {
			PatronID:   patronID.String(),
			PatronType: core.PatronTypeRegular,
			Holds:      []patronprofile.Hold{{BookID: bookID}},
		},
	}}
	handler := patronprofile.NewQueryHandler(storage)

	// act
	profile, err := handler.Handle(context.Background(), patronprofile.BuildQuery(patronID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, patronID.String(), profile.PatronID)
	require.Len(t, profile.Holds, 1)
	assert.Equal(t, bookID, profile.Holds[0].BookID)
}

func Test_PatronProfile_Handle_UnknownPatron(t *testing.T) {
	// arrange
	handler := patronprofile.NewQueryHandler(profileStorageStub{})

	// act
	_, err := handler.Handle(context.Background(), patronprofile.BuildQuery(uuid.New()))

	// assert
	require.Error(t, err)
	assert.ErrorIs(t, err, shell.ErrPatronNotFound)
}

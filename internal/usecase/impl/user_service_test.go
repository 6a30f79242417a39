package impl

import (
	"context"
	"testing"

	"brewscout/internal/domain/entity"
	"brewscout/internal/errors"
	"brewscout/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	upserted []*entity.User
	err      error
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *entity.User) error {
	if f.err != nil {
		return f.err
	}

	f.upserted = append(f.upserted, user)

	return nil
}

func TestStoreSenderMapsAllFields(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	user, err := svc.StoreSender(context.Background(), &usecase.SenderInput{
		TUID:      1001,
		Username:  "ada",
		FirstName: "Ada",
		LastName:  "Lovelace",
		IsBot:     false,
	})

	require.NoError(t, err)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, int64(1001), user.TUID)
	assert.Equal(t, "ada", user.Username)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)
	assert.False(t, user.IsBot)
}

func TestStoreSenderPropagatesRepositoryError(t *testing.T) {
	wantErr := errors.New("deadlock detected")
	svc := NewUserService(&fakeUserRepo{err: wantErr})

	_, err := svc.StoreSender(context.Background(), &usecase.SenderInput{TUID: 1001, Username: "ada"})

	assert.ErrorIs(t, err, wantErr)
}

package testutil

import (
	"context"
	"reflect"

	"github.com/google/uuid"
	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/repository"
)

// SampleUser creates a new user in database with randomized fields. The
// sample user can be overwritten by non-zero fields of init.
func SampleUser(ctx context.Context, init *entity.User) (entity.User, error) {
	userRepo := repository.NewUserRepository(&MockRedisClient{})

	sample := &entity.User{
		Base:      entity.Base{ID: uuid.NewString()},
		Username:  uuid.NewString(),
		FirstName: "Sample",
		Language:  "en",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := userRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleHabit creates a daily habit owned by userID. Overwrite fields of init
// to get a weekly one.
func SampleHabit(ctx context.Context, userID string, init *entity.Habit) (entity.Habit, error) {
	habitRepo := repository.NewHabitRepository()

	sample := &entity.Habit{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: userID,
		Title:  uuid.NewString(),
		Type:   entity.HabitDaily,
		Color:  "#34C759",
		Icon:   "leaf",
	}

	if init != nil {
		overwriteFields(sample, *init)
	}

	if err := habitRepo.Create(ctx, sample); err != nil {
		return *sample, err
	}
	return *sample, nil
}

// SampleFriendship links two users in both directions.
func SampleFriendship(ctx context.Context, userID, friendID string) error {
	friendshipRepo := repository.NewFriendshipRepository()

	if err := friendshipRepo.Upsert(ctx, &entity.Friendship{UserID: userID, FriendID: friendID}); err != nil {
		return err
	}
	return friendshipRepo.Upsert(ctx, &entity.Friendship{UserID: friendID, FriendID: userID})
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if overwriteField.Interface() != reflect.Zero(overwriteField.Type()).Interface() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}

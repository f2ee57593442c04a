package domain

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/model"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/dateutil"
	"github.com/habitgram/backend/pkg/errorx"
	"github.com/habitgram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

func requireOwnedHabit(
	ctx context.Context, habitRepo repository.HabitRepository, habitID, ownerID string,
) (*entity.Habit, error) {
	habit, err := habitRepo.GetByIDAndUser(ctx, habitID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found habit")
		}

		xcontext.Logger(ctx).Errorf("Cannot get habit: %v", err)
		return nil, errorx.Unknown
	}

	return habit, nil
}

func requireFriend(
	ctx context.Context,
	friendshipRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
	userID, friendID string,
) (*entity.User, error) {
	_, err := friendshipRepo.Get(ctx, userID, friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found friend")
		}

		xcontext.Logger(ctx).Errorf("Cannot get friendship: %v", err)
		return nil, errorx.Unknown
	}

	friend, err := userRepo.GetByID(ctx, friendID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get friend: %v", err)
		return nil, errorx.Unknown
	}

	return friend, nil
}

func completedDates(ctx context.Context, completions []entity.HabitCompletion) []time.Time {
	dates := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		d, err := dateutil.ParseDay(c.Date)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Invalid completion date %s: %v", c.Date, err)
			continue
		}
		dates = append(dates, d)
	}

	return dates
}

// sortReactionSummary orders reactions by popularity, then by emoji for a
// stable order between equal counts.
func sortReactionSummary(summary []model.ReactionSummary) {
	sort.SliceStable(summary, func(i, j int) bool {
		if summary[i].Count != summary[j].Count {
			return summary[i].Count > summary[j].Count
		}
		return summary[i].Emoji < summary[j].Emoji
	})
}

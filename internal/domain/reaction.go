package domain

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/habitgram/backend/internal/common"
	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/model"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/errorx"
	"github.com/habitgram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ReactionDomain interface {
	GetForActivity(context.Context, *model.GetActivityReactionsRequest) (*model.GetActivityReactionsResponse, error)
	ToggleForActivity(context.Context, *model.ToggleActivityReactionRequest) (*model.ToggleActivityReactionResponse, error)
	RemoveForActivity(context.Context, *model.RemoveActivityReactionRequest) (*model.RemoveActivityReactionResponse, error)
	GetForHabit(context.Context, *model.GetHabitReactionsRequest) (*model.GetHabitReactionsResponse, error)
	ToggleForHabit(context.Context, *model.ToggleHabitReactionRequest) (*model.ToggleHabitReactionResponse, error)
	RemoveForHabit(context.Context, *model.RemoveHabitReactionRequest) (*model.RemoveHabitReactionResponse, error)
}

type reactionDomain struct {
	activityLogRepo      repository.ActivityLogRepository
	activityReactionRepo repository.ActivityReactionRepository
	habitReactionRepo    repository.HabitReactionRepository
	habitRepo            repository.HabitRepository
	friendshipRepo       repository.FriendshipRepository
	notificationRepo     repository.NotificationRepository
	userRepo             repository.UserRepository
}

func NewReactionDomain(
	activityLogRepo repository.ActivityLogRepository,
	activityReactionRepo repository.ActivityReactionRepository,
	habitReactionRepo repository.HabitReactionRepository,
	habitRepo repository.HabitRepository,
	friendshipRepo repository.FriendshipRepository,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) *reactionDomain {
	return &reactionDomain{
		activityLogRepo:      activityLogRepo,
		activityReactionRepo: activityReactionRepo,
		habitReactionRepo:    habitReactionRepo,
		habitRepo:            habitRepo,
		friendshipRepo:       friendshipRepo,
		notificationRepo:     notificationRepo,
		userRepo:             userRepo,
	}
}

func (d *reactionDomain) GetForActivity(
	ctx context.Context, req *model.GetActivityReactionsRequest,
) (*model.GetActivityReactionsResponse, error) {
	activity, err := d.requireAccessibleActivity(ctx, req.ActivityID)
	if err != nil {
		return nil, err
	}

	summary, err := activityReactionSummaries(
		ctx, d.activityReactionRepo, []int64{activity.ID}, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &model.GetActivityReactionsResponse{Reactions: summaryOrEmpty(summary[activity.ID])}, nil
}

func (d *reactionDomain) ToggleForActivity(
	ctx context.Context, req *model.ToggleActivityReactionRequest,
) (*model.ToggleActivityReactionResponse, error) {
	activity, err := d.requireAccessibleActivity(ctx, req.ActivityID)
	if err != nil {
		return nil, err
	}

	emoji, err := normalizeEmoji(req.Emoji)
	if err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	existing, err := d.activityReactionRepo.Get(ctx, activity.ID, requestUserID, emoji)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get reaction: %v", err)
		return nil, errorx.Unknown
	}

	if existing != nil {
		if err := d.activityReactionRepo.Delete(ctx, existing.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete reaction: %v", err)
			return nil, errorx.Unknown
		}
	} else {
		reaction := &entity.ActivityReaction{
			Base:       entity.Base{ID: uuid.NewString()},
			ActivityID: activity.ID,
			UserID:     requestUserID,
			Emoji:      emoji,
		}

		inserted, err := d.activityReactionRepo.Create(ctx, reaction)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create reaction: %v", err)
			return nil, errorx.Unknown
		}

		// A concurrent toggle already inserted the same reaction, skip the
		// duplicate notification.
		if inserted {
			if err := d.notifyReaction(ctx, activity, requestUserID, emoji); err != nil {
				return nil, err
			}
		}
	}

	summary, err := activityReactionSummaries(
		ctx, d.activityReactionRepo, []int64{activity.ID}, requestUserID)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ToggleActivityReactionResponse{Reactions: summaryOrEmpty(summary[activity.ID])}, nil
}

// RemoveForActivity deletes the reaction if present. Unlike toggle it never
// inserts, so repeated calls are safe no-ops.
func (d *reactionDomain) RemoveForActivity(
	ctx context.Context, req *model.RemoveActivityReactionRequest,
) (*model.RemoveActivityReactionResponse, error) {
	activity, err := d.requireAccessibleActivity(ctx, req.ActivityID)
	if err != nil {
		return nil, err
	}

	emoji, err := normalizeEmoji(req.Emoji)
	if err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)
	existing, err := d.activityReactionRepo.Get(ctx, activity.ID, requestUserID, emoji)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get reaction: %v", err)
		return nil, errorx.Unknown
	}

	if existing != nil {
		if err := d.activityReactionRepo.Delete(ctx, existing.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete reaction: %v", err)
			return nil, errorx.Unknown
		}
	}

	summary, err := activityReactionSummaries(
		ctx, d.activityReactionRepo, []int64{activity.ID}, requestUserID)
	if err != nil {
		return nil, err
	}

	return &model.RemoveActivityReactionResponse{Reactions: summaryOrEmpty(summary[activity.ID])}, nil
}

func (d *reactionDomain) GetForHabit(
	ctx context.Context, req *model.GetHabitReactionsRequest,
) (*model.GetHabitReactionsResponse, error) {
	habit, err := d.requireFriendHabit(ctx, req.FriendID, req.HabitID)
	if err != nil {
		return nil, err
	}

	summary, err := d.habitReactionSummary(ctx, habit.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &model.GetHabitReactionsResponse{Reactions: summary}, nil
}

func (d *reactionDomain) ToggleForHabit(
	ctx context.Context, req *model.ToggleHabitReactionRequest,
) (*model.ToggleHabitReactionResponse, error) {
	habit, err := d.requireFriendHabit(ctx, req.FriendID, req.HabitID)
	if err != nil {
		return nil, err
	}

	emoji, err := normalizeEmoji(req.Emoji)
	if err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	existing, err := d.habitReactionRepo.Get(ctx, habit.ID, requestUserID, emoji)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get habit reaction: %v", err)
		return nil, errorx.Unknown
	}

	if existing != nil {
		if err := d.habitReactionRepo.Delete(ctx, existing.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete habit reaction: %v", err)
			return nil, errorx.Unknown
		}
	} else {
		reaction := &entity.HabitReaction{
			Base:    entity.Base{ID: uuid.NewString()},
			HabitID: habit.ID,
			UserID:  requestUserID,
			Emoji:   emoji,
		}

		if _, err := d.habitReactionRepo.Create(ctx, reaction); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create habit reaction: %v", err)
			return nil, errorx.Unknown
		}
	}

	summary, err := d.habitReactionSummary(ctx, habit.ID, requestUserID)
	if err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ToggleHabitReactionResponse{Reactions: summary}, nil
}

func (d *reactionDomain) RemoveForHabit(
	ctx context.Context, req *model.RemoveHabitReactionRequest,
) (*model.RemoveHabitReactionResponse, error) {
	habit, err := d.requireFriendHabit(ctx, req.FriendID, req.HabitID)
	if err != nil {
		return nil, err
	}

	emoji, err := normalizeEmoji(req.Emoji)
	if err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)
	existing, err := d.habitReactionRepo.Get(ctx, habit.ID, requestUserID, emoji)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get habit reaction: %v", err)
		return nil, errorx.Unknown
	}

	if existing != nil {
		if err := d.habitReactionRepo.Delete(ctx, existing.ID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete habit reaction: %v", err)
			return nil, errorx.Unknown
		}
	}

	summary, err := d.habitReactionSummary(ctx, habit.ID, requestUserID)
	if err != nil {
		return nil, err
	}

	return &model.RemoveHabitReactionResponse{Reactions: summary}, nil
}

// requireAccessibleActivity loads an activity the request user may see: their
// own or one authored by a current friend. The friendship gate runs before
// any reaction state is revealed.
func (d *reactionDomain) requireAccessibleActivity(
	ctx context.Context, rawActivityID string,
) (*entity.ActivityLog, error) {
	activityID, err := strconv.ParseInt(rawActivityID, 10, 64)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid activity id")
	}

	activity, err := d.activityLogRepo.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	requestUserID := xcontext.RequestUserID(ctx)
	if activity.UserID == requestUserID {
		return activity, nil
	}

	if _, err := requireFriend(ctx, d.friendshipRepo, d.userRepo, requestUserID, activity.UserID); err != nil {
		return nil, err
	}

	return activity, nil
}

func (d *reactionDomain) requireFriendHabit(
	ctx context.Context, friendID, habitID string,
) (*entity.Habit, error) {
	friend, err := requireFriend(ctx, d.friendshipRepo, d.userRepo, xcontext.RequestUserID(ctx), friendID)
	if err != nil {
		return nil, err
	}

	return requireOwnedHabit(ctx, d.habitRepo, habitID, friend.ID)
}

func (d *reactionDomain) notifyReaction(
	ctx context.Context, activity *entity.ActivityLog, actorID, emoji string,
) error {
	// No self notifications.
	if activity.UserID == actorID {
		return nil
	}

	users, err := d.userRepo.GetByIDs(ctx, []string{activity.UserID, actorID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notification users: %v", err)
		return errorx.Unknown
	}

	var recipient, actor *entity.User
	for i := range users {
		switch users[i].ID {
		case activity.UserID:
			recipient = &users[i]
		case actorID:
			actor = &users[i]
		}
	}

	if recipient == nil || actor == nil {
		xcontext.Logger(ctx).Errorf("Cannot find notification users %s, %s", activity.UserID, actorID)
		return errorx.Unknown
	}

	notification := &entity.Notification{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		RecipientID:   recipient.ID,
		ActorID:       actor.ID,
		ActivityID:    sql.NullInt64{Valid: true, Int64: activity.ID},
		Type:          entity.NotificationReaction,
		Message:       common.ReactionMessage(recipient.Language, actor.DisplayName(), emoji),
	}

	if err := d.notificationRepo.Create(ctx, notification); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create notification: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *reactionDomain) habitReactionSummary(
	ctx context.Context, habitID, requestUserID string,
) ([]model.ReactionSummary, error) {
	counts, err := d.habitReactionRepo.CountByHabit(ctx, habitID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count habit reactions: %v", err)
		return nil, errorx.Unknown
	}

	mine, err := d.habitReactionRepo.GetByHabitAndUser(ctx, habitID, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get my habit reactions: %v", err)
		return nil, errorx.Unknown
	}

	mineSet := map[string]bool{}
	for _, r := range mine {
		mineSet[r.Emoji] = true
	}

	summary := []model.ReactionSummary{}
	for _, c := range counts {
		summary = append(summary, model.ReactionSummary{
			Emoji: c.Emoji,
			Count: c.Count,
			Mine:  mineSet[c.Emoji],
		})
	}

	sortReactionSummary(summary)
	return summary, nil
}

// activityReactionSummaries builds per-activity reaction summaries in one
// round trip per table, the feed calls it with up to a hundred ids.
func activityReactionSummaries(
	ctx context.Context,
	activityReactionRepo repository.ActivityReactionRepository,
	activityIDs []int64,
	requestUserID string,
) (map[int64][]model.ReactionSummary, error) {
	if len(activityIDs) == 0 {
		return map[int64][]model.ReactionSummary{}, nil
	}

	counts, err := activityReactionRepo.CountByActivityIDs(ctx, activityIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count activity reactions: %v", err)
		return nil, errorx.Unknown
	}

	mine, err := activityReactionRepo.GetByActivityIDsAndUser(ctx, activityIDs, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get my activity reactions: %v", err)
		return nil, errorx.Unknown
	}

	mineSet := map[int64]map[string]bool{}
	for _, r := range mine {
		if mineSet[r.ActivityID] == nil {
			mineSet[r.ActivityID] = map[string]bool{}
		}
		mineSet[r.ActivityID][r.Emoji] = true
	}

	summaries := map[int64][]model.ReactionSummary{}
	for _, c := range counts {
		summaries[c.ActivityID] = append(summaries[c.ActivityID], model.ReactionSummary{
			Emoji: c.Emoji,
			Count: c.Count,
			Mine:  mineSet[c.ActivityID][c.Emoji],
		})
	}

	for id := range summaries {
		sortReactionSummary(summaries[id])
	}

	return summaries, nil
}

func normalizeEmoji(raw string) (string, error) {
	emoji := strings.TrimSpace(raw)
	if emoji == "" {
		return "", errorx.New(errorx.BadRequest, "Not allow empty emoji")
	}

	if !common.IsAllowedEmoji(emoji) {
		return "", errorx.New(errorx.BadRequest, "Unsupported reaction %s", emoji)
	}

	return emoji, nil
}

func summaryOrEmpty(summary []model.ReactionSummary) []model.ReactionSummary {
	if summary == nil {
		return []model.ReactionSummary{}
	}

	return summary
}

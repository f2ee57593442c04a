package domain

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/habitgram/backend/internal/common"
	"github.com/habitgram/backend/internal/domain/streak"
	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/model"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/dateutil"
	"github.com/habitgram/backend/pkg/enum"
	"github.com/habitgram/backend/pkg/errorx"
	"github.com/habitgram/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HabitDomain interface {
	Create(context.Context, *model.CreateHabitRequest) (*model.CreateHabitResponse, error)
	Update(context.Context, *model.UpdateHabitRequest) (*model.UpdateHabitResponse, error)
	Delete(context.Context, *model.DeleteHabitRequest) (*model.DeleteHabitResponse, error)
	GetList(context.Context, *model.GetHabitsRequest) (*model.GetHabitsResponse, error)
	GetFriendList(context.Context, *model.GetFriendHabitsRequest) (*model.GetFriendHabitsResponse, error)
	GetStats(context.Context, *model.GetHabitStatsRequest) (*model.GetHabitStatsResponse, error)
	GetFriendStats(context.Context, *model.GetFriendHabitStatsRequest) (*model.GetFriendHabitStatsResponse, error)
	Complete(context.Context, *model.CompleteHabitRequest) (*model.CompleteHabitResponse, error)
	Uncomplete(context.Context, *model.UncompleteHabitRequest) (*model.UncompleteHabitResponse, error)
	GetHistory(context.Context, *model.GetHabitHistoryRequest) (*model.GetHabitHistoryResponse, error)
}

type habitDomain struct {
	habitRepo            repository.HabitRepository
	completionRepo       repository.HabitCompletionRepository
	activityLogRepo      repository.ActivityLogRepository
	activityReactionRepo repository.ActivityReactionRepository
	habitReactionRepo    repository.HabitReactionRepository
	friendshipRepo       repository.FriendshipRepository
	userRepo             repository.UserRepository
}

func NewHabitDomain(
	habitRepo repository.HabitRepository,
	completionRepo repository.HabitCompletionRepository,
	activityLogRepo repository.ActivityLogRepository,
	activityReactionRepo repository.ActivityReactionRepository,
	habitReactionRepo repository.HabitReactionRepository,
	friendshipRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
) *habitDomain {
	return &habitDomain{
		habitRepo:            habitRepo,
		completionRepo:       completionRepo,
		activityLogRepo:      activityLogRepo,
		activityReactionRepo: activityReactionRepo,
		habitReactionRepo:    habitReactionRepo,
		friendshipRepo:       friendshipRepo,
		userRepo:             userRepo,
	}
}

func (d *habitDomain) Create(
	ctx context.Context, req *model.CreateHabitRequest,
) (*model.CreateHabitResponse, error) {
	habitType, timesPerWeek, err := validateHabit(req.Title, req.Type, req.TimesPerWeek)
	if err != nil {
		return nil, err
	}

	habit := &entity.Habit{
		Base:         entity.Base{ID: uuid.NewString()},
		UserID:       xcontext.RequestUserID(ctx),
		Title:        strings.TrimSpace(req.Title),
		Type:         habitType,
		TimesPerWeek: timesPerWeek,
		Color:        req.Color,
		Icon:         req.Icon,
		Archived:     req.Archived,
	}

	if err := d.habitRepo.Create(ctx, habit); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create habit: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.CreateHabitResponse(model.ConvertHabit(habit, 0, 0))
	return &resp, nil
}

func (d *habitDomain) Update(
	ctx context.Context, req *model.UpdateHabitRequest,
) (*model.UpdateHabitResponse, error) {
	habitType, timesPerWeek, err := validateHabit(req.Title, req.Type, req.TimesPerWeek)
	if err != nil {
		return nil, err
	}

	habit, err := requireOwnedHabit(ctx, d.habitRepo, req.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	habit.Title = strings.TrimSpace(req.Title)
	habit.Type = habitType
	habit.TimesPerWeek = timesPerWeek
	habit.Color = req.Color
	habit.Icon = req.Icon
	habit.Archived = req.Archived

	if err := d.habitRepo.Update(ctx, habit); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update habit: %v", err)
		return nil, errorx.Unknown
	}

	current, best, err := d.streaks(ctx, habit)
	if err != nil {
		return nil, err
	}

	resp := model.UpdateHabitResponse(model.ConvertHabit(habit, current, best))
	return &resp, nil
}

// Delete removes the habit together with everything hanging off it. The
// activity rows of the habit disappear from friends' feeds as well.
func (d *habitDomain) Delete(
	ctx context.Context, req *model.DeleteHabitRequest,
) (*model.DeleteHabitResponse, error) {
	habit, err := requireOwnedHabit(ctx, d.habitRepo, req.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Activity reactions go first, the cleanup query resolves them through
	// the still-existing activity rows.
	if err := d.activityReactionRepo.DeleteByHabit(ctx, habit.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete activity reactions: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.activityLogRepo.DeleteByHabit(ctx, habit.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete activities: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.habitReactionRepo.DeleteByHabit(ctx, habit.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete habit reactions: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.completionRepo.DeleteByHabit(ctx, habit.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete completions: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.habitRepo.Delete(ctx, habit.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete habit: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteHabitResponse{}, nil
}

func (d *habitDomain) GetList(
	ctx context.Context, req *model.GetHabitsRequest,
) (*model.GetHabitsResponse, error) {
	habits, err := d.listByOwner(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &model.GetHabitsResponse{Habits: habits}, nil
}

func (d *habitDomain) GetFriendList(
	ctx context.Context, req *model.GetFriendHabitsRequest,
) (*model.GetFriendHabitsResponse, error) {
	friend, err := requireFriend(ctx, d.friendshipRepo, d.userRepo, xcontext.RequestUserID(ctx), req.FriendID)
	if err != nil {
		return nil, err
	}

	habits, err := d.listByOwner(ctx, friend.ID)
	if err != nil {
		return nil, err
	}

	return &model.GetFriendHabitsResponse{Habits: habits}, nil
}

func (d *habitDomain) GetStats(
	ctx context.Context, req *model.GetHabitStatsRequest,
) (*model.GetHabitStatsResponse, error) {
	habit, err := requireOwnedHabit(ctx, d.habitRepo, req.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	stats, err := d.statsForHabit(ctx, habit)
	if err != nil {
		return nil, err
	}

	resp := model.GetHabitStatsResponse(*stats)
	return &resp, nil
}

func (d *habitDomain) GetFriendStats(
	ctx context.Context, req *model.GetFriendHabitStatsRequest,
) (*model.GetFriendHabitStatsResponse, error) {
	friend, err := requireFriend(ctx, d.friendshipRepo, d.userRepo, xcontext.RequestUserID(ctx), req.FriendID)
	if err != nil {
		return nil, err
	}

	habit, err := requireOwnedHabit(ctx, d.habitRepo, req.HabitID, friend.ID)
	if err != nil {
		return nil, err
	}

	stats, err := d.statsForHabit(ctx, habit)
	if err != nil {
		return nil, err
	}

	resp := model.GetFriendHabitStatsResponse(*stats)
	return &resp, nil
}

func (d *habitDomain) Complete(
	ctx context.Context, req *model.CompleteHabitRequest,
) (*model.CompleteHabitResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	habit, err := requireOwnedHabit(ctx, d.habitRepo, req.ID, requestUserID)
	if err != nil {
		return nil, err
	}

	today := dateutil.FormatDay(time.Now())

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	completion := &entity.HabitCompletion{
		Base:      entity.Base{ID: uuid.NewString()},
		HabitID:   habit.ID,
		Date:      today,
		Completed: true,
	}

	inserted, err := d.completionRepo.Create(ctx, completion)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create completion: %v", err)
		return nil, errorx.Unknown
	}

	if !inserted {
		// Lost the insert race or the row exists from an earlier toggle.
		completion, err = d.completionRepo.GetByHabitAndDate(ctx, habit.ID, today)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get completion: %v", err)
			return nil, errorx.Unknown
		}

		// Repeated taps within the same day stay silent, no duplicate
		// activity events.
		if completion.Completed {
			xcontext.WithCommitDBTransaction(ctx)
			resp := model.CompleteHabitResponse(model.ConvertCompletion(completion))
			return &resp, nil
		}

		if err := d.completionRepo.SetCompleted(ctx, completion.ID, true); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot set completion: %v", err)
			return nil, errorx.Unknown
		}
		completion.Completed = true
	}

	if err := d.emitCompletionEvents(ctx, habit); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)
	resp := model.CompleteHabitResponse(model.ConvertCompletion(completion))
	return &resp, nil
}

func (d *habitDomain) Uncomplete(
	ctx context.Context, req *model.UncompleteHabitRequest,
) (*model.UncompleteHabitResponse, error) {
	habit, err := requireOwnedHabit(ctx, d.habitRepo, req.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = dateutil.FormatDay(time.Now())
	} else if _, err := dateutil.ParseDay(date); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid date")
	}

	completion, err := d.completionRepo.GetByHabitAndDate(ctx, habit.ID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.UncompleteHabitResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get completion: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.completionRepo.Delete(ctx, completion.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete completion: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UncompleteHabitResponse{}, nil
}

func (d *habitDomain) GetHistory(
	ctx context.Context, req *model.GetHabitHistoryRequest,
) (*model.GetHabitHistoryResponse, error) {
	habit, err := requireOwnedHabit(ctx, d.habitRepo, req.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	completions, err := d.completionRepo.GetCompletedByHabit(ctx, habit.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get completions: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.Completion{}
	for i := range completions {
		converted = append(converted, model.ConvertCompletion(&completions[i]))
	}

	return &model.GetHabitHistoryResponse{Completions: converted}, nil
}

func (d *habitDomain) listByOwner(ctx context.Context, ownerID string) ([]model.Habit, error) {
	habits, err := d.habitRepo.GetListByUser(ctx, ownerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get habits: %v", err)
		return nil, errorx.Unknown
	}

	converted := []model.Habit{}
	for i := range habits {
		current, best, err := d.streaks(ctx, &habits[i])
		if err != nil {
			return nil, err
		}

		converted = append(converted, model.ConvertHabit(&habits[i], current, best))
	}

	return converted, nil
}

func (d *habitDomain) streaks(ctx context.Context, habit *entity.Habit) (int, int, error) {
	completions, err := d.completionRepo.GetCompletedByHabit(ctx, habit.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get completions: %v", err)
		return 0, 0, errorx.Unknown
	}

	dates := completedDates(ctx, completions)
	now := time.Now()
	return streak.Current(habit.Type, habit.TimesPerWeek, dates, now),
		streak.Best(habit.Type, habit.TimesPerWeek, dates, now), nil
}

func (d *habitDomain) statsForHabit(ctx context.Context, habit *entity.Habit) (*model.HabitStats, error) {
	now := time.Now()
	weekStart := dateutil.WeekStart(now)
	weekEnd := weekStart.AddDate(0, 0, 6)
	monthStart := dateutil.MonthStart(now)
	monthEnd := dateutil.MonthEnd(now)

	completedWeek, err := d.completionRepo.CountCompletedInRange(
		ctx, habit.ID, dateutil.FormatDay(weekStart), dateutil.FormatDay(weekEnd))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count week completions: %v", err)
		return nil, errorx.Unknown
	}

	completedMonth, err := d.completionRepo.CountCompletedInRange(
		ctx, habit.ID, dateutil.FormatDay(monthStart), dateutil.FormatDay(monthEnd))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count month completions: %v", err)
		return nil, errorx.Unknown
	}

	targetWeek := 7
	targetMonth := dateutil.DaysInMonth(now)
	if habit.Type == entity.HabitWeekly && habit.TimesPerWeek != nil {
		targetWeek = *habit.TimesPerWeek
		targetMonth = *habit.TimesPerWeek * 4
	}

	current, best, err := d.streaks(ctx, habit)
	if err != nil {
		return nil, err
	}

	return &model.HabitStats{
		CompletedWeek:  int(completedWeek),
		TargetWeek:     targetWeek,
		CompletedMonth: int(completedMonth),
		TargetMonth:    targetMonth,
		WeekPercent:    percent(int(completedWeek), targetWeek),
		MonthPercent:   percent(int(completedMonth), targetMonth),
		CurrentStreak:  current,
		BestStreak:     best,
	}, nil
}

// emitCompletionEvents writes the feed rows for a day that just became
// completed. The completion event always goes out, milestone and record
// events are derived from the streaks after this completion.
func (d *habitDomain) emitCompletionEvents(ctx context.Context, habit *entity.Habit) error {
	user, err := d.userRepo.GetByID(ctx, habit.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get habit owner: %v", err)
		return errorx.Unknown
	}

	err = d.logActivity(ctx, habit, entity.ActivityCompleted,
		common.CompletedMessage(user.Language, habit.Title))
	if err != nil {
		return err
	}

	current, best, err := d.streaks(ctx, habit)
	if err != nil {
		return err
	}

	if habit.Type == entity.HabitDaily && current > 0 && current%7 == 0 {
		err = d.logActivity(ctx, habit, entity.ActivityStreak,
			common.StreakMessage(user.Language, habit.Title, current))
		if err != nil {
			return err
		}
	}

	if current == best && current > 1 {
		err = d.logActivity(ctx, habit, entity.ActivityRecord,
			common.RecordMessage(user.Language, habit.Title, best))
		if err != nil {
			return err
		}
	}

	return nil
}

func (d *habitDomain) logActivity(
	ctx context.Context, habit *entity.Habit, activityType entity.ActivityType, message string,
) error {
	activity := &entity.ActivityLog{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		UserID:        habit.UserID,
		HabitID:       sql.NullString{Valid: true, String: habit.ID},
		Type:          activityType,
		Message:       message,
	}

	if err := d.activityLogRepo.Create(ctx, activity); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create activity: %v", err)
		return errorx.Unknown
	}

	return nil
}

func validateHabit(title, habitType string, timesPerWeek *int) (entity.HabitType, *int, error) {
	if strings.TrimSpace(title) == "" {
		return "", nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	parsedType, err := enum.ToEnum[entity.HabitType](habitType)
	if err != nil {
		return "", nil, errorx.New(errorx.BadRequest, "Invalid habit type %s", habitType)
	}

	if parsedType == entity.HabitDaily && timesPerWeek != nil {
		return "", nil, errorx.New(errorx.BadRequest, "Not allow times per week for daily habit")
	}

	if parsedType == entity.HabitWeekly {
		if timesPerWeek == nil {
			return "", nil, errorx.New(errorx.BadRequest, "Times per week is required for weekly habit")
		}

		if *timesPerWeek < 1 || *timesPerWeek > 7 {
			return "", nil, errorx.New(errorx.BadRequest, "Times per week must be between 1 and 7")
		}
	}

	return parsedType, timesPerWeek, nil
}

func percent(completed, target int) int {
	if target <= 0 {
		return 0
	}

	return int(math.Min(100, math.Round(float64(completed)*100/float64(target))))
}

package domain

import (
	"context"

	"github.com/habitgram/backend/internal/entity"
	"github.com/habitgram/backend/internal/model"
	"github.com/habitgram/backend/internal/repository"
	"github.com/habitgram/backend/pkg/errorx"
	"github.com/habitgram/backend/pkg/xcontext"
)

type ActivityDomain interface {
	GetFeed(context.Context, *model.GetFeedRequest) (*model.GetFeedResponse, error)
}

type activityDomain struct {
	activityLogRepo      repository.ActivityLogRepository
	activityReactionRepo repository.ActivityReactionRepository
	friendshipRepo       repository.FriendshipRepository
	userRepo             repository.UserRepository
}

func NewActivityDomain(
	activityLogRepo repository.ActivityLogRepository,
	activityReactionRepo repository.ActivityReactionRepository,
	friendshipRepo repository.FriendshipRepository,
	userRepo repository.UserRepository,
) *activityDomain {
	return &activityDomain{
		activityLogRepo:      activityLogRepo,
		activityReactionRepo: activityReactionRepo,
		friendshipRepo:       friendshipRepo,
		userRepo:             userRepo,
	}
}

// GetFeed returns the hundred most recent events of the request user and
// their current friends. Removing a friend removes their events on the next
// load, nothing is materialized per follower.
func (d *activityDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	friendships, err := d.friendshipRepo.GetListByUser(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get friendships: %v", err)
		return nil, errorx.Unknown
	}

	feedUserIDs := []string{requestUserID}
	for _, f := range friendships {
		feedUserIDs = append(feedUserIDs, f.FriendID)
	}

	activities, err := d.activityLogRepo.GetFeed(ctx, feedUserIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feed: %v", err)
		return nil, errorx.Unknown
	}

	activityIDs := make([]int64, 0, len(activities))
	authorIDs := make([]string, 0, len(activities))
	seenAuthors := map[string]bool{}
	for _, a := range activities {
		activityIDs = append(activityIDs, a.ID)
		if !seenAuthors[a.UserID] {
			seenAuthors[a.UserID] = true
			authorIDs = append(authorIDs, a.UserID)
		}
	}

	authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feed authors: %v", err)
		return nil, errorx.Unknown
	}

	authorMap := map[string]*entity.User{}
	for i := range authors {
		authorMap[authors[i].ID] = &authors[i]
	}

	summaries, err := activityReactionSummaries(ctx, d.activityReactionRepo, activityIDs, requestUserID)
	if err != nil {
		return nil, err
	}

	converted := []model.Activity{}
	for i := range activities {
		converted = append(converted, model.ConvertActivity(
			&activities[i],
			authorMap[activities[i].UserID],
			requestUserID,
			summaries[activities[i].ID],
		))
	}

	return &model.GetFeedResponse{Activities: converted}, nil
}

package service

import (
	"context"

	"mingle/internal/models"
	"mingle/internal/repository"
)

// ProfileService assembles public profile views and manages follow edges.
type ProfileService struct {
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

func NewProfileService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
) *ProfileService {
	return &ProfileService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
	}
}

// GetProfile returns the user's public profile with aggregate counts computed
// from relations at request time. Counts are never cached or stored.
func (s *ProfileService) GetProfile(ctx context.Context, userID, viewerID uint) (*models.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	viewerFollows := false
	if viewerID != 0 && viewerID != userID {
		viewerFollows, err = s.followRepo.IsFollowing(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
	}

	return &models.Profile{
		ID:        user.ID,
		Username:  user.Username,
		Bio:       user.Bio,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
		Counts: models.ProfileCounts{
			Posts:     posts,
			Followers: followers,
			Following: following,
		},
		Following: viewerFollows,
	}, nil
}

// Follow creates the directed edge follower -> followee. Following someone
// already followed is a no-op.
func (s *ProfileService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}
	return s.followRepo.Follow(ctx, followerID, followeeID)
}

// Unfollow removes the edge; removing an absent edge is a no-op.
func (s *ProfileService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You cannot unfollow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followeeID); err != nil {
		return err
	}
	return s.followRepo.Unfollow(ctx, followerID, followeeID)
}

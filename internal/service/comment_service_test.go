package service

import (
	"context"
	"strings"
	"testing"

	"mingle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
	}
}

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateCommentInput
	}{
		{
			name:  "empty content",
			input: CreateCommentInput{UserID: 1, PostID: 1},
		},
		{
			name:  "whitespace-only content",
			input: CreateCommentInput{UserID: 1, PostID: 1, Content: "  \n "},
		},
		{
			name:  "content too long",
			input: CreateCommentInput{UserID: 1, PostID: 1, Content: strings.Repeat("x", 10001)},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreateComment(ctx, tc.input)
			assertValidationError(t, err)
		})
	}
}

func TestCommentService_CreateComment_MissingPost(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	createCalled := false
	commentRepo := noopCommentRepo()
	commentRepo.createFn = func(_ context.Context, _ *models.Comment) error {
		createCalled = true
		return nil
	}
	svc := NewCommentService(commentRepo, postRepo)

	_, err := svc.CreateComment(context.Background(), CreateCommentInput{UserID: 1, PostID: 99, Content: "hi"})
	assertNotFoundError(t, err)
	assert.False(t, createCalled)
}

func TestCommentService_CreateComment_TrimsAndReloads(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	var created *models.Comment
	commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 4
		created = c
		return nil
	}
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, Content: created.Content, User: models.User{ID: created.UserID}}, nil
	}
	svc := NewCommentService(commentRepo, noopPostRepo())

	comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID:  2,
		PostID:  1,
		Content: "  nice post  ",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(4), comment.ID)
	assert.Equal(t, "nice post", created.Content)
	assert.Equal(t, uint(2), comment.User.ID)
}

func TestCommentService_ListComments_MissingPost(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	svc := NewCommentService(noopCommentRepo(), postRepo)

	_, err := svc.ListComments(context.Background(), 99)
	assertNotFoundError(t, err)
}

func TestCommentService_ListComments(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.listByPostFn = func(_ context.Context, postID uint) ([]*models.Comment, error) {
		return []*models.Comment{{ID: 1, PostID: postID}, {ID: 2, PostID: postID}}, nil
	}
	svc := NewCommentService(commentRepo, noopPostRepo())

	comments, err := svc.ListComments(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

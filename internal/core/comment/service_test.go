// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/sec"
)

// # Test Doubles

type fakeRepository struct {
	topLevel     []*Comment
	replies      []*Comment
	comments     map[string]*Comment
	created      []*Comment
	deleted      []string
	repliesCalls int
}

func (f *fakeRepository) ListTopLevel(_ context.Context, _, _ string, _, _ int) ([]*Comment, int, error) {
	return f.topLevel, len(f.topLevel), nil
}

func (f *fakeRepository) ListReplies(_ context.Context, _ []string) ([]*Comment, error) {
	f.repliesCalls++
	return f.replies, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*Comment, error) {
	if comment, ok := f.comments[id]; ok {
		return comment, nil
	}
	return nil, apperr.NotFound("Comment")
}

func (f *fakeRepository) Create(_ context.Context, comment *Comment) error {
	f.created = append(f.created, comment)
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestService(repository *fakeRepository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repository, logger)
}

const testUserID = "0198d000-0000-7000-8000-000000000001"
const testComicID = "0198d000-0000-7000-8000-000000000002"
const testParentID = "0198d000-0000-7000-8000-000000000003"

// # Thread Listing

/*
TestListThread_AttachesReplies verifies that replies are grouped under
their parents and every thread gets a non-nil reply slice.
*/
func TestListThread_AttachesReplies(t *testing.T) {
	repository := &fakeRepository{
		topLevel: []*Comment{{ID: "c1"}, {ID: "c2"}},
		replies: []*Comment{
			{ID: "r1", ParentID: "c1"},
			{ID: "r2", ParentID: "c1"},
		},
	}
	service := newTestService(repository)

	comments, total, err := service.ListThread(context.Background(), TargetComic, testComicID, false, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	require.Len(t, comments, 2)
	assert.Len(t, comments[0].Replies, 2)
	assert.NotNil(t, comments[1].Replies)
	assert.Empty(t, comments[1].Replies)
}

/*
TestListThread_ParentOnlySkipsReplyFetch verifies the parent_only flag
avoids the reply round-trip entirely.
*/
func TestListThread_ParentOnlySkipsReplyFetch(t *testing.T) {
	repository := &fakeRepository{topLevel: []*Comment{{ID: "c1"}}}
	service := newTestService(repository)

	comments, _, err := service.ListThread(context.Background(), TargetChapter, testComicID, true, 10, 0)
	require.NoError(t, err)

	require.Len(t, comments, 1)
	assert.Nil(t, comments[0].Replies)
	assert.Zero(t, repository.repliesCalls)
}

/*
TestListThread_UnknownType verifies type validation.
*/
func TestListThread_UnknownType(t *testing.T) {
	service := newTestService(&fakeRepository{})

	_, _, err := service.ListThread(context.Background(), "page", testComicID, false, 10, 0)
	require.Error(t, err)
}

// # Posting

/*
TestPost_RequiresExactlyOneTarget verifies target exclusivity.
*/
func TestPost_RequiresExactlyOneTarget(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	err := service.Post(context.Background(), testUserID, &Comment{Content: "nice"})
	require.Error(t, err, "no target")

	err = service.Post(context.Background(), testUserID, &Comment{
		Content:   "nice",
		ComicID:   testComicID,
		ChapterID: testParentID,
	})
	require.Error(t, err, "two targets")
	assert.Empty(t, repository.created)
}

/*
TestPost_RequiresContent verifies empty content is rejected.
*/
func TestPost_RequiresContent(t *testing.T) {
	service := newTestService(&fakeRepository{})

	err := service.Post(context.Background(), testUserID, &Comment{ComicID: testComicID})
	require.Error(t, err)
}

/*
TestPost_MissingParent verifies replying to a nonexistent comment is 404.
*/
func TestPost_MissingParent(t *testing.T) {
	service := newTestService(&fakeRepository{comments: map[string]*Comment{}})

	err := service.Post(context.Background(), testUserID, &Comment{
		Content:  "re",
		ComicID:  testComicID,
		ParentID: testParentID,
	})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

/*
TestPost_ReplyToReplyFlattens verifies a reply targeting another reply is
reattached to the thread root, keeping threads one level deep.
*/
func TestPost_ReplyToReplyFlattens(t *testing.T) {
	repository := &fakeRepository{
		comments: map[string]*Comment{
			testParentID: {ID: testParentID, ParentID: "root-id", ComicID: testComicID},
		},
	}
	service := newTestService(repository)

	comment := &Comment{Content: "re", ComicID: testComicID, ParentID: testParentID}
	require.NoError(t, service.Post(context.Background(), testUserID, comment))

	require.Len(t, repository.created, 1)
	assert.Equal(t, "root-id", repository.created[0].ParentID)
}

// # Deletion

/*
TestRemove_AuthorCanDelete verifies authors delete their own comments.
*/
func TestRemove_AuthorCanDelete(t *testing.T) {
	repository := &fakeRepository{
		comments: map[string]*Comment{"c1": {ID: "c1", UserID: testUserID}},
	}
	service := newTestService(repository)

	require.NoError(t, service.Remove(context.Background(), "c1", testUserID, sec.RoleMember))
	assert.Equal(t, []string{"c1"}, repository.deleted)
}

/*
TestRemove_ModeratorCanDeleteOthers verifies the moderation override.
*/
func TestRemove_ModeratorCanDeleteOthers(t *testing.T) {
	repository := &fakeRepository{
		comments: map[string]*Comment{"c1": {ID: "c1", UserID: "someone-else"}},
	}
	service := newTestService(repository)

	require.NoError(t, service.Remove(context.Background(), "c1", testUserID, sec.RoleModerator))
	assert.Equal(t, []string{"c1"}, repository.deleted)
}

/*
TestRemove_MemberCannotDeleteOthers verifies the 403 path.
*/
func TestRemove_MemberCannotDeleteOthers(t *testing.T) {
	repository := &fakeRepository{
		comments: map[string]*Comment{"c1": {ID: "c1", UserID: "someone-else"}},
	}
	service := newTestService(repository)

	err := service.Remove(context.Background(), "c1", testUserID, sec.RoleMember)

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
	assert.Empty(t, repository.deleted)
}

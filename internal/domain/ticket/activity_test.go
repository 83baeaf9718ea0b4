package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "fieldops/internal/domain/ticket/valueobjects"
)

func TestNewComment(t *testing.T) {
	a, err := NewComment(1, "Replaced the seal, monitoring for leaks", 7, "Dana Fuchs")
	require.NoError(t, err)
	assert.Equal(t, vo.ActivityComment, a.Type())
	assert.Equal(t, uint(1), a.TicketID())
	assert.Equal(t, uint(7), a.AuthorID())
	assert.Equal(t, "Dana Fuchs", a.AuthorName())
	assert.True(t, a.IsComment())
	assert.False(t, a.CreatedAt().IsZero())
}

func TestNewComment_Invalid(t *testing.T) {
	_, err := NewComment(1, "", 7, "Dana")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")

	_, err = NewComment(0, "hi", 7, "Dana")
	require.Error(t, err)

	_, err = NewComment(1, "hi", 0, "Dana")
	require.Error(t, err)

	_, err = NewComment(1, strings.Repeat("a", 2001), 7, "Dana")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum length")
}

func TestNewStatusChangeActivity(t *testing.T) {
	a, err := NewStatusChangeActivity(1, vo.StatusOpen, vo.StatusInProgress, 7, "Dana")
	require.NoError(t, err)
	assert.Equal(t, vo.ActivityStatusChange, a.Type())
	assert.Equal(t, "Status changed from open to in_progress", a.Content())
	assert.Equal(t, "open", a.Metadata()["old_status"])
	assert.Equal(t, "in_progress", a.Metadata()["new_status"])
}

func TestNewAssignmentActivity(t *testing.T) {
	assignee := uint(9)
	a, err := NewAssignmentActivity(1, &assignee, "Miguel Ortiz", 7, "Dana")
	require.NoError(t, err)
	assert.Equal(t, vo.ActivityAssignment, a.Type())
	assert.Equal(t, "Assigned to Miguel Ortiz", a.Content())
	assert.Equal(t, "9", a.Metadata()["assignee_id"])

	a, err = NewAssignmentActivity(1, nil, "", 7, "Dana")
	require.NoError(t, err)
	assert.Equal(t, "Ticket unassigned", a.Content())
	assert.Empty(t, a.Metadata())
}

func TestNewMediaUploadActivity(t *testing.T) {
	a, err := NewMediaUploadActivity(1, "https://media.example.com/p.jpg", 7, "Dana")
	require.NoError(t, err)
	assert.Equal(t, vo.ActivityMediaUpload, a.Type())
	assert.Equal(t, "https://media.example.com/p.jpg", a.Metadata()["media_url"])

	_, err = NewMediaUploadActivity(1, "", 7, "Dana")
	require.Error(t, err)
}

func TestReconstructActivity(t *testing.T) {
	now := time.Now().UTC()
	a, err := ReconstructActivity(ActivityAttributes{
		ID:           3,
		TicketID:     1,
		ActivityType: vo.ActivityComment,
		Content:      "looks fixed",
		AuthorID:     7,
		AuthorName:   "Dana",
		CreatedAt:    now,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(3), a.ID())
	assert.Equal(t, now, a.CreatedAt())

	_, err = ReconstructActivity(ActivityAttributes{ID: 0, TicketID: 1, ActivityType: vo.ActivityComment})
	require.Error(t, err)

	_, err = ReconstructActivity(ActivityAttributes{ID: 3, TicketID: 1, ActivityType: vo.ActivityType("note")})
	require.Error(t, err)
}

func TestActivityMetadataIsCopied(t *testing.T) {
	a, err := NewMediaUploadActivity(1, "https://media.example.com/p.jpg", 7, "Dana")
	require.NoError(t, err)
	m := a.Metadata()
	m["media_url"] = "mutated"
	assert.Equal(t, "https://media.example.com/p.jpg", a.Metadata()["media_url"])
}

func TestActivitySetID(t *testing.T) {
	a, err := NewComment(1, "hi", 7, "Dana")
	require.NoError(t, err)
	require.NoError(t, a.SetID(12))
	assert.Error(t, a.SetID(13))
}

package ticket

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fieldops/internal/application/ticket/services"
	"fieldops/internal/domain/ticket"
	"fieldops/internal/shared/logger"
	"fieldops/internal/shared/utils"
)

// FeedHandler serves the live ticket feed over server-sent events. Each
// connection gets its own feed following the change bus; the client receives
// a snapshot immediately and again after every debounced reload.
type FeedHandler struct {
	ticketRepo ticket.TicketRepository
	source     services.InvalidationSource
	debounce   time.Duration
	logger     logger.Interface
}

func NewFeedHandler(
	ticketRepo ticket.TicketRepository,
	source services.InvalidationSource,
	debounce time.Duration,
	log logger.Interface,
) *FeedHandler {
	return &FeedHandler{
		ticketRepo: ticketRepo,
		source:     source,
		debounce:   debounce,
		logger:     log.Named("feed-handler"),
	}
}

// snapshotPayload is the wire shape of a feed snapshot. Stale snapshots keep
// the last known-good tickets and say so instead of dropping to empty.
type snapshotPayload struct {
	Tickets   interface{} `json:"tickets"`
	Total     int64       `json:"total"`
	LoadedAt  time.Time   `json:"loaded_at"`
	Stale     bool        `json:"stale"`
	LastError string      `json:"last_error,omitempty"`
}

func toPayload(s services.Snapshot) snapshotPayload {
	return snapshotPayload{
		Tickets:   s.Tickets,
		Total:     s.Total,
		LoadedAt:  s.LoadedAt,
		Stale:     s.Stale,
		LastError: s.LastError,
	}
}

func (h *FeedHandler) Stream(c *gin.Context) {
	userID, _, role := currentUser(c)

	feed := services.NewTicketFeed(h.ticketRepo, h.source, userID, role, h.debounce, h.logger)
	if err := feed.Start(c.Request.Context()); err != nil {
		h.logger.Errorw("failed to start ticket feed", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer feed.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("snapshot", toPayload(feed.Snapshot()))
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-feed.Updates():
			if !ok {
				return false
			}
			c.SSEvent("snapshot", toPayload(snap))
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// Snapshot serves the feed's view as a one-shot request for clients that
// cannot hold an event stream open. A stale result is still a 200; the
// warning tells the client it is looking at the last known-good data.
func (h *FeedHandler) Snapshot(c *gin.Context) {
	userID, _, role := currentUser(c)

	feed := services.NewTicketFeed(h.ticketRepo, h.source, userID, role, h.debounce, h.logger)
	if err := feed.Refresh(c.Request.Context()); err != nil {
		h.logger.Warnw("feed snapshot reload failed", "error", err, "user_id", userID)
	}

	snap := feed.Snapshot()
	if snap.Stale {
		utils.SuccessResponseWithWarning(c, toPayload(snap), "serving last known-good snapshot: "+snap.LastError)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toPayload(snap))
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.TicketModel{}, &models.ActivityModel{})
	require.NoError(t, err)

	return db
}

func createTestTicket(t *testing.T, title string, ticketType vo.TicketType, priority vo.Priority, creatorID uint) *ticket.Ticket {
	tk, err := ticket.NewTicket(title, "Test description", ticketType, priority, "Building A", creatorID)
	require.NoError(t, err)
	return tk
}

func TestTicketRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	t.Run("save new ticket successfully", func(t *testing.T) {
		tk := createTestTicket(t, "Test Ticket", vo.TypeFault, vo.PriorityHigh, 1)
		err := tk.SetNumber("TICK-20260828-0001")
		require.NoError(t, err)

		err = repo.Save(ctx, tk)
		assert.NoError(t, err)
		assert.NotZero(t, tk.ID())
	})

	t.Run("save round-trips media URLs and timestamps", func(t *testing.T) {
		tk := createTestTicket(t, "Ticket with Media", vo.TypeMaintenance, vo.PriorityMedium, 2)
		err := tk.SetNumber("TICK-20260828-0002")
		require.NoError(t, err)
		require.NoError(t, tk.AddMediaURL("https://cdn.example.com/photos/pump.jpg"))

		err = repo.Save(ctx, tk)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, tk.ID())
		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, tk.Number(), found.Number())
		assert.Equal(t, []string{"https://cdn.example.com/photos/pump.jpg"}, found.MediaURLs())
		assert.Equal(t, tk.CreatedAt().UnixMilli(), found.CreatedAt().UnixMilli())
	})

	t.Run("duplicate number should fail", func(t *testing.T) {
		tk1 := createTestTicket(t, "Ticket 1", vo.TypeInspection, vo.PriorityLow, 3)
		require.NoError(t, tk1.SetNumber("TICK-DUP"))
		require.NoError(t, repo.Save(ctx, tk1))

		tk2 := createTestTicket(t, "Ticket 2", vo.TypeInspection, vo.PriorityLow, 3)
		require.NoError(t, tk2.SetNumber("TICK-DUP"))
		err := repo.Save(ctx, tk2)
		assert.Error(t, err)
	})
}

func TestTicketRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	t.Run("update persists assignment and derived timestamp", func(t *testing.T) {
		tk := createTestTicket(t, "Original Title", vo.TypeFault, vo.PriorityHigh, 1)
		require.NoError(t, tk.SetNumber("TICK-UPD-001"))
		require.NoError(t, repo.Save(ctx, tk))

		assigneeID := uint(5)
		require.NoError(t, tk.AssignTo(assigneeID, 1))

		err := repo.Update(ctx, tk)
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, tk.ID())
		assert.NoError(t, err)
		require.NotNil(t, found)
		require.NotNil(t, found.AssigneeID())
		assert.Equal(t, assigneeID, *found.AssigneeID())
		assert.Equal(t, vo.StatusInProgress, found.Status())
		assert.NotNil(t, found.AssignedAt())
	})

	t.Run("unassign clears assignee but keeps assigned_at", func(t *testing.T) {
		tk := createTestTicket(t, "Unassign Test", vo.TypeFault, vo.PriorityHigh, 1)
		require.NoError(t, tk.SetNumber("TICK-UPD-002"))
		require.NoError(t, repo.Save(ctx, tk))

		require.NoError(t, tk.AssignTo(7, 1))
		require.NoError(t, repo.Update(ctx, tk))

		require.NoError(t, tk.Unassign(1))
		require.NoError(t, repo.Update(ctx, tk))

		found, err := repo.FindByID(ctx, tk.ID())
		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Nil(t, found.AssigneeID())
		assert.NotNil(t, found.AssignedAt())
		assert.Equal(t, vo.StatusOpen, found.Status())
	})
}

func TestTicketRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	t.Run("find existing ticket", func(t *testing.T) {
		tk := createTestTicket(t, "Find by ID", vo.TypeFault, vo.PriorityHigh, 1)
		require.NoError(t, tk.SetNumber("TICK-FIND-001"))
		require.NoError(t, repo.Save(ctx, tk))

		found, err := repo.FindByID(ctx, tk.ID())
		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, tk.ID(), found.ID())
		assert.Equal(t, tk.Number(), found.Number())
		assert.Equal(t, tk.Title(), found.Title())
	})

	t.Run("find non-existent ticket returns nil without error", func(t *testing.T) {
		found, err := repo.FindByID(ctx, 99999)
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTicketRepository_FindByNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	t.Run("find by existing number", func(t *testing.T) {
		tk := createTestTicket(t, "Find by Number", vo.TypeUpgrade, vo.PriorityHigh, 1)
		require.NoError(t, tk.SetNumber("TICK-NUM-001"))
		require.NoError(t, repo.Save(ctx, tk))

		found, err := repo.FindByNumber(ctx, "TICK-NUM-001")
		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, tk.ID(), found.ID())
	})

	t.Run("find by non-existent number", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, "TICK-NONEXIST")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestTicketRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk1 := createTestTicket(t, "Pump leaking", vo.TypeFault, vo.PriorityHigh, 1)
	require.NoError(t, tk1.SetNumber("TICK-LIST-001"))
	require.NoError(t, repo.Save(ctx, tk1))

	tk2 := createTestTicket(t, "Quarterly inspection", vo.TypeInspection, vo.PriorityMedium, 2)
	require.NoError(t, tk2.SetNumber("TICK-LIST-002"))
	require.NoError(t, tk2.AssignTo(1, 2))
	require.NoError(t, repo.Save(ctx, tk2))

	tk3 := createTestTicket(t, "Replace filter", vo.TypeMaintenance, vo.PriorityLow, 1)
	require.NoError(t, tk3.SetNumber("TICK-LIST-003"))
	require.NoError(t, repo.Save(ctx, tk3))

	t.Run("list all tickets", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 3)
	})

	t.Run("filter by type", func(t *testing.T) {
		fault := vo.TypeFault
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{TicketType: &fault, Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		assert.Equal(t, "Pump leaking", tickets[0].Title())
	})

	t.Run("filter by visibility covers created-by and assigned-to", func(t *testing.T) {
		userID := uint(1)
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{VisibleToUserID: &userID, Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 3)

		outsider := uint(42)
		tickets, total, err = repo.List(ctx, ticket.TicketFilter{VisibleToUserID: &outsider, Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, tickets)
	})

	t.Run("search matches title", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{Search: "inspection", Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		assert.Equal(t, "TICK-LIST-002", tickets[0].Number())
	})

	t.Run("sort by priority puts critical work first", func(t *testing.T) {
		tickets, _, err := repo.List(ctx, ticket.TicketFilter{SortBy: ticket.SortKeyPriority, Page: 1, PageSize: 10})
		assert.NoError(t, err)
		require.Len(t, tickets, 3)
		assert.Equal(t, vo.PriorityHigh, tickets[0].Priority())
		assert.Equal(t, vo.PriorityMedium, tickets[1].Priority())
		assert.Equal(t, vo.PriorityLow, tickets[2].Priority())
	})

	t.Run("pagination", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{Page: 1, PageSize: 2})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 2)

		tickets, total, err = repo.List(ctx, ticket.TicketFilter{Page: 2, PageSize: 2})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 1)
	})
}

func TestTicketRepository_ListOverdue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	pastDue := time.Now().UTC().Add(-48 * time.Hour)
	futureDue := time.Now().UTC().Add(48 * time.Hour)

	overdue := createTestTicket(t, "Valve stuck open", vo.TypeFault, vo.PriorityHigh, 1)
	require.NoError(t, overdue.SetNumber("TICK-OVERDUE-001"))
	overdue.SetDueDate(pastDue)
	require.NoError(t, repo.Save(ctx, overdue))

	onTime := createTestTicket(t, "Scheduled check", vo.TypeInspection, vo.PriorityMedium, 1)
	require.NoError(t, onTime.SetNumber("TICK-OVERDUE-002"))
	onTime.SetDueDate(futureDue)
	require.NoError(t, repo.Save(ctx, onTime))

	resolvedLate := createTestTicket(t, "Filter clogged", vo.TypeMaintenance, vo.PriorityLow, 1)
	require.NoError(t, resolvedLate.SetNumber("TICK-OVERDUE-003"))
	resolvedLate.SetDueDate(pastDue)
	require.NoError(t, resolvedLate.ChangeStatus(vo.StatusResolved, 1, vo.PermissivePolicy{}))
	require.NoError(t, repo.Save(ctx, resolvedLate))

	t.Run("keeps only past-due tickets with work outstanding", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.TicketFilter{Overdue: true, Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		assert.Equal(t, "TICK-OVERDUE-001", tickets[0].Number())
	})

	t.Run("no rows match when nothing is overdue", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, overdue.ID()))

		tickets, total, err := repo.List(ctx, ticket.TicketFilter{Overdue: true, Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, tickets)
	})
}

func TestTicketRepository_CountByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	tk1 := createTestTicket(t, "Open One", vo.TypeFault, vo.PriorityHigh, 1)
	require.NoError(t, tk1.SetNumber("TICK-CNT-001"))
	require.NoError(t, repo.Save(ctx, tk1))

	tk2 := createTestTicket(t, "In Progress One", vo.TypeFault, vo.PriorityHigh, 2)
	require.NoError(t, tk2.SetNumber("TICK-CNT-002"))
	require.NoError(t, tk2.AssignTo(5, 2))
	require.NoError(t, repo.Save(ctx, tk2))

	t.Run("counts grouped by status", func(t *testing.T) {
		counts, err := repo.CountByStatus(ctx, nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), counts[vo.StatusOpen])
		assert.Equal(t, int64(1), counts[vo.StatusInProgress])
	})

	t.Run("counts restricted to visible tickets", func(t *testing.T) {
		userID := uint(1)
		counts, err := repo.CountByStatus(ctx, &userID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), counts[vo.StatusOpen])
		assert.Zero(t, counts[vo.StatusInProgress])
	})
}

func TestTicketRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	t.Run("delete existing ticket", func(t *testing.T) {
		tk := createTestTicket(t, "Delete Test", vo.TypeFault, vo.PriorityHigh, 1)
		require.NoError(t, tk.SetNumber("TICK-DEL-001"))
		require.NoError(t, repo.Save(ctx, tk))

		err := repo.Delete(ctx, tk.ID())
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, tk.ID())
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("delete non-existent ticket is a no-op", func(t *testing.T) {
		err := repo.Delete(ctx, 99999)
		assert.NoError(t, err)
	})
}

func TestActivityRepository(t *testing.T) {
	db := setupTestDB(t)
	ticketRepo := NewTicketRepository(db)
	activityRepo := NewActivityRepository(db)
	ctx := context.Background()

	tk := createTestTicket(t, "Ticket with Trail", vo.TypeFault, vo.PriorityHigh, 1)
	require.NoError(t, tk.SetNumber("TICK-ACT-001"))
	require.NoError(t, ticketRepo.Save(ctx, tk))

	t.Run("activities come back most recent first with metadata", func(t *testing.T) {
		first, err := ticket.NewComment(tk.ID(), "Checked the valve", 2, "Sam Chen")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		second, err := ticket.NewStatusChangeActivity(tk.ID(), vo.StatusOpen, vo.StatusInProgress, 2, "Sam Chen")
		require.NoError(t, err)

		require.NoError(t, activityRepo.Save(ctx, first))
		require.NoError(t, activityRepo.Save(ctx, second))

		activities, err := activityRepo.FindByTicketID(ctx, tk.ID())
		assert.NoError(t, err)
		require.Len(t, activities, 2)
		assert.Equal(t, vo.ActivityStatusChange, activities[0].Type())
		assert.Equal(t, "open", activities[0].Metadata()["old_status"])
		assert.Equal(t, "in_progress", activities[0].Metadata()["new_status"])
		assert.Equal(t, "Checked the valve", activities[1].Content())
	})

	t.Run("delete by ticket removes the trail", func(t *testing.T) {
		require.NoError(t, activityRepo.DeleteByTicketID(ctx, tk.ID()))

		activities, err := activityRepo.FindByTicketID(ctx, tk.ID())
		assert.NoError(t, err)
		assert.Empty(t, activities)
	})
}

func TestTicketRepository_TransactionRollback(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	t.Run("transaction rollback on error", func(t *testing.T) {
		tk := createTestTicket(t, "Transaction Test", vo.TypeFault, vo.PriorityHigh, 1)
		require.NoError(t, tk.SetNumber("TICK-TXN-001"))

		err := db.Transaction(func(tx *gorm.DB) error {
			txRepo := NewTicketRepository(tx)

			if err := txRepo.Save(ctx, tk); err != nil {
				return err
			}

			return assert.AnError
		})

		assert.Error(t, err)

		found, err := repo.FindByNumber(ctx, "TICK-TXN-001")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("transaction commit on success", func(t *testing.T) {
		tk := createTestTicket(t, "Transaction Commit", vo.TypeFault, vo.PriorityHigh, 1)
		require.NoError(t, tk.SetNumber("TICK-TXN-002"))

		err := db.Transaction(func(tx *gorm.DB) error {
			txRepo := NewTicketRepository(tx)
			return txRepo.Save(ctx, tk)
		})

		assert.NoError(t, err)

		found, err := repo.FindByNumber(ctx, "TICK-TXN-002")
		assert.NoError(t, err)
		assert.NotNil(t, found)
	})
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fieldops/internal/domain/ticket"
	vo "fieldops/internal/domain/ticket/valueobjects"
	"fieldops/internal/infrastructure/persistence/mappers"
	"fieldops/internal/infrastructure/persistence/models"
	"fieldops/internal/shared/db"
	"fieldops/internal/shared/errors"
)

// TicketRepository is the MySQL-backed ticket store. A not-found lookup
// returns (nil, nil); infrastructure failures come back as retryable
// persistence errors.
type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(database *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     database,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return errors.NewInternalError("failed to map ticket", err.Error())
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return errors.NewPersistenceError("failed to save ticket", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model, err := r.mapper.ToModel(t)
	if err != nil {
		return errors.NewInternalError("failed to map ticket", err.Error())
	}
	tx := db.GetTxFromContext(ctx, r.db)

	// Save writes every column, so fields cleared to NULL (assignee on
	// unassign) are persisted too.
	if err := tx.Save(model).Error; err != nil {
		return errors.NewPersistenceError("failed to update ticket", err)
	}

	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Delete(&models.TicketModel{}, id).Error; err != nil {
		return errors.NewPersistenceError("failed to delete ticket", err)
	}

	return nil
}

func (r *TicketRepository) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.NewPersistenceError("failed to find ticket", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) FindByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("number = ?", number).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.NewPersistenceError("failed to find ticket by number", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})
	query = applyTicketFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.NewPersistenceError("failed to count tickets", err)
	}

	var rows []models.TicketModel
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	err := query.
		Order(ticketOrderClause(filter.SortBy)).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, errors.NewPersistenceError("failed to list tickets", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(rows))
	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}

	return tickets, total, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context, visibleToUserID *uint) (map[vo.TicketStatus]int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})
	if visibleToUserID != nil {
		query = query.Where("creator_id = ? OR assignee_id = ?", *visibleToUserID, *visibleToUserID)
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := query.Select("status, COUNT(*) as count").Group("status").Scan(&rows).Error; err != nil {
		return nil, errors.NewPersistenceError("failed to count tickets by status", err)
	}

	counts := make(map[vo.TicketStatus]int64, len(rows))
	for _, row := range rows {
		counts[vo.TicketStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *TicketRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.Model(&models.TicketModel{}).Where("number = ?", number).Count(&count).Error
	if err != nil {
		return false, errors.NewPersistenceError("failed to check ticket number", err)
	}
	return count > 0, nil
}

func applyTicketFilter(query *gorm.DB, filter ticket.TicketFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.TicketType != nil {
		query = query.Where("type = ?", filter.TicketType.String())
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.VisibleToUserID != nil {
		query = query.Where("creator_id = ? OR assignee_id = ?", *filter.VisibleToUserID, *filter.VisibleToUserID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR number LIKE ? OR location LIKE ?", pattern, pattern, pattern)
	}
	if filter.Overdue {
		// due_date is stored as UnixMilli, so the cutoff must be bound as
		// an integer rather than a time.Time.
		query = query.Where(
			"due_date IS NOT NULL AND due_date < ? AND status NOT IN ?",
			time.Now().UTC().UnixMilli(),
			[]string{vo.StatusResolved.String(), vo.StatusVerified.String(), vo.StatusClosed.String()},
		)
	}
	return query
}

func ticketOrderClause(sortBy string) string {
	switch sortBy {
	case ticket.SortKeyUpdated:
		return "updated_at DESC"
	case ticket.SortKeyPriority:
		return "CASE priority WHEN 'critical' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}

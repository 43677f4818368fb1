package team

import (
	"context"
	"database/sql"

	"go-teamdesk/internal/shared/dbtx"
	"go-teamdesk/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tables holding rows owned by a team. They are cleared explicitly before the
// team row goes, in addition to their ON DELETE CASCADE foreign keys.
var ownedTables = []string{"team_tickets", "calendar_events", "leave_applications"}

//go:generate mockgen -source=team_repo.go -destination=mock/team_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Team) error
	FindByID(ctx context.Context, id string) (*Team, error)
	FindAll(ctx context.Context) ([]Team, error)
	FindForUser(ctx context.Context, userID string) ([]Team, error)
	Update(ctx context.Context, t *Team) error
	ReplaceMembers(ctx context.Context, t *Team, userIDs []uuid.UUID) error
	AddMembers(ctx context.Context, t *Team, userIDs []uuid.UUID) error
	RemoveMember(ctx context.Context, t *Team, userID uuid.UUID) error
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
	DeleteOwned(ctx context.Context, teamID string) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbtx.Bind(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, t *Team) error {
	return r.db.WithContext(ctx).Omit("Leader", "Members").Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Team, error) {
	var t Team
	err := r.db.WithContext(ctx).
		Preload("Leader").
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("username ASC") }).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindAll(ctx context.Context) ([]Team, error) {
	var teams []Team
	err := r.db.WithContext(ctx).
		Preload("Leader").
		Preload("Members").
		Order("team_name ASC").
		Find(&teams).Error
	return teams, err
}

// FindForUser returns the teams the user leads or belongs to.
func (r *repository) FindForUser(ctx context.Context, userID string) ([]Team, error) {
	var teams []Team
	err := r.db.WithContext(ctx).
		Preload("Leader").
		Preload("Members").
		Where("leader_id = ?", userID).
		Or("id IN (?)", r.db.Table("team_members").Select("team_id").Where("user_id = ?", userID)).
		Order("team_name ASC").
		Find(&teams).Error
	return teams, err
}

func (r *repository) Update(ctx context.Context, t *Team) error {
	res := r.db.WithContext(ctx).
		Model(&Team{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"team_name": t.TeamName,
			"leader_id": t.LeaderID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func usersFor(ids []uuid.UUID) []user.User {
	users := make([]user.User, len(ids))
	for i, id := range ids {
		users[i] = user.User{ID: id}
	}
	return users
}

func (r *repository) ReplaceMembers(ctx context.Context, t *Team, userIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).
		Omit("Members.*").
		Model(t).
		Association("Members").
		Replace(usersFor(userIDs))
}

func (r *repository) AddMembers(ctx context.Context, t *Team, userIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).
		Omit("Members.*").
		Model(t).
		Association("Members").
		Append(usersFor(userIDs))
}

func (r *repository) RemoveMember(ctx context.Context, t *Team, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Exec("DELETE FROM team_members WHERE team_id = ? AND user_id = ?", t.ID, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("team_members").
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) DeleteOwned(ctx context.Context, teamID string) error {
	db := r.db.WithContext(ctx)
	for _, table := range ownedTables {
		if err := db.Exec("DELETE FROM "+table+" WHERE team_id = ?", teamID).Error; err != nil {
			return err
		}
	}
	return db.Exec("DELETE FROM team_members WHERE team_id = ?", teamID).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Team{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

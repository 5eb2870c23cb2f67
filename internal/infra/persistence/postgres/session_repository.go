package postgres

import (
	"context"
	"time"

	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the repository.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// CreateSession persists a new session record.
func (repo *sessionRepository) CreateSession(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			// Token collision. UUIDv4 makes this practically unreachable.
			return domainerrors.NewDatabaseExecuteError(err, "session token already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	return nil
}

// FindSessionByToken retrieves a session record by its token.
func (repo *sessionRepository) FindSessionByToken(ctx context.Context, token string) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("token = ?", token).
		First(&sessionM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toSessionDomain(&sessionM), nil
}

// DeleteSessionByToken removes the session identified by the token.
func (repo *sessionRepository) DeleteSessionByToken(ctx context.Context, token string) error {
	result := repo.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&model.SessionModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete session")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// DeleteSessionsByUserID removes every session belonging to the user.
func (repo *sessionRepository) DeleteSessionsByUserID(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.SessionModel{}).Error

	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user sessions")
	}

	return nil
}

// DeleteSessionsCreatedBefore removes sessions created before the cutoff and
// reports how many rows were removed.
func (repo *sessionRepository) DeleteSessionsCreatedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	result := repo.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.SessionModel{})

	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to purge expired sessions")
	}

	return int(result.RowsAffected), nil
}

// --- Mapper Functions ---

func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		Token:     data.Token,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
	}
}

func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		Token:     data.Token,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
	}
}

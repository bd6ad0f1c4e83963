package sqlstore

import (
	"context"

	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	"bulletin/internal/errors"
	"bulletin/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type credentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

func (repo *credentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	row := &model.CredentialModel{
		UserID:       credential.UserID,
		PasswordHash: credential.PasswordHash,
		UpdatedAt:    credential.UpdatedAt,
	}
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create credential")
	}

	return nil
}

// FindByEmail resolves the subject through the owning user's email.
// It reads from the primary so a login right after registration or a password change sees the new hash.
func (repo *credentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	var row model.CredentialRow
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Table(model.CredentialModel{}.TableName()).
		Select("credentials.user_id, users.email, credentials.password_hash, credentials.updated_at").
		Joins("JOIN users ON users.id = credentials.user_id").
		Where("users.email = ?", email).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find credential")
	}

	return &entity.Credential{
		UserID:       row.UserID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func (repo *credentialRepository) Replace(ctx context.Context, credential *entity.Credential) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CredentialModel{}).
		Where("user_id = ?", credential.UserID).
		Updates(map[string]any{
			"password_hash": credential.PasswordHash,
			"updated_at":    credential.UpdatedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to replace credential")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCredentialNotFound
	}

	return nil
}

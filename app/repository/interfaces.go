package repository

import (
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByProviderAccount(provider, providerAccountID string) (*models.User, error)
	Update(user *models.User) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// StyleguideRepository defines the interface for styleguide persistence.
// CreateOrUpdate implements the documented upsert semantics: full overwrite,
// no partial merge.
type StyleguideRepository interface {
	GetByUserID(userID uint) (*models.Styleguide, error)
	CreateOrUpdate(styleguide *models.Styleguide) error
}

// TemplateRepository is the injectable template catalog.
type TemplateRepository interface {
	List() ([]models.Template, error)
	GetByID(id uint) (*models.Template, error)
	Create(template *models.Template) error
	EnsureDefaults() error
}

// OnboardingRepository defines the interface for onboarding intake records.
type OnboardingRepository interface {
	GetByUserID(userID uint) (*models.OnboardingData, error)
	CreateOrUpdate(data *models.OnboardingData) error
}

// ProjectRepository defines the interface for project-related operations
type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id uint) (*models.Project, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Project, error)
	Update(project *models.Project) error
	Delete(id uint) error
	CountByUserID(userID uint) (int64, error)
}

// AiImageRepository defines the interface for one-off AI image requests.
type AiImageRepository interface {
	Create(image *models.AiImage) error
	GetByUUID(uuid string) (*models.AiImage, error)
	GetByUserID(userID uint, offset, limit int) ([]models.AiImage, error)
	Update(image *models.AiImage) error
	SelectImage(image *models.AiImage) error
}

// SelfieRepository defines the interface for selfie upload records.
type SelfieRepository interface {
	Create(selfie *models.SelfieUpload) error
	GetByUserID(userID uint) ([]models.SelfieUpload, error)
	CountByUserID(userID uint) (int64, error)
}

// UserModelRepository defines the interface for personal trained models.
type UserModelRepository interface {
	Create(model *models.UserModel) error
	GetByUserID(userID uint) (*models.UserModel, error)
	Update(model *models.UserModel) error
}

// GeneratedImageRepository defines the interface for trained-model outputs.
type GeneratedImageRepository interface {
	Create(image *models.GeneratedImage) error
	GetByUUID(uuid string) (*models.GeneratedImage, error)
	GetByUserID(userID uint, offset, limit int) ([]models.GeneratedImage, error)
	Update(image *models.GeneratedImage) error
}

// SubscriptionRepository defines the interface for billing subscription state.
type SubscriptionRepository interface {
	Upsert(sub *models.Subscription) error
	GetActiveByUserID(userID uint) (*models.Subscription, error)
	ListByUserID(userID uint) ([]models.Subscription, error)
}

// UsageRepository defines the interface for usage counters and the
// append-only history log. History rows are write-once: no update or delete.
type UsageRepository interface {
	GetOrCreate(userID uint, plan string) (*models.UserUsage, error)
	Save(usage *models.UserUsage) error
	AppendHistory(entry *models.UsageHistory) error
	ListHistory(userID uint, offset, limit int) ([]models.UsageHistory, error)
	WithTx(tx *gorm.DB) UsageRepository
}

// ContentRepository covers the one-per-user published artifacts and landing pages.
type ContentRepository interface {
	GetBrandbook(userID uint) (*models.Brandbook, error)
	SaveBrandbook(brandbook *models.Brandbook) error
	GetDashboard(userID uint) (*models.Dashboard, error)
	SaveDashboard(dashboard *models.Dashboard) error
	CreateLandingPage(page *models.LandingPage) error
	GetLandingPage(id uint) (*models.LandingPage, error)
	GetLandingPagesByUserID(userID uint) ([]models.LandingPage, error)
	UpdateLandingPage(page *models.LandingPage) error
	DeleteLandingPage(id uint) error
}

// DomainRepository defines the interface for custom domain records.
type DomainRepository interface {
	Create(domain *models.Domain) error
	GetByID(id uint) (*models.Domain, error)
	GetByUserID(userID uint) ([]models.Domain, error)
	Update(domain *models.Domain) error
	Delete(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User           UserRepository
	Styleguide     StyleguideRepository
	Template       TemplateRepository
	Onboarding     OnboardingRepository
	Project        ProjectRepository
	AiImage        AiImageRepository
	Selfie         SelfieRepository
	UserModel      UserModelRepository
	GeneratedImage GeneratedImageRepository
	Subscription   SubscriptionRepository
	Usage          UsageRepository
	Content        ContentRepository
	Domain         DomainRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:           NewUserRepository(db),
		Styleguide:     NewStyleguideRepository(db),
		Template:       NewTemplateRepository(db),
		Onboarding:     NewOnboardingRepository(db),
		Project:        NewProjectRepository(db),
		AiImage:        NewAiImageRepository(db),
		Selfie:         NewSelfieRepository(db),
		UserModel:      NewUserModelRepository(db),
		GeneratedImage: NewGeneratedImageRepository(db),
		Subscription:   NewSubscriptionRepository(db),
		Usage:          NewUsageRepository(db),
		Content:        NewContentRepository(db),
		Domain:         NewDomainRepository(db),
	}
}

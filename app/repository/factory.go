package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	db    *gorm.DB
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(db *gorm.DB) *Factory {
	return &Factory{
		db: db,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.db)
	})
	return f.repos
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetStyleguideRepository returns the styleguide repository instance
func (f *Factory) GetStyleguideRepository() StyleguideRepository {
	return f.GetRepositories().Styleguide
}

// GetTemplateRepository returns the template repository instance
func (f *Factory) GetTemplateRepository() TemplateRepository {
	return f.GetRepositories().Template
}

// GetOnboardingRepository returns the onboarding repository instance
func (f *Factory) GetOnboardingRepository() OnboardingRepository {
	return f.GetRepositories().Onboarding
}

// GetProjectRepository returns the project repository instance
func (f *Factory) GetProjectRepository() ProjectRepository {
	return f.GetRepositories().Project
}

// GetAiImageRepository returns the AI image repository instance
func (f *Factory) GetAiImageRepository() AiImageRepository {
	return f.GetRepositories().AiImage
}

// GetSelfieRepository returns the selfie repository instance
func (f *Factory) GetSelfieRepository() SelfieRepository {
	return f.GetRepositories().Selfie
}

// GetUserModelRepository returns the user model repository instance
func (f *Factory) GetUserModelRepository() UserModelRepository {
	return f.GetRepositories().UserModel
}

// GetGeneratedImageRepository returns the generated image repository instance
func (f *Factory) GetGeneratedImageRepository() GeneratedImageRepository {
	return f.GetRepositories().GeneratedImage
}

// GetSubscriptionRepository returns the subscription repository instance
func (f *Factory) GetSubscriptionRepository() SubscriptionRepository {
	return f.GetRepositories().Subscription
}

// GetUsageRepository returns the usage repository instance
func (f *Factory) GetUsageRepository() UsageRepository {
	return f.GetRepositories().Usage
}

// GetContentRepository returns the published content repository instance
func (f *Factory) GetContentRepository() ContentRepository {
	return f.GetRepositories().Content
}

// GetDomainRepository returns the domain repository instance
func (f *Factory) GetDomainRepository() DomainRepository {
	return f.GetRepositories().Domain
}

// Global factory instance
var globalFactory *Factory
var factoryMu sync.Mutex

// InitializeFactory initializes the global repository factory
func InitializeFactory(db *gorm.DB) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	globalFactory = NewFactory(db)
}

// SetGlobalRepositories installs a prebuilt repository set on the global
// factory, bypassing the DB wiring. Tests use it with in-memory
// implementations.
func SetGlobalRepositories(repos *Repositories) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	f := &Factory{repos: repos}
	f.once.Do(func() {})
	globalFactory = f
}

// GetGlobalFactory returns the global repository factory instance
func GetGlobalFactory() *Factory {
	if globalFactory == nil {
		panic("Repository factory not initialized. Call InitializeFactory first.")
	}
	return globalFactory
}

// GetGlobalRepositories returns the global repositories instance
func GetGlobalRepositories() *Repositories {
	return GetGlobalFactory().GetRepositories()
}

package services

import (
	"dropxhub/internal/models"
	"dropxhub/internal/providers"
	"dropxhub/internal/storage/interfaces"
	"dropxhub/internal/structures"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLength = 3
	minPasswordLength = 8
	// bcrypt rejects longer input
	maxPasswordBytes = 72
	apiKeyPrefix     = "sk_admin_"
)

type AdminServiceInterface interface {
	Login(password string) error
	Logout() error
	IsAuthenticated() bool

	Settings() models.AdminSettings
	UpdateSettings(settings models.AdminSettings) error
	ResetSettings() error
	GenerateAPIKey() (string, error)

	Account() models.AdminAccount
	UpdateAccount(account models.AdminAccount) (models.AdminAccount, error)
	UpdateEmail(email string) error
	UpdateUsername(username string) error
	ChangePassword(change models.PasswordChange) error

	Export() models.DataExport
	Import(data models.DataExport) error
	Stats() models.CatalogStats

	PublishListing(form models.ListingForm) (models.Listing, error)
	SaveListing(listing models.Listing) error
}

// AdminService backs the admin panel. The session flag is a single stored
// marker shared by every client, so this is a gate and not an auth model.
type AdminService struct {
	mu         sync.RWMutex
	storage    interfaces.KeyValueStorage
	logger     providers.Logger
	catalog    CatalogServiceInterface
	now        Clock
	newID      func() string
	bcryptCost int
	configHash string
	settings   models.AdminSettings
	account    models.AdminAccount
}

func NewAdminService(conf *structures.Config, storage interfaces.KeyValueStorage, logger providers.Logger, catalog CatalogServiceInterface) AdminServiceInterface {
	as := &AdminService{
		storage:    storage,
		logger:     logger,
		catalog:    catalog,
		now:        time.Now,
		newID:      uuid.NewString,
		bcryptCost: bcrypt.DefaultCost,
		configHash: conf.Admin.PasswordHash,
		settings:   models.DefaultAdminSettings(),
		account:    models.DefaultAdminAccount(),
	}
	as.restore()
	return as
}

func (as *AdminService) restore() {
	var settings models.AdminSettings
	if found, err := loadJSON(as.storage, KeyAdminSettings, &settings); err != nil {
		as.logger.Errorf(providers.TypeApp, "Unable to restore admin settings, using defaults: %s", err)
	} else if found {
		as.settings = settings
	}

	var account models.AdminAccount
	if found, err := loadJSON(as.storage, KeyAdminAccount, &account); err != nil {
		as.logger.Errorf(providers.TypeApp, "Unable to restore admin account, using defaults: %s", err)
	} else if found {
		as.account = account
	}

	if as.passwordHash() == "" {
		as.logger.Warnf(providers.TypeApp, "No admin password configured, admin login is disabled")
	}
}

// passwordHash prefers a hash stored by ChangePassword over the configured one.
func (as *AdminService) passwordHash() string {
	hash, ok, err := as.storage.Get(KeyAdminPassword)
	if err != nil {
		as.logger.Errorf(providers.TypeApp, "Unable to read admin password hash: %s", err)
	}
	if ok && hash != "" {
		return hash
	}
	return as.configHash
}

func (as *AdminService) checkPassword(password string) error {
	hash := as.passwordHash()
	if hash == "" || password == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (as *AdminService) Login(password string) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	if err := as.checkPassword(password); err != nil {
		as.logger.Warnf(providers.TypeApp, "Rejected admin login")
		return err
	}
	if err := as.storage.Set(KeyAdminAuth, "true"); err != nil {
		return fmt.Errorf("write %s: %w", KeyAdminAuth, err)
	}
	as.logger.Infof(providers.TypeApp, "Admin logged in")
	return nil
}

func (as *AdminService) Logout() error {
	as.mu.Lock()
	defer as.mu.Unlock()

	if err := as.storage.Remove(KeyAdminAuth); err != nil {
		return fmt.Errorf("remove %s: %w", KeyAdminAuth, err)
	}
	return nil
}

func (as *AdminService) IsAuthenticated() bool {
	as.mu.RLock()
	defer as.mu.RUnlock()

	v, ok, err := as.storage.Get(KeyAdminAuth)
	return err == nil && ok && v == "true"
}

func (as *AdminService) Settings() models.AdminSettings {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return as.settings
}

// UpdateSettings replaces the settings. An empty apiKey keeps the current
// key; only GenerateAPIKey and ResetSettings change it.
func (as *AdminService) UpdateSettings(settings models.AdminSettings) error {
	if err := validateStruct(&settings); err != nil {
		return err
	}

	as.mu.Lock()
	defer as.mu.Unlock()
	if settings.APIKey == "" {
		settings.APIKey = as.settings.APIKey
	}
	return as.writeSettings(settings)
}

func (as *AdminService) ResetSettings() error {
	as.mu.Lock()
	defer as.mu.Unlock()
	return as.writeSettings(models.DefaultAdminSettings())
}

// writeSettings persists then commits. Callers hold mu.
func (as *AdminService) writeSettings(settings models.AdminSettings) error {
	if err := saveJSON(as.storage, KeyAdminSettings, settings); err != nil {
		return err
	}
	as.settings = settings
	return nil
}

// GenerateAPIKey replaces the stored key; the previous one stops being valid.
func (as *AdminService) GenerateAPIKey() (string, error) {
	key := apiKeyPrefix + strings.ReplaceAll(as.newID(), "-", "")

	as.mu.Lock()
	defer as.mu.Unlock()
	next := as.settings
	next.APIKey = key
	if err := as.writeSettings(next); err != nil {
		return "", err
	}
	as.logger.Infof(providers.TypeApp, "Admin API key regenerated")
	return key, nil
}

func (as *AdminService) Account() models.AdminAccount {
	as.mu.RLock()
	defer as.mu.RUnlock()
	return as.account
}

// UpdateAccount validates every non-empty field before writing, so a
// rejected request leaves the stored account untouched. Empty fields keep
// their current value.
func (as *AdminService) UpdateAccount(account models.AdminAccount) (models.AdminAccount, error) {
	email := strings.TrimSpace(account.Email)
	username := strings.TrimSpace(account.Username)

	fields := make(map[string]string)
	if email != "" && !validate.IsEmail(email) {
		fields["email"] = "Please enter a valid email address"
	}
	if username != "" && len([]rune(username)) < minUsernameLength {
		fields["username"] = "Username must be at least 3 characters long"
	}
	if len(fields) > 0 {
		return models.AdminAccount{}, &ValidationError{Fields: fields}
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	next := as.account
	if email != "" {
		next.Email = email
	}
	if username != "" {
		next.Username = username
	}
	if err := saveJSON(as.storage, KeyAdminAccount, next); err != nil {
		return models.AdminAccount{}, err
	}
	as.account = next
	return next, nil
}

func (as *AdminService) UpdateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return newValidationError("email", "Please enter a valid email address")
	}
	_, err := as.UpdateAccount(models.AdminAccount{Email: email})
	return err
}

func (as *AdminService) UpdateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return newValidationError("username", "Username must be at least 3 characters long")
	}
	_, err := as.UpdateAccount(models.AdminAccount{Username: username})
	return err
}

// ChangePassword stores a bcrypt hash of the new password, which then
// takes precedence over the configured hash.
func (as *AdminService) ChangePassword(change models.PasswordChange) error {
	switch {
	case change.Current == "":
		return newValidationError("currentPassword", "Please enter your current password")
	case len(change.New) < minPasswordLength:
		return newValidationError("newPassword", "New password must be at least 8 characters long")
	case len(change.New) > maxPasswordBytes:
		return newValidationError("newPassword", "New password must be at most 72 bytes long")
	case change.New != change.Confirm:
		return newValidationError("confirmPassword", "New password and confirmation do not match")
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	if err := as.checkPassword(change.Current); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(change.New), as.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := as.storage.Set(KeyAdminPassword, string(hash)); err != nil {
		return fmt.Errorf("write %s: %w", KeyAdminPassword, err)
	}
	as.logger.Infof(providers.TypeApp, "Admin password changed")
	return nil
}

func (as *AdminService) Export() models.DataExport {
	settings := as.Settings()
	return models.DataExport{
		Apps:       as.catalog.Listings(),
		Categories: as.catalog.Categories(),
		Settings:   &settings,
		ExportDate: isoTime(as.now()),
	}
}

var errImportMissingApps = errors.New("invalid data format: apps array missing")

// Import overwrites the catalog. Categories and settings are replaced only
// when the document carries them.
func (as *AdminService) Import(data models.DataExport) error {
	if data.Apps == nil {
		return &ValidationError{Fields: map[string]string{"apps": errImportMissingApps.Error()}}
	}
	if data.Settings != nil {
		if err := validateStruct(data.Settings); err != nil {
			return err
		}
	}

	if err := as.catalog.ReplaceAll(data.Apps, data.Categories); err != nil {
		return err
	}
	if data.Settings != nil {
		if err := as.UpdateSettings(*data.Settings); err != nil {
			return err
		}
	}
	as.logger.Infof(providers.TypeApp, "Imported %d listings", len(data.Apps))
	return nil
}

func (as *AdminService) Stats() models.CatalogStats {
	return ComputeStats(as.catalog.Listings())
}

func (as *AdminService) PublishListing(form models.ListingForm) (models.Listing, error) {
	if err := validateStruct(&form); err != nil {
		return models.Listing{}, err
	}

	now := isoTime(as.now())
	listing := models.Listing{
		ID:             as.newID(),
		Name:           form.Name,
		Version:        form.Version,
		Logo:           form.Logo,
		Description:    form.Description,
		DownloadLink:   form.DownloadLink,
		Categories:     nonNil(form.Categories),
		Reviews:        []models.Review{},
		Featured:       form.Featured,
		Screenshots:    nonNil(form.Screenshots),
		VersionHistory: nonNil(form.VersionHistory),
		CreatedAt:      now,
		UpdatedAt:      now,
		Developer:      form.Developer,
		Size:           form.Size,
		Requirements:   form.Requirements,
		Permissions:    nonNil(form.Permissions),
	}
	if err := as.catalog.AddListing(listing); err != nil {
		return models.Listing{}, err
	}
	return listing, nil
}

func (as *AdminService) SaveListing(listing models.Listing) error {
	listing.UpdatedAt = isoTime(as.now())
	return as.catalog.EditListing(listing)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

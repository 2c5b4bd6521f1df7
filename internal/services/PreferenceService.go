package services

import (
	"dropxhub/internal/models"
	"dropxhub/internal/providers"
	"dropxhub/internal/storage/interfaces"
	"fmt"
	"slices"
	"sync"
)

type PreferenceServiceInterface interface {
	SetTheme(theme models.Theme) error
	Theme() models.Theme
	AddToRecentlyViewed(id string) error
	RecentlyViewed() []string
	ClearRecentlyViewed() error
	ToggleFavorite(id string) error
	IsFavorite(id string) bool
	Favorites() []string
	Snapshot() models.Preferences
}

type PreferenceService struct {
	mu             sync.RWMutex
	storage        interfaces.KeyValueStorage
	logger         providers.Logger
	theme          models.Theme
	recentlyViewed []string
	favorites      []string
}

func NewPreferenceService(storage interfaces.KeyValueStorage, logger providers.Logger) PreferenceServiceInterface {
	ps := &PreferenceService{
		storage:        storage,
		logger:         logger,
		theme:          models.ThemeSystem,
		recentlyViewed: []string{},
		favorites:      []string{},
	}
	ps.restore()
	return ps
}

func (ps *PreferenceService) restore() {
	raw, ok, err := ps.storage.Get(KeyTheme)
	switch {
	case err != nil:
		ps.logger.Errorf(providers.TypeApp, "Unable to read theme: %s", err)
	case ok && models.Theme(raw).Valid():
		ps.theme = models.Theme(raw)
	case ok:
		ps.logger.Warnf(providers.TypeApp, "Ignoring stored theme %q", raw)
	}

	var recent []string
	if found, err := loadJSON(ps.storage, KeyRecentlyViewed, &recent); err != nil {
		ps.logger.Errorf(providers.TypeApp, "Unable to restore recently viewed: %s", err)
	} else if found && recent != nil {
		ps.recentlyViewed = limitOf(recent, maxRecentlyViewed)
	}

	var favorites []string
	if found, err := loadJSON(ps.storage, KeyFavorites, &favorites); err != nil {
		ps.logger.Errorf(providers.TypeApp, "Unable to restore favorites: %s", err)
	} else if found && favorites != nil {
		ps.favorites = favorites
	}
}

func (ps *PreferenceService) SetTheme(theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	if err := ps.storage.Set(KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("write %s: %w", KeyTheme, err)
	}
	ps.theme = theme
	return nil
}

func (ps *PreferenceService) Theme() models.Theme {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.theme
}

// AddToRecentlyViewed moves id to the front, keeping at most ten entries.
func (ps *PreferenceService) AddToRecentlyViewed(id string) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	next := make([]string, 0, len(ps.recentlyViewed)+1)
	next = append(next, id)
	for _, v := range ps.recentlyViewed {
		if v != id {
			next = append(next, v)
		}
	}
	next = limitOf(next, maxRecentlyViewed)

	if err := saveJSON(ps.storage, KeyRecentlyViewed, next); err != nil {
		return err
	}
	ps.recentlyViewed = next
	return nil
}

func (ps *PreferenceService) RecentlyViewed() []string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return slices.Clone(ps.recentlyViewed)
}

func (ps *PreferenceService) ClearRecentlyViewed() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if err := ps.storage.Remove(KeyRecentlyViewed); err != nil {
		return fmt.Errorf("remove %s: %w", KeyRecentlyViewed, err)
	}
	ps.recentlyViewed = []string{}
	return nil
}

func (ps *PreferenceService) ToggleFavorite(id string) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	var next []string
	if slices.Contains(ps.favorites, id) {
		next = slices.DeleteFunc(slices.Clone(ps.favorites), func(v string) bool { return v == id })
	} else {
		next = append(slices.Clone(ps.favorites), id)
	}

	if err := saveJSON(ps.storage, KeyFavorites, next); err != nil {
		return err
	}
	ps.favorites = next
	return nil
}

func (ps *PreferenceService) IsFavorite(id string) bool {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return slices.Contains(ps.favorites, id)
}

func (ps *PreferenceService) Favorites() []string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return slices.Clone(ps.favorites)
}

func (ps *PreferenceService) Snapshot() models.Preferences {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return models.Preferences{
		Theme:          ps.theme,
		RecentlyViewed: slices.Clone(ps.recentlyViewed),
		Favorites:      slices.Clone(ps.favorites),
	}
}

package database

import "academy/models"

// GetSettings returns the platform settings singleton, creating it
// with defaults on first access.
func (s *Store) GetSettings() models.PlatformSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	var remoteSettings models.PlatformSettings
	if found, _ := s.remote.Call("getSettings", nil, &remoteSettings); found {
		s.settings = &remoteSettings
		s.persistSettings()
	}

	if s.settings == nil {
		s.settings = models.DefaultSettings()
		s.persistSettings()
	}
	return *s.settings
}

// SaveSettings replaces the singleton.
func (s *Store) SaveSettings(settings models.PlatformSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.FlashNews == nil {
		settings.FlashNews = []string{}
	}
	if settings.Categories == nil {
		settings.Categories = []string{}
	}

	s.remote.Call("saveSettings", map[string]interface{}{"settings": settings}, nil)

	s.settings = &settings
	s.persistSettings()
}

package providers

import (
	"dropxhub/internal/structures"
	"errors"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate checks every config section carrying validate tags.
func (c *CnfValidator) Validate() error {
	sections := []interface{}{
		&c.conf.WebServer,
		&c.conf.Storage,
		&c.conf.Logger,
	}
	for _, s := range sections {
		v := validate.Struct(s)
		if !v.Validate() {
			return v.Errors
		}
	}

	if c.conf.Cache.Enabled && c.conf.Cache.Size <= 0 {
		return errors.New("cache.size must be positive when cache is enabled")
	}
	if c.conf.Catalog.RelatedLimit < 0 {
		return errors.New("catalog.relatedLimit must not be negative")
	}
	return nil
}

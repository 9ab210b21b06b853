package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWatcher(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.ScanCSV == "" {
		return errors.New("paths.scan_csv must be set")
	}
	if c.Paths.ContactsDB == "" {
		return errors.New("paths.contacts_db must be set")
	}
	return nil
}

func (c *Config) validateWatcher() error {
	if c.Watcher.PollInterval < 100 {
		return fmt.Errorf("watcher.poll_interval_ms must be at least 100, got %d", c.Watcher.PollInterval)
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.PageSize < 1 || c.Search.PageSize > 500 {
		return fmt.Errorf("search.page_size must be between 1 and 500, got %d", c.Search.PageSize)
	}
	return nil
}

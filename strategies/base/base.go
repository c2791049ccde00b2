// Package base provides the shared embedding for strategy implementations
package base

import (
	"errors"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/data"
)

// ErrCustomSettingsUnsupported is returned by strategies that take no
// custom settings when some are provided anyway
var ErrCustomSettingsUnsupported = errors.New("custom settings not supported")

// ErrTooMuchBadData is returned when the current bar cannot be read
var ErrTooMuchBadData = errors.New("data handler has no current bar")

// Strategy is embedded by every strategy implementation
type Strategy struct{}

// GetBaseData returns the current bar of a data handler after nil checks
func (s *Strategy) GetBaseData(d data.Handler) (common.DataEvent, error) {
	if d == nil {
		return nil, common.ErrNilArguments
	}
	latest := d.Latest()
	if latest == nil {
		return nil, ErrTooMuchBadData
	}
	return latest, nil
}

// SetCustomSettings rejects custom settings; strategies that accept any
// override this
func (s *Strategy) SetCustomSettings(m map[string]interface{}) error {
	if len(m) > 0 {
		return ErrCustomSettingsUnsupported
	}
	return nil
}

// SetDefaults is a no-op for strategies without tunable parameters
func (s *Strategy) SetDefaults() {}

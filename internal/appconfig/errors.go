package appconfig

import "errors"

// ErrModuleDisabled is returned by GetConfig and GetGroups while the feature flag is off.
var ErrModuleDisabled = errors.New("app config module is disabled")

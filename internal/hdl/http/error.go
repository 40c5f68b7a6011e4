package http

import "errors"

var ErrNoDeviceInfo = errors.New("no device info")
var ErrNoCode = errors.New("no authorization code")

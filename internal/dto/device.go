package dto

type DeviceRequest struct {
	IP string `json:"ip"`
	UA string `json:"ua"`
}

type RegisterDeviceRequest struct {
	DeviceID string `json:"deviceId"`
}

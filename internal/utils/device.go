package utils

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/mssola/user_agent"
)

// DeviceInfo is the parsed client context stored alongside a booking.
type DeviceInfo struct {
	IP             string `json:"ip"`
	Browser        string `json:"browser,omitempty"`
	BrowserVersion string `json:"browser_version,omitempty"`
	OS             string `json:"os,omitempty"`
	Platform       string `json:"platform,omitempty"`
	Mobile         bool   `json:"mobile"`
	Bot            bool   `json:"bot"`
}

// CaptureDeviceInfo parses the request's User-Agent and client IP into a
// JSON blob for the bookings.device_info column. Returns nil on marshal
// failure so a weird UA never blocks a reservation.
func CaptureDeviceInfo(c *gin.Context) []byte {
	ua := user_agent.New(c.Request.UserAgent())
	browser, version := ua.Browser()

	info := DeviceInfo{
		IP:             GetRealIP(c),
		Browser:        browser,
		BrowserVersion: version,
		OS:             ua.OS(),
		Platform:       ua.Platform(),
		Mobile:         ua.Mobile(),
		Bot:            ua.Bot(),
	}

	data, err := json.Marshal(info)
	if err != nil {
		return nil
	}
	return data
}

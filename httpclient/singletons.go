package httpclient

import (
	"net/url"

	"github.com/hush-ha/hushctl/logging"
	"github.com/hush-ha/hushctl/model"
	"github.com/hush-ha/hushctl/model/config"
)

var (
	// WebSocketClientSingleton is the connection to the server's WebSocket API
	WebSocketClientSingleton *WebSocketClient
	// SimpleClientSingleton is the configuration to make simple API calls
	SimpleClientSingleton *SimpleClient
)

// Init inits all httpclient singletons
func Init(conf config.Hushctl) {
	l := logging.NewLogger("Init")

	wsScheme, httpScheme := "ws", "http"
	if conf.HomeAssistant.TLSEnabled {
		wsScheme, httpScheme = "wss", "https"
	}

	l.Debug().Msg("Creating WebSocketClientSingleton")
	WebSocketClientSingleton = NewWebSocketClient(
		model.HassConfig{
			URL:   url.URL{Scheme: wsScheme, Host: conf.HomeAssistant.Host, Path: "api/websocket"},
			Token: conf.HomeAssistant.Token,
		})

	l.Debug().Msg("Creating SimpleClientSingleton")
	SimpleClientSingleton = NewSimpleClient(
		model.HassConfig{
			URL:   url.URL{Scheme: httpScheme, Host: conf.HomeAssistant.Host, Path: "api"},
			Token: conf.HomeAssistant.Token,
		})
}

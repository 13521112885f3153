package httpclient

import (
	"time"

	"github.com/hush-ha/hushctl/model"
)

// WebSocketRequest is a request made from this client
type WebSocketRequest struct {
	Data           model.HassAPIObject
	CreationTime   time.Time
	LastUpdateTime time.Time

	// Result receives the id-matched result frame. Buffered so a late result
	// can be delivered after the waiter gave up, it is then simply discarded
	// with the request.
	Result chan *model.HassResult
}

// NewWebSocketRequest creates a new WebSocketRequest
func NewWebSocketRequest(data model.HassAPIObject) *WebSocketRequest {
	return &WebSocketRequest{
		Data:         data,
		CreationTime: time.Now(),
		Result:       make(chan *model.HassResult, 1),
	}
}

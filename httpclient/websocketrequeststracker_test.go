package httpclient

import (
	"testing"

	"github.com/hush-ha/hushctl/model"
)

func TestWebSocketRequestsTracker(t *testing.T) {
	tracker := WebSocketRequestsTracker{}

	req := NewWebSocketRequest(model.NewGetConfigCommand().Duplicate(1))

	if tracker.IsInProgress(1) {
		t.Error("request should not be in progress before InProgress")
	}

	tracker.InProgress(1, req)
	if !tracker.IsInProgress(1) {
		t.Error("request should be in progress after InProgress")
	}

	got := tracker.Done(1)
	if got != req {
		t.Error("Done should return the tracked request")
	}
	if tracker.IsInProgress(1) {
		t.Error("request should not be in progress after Done")
	}

	// Done on an unknown id yields nil
	if got := tracker.Done(42); got != nil {
		t.Errorf("Done on unknown id: got %v, expected nil", got)
	}
}

func TestWebSocketRequestsTrackerNilRequest(t *testing.T) {
	tracker := WebSocketRequestsTracker{}
	tracker.InProgress(1, nil)
	if tracker.IsInProgress(1) {
		t.Error("nil request should not be tracked")
	}
}

package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hush-ha/hushctl/logging"
	"github.com/hush-ha/hushctl/model"
)

// SimpleClient is a client to make standard HTTP requests
type SimpleClient struct {
	model.HassConfig
}

// NewSimpleClient returns a new SimpleClient object
func NewSimpleClient(hassConfig model.HassConfig) *SimpleClient {
	return &SimpleClient{
		HassConfig: hassConfig,
	}
}

// CheckServerAPIHealth verifies that the server is started and ready to serve requests
func (c *SimpleClient) CheckServerAPIHealth() bool {
	req, err := c.HassConfig.NewHTTPRequest(http.MethodGet, "config", nil)
	if err != nil {
		return false
	}

	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

// CallService calls a service with the given data, e.g. hush.notify
func (c *SimpleClient) CallService(domain string, service string, serviceData map[string]interface{}) error {
	l := logging.NewLogger("SimpleClient.CallService")

	reqBody, err := json.Marshal(serviceData)
	if err != nil {
		return err
	}

	req, err := c.HassConfig.NewHTTPRequest(http.MethodPost,
		fmt.Sprintf("services/%s/%s", domain, service),
		bytes.NewBuffer(reqBody))
	if err != nil {
		return err
	}

	l.Debug().
		Str("domain", domain).
		Str("service", service).
		Msg("Calling service")

	client := http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return NewErrorStatusNotOK(resp.StatusCode)
	}

	return nil
}

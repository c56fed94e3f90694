package apiclient

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/martin2250/vitalsampler/pkg/lineprotocol"
)

// ApiClient talks to the HTTP API of a vitalsampler server, Address is the API root (e.g. http://host:8080/api)
type ApiClient struct {
	Address    string
	HttpClient *http.Client
}

func (c *ApiClient) client() *http.Client {
	if c.HttpClient != nil {
		return c.HttpClient
	}
	return http.DefaultClient
}

func (c *ApiClient) url(path string) string {
	return strings.TrimRight(c.Address, "/") + path
}

func checkStatus(resp *http.Response, want int) error {
	if resp.StatusCode == want {
		return nil
	}
	msg, _ := ioutil.ReadAll(resp.Body)
	return fmt.Errorf("API returned status code %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
}

// Sample runs a sample query
func (c *ApiClient) Sample(q Query) (Result, error) {
	qbuf, err := q.Build()
	if err != nil {
		return Result{}, err
	}

	resp, err := c.client().Post(c.url("/sample"), "text/yaml", strings.NewReader(string(qbuf)))
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, http.StatusOK); err != nil {
		return Result{}, err
	}

	var r Result
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Result{}, errors.Wrap(err, "could not decode sample result")
	}
	return r, nil
}

// Insert sends measurements in line protocol format
func (c *ApiClient) Insert(points []lineprotocol.Point) error {
	var sb strings.Builder
	for _, p := range points {
		sb.WriteString(p.String())
		sb.WriteByte('\n')
	}

	resp, err := c.client().Post(c.url("/insert"), "text/plain", strings.NewReader(sb.String()))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp, http.StatusNoContent)
}

// Channels lists the channels stored on the server
func (c *ApiClient) Channels() ([]ChannelInfo, error) {
	resp, err := c.client().Get(c.url("/channels"))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, http.StatusOK); err != nil {
		return nil, err
	}

	var infos []ChannelInfo
	if err := json.NewDecoder(resp.Body).Decode(&infos); err != nil {
		return nil, errors.Wrap(err, "could not decode channel list")
	}
	return infos, nil
}

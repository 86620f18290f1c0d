/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */


// Package rest implements the workspace client over the dataflow workspace REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asgardeo/templatizer/internal/system/config"
	httpservice "github.com/asgardeo/templatizer/internal/system/http"
	"github.com/asgardeo/templatizer/internal/system/log"
	"github.com/asgardeo/templatizer/internal/workspace"
)

const loggerComponentName = "WorkspaceRESTClient"

var (
	// ErrRequestFailed is returned when the workspace answers with an unexpected status.
	ErrRequestFailed = errors.New("workspace request failed")
	// ErrNotFound is returned when the requested node does not exist.
	ErrNotFound = errors.New("workspace node not found")
	// ErrUnsupportedKind is returned for node kinds the API has no collection for.
	ErrUnsupportedKind = errors.New("unsupported node kind")
)

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, for example http://localhost:8080/nifi-api.
	BaseURL    string
	Username   string
	Password   string
	HTTPClient httpservice.HTTPClientInterface
	Logger     *zap.Logger
}

// Client implements workspace.ClientInterface against the REST API.
type Client struct {
	baseURL  string
	username string
	password string
	clientID string
	http     httpservice.HTTPClientInterface
	logger   *zap.Logger

	tokenMu sync.Mutex
	token   string
}

var _ workspace.ClientInterface = (*Client)(nil)

// NewClient creates a REST client.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = httpservice.GetHTTPClient()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		username: opts.Username,
		password: opts.Password,
		clientID: uuid.NewString(),
		http:     httpClient,
		logger:   logger.With(zap.String(log.LoggerKeyComponentName, loggerComponentName)),
	}
}

// NewClientFromConfig creates a rate limited REST client for the configured workspace.
func NewClientFromConfig(cfg config.WorkspaceConfig) *Client {
	base := &url.URL{
		Scheme: cfg.Scheme,
		Host:   cfg.Hostname + ":" + strconv.Itoa(cfg.Port),
		Path:   cfg.BasePath,
	}
	httpClient := httpservice.NewRateLimitedHTTPClient(
		httpservice.NewHTTPClientWithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		cfg.RequestsPerSecond, cfg.Burst)
	return NewClient(Options{
		BaseURL:    base.String(),
		Username:   cfg.Username,
		Password:   cfg.Password,
		HTTPClient: httpClient,
	})
}

// GetScope implements workspace.ClientInterface.
func (c *Client) GetScope(ctx context.Context, scopeID string) (*workspace.NodeDescriptor, error) {
	var entity entityDTO
	if err := c.do(ctx, http.MethodGet, "/process-groups/"+url.PathEscape(scopeID), nil, &entity); err != nil {
		return nil, err
	}
	node := toNode(workspace.KindProcessGroup, entity)
	return &node, nil
}

// ListNodes implements workspace.ClientInterface.
func (c *Client) ListNodes(ctx context.Context, scopeID string, kind workspace.NodeKind) (
	[]workspace.NodeDescriptor, error) {
	segment, ok := collectionSegments[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	path := "/process-groups/" + url.PathEscape(scopeID) + "/" + segment
	if kind == workspace.KindControllerService {
		path = "/flow/process-groups/" + url.PathEscape(scopeID) +
			"/controller-services?includeAncestorGroups=false&includeDescendantGroups=false"
	}

	var list listDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	entities := list.nodes(kind)
	nodes := make([]workspace.NodeDescriptor, 0, len(entities))
	for _, entity := range entities {
		nodes = append(nodes, toNode(kind, entity))
	}
	return nodes, nil
}

// ListConnections implements workspace.ClientInterface.
func (c *Client) ListConnections(ctx context.Context, scopeID string) ([]workspace.ConnectionDescriptor, error) {
	var list listDTO
	if err := c.do(ctx, http.MethodGet, "/process-groups/"+url.PathEscape(scopeID)+"/connections", nil,
		&list); err != nil {
		return nil, err
	}
	conns := make([]workspace.ConnectionDescriptor, 0, len(list.Connections))
	for _, entity := range list.Connections {
		conns = append(conns, toConnection(entity))
	}
	return conns, nil
}

// CreateNode implements workspace.ClientInterface.
func (c *Client) CreateNode(ctx context.Context, scopeID string, spec workspace.NodeSpec) (
	*workspace.NodeDescriptor, error) {
	segment, ok := collectionSegments[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, spec.Kind)
	}
	request := entityDTO{Revision: c.newRevision(0), Component: fromSpec(spec)}

	var created entityDTO
	if err := c.do(ctx, http.MethodPost, "/process-groups/"+url.PathEscape(scopeID)+"/"+segment, request,
		&created); err != nil {
		return nil, err
	}
	node := toNode(spec.Kind, created)
	c.logger.Debug("Node created", zap.String("kind", string(spec.Kind)),
		zap.String(log.LoggerKeyElementID, node.ID), zap.String(log.LoggerKeyScopeID, scopeID))
	return &node, nil
}

// CreateConnection implements workspace.ClientInterface.
func (c *Client) CreateConnection(ctx context.Context, scopeID string, spec workspace.ConnectionSpec) (
	*workspace.ConnectionDescriptor, error) {
	request := connectionEntityDTO{Revision: c.newRevision(0), Component: fromConnectionSpec(spec)}

	var created connectionEntityDTO
	if err := c.do(ctx, http.MethodPost, "/process-groups/"+url.PathEscape(scopeID)+"/connections", request,
		&created); err != nil {
		return nil, err
	}
	conn := toConnection(created)
	return &conn, nil
}

// UpdateNode implements workspace.ClientInterface. The current revision is fetched first.
func (c *Client) UpdateNode(ctx context.Context, id string, patch workspace.NodePatch) (
	*workspace.NodeDescriptor, error) {
	segment, ok := collectionSegments[patch.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, patch.Kind)
	}
	path := "/" + segment + "/" + url.PathEscape(id)

	var current entityDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &current); err != nil {
		return nil, err
	}
	version := int64(0)
	if current.Revision != nil {
		version = current.Revision.Version
	}

	if p := patch.RemotePortSettings; p != nil {
		direction := "output-ports"
		if p.Input {
			direction = "input-ports"
		}
		request := remotePortEntityDTO{
			Revision:               c.newRevision(version),
			RemoteProcessGroupPort: fromRemotePortPatch(id, *p),
		}
		if err := c.do(ctx, http.MethodPut, path+"/"+direction+"/"+url.PathEscape(p.PortID), request, nil); err != nil {
			return nil, err
		}
		if patch.Comments == nil && patch.AutoTerminated == nil && patch.RemoteSettings == nil {
			if err := c.do(ctx, http.MethodGet, path, nil, &current); err != nil {
				return nil, err
			}
			node := toNode(patch.Kind, current)
			return &node, nil
		}
		version++
	}

	request := entityDTO{Revision: c.newRevision(version), Component: fromPatch(id, patch)}
	var updated entityDTO
	if err := c.do(ctx, http.MethodPut, path, request, &updated); err != nil {
		return nil, err
	}
	node := toNode(patch.Kind, updated)
	return &node, nil
}

// GetRemoteGroupContents implements workspace.ClientInterface.
func (c *Client) GetRemoteGroupContents(ctx context.Context, id string) (*workspace.RemoteGroupContents, error) {
	var entity entityDTO
	if err := c.do(ctx, http.MethodGet, "/remote-process-groups/"+url.PathEscape(id), nil, &entity); err != nil {
		return nil, err
	}
	if entity.Component == nil || entity.Component.Contents == nil {
		return &workspace.RemoteGroupContents{}, nil
	}
	return toRemoteContents(entity.Component.Contents), nil
}

func (c *Client) newRevision(version int64) *revisionDTO {
	return &revisionDTO{ClientID: c.clientID, Version: version}
}

// do sends a JSON request and decodes the JSON response into out when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request for %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(ctx, req); err != nil {
		return err
	}

	c.logger.Debug("Sending workspace request", zap.String("method", method), zap.String("path", path))
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send HTTP request %s %s: %w", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Error("Failed to close response body", zap.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.Debug("Workspace request failed", zap.String("method", method), zap.String("path", path),
			zap.Int("statusCode", resp.StatusCode), zap.String("response", string(bodyBytes)))
		sentinel := ErrRequestFailed
		if resp.StatusCode == http.StatusNotFound {
			sentinel = ErrNotFound
		}
		return fmt.Errorf("%w: %s %s returned status %d: %s", sentinel, method, path, resp.StatusCode,
			strings.TrimSpace(string(bodyBytes)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}

// authorize attaches a bearer token, requesting one on first use when credentials are configured.
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.username == "" {
		return nil
	}
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.token == "" {
		token, err := c.requestToken(ctx)
		if err != nil {
			return err
		}
		c.token = token
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	return nil
}

func (c *Client) requestToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/access/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request access token: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Error("Failed to close response body", zap.Error(closeErr))
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: access token request returned status %d", ErrRequestFailed, resp.StatusCode)
	}
	c.logger.Debug("Access token obtained")
	return strings.TrimSpace(string(bodyBytes)), nil
}
